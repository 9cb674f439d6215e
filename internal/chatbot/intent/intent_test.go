package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{"generate ticket", TicketStart},
		{"  Generate TICKET \n", TicketStart},
		{"please generate ticket", Plain},
		{"generate ticket now", Plain},

		{"hello", Greeting},
		{"Hi there", Greeting},
		{"hey how are you", Greeting},
		{"Good morning team", Greeting},
		{"a very good evening to you", Greeting},
		{"greetings", Greeting},
		{"hello!", Plain},
		{"this is high priority", Plain},

		{"ok", Acknowledgment},
		{"Thanks a lot", Acknowledgment},
		{"thank you so much", Acknowledgment},
		{"got it, bye", Acknowledgment},
		{"that is cool", Acknowledgment},
		{"understood", Acknowledgment},
		{"hi thanks", Greeting},
		{"hi, thanks", Acknowledgment},

		{"How do I reset my password?", Plain},
		{"", Plain},
		{"   ", Plain},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

func TestIsTicketCommand(t *testing.T) {
	assert.True(t, IsTicketCommand("GENERATE TICKET"))
	assert.True(t, IsTicketCommand("\tgenerate ticket  "))
	assert.False(t, IsTicketCommand("generate  ticket"))
	assert.False(t, IsTicketCommand("generate"))
}
