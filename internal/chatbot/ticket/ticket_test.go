package ticket

import (
	"testing"

	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_ResetsFromAnyState(t *testing.T) {
	states := map[string]sessionModel.SessionState{
		"idle": sessionModel.NewSessionState("u"),
		"mid subject": {
			TicketStep: sessionModel.StepSubject,
			TicketData: sessionModel.TicketData{Category: "Other"},
		},
		"mid description": {
			TicketStep: sessionModel.StepDescription,
			TicketData: sessionModel.TicketData{Category: "Other", Subject: "x"},
		},
		"after completion": {
			TicketGenerated: true,
			TicketData:      sessionModel.TicketData{Category: "Other", Subject: "x", Description: "y"},
		},
	}

	for name, state := range states {
		t.Run(name, func(t *testing.T) {
			reply := Start(&state)
			assert.Equal(t, sessionModel.StepCategory, state.TicketStep)
			assert.Equal(t, sessionModel.TicketData{}, state.TicketData)
			assert.False(t, state.TicketGenerated)
			assert.Equal(t, CategoryPrompt(), reply)
		})
	}
}

func TestCategoryPrompt_ListsEveryCategory(t *testing.T) {
	prompt := CategoryPrompt()
	require.Len(t, Categories, 6)
	for _, c := range Categories {
		assert.Contains(t, prompt, c)
	}
}

func TestAdvance_InvalidCategoryRePrompts(t *testing.T) {
	state := sessionModel.NewSessionState("u")
	Start(&state)

	for _, input := range []string{"refunds", "hi", "generate ticket", ""} {
		reply, completed := Advance(&state, input)
		assert.False(t, completed)
		assert.Equal(t, InvalidCategoryMessage(), reply)
		assert.Equal(t, sessionModel.StepCategory, state.TicketStep)
		assert.Empty(t, state.TicketData.Category)
	}
}

func TestAdvance_CategoryIgnoresCase(t *testing.T) {
	state := sessionModel.NewSessionState("u")
	Start(&state)

	reply, _ := Advance(&state, "  refund REQUEST ")
	assert.Equal(t, SubjectPrompt, reply)
	assert.Equal(t, "Refund Request", state.TicketData.Category)
}

func TestAdvance_FullDialogue(t *testing.T) {
	state := sessionModel.NewSessionState("u")
	Start(&state)

	reply, completed := Advance(&state, "Refund Request")
	assert.Equal(t, SubjectPrompt, reply)
	assert.False(t, completed)
	assert.Equal(t, sessionModel.StepSubject, state.TicketStep)

	reply, completed = Advance(&state, "my card was charged twice")
	assert.Equal(t, DescriptionPrompt, reply)
	assert.False(t, completed)
	assert.Equal(t, sessionModel.StepDescription, state.TicketStep)

	reply, completed = Advance(&state, "charged twice for same order on May 2")
	assert.Equal(t, SuccessMessage, reply)
	assert.True(t, completed)

	assert.Equal(t, sessionModel.StepNone, state.TicketStep)
	assert.True(t, state.TicketGenerated)
	assert.Equal(t, sessionModel.TicketData{
		Category:    "Refund Request",
		Subject:     "my card was charged twice",
		Description: "charged twice for same order on May 2",
	}, state.TicketData)
}

func TestAdvance_CommandsAreDataMidFlow(t *testing.T) {
	state := sessionModel.NewSessionState("u")
	Start(&state)
	Advance(&state, "Other")

	Advance(&state, "generate ticket")
	assert.Equal(t, "generate ticket", state.TicketData.Subject)

	Advance(&state, "hi")
	assert.Equal(t, "hi", state.TicketData.Description)
	assert.True(t, state.TicketGenerated)
}

func TestAdvance_IdleIsNoop(t *testing.T) {
	state := sessionModel.NewSessionState("u")
	reply, completed := Advance(&state, "anything")
	assert.Empty(t, reply)
	assert.False(t, completed)
	assert.Equal(t, sessionModel.NewSessionState("u"), state)
}
