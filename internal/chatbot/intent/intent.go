package intent

import "strings"

type Intent string

const (
	Plain          Intent = "plain"
	Greeting       Intent = "greeting"
	Acknowledgment Intent = "acknowledgment"
	TicketStart    Intent = "ticket_start"
)

// TicketCommand starts the ticket dialogue when sent on its own.
const TicketCommand = "generate ticket"

// A vocabulary matches when one whitespace separated word equals a single-word
// entry, or when a multi-word phrase occurs anywhere in the text.
type vocabulary struct {
	words   map[string]struct{}
	phrases []string
}

func newVocabulary(entries ...string) vocabulary {
	v := vocabulary{words: make(map[string]struct{})}
	for _, e := range entries {
		if strings.Contains(e, " ") {
			v.phrases = append(v.phrases, e)
		} else {
			v.words[e] = struct{}{}
		}
	}
	return v
}

func (v vocabulary) matches(lower string) bool {
	for _, token := range strings.Fields(lower) {
		if _, ok := v.words[token]; ok {
			return true
		}
	}
	for _, p := range v.phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

var (
	greetings = newVocabulary(
		"hi", "hello", "hey", "greetings",
		"good morning", "good afternoon", "good evening",
	)
	acknowledgments = newVocabulary(
		"ok", "okay", "thanks", "thank you", "got it",
		"understood", "alright", "cool", "nice",
	)
)

// Classify checks the ticket command first, then greetings, then
// acknowledgments. Punctuation is not stripped, so "hello!" is Plain.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	switch {
	case IsTicketCommand(text):
		return TicketStart
	case greetings.matches(lower):
		return Greeting
	case acknowledgments.matches(lower):
		return Acknowledgment
	default:
		return Plain
	}
}

func IsTicketCommand(text string) bool {
	return strings.ToLower(strings.TrimSpace(text)) == TicketCommand
}
