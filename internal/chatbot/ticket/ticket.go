package ticket

import (
	"fmt"
	"strings"

	"github.com/akolanti/SupportBot/internal/domain/sessionModel"
)

var Categories = []string{
	"Payment Issue",
	"Order Not Delivered",
	"Account Access Issue",
	"Product Quality Issue",
	"Refund Request",
	"Other",
}

const (
	SubjectPrompt     = "Got it. Please enter a short subject for your ticket."
	DescriptionPrompt = "Thanks. Now describe the issue in detail."
	SuccessMessage    = "Your support ticket has been generated successfully. Our team will get back to you soon."
)

// CategoryPrompt lists every category, one per line.
func CategoryPrompt() string {
	var b strings.Builder
	b.WriteString("Sure, let's create a support ticket. Please choose a category:")
	for i, c := range Categories {
		fmt.Fprintf(&b, "\n%d. %s", i+1, c)
	}
	return b.String()
}

func InvalidCategoryMessage() string {
	return "That is not a valid category. Please choose one of: " + strings.Join(Categories, ", ") + "."
}

// MatchCategory ignores case and surrounding whitespace and returns the
// category with its canonical casing.
func MatchCategory(input string) (string, bool) {
	in := strings.TrimSpace(input)
	for _, c := range Categories {
		if strings.EqualFold(in, c) {
			return c, true
		}
	}
	return "", false
}

// Start opens a new dialogue from any state, dropping whatever was collected.
func Start(state *sessionModel.SessionState) string {
	state.TicketStep = sessionModel.StepCategory
	state.TicketData = sessionModel.TicketData{}
	state.TicketGenerated = false
	return CategoryPrompt()
}

// Advance consumes one turn of an open dialogue. Every input is treated as
// data for the current step. completed is true on the turn that fills the
// description; the state is then back to idle with TicketGenerated set.
// On an idle session it does nothing.
func Advance(state *sessionModel.SessionState, input string) (reply string, completed bool) {
	switch state.TicketStep {
	case sessionModel.StepCategory:
		category, ok := MatchCategory(input)
		if !ok {
			return InvalidCategoryMessage(), false
		}
		state.TicketData.Category = category
		state.TicketStep = sessionModel.StepSubject
		return SubjectPrompt, false

	case sessionModel.StepSubject:
		state.TicketData.Subject = input
		state.TicketStep = sessionModel.StepDescription
		return DescriptionPrompt, false

	case sessionModel.StepDescription:
		state.TicketData.Description = input
		state.TicketStep = sessionModel.StepNone
		state.TicketGenerated = true
		return SuccessMessage, true
	}
	return "", false
}
