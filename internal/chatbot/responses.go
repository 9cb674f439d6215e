package chatbot

import (
	"fmt"
	"strings"
)

const (
	GreetingReply       = "Hello! How can I help you today?"
	AcknowledgmentReply = "You're welcome! Let me know if there is anything else I can help you with."
)

const promptTemplate = `You are a highly intelligent support assistant for %s platform.
Use ONLY the context below to answer the question clearly and naturally.

Context:
%s

Question:
%s

Provide a concise, clear, and helpful answer.`

// BuildPrompt grounds the question on the matched FAQ documents.
func BuildPrompt(platform string, docs []string, question string) string {
	return fmt.Sprintf(promptTemplate, platform, strings.Join(docs, "\n"), question)
}

func (s *service) noMatchReply() string {
	return fmt.Sprintf("Sorry, I couldn't find any information about that. Please contact our support team at %s.",
		s.opts.SupportContact)
}

func (s *service) unreachableReply() string {
	return fmt.Sprintf("Our AI assistant is not reachable right now. Please try again later or contact support at %s.",
		s.opts.SupportContact)
}

func (s *service) emptyReply() string {
	return fmt.Sprintf("The AI assistant returned an empty response. Please rephrase your question or contact support at %s.",
		s.opts.SupportContact)
}

func (s *service) serviceErrorReply() string {
	return fmt.Sprintf("Something went wrong while answering your question. Please contact support at %s.",
		s.opts.SupportContact)
}

func (s *service) ticketNotSavedReply() string {
	return fmt.Sprintf("We could not save your ticket. Please send the description again or contact support at %s.",
		s.opts.SupportContact)
}

func ticketCreatedReply(success string, id string) string {
	return fmt.Sprintf("%s Your ticket id is %s.", success, id)
}
