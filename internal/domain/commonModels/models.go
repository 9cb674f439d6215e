package commonModels

import "fmt"

// FaqEntry is one question/answer pair of the FAQ corpus. Entries are never
// mutated after load.
type FaqEntry struct {
	Id     string `json:"id" yaml:"id"`
	Label  string `json:"label" yaml:"label"`
	Answer string `json:"answer" yaml:"answer"`
}

// Document is the text handed to the language model as grounding context.
func (e FaqEntry) Document() string {
	return fmt.Sprintf("Q: %s\nA: %s", e.Label, e.Answer)
}

// ScoredMatch lives only for the duration of one ranking.
type ScoredMatch struct {
	Entry   FaqEntry
	Ratio   float64
	Overlap int
	Score   float64
}
