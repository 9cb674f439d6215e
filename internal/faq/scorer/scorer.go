package scorer

import (
	"sort"
	"strings"

	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/domain/commonModels"
	"github.com/pmezard/go-difflib/difflib"
)

// Rank scores every entry against the question and returns the candidates,
// best first, at most limit of them (limit <= 0 means no limit).
//
// An entry is a candidate when its character similarity ratio is above
// config.FaqSimilarityThreshold or it shares at least one word with the
// question. Entries with equal scores keep their corpus order; callers should
// not rely on that.
func Rank(question string, entries []commonModels.FaqEntry, limit int) []commonModels.ScoredMatch {
	q := strings.ToLower(question)
	qChars := strings.Split(q, "")
	qWords := wordSet(q)

	matches := make([]commonModels.ScoredMatch, 0, len(entries))
	for _, entry := range entries {
		combined := strings.ToLower(entry.Label) + " " + strings.ToLower(entry.Answer)

		ratio := Ratio(qChars, strings.Split(combined, ""))
		overlap := overlapCount(qWords, combined)
		if ratio <= config.FaqSimilarityThreshold && overlap == 0 {
			continue
		}
		matches = append(matches, commonModels.ScoredMatch{
			Entry:   entry,
			Ratio:   ratio,
			Overlap: overlap,
			Score:   Composite(ratio, overlap),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Score returns the formatted documents of the top limit matches. An empty
// result means nothing in the corpus is relevant.
func Score(question string, entries []commonModels.FaqEntry, limit int) []string {
	matches := Rank(question, entries, limit)
	docs := make([]string, len(matches))
	for i, m := range matches {
		docs[i] = m.Entry.Document()
	}
	return docs
}

// Ratio is the longest-matching-blocks similarity 2*M/T of two character
// sequences, including the automatic junk heuristic for long inputs.
func Ratio(a, b []string) float64 {
	return difflib.NewMatcher(a, b).Ratio()
}

func Composite(ratio float64, overlap int) float64 {
	return ratio + config.FaqWordOverlapWeight*float64(overlap)
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func overlapCount(qWords map[string]struct{}, text string) int {
	count := 0
	for w := range wordSet(text) {
		if _, ok := qWords[w]; ok {
			count++
		}
	}
	return count
}
