package scorer

import (
	"strings"
	"testing"

	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/domain/commonModels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCorpus = []commonModels.FaqEntry{
	{Id: "1", Label: "How do I reset my password?", Answer: "Use the forgot password link on the login page."},
	{Id: "2", Label: "What payment methods are accepted?", Answer: "We accept cards, bank transfer and PayPal."},
	{Id: "3", Label: "How long does delivery take?", Answer: "Orders usually arrive within five working days."},
	{Id: "4", Label: "How can I withdraw my earnings?", Answer: "Open the wallet page and choose withdraw."},
	{Id: "5", Label: "Can I change my username?", Answer: "Usernames can be changed once a month from settings."},
}

func chars(s string) []string { return strings.Split(s, "") }

func TestRatio(t *testing.T) {
	assert.InDelta(t, 1.0, Ratio(chars("password"), chars("password")), 1e-9)
	assert.InDelta(t, 0.75, Ratio(chars("abcd"), chars("bcde")), 1e-9)
	assert.InDelta(t, 0.0, Ratio(chars("abc"), chars("xyz")), 1e-9)
}

func TestRank_ExactLabelIsIncluded(t *testing.T) {
	for _, entry := range testCorpus {
		t.Run(entry.Id, func(t *testing.T) {
			matches := Rank(strings.ToLower(entry.Label), testCorpus, config.FaqMatchLimit)
			var ids []string
			for _, m := range matches {
				ids = append(ids, m.Entry.Id)
			}
			assert.Contains(t, ids, entry.Id)
		})
	}
}

func TestRank_BestMatchFirst(t *testing.T) {
	matches := Rank("how do I withdraw my earnings", testCorpus, 3)
	require.NotEmpty(t, matches)
	assert.Equal(t, "4", matches[0].Entry.Id)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestRank_RespectsLimitAndThreshold(t *testing.T) {
	for _, limit := range []int{1, 2, 3} {
		matches := Rank("how do i change my password", testCorpus, limit)
		assert.LessOrEqual(t, len(matches), limit)
		for _, m := range matches {
			assert.True(t, m.Ratio > config.FaqSimilarityThreshold || m.Overlap > 0,
				"entry %s has ratio %.3f and no overlap", m.Entry.Id, m.Ratio)
			assert.InDelta(t, Composite(m.Ratio, m.Overlap), m.Score, 1e-9)
		}
	}

	all := Rank("how", testCorpus, 0)
	assert.Len(t, all, 3, "three labels contain the word how")
}

func TestScore_NoRelevantEntry(t *testing.T) {
	docs := Score("qqq", testCorpus, 3)
	assert.Empty(t, docs)
}

func TestScore_FormatsDocuments(t *testing.T) {
	docs := Score("what payment methods are accepted?", testCorpus, 1)
	require.Len(t, docs, 1)
	assert.Equal(t, "Q: What payment methods are accepted?\nA: We accept cards, bank transfer and PayPal.", docs[0])
}

func TestRank_TiesKeepCorpusOrder(t *testing.T) {
	twins := []commonModels.FaqEntry{
		{Id: "a", Label: "refund policy", Answer: "see terms"},
		{Id: "b", Label: "refund policy", Answer: "see terms"},
	}
	matches := Rank("refund", twins, 2)
	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].Entry.Id)
	assert.Equal(t, "b", matches[1].Entry.Id)
}

func TestComposite_Monotonic(t *testing.T) {
	for overlap := 0; overlap < 5; overlap++ {
		assert.LessOrEqual(t, Composite(0.3, overlap), Composite(0.3, overlap+1))
	}
	for _, r := range []float64{0, 0.1, 0.5, 0.9} {
		assert.LessOrEqual(t, Composite(r, 2), Composite(r+0.05, 2))
	}
}

func TestRank_CaseInsensitive(t *testing.T) {
	upper := Rank("HOW CAN I WITHDRAW MY EARNINGS?", testCorpus, 1)
	lower := Rank("how can i withdraw my earnings?", testCorpus, 1)
	require.Len(t, upper, 1)
	require.Len(t, lower, 1)
	assert.Equal(t, lower[0].Entry.Id, upper[0].Entry.Id)
	assert.InDelta(t, lower[0].Score, upper[0].Score, 1e-9)
}
