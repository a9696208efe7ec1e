package bookstat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	entries := map[string]Entry{
		"tragedy":           {Count: 1, Representative: "tragedy"},
		"romance":           {Count: 2, Representative: "Romance"},
		"apple":             {Count: 1, Representative: "Apple"},
		"political fiction": {Count: 2, Representative: "political FICTION"},
		"zebra":             {Count: 5, Representative: "zebra"},
	}

	expected := []StatisticsItem{
		{Value: "Zebra", Count: 5},
		{Value: "Political Fiction", Count: 2},
		{Value: "Romance", Count: 2},
		{Value: "Apple", Count: 1},
		{Value: "Tragedy", Count: 1},
	}
	assert.Equal(t, expected, Rank(entries))
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil))
	assert.Empty(t, Rank(map[string]Entry{}))
}

func TestRankIsDeterministic(t *testing.T) {
	entries := map[string]Entry{}
	for _, word := range strings.Fields("a b c d e f g h i j k l m n o p") {
		entries[word] = Entry{Count: 3, Representative: strings.ToUpper(word)}
	}

	first := Rank(entries)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Rank(entries))
	}
	assert.Equal(t, "A", first[0].Value)
	assert.Equal(t, "P", first[len(first)-1].Value)
}

func TestRankOrdering(t *testing.T) {
	entries := map[string]Entry{}
	for i, word := range strings.Fields("delta Alpha charlie Bravo echo foxtrot golf") {
		entries[strings.ToLower(word)] = Entry{Count: uint64(i % 3), Representative: word}
	}

	items := Rank(entries)
	for i := 1; i < len(items); i++ {
		a, b := items[i-1], items[i]
		assert.True(t, a.Count > b.Count ||
			(a.Count == b.Count && strings.ToLower(a.Value) <= strings.ToLower(b.Value)),
			"%v before %v", a, b)
	}
}

func TestTitleCase(t *testing.T) {
	var titleCaseTests = []struct {
		input    string
		expected string
	}{
		{"romance", "Romance"},
		{"SCIENCE FICTION", "Science Fiction"},
		{"mary-jane", "Mary-Jane"},
		{"coming-OF-age story", "Coming-Of-Age Story"},
		{"  the   old  man ", "The Old Man"},
		{"1984", "1984"},
		{"ñandú", "Ñandú"},
		{"a--b-", "A--B-"},
		{"", ""},
	}

	for _, test := range titleCaseTests {
		assert.Equal(t, test.expected, TitleCase(test.input), test.input)
	}
}
