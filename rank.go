package bookstat

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rank orders a frequency table by count, descending. Ties are broken by
// the representative compared case-insensitively, then by key, so the
// result depends only on the table's contents.
func Rank(entries map[string]Entry) []StatisticsItem {
	type ranked struct {
		key   string
		lower string
		entry Entry
	}

	rows := make([]ranked, 0, len(entries))
	for key, entry := range entries {
		rows = append(rows, ranked{
			key:   key,
			lower: strings.ToLower(entry.Representative),
			entry: entry,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.entry.Count != b.entry.Count {
			return a.entry.Count > b.entry.Count
		}
		if a.lower != b.lower {
			return a.lower < b.lower
		}
		return a.key < b.key
	})

	items := make([]StatisticsItem, len(rows))
	for i, row := range rows {
		items[i] = StatisticsItem{
			Value: TitleCase(row.entry.Representative),
			Count: row.entry.Count,
		}
	}
	return items
}

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest. Words are separated by whitespace, which collapses to single
// spaces; hyphenated words are handled per segment ("mary-jane" becomes
// "Mary-Jane").
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		segments := strings.Split(word, "-")
		for j, segment := range segments {
			segments[j] = capitalize(segment)
		}
		words[i] = strings.Join(segments, "-")
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(first)) + strings.ToLower(s[size:])
}
