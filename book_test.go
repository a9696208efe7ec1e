package bookstat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func TestBookUnmarshal(t *testing.T) {
	var bookTests = []struct {
		input    string
		expected Book
	}{
		{
			`{"title": "Anna Karenina", "author": "Leo Tolstoy", "year_published": 1878, "genre": "Romance, Tragedy"}`,
			Book{
				Title:         "Anna Karenina",
				Author:        &Author{Name: "Leo Tolstoy"},
				YearPublished: intPtr(1878),
				Genres:        []string{"Romance", " Tragedy"},
			},
		},
		{
			`{"title": "Things Fall Apart", "author": {"name": "Chinua Achebe", "country": "Nigeria", "birth_year": 1930}}`,
			Book{
				Title:  "Things Fall Apart",
				Author: &Author{Name: "Chinua Achebe", Country: "Nigeria", BirthYear: intPtr(1930)},
			},
		},
		{
			`{}`,
			Book{},
		},
		// Type-mismatched fields are dropped, not fatal
		{
			`{"title": 12, "author": 3, "year_published": "soon", "genre": {"a": 1}}`,
			Book{},
		},
		{
			`{"year_published": "1999", "genre": ["Political Fiction", 4, "Satire"]}`,
			Book{
				YearPublished: intPtr(1999),
				Genres:        []string{"Political Fiction", "Satire"},
			},
		},
		{
			`{"year_published": 2001.0}`,
			Book{YearPublished: intPtr(2001)},
		},
		{
			`{"year_published": 2001.5, "genre": "   "}`,
			Book{},
		},
		{
			`{"author": {"country": "Nowhere"}, "title": null}`,
			Book{},
		},
		{
			`{"unknown": [1, 2, 3], "title": "Kept"}`,
			Book{Title: "Kept"},
		},
	}

	for _, test := range bookTests {
		var book Book
		err := json.Unmarshal([]byte(test.input), &book)
		assert.Nil(t, err, test.input)
		assert.Equal(t, test.expected, book, test.input)
	}
}

func TestBookUnmarshalNotAnObject(t *testing.T) {
	for _, input := range []string{`1`, `"book"`, `[]`, `true`} {
		var book Book
		assert.NotNil(t, json.Unmarshal([]byte(input), &book), input)
	}
}

func TestAuthorName(t *testing.T) {
	var nilAuthor Book
	assert.Equal(t, "", nilAuthor.AuthorName())

	book := Book{Author: &Author{Name: "Toni Morrison"}}
	assert.Equal(t, "Toni Morrison", book.AuthorName())
}

func TestSplitGenres(t *testing.T) {
	assert.Nil(t, SplitGenres(""))
	assert.Nil(t, SplitGenres("  "))
	assert.Equal(t, []string{"Political Fiction"}, SplitGenres("Political Fiction"))
	assert.Equal(t, []string{"Romance", " Tragedy"}, SplitGenres("Romance, Tragedy"))
	assert.Equal(t, []string{"Romance", "", "Satire"}, SplitGenres("Romance,,Satire"))
}
