package bookstat

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Book is a single record from an input file. Fields that were missing or
// held a value of the wrong type are left empty.
type Book struct {
	Title         string
	Author        *Author
	YearPublished *int
	Genres        []string
}

// Author is either a bare name or a structured record in the input. Both
// shapes decode into this type; only Name takes part in statistics.
type Author struct {
	Name      string `json:"name"`
	Country   string `json:"country,omitempty"`
	BirthYear *int   `json:"birth_year,omitempty"`
}

// AuthorName returns the author's display name, or "" if there is none.
func (b *Book) AuthorName() string {
	if b.Author == nil {
		return ""
	}
	return b.Author.Name
}

var errNotAnObject = errors.New("record is not a JSON object")

// UnmarshalJSON decodes a record object. Only the object structure itself
// is required; each recognized field is decoded on its own and dropped if
// it does not have a usable shape.
func (b *Book) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return errNotAnObject
	}

	*b = Book{}
	if raw, ok := fields["title"]; ok {
		json.Unmarshal(raw, &b.Title)
	}
	if raw, ok := fields["author"]; ok {
		var a Author
		if err := json.Unmarshal(raw, &a); err == nil && a.Name != "" {
			b.Author = &a
		}
	}
	if raw, ok := fields["year_published"]; ok {
		b.YearPublished = decodeYear(raw)
	}
	if raw, ok := fields["genre"]; ok {
		b.Genres = decodeGenres(raw)
	}
	return nil
}

// UnmarshalJSON accepts `"Name"` or `{"name": ..., "country": ..., "birth_year": ...}`.
func (a *Author) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty author")
	}

	switch data[0] {
	case '"':
		*a = Author{}
		return json.Unmarshal(data, &a.Name)
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		*a = Author{}
		if raw, ok := fields["name"]; ok {
			json.Unmarshal(raw, &a.Name)
		}
		if raw, ok := fields["country"]; ok {
			json.Unmarshal(raw, &a.Country)
		}
		if raw, ok := fields["birth_year"]; ok {
			a.BirthYear = decodeYear(raw)
		}
		return nil
	default:
		return errors.New("author must be a string or an object")
	}
}

// decodeYear accepts an integral JSON number or a string holding one.
func decodeYear(raw json.RawMessage) *int {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}

	s := strings.TrimSpace(n.String())
	if year, err := strconv.Atoi(s); err == nil {
		return &year
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	year := int(f)
	return &year
}

// decodeGenres splits a comma-separated genre string into phrases. An array
// of strings is taken as already split.
func decodeGenres(raw json.RawMessage) []string {
	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		return SplitGenres(joined)
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	genres := make([]string, 0, len(list))
	for _, item := range list {
		var g string
		if err := json.Unmarshal(item, &g); err == nil {
			genres = append(genres, g)
		}
	}
	return genres
}

// SplitGenres splits a genre field on commas. Phrases are returned as
// written, spaces included; trimming happens during aggregation.
func SplitGenres(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	return strings.Split(field, ",")
}
