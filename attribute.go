package bookstat

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/text/unicode/norm"
)

// Attribute names a book field that statistics can be grouped by.
type Attribute string

// Supported attributes.
const (
	AttributeTitle         Attribute = "title"
	AttributeAuthor        Attribute = "author"
	AttributeYearPublished Attribute = "year_published"
	AttributeGenre         Attribute = "genre"
)

const defaultNormalizeCacheSize = 4096

var errNilRecord = errors.New("record is null")

// Strategy extracts the values of one attribute from a book and emits a
// (normalized key, representative value) pair for each.
type Strategy interface {
	Map(book *Book, emitter Emitter) error
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(book *Book, emitter Emitter) error

// Map calls f(book, emitter).
func (f StrategyFunc) Map(book *Book, emitter Emitter) error {
	return f(book, emitter)
}

// SupportedAttributes returns the names accepted by ParseAttribute, sorted.
func SupportedAttributes() []string {
	names := []string{
		string(AttributeTitle),
		string(AttributeAuthor),
		string(AttributeYearPublished),
		string(AttributeGenre),
	}
	sort.Strings(names)
	return names
}

// ParseAttribute resolves name case-insensitively.
func ParseAttribute(name string) (Attribute, error) {
	attr := Attribute(strings.ToLower(strings.TrimSpace(name)))
	switch attr {
	case AttributeTitle, AttributeAuthor, AttributeYearPublished, AttributeGenre:
		return attr, nil
	}
	return "", fmt.Errorf("%w %q (supported: %s)", ErrInvalidAttribute, name, strings.Join(SupportedAttributes(), ", "))
}

// StrategyFor returns the Strategy for the named attribute.
func StrategyFor(name string) (Strategy, error) {
	attr, err := ParseAttribute(name)
	if err != nil {
		return nil, err
	}
	return newStrategy(attr, newNormalizer(defaultNormalizeCacheSize)), nil
}

func newStrategy(attr Attribute, n *normalizer) Strategy {
	switch attr {
	case AttributeTitle:
		return textStrategy(n, func(b *Book) string { return b.Title })
	case AttributeAuthor:
		return textStrategy(n, (*Book).AuthorName)
	case AttributeYearPublished:
		return StrategyFunc(func(book *Book, emitter Emitter) error {
			if book == nil {
				return errNilRecord
			}
			if book.YearPublished == nil {
				return nil
			}
			year := strconv.Itoa(*book.YearPublished)
			return emitter.Emit(year, year)
		})
	case AttributeGenre:
		return StrategyFunc(func(book *Book, emitter Emitter) error {
			if book == nil {
				return errNilRecord
			}
			for _, genre := range book.Genres {
				key, value, ok := n.normalize(genre)
				if !ok {
					continue
				}
				if err := emitter.Emit(key, value); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return nil
}

func textStrategy(n *normalizer, field func(*Book) string) Strategy {
	return StrategyFunc(func(book *Book, emitter Emitter) error {
		if book == nil {
			return errNilRecord
		}
		key, value, ok := n.normalize(field(book))
		if !ok {
			return nil
		}
		return emitter.Emit(key, value)
	})
}

// normalizer maps a raw field value to its grouping key and representative.
// The representative is the value in Unicode NFC with runs of whitespace
// collapsed to single spaces; the key is the representative lower-cased. Results are cached because the same few
// genres and authors repeat across millions of records. The cache is
// threadsafe and shared by all workers of a run.
type normalizer struct {
	cache *lru.Cache
}

type normalized struct {
	key   string
	value string
}

func newNormalizer(cacheSize int) *normalizer {
	n := &normalizer{}
	if cacheSize > 0 {
		n.cache, _ = lru.New(cacheSize)
	}
	return n
}

func (n *normalizer) normalize(raw string) (key, value string, ok bool) {
	if n.cache != nil {
		if cached, hit := n.cache.Get(raw); hit {
			c := cached.(normalized)
			return c.key, c.value, c.key != ""
		}
	}

	value = norm.NFC.String(strings.Join(strings.Fields(raw), " "))
	key = strings.ToLower(value)
	if n.cache != nil {
		n.cache.Add(raw, normalized{key: key, value: value})
	}
	return key, value, key != ""
}
