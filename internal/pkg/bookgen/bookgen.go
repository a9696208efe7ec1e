// Package bookgen writes synthetic book record files for load testing and
// demos.
package bookgen

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	humanize "github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/bcongdon/bookstat/internal/pkg/bookfs"
)

var (
	titleWords = []string{
		"Shadow", "River", "Winter", "Garden", "Silent", "Iron", "Glass",
		"Night", "Empire", "Lost", "Golden", "Broken", "Crown", "Sea",
		"Forgotten", "Storm", "Stone", "Letter", "House", "Fire",
	}
	authors = []struct {
		name    string
		country string
		born    int
	}{
		{"Jane Austen", "United Kingdom", 1775},
		{"Leo Tolstoy", "Russia", 1828},
		{"Chinua Achebe", "Nigeria", 1930},
		{"Gabriel García Márquez", "Colombia", 1927},
		{"Toni Morrison", "United States", 1931},
		{"Haruki Murakami", "Japan", 1949},
		{"Virginia Woolf", "United Kingdom", 1882},
		{"Jorge Luis Borges", "Argentina", 1899},
		{"Ursula K. Le Guin", "United States", 1929},
		{"Fyodor Dostoevsky", "Russia", 1821},
	}
	genres = []string{
		"Romance", "Tragedy", "Science Fiction", "Fantasy", "Mystery",
		"Historical Fiction", "Magical Realism", "Satire", "Coming-of-age",
		"Thriller",
	}
)

// Options controls what Generate writes.
type Options struct {
	Files        int   // number of valid record files
	BooksPerFile int   // records per valid file
	InvalidFiles int   // additional files that are not valid JSON
	Seed         int64 // same seed, same output
}

// Generate writes opts.Files record files (books_0000.json, ...) and
// opts.InvalidFiles malformed files (broken_0000.json, ...) into dir and
// returns their paths.
func Generate(fs bookfs.FileSystem, dir string, opts Options) ([]string, error) {
	if opts.Files < 0 || opts.BooksPerFile < 0 || opts.InvalidFiles < 0 {
		return nil, fmt.Errorf("bookgen: counts must not be negative: %+v", opts)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	paths := make([]string, 0, opts.Files+opts.InvalidFiles)

	for i := 0; i < opts.Files; i++ {
		path := fs.Join(dir, fmt.Sprintf("books_%04d.json", i))
		books := make([]map[string]interface{}, opts.BooksPerFile)
		for b := range books {
			books[b] = randomBook(rng)
		}
		if err := writeFile(fs, path, func(w *bufio.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(books)
		}); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	for i := 0; i < opts.InvalidFiles; i++ {
		path := fs.Join(dir, fmt.Sprintf("broken_%04d.json", i))
		if err := writeFile(fs, path, func(w *bufio.Writer) error {
			_, err := w.WriteString(`[{"title": "Unterminated", "genre": "Romance"`)
			return err
		}); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	log.Infof("Generated %s books in %d files (%d invalid) under %s",
		humanize.Comma(int64(opts.Files*opts.BooksPerFile)), len(paths), opts.InvalidFiles, dir)
	return paths, nil
}

func writeFile(fs bookfs.FileSystem, path string, fill func(*bufio.Writer) error) error {
	writer, err := fs.OpenWriter(path)
	if err != nil {
		return err
	}
	buf := bufio.NewWriter(writer)
	if err := fill(buf); err != nil {
		bookfs.Discard(writer)
		return err
	}
	if err := buf.Flush(); err != nil {
		bookfs.Discard(writer)
		return err
	}
	return writer.Close()
}

func randomBook(rng *rand.Rand) map[string]interface{} {
	words := make([]string, 1+rng.Intn(3))
	for i := range words {
		words[i] = titleWords[rng.Intn(len(titleWords))]
	}
	title := "The " + strings.Join(words, " ")
	// Vary case so that grouping has to be case-insensitive
	if rng.Intn(5) == 0 {
		title = strings.ToLower(title)
	}

	author := authors[rng.Intn(len(authors))]

	bookGenres := make([]string, 1+rng.Intn(3))
	for i := range bookGenres {
		bookGenres[i] = genres[rng.Intn(len(genres))]
	}

	book := map[string]interface{}{
		"title":          title,
		"year_published": author.born + 20 + rng.Intn(50),
		"genre":          strings.Join(bookGenres, ", "),
		"author":         author.name,
	}
	if rng.Intn(2) == 0 {
		book["author"] = map[string]interface{}{
			"name":       author.name,
			"country":    author.country,
			"birth_year": author.born,
		}
	}
	return book
}
