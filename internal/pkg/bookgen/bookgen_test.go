package bookgen

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcongdon/bookstat/internal/pkg/bookfs"
)

func TestGenerate(t *testing.T) {
	tmpdir := t.TempDir()
	fs := &bookfs.LocalFileSystem{}

	paths, err := Generate(fs, tmpdir, Options{Files: 3, BooksPerFile: 5, InvalidFiles: 1, Seed: 42})
	require.NoError(t, err)
	assert.Len(t, paths, 4)

	for _, path := range paths[:3] {
		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var books []map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &books))
		assert.Len(t, books, 5)
		for _, book := range books {
			assert.Contains(t, book, "title")
			assert.Contains(t, book, "author")
			assert.Contains(t, book, "genre")
			assert.Contains(t, book, "year_published")
		}
	}

	data, err := os.ReadFile(paths[3])
	require.NoError(t, err)
	var invalid interface{}
	assert.Error(t, json.Unmarshal(data, &invalid))
}

func TestGenerateDeterministic(t *testing.T) {
	fs := &bookfs.LocalFileSystem{}
	dirA, dirB := t.TempDir(), t.TempDir()

	_, err := Generate(fs, dirA, Options{Files: 1, BooksPerFile: 20, Seed: 7})
	require.NoError(t, err)
	_, err = Generate(fs, dirB, Options{Files: 1, BooksPerFile: 20, Seed: 7})
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(dirA, "books_0000.json"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dirB, "books_0000.json"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateRejectsNegativeCounts(t *testing.T) {
	_, err := Generate(&bookfs.LocalFileSystem{}, t.TempDir(), Options{Files: -1})
	assert.Error(t, err)
}
