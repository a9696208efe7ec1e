package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgOrPrompt(t *testing.T) {
	var out bytes.Buffer

	val, err := argOrPrompt([]string{"books"}, 0, bufio.NewReader(strings.NewReader("")), &out, "dir: ")
	assert.Nil(t, err)
	assert.Equal(t, "books", val)
	assert.Empty(t, out.String())

	val, err = argOrPrompt([]string{"books"}, 1, bufio.NewReader(strings.NewReader("  genre \n")), &out, "attr: ")
	assert.Nil(t, err)
	assert.Equal(t, "genre", val)
	assert.Equal(t, "attr: ", out.String())

	// Last line without a trailing newline
	val, err = argOrPrompt(nil, 0, bufio.NewReader(strings.NewReader("author")), &out, "")
	assert.Nil(t, err)
	assert.Equal(t, "author", val)

	_, err = argOrPrompt(nil, 0, bufio.NewReader(strings.NewReader("")), &out, "")
	assert.NotNil(t, err)
}

func TestAttributesCommand(t *testing.T) {
	var out bytes.Buffer
	attributesCmd.SetOut(&out)
	attributesCmd.Run(attributesCmd, nil)

	assert.Equal(t, "author\ngenre\ntitle\nyear_published\n", out.String())
}
