package bookfs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitFilesystem(t *testing.T) {
	fs := InitFilesystem(S3)
	assert.NotNil(t, fs)
	assert.IsType(t, &S3FileSystem{}, fs)

	fs = InitFilesystem(Local)
	assert.NotNil(t, fs)
	assert.IsType(t, &LocalFileSystem{}, fs)
}

func TestInferFilesystem(t *testing.T) {
	fs := InferFilesystem("s3://foo/books")
	assert.NotNil(t, fs)
	assert.IsType(t, &S3FileSystem{}, fs)

	fs = InferFilesystem("./books")
	assert.NotNil(t, fs)
	assert.IsType(t, &LocalFileSystem{}, fs)
}

type closeOnly struct{ closed bool }

func (c *closeOnly) Write(p []byte) (int, error) { return len(p), nil }
func (c *closeOnly) Close() error                { c.closed = true; return nil }

type discarding struct {
	closeOnly
	discarded bool
}

func (d *discarding) Discard() error { d.discarded = true; return errors.New("discarded") }

func TestDiscard(t *testing.T) {
	plain := &closeOnly{}
	assert.Nil(t, Discard(plain))
	assert.True(t, plain.closed)

	d := &discarding{}
	assert.EqualError(t, Discard(d), "discarded")
	assert.True(t, d.discarded)
	assert.False(t, d.closed)
}
