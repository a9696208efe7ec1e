package bookstat

import (
	"errors"
	"fmt"
)

// Errors returned by Driver.ProcessDirectory. These fail the whole call.
var (
	ErrInvalidAttribute = errors.New("unsupported attribute")
	ErrNotADirectory    = errors.New("not a directory")
	ErrInterrupted      = errors.New("interrupted while waiting for workers")
)

// FileParseError reports a file whose top-level content is not an array of
// record objects. The file's records are discarded and it counts as one error.
type FileParseError struct {
	File string
	Err  error
}

func (e *FileParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.File, e.Err)
}

func (e *FileParseError) Unwrap() error {
	return e.Err
}

// RecordAggregationError reports a single record that could not be
// aggregated. Processing continues with the next record of the same file.
type RecordAggregationError struct {
	File  string
	Index int // zero-based position of the record in its file
	Err   error
}

func (e *RecordAggregationError) Error() string {
	return fmt.Sprintf("aggregating record %d of %s: %v", e.Index, e.File, e.Err)
}

func (e *RecordAggregationError) Unwrap() error {
	return e.Err
}
