package bookstat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// RecordReader streams book records out of a JSON array, one at a time.
// It is used like bufio.Scanner:
//
//	rr := NewRecordReader(f)
//	for rr.Next() {
//		book := rr.Book()
//	}
//	if err := rr.Err(); err != nil { ... }
//
// Any structural problem (top level not an array, an element that is not an
// object, malformed JSON, data after the closing bracket) stops iteration and
// is reported by Err. Records already returned must then be considered void.
type RecordReader struct {
	dec     *json.Decoder
	book    *Book
	index   int
	started bool
	done    bool
	err     error
}

// NewRecordReader returns a RecordReader reading from r.
func NewRecordReader(r io.Reader) *RecordReader {
	return &RecordReader{
		dec:   json.NewDecoder(r),
		index: -1,
	}
}

// Next advances to the next record. It returns false at the end of the
// array or on the first error.
func (rr *RecordReader) Next() bool {
	if rr.done {
		return false
	}

	if !rr.started {
		rr.started = true
		if err := rr.expectDelim('['); err != nil {
			return rr.fail(err)
		}
	}

	if !rr.dec.More() {
		if err := rr.expectDelim(']'); err != nil {
			return rr.fail(err)
		}
		if _, err := rr.dec.Token(); err != io.EOF {
			return rr.fail(errors.New("unexpected data after the record array"))
		}
		rr.done = true
		return false
	}

	var raw json.RawMessage
	if err := rr.dec.Decode(&raw); err != nil {
		return rr.fail(err)
	}
	rr.index++

	if bytes.Equal(raw, []byte("null")) {
		rr.book = nil
		return true
	}

	var book Book
	if err := json.Unmarshal(raw, &book); err != nil {
		return rr.fail(fmt.Errorf("record %d: %w", rr.index, err))
	}
	rr.book = &book
	return true
}

// Book returns the record read by the last call to Next. A JSON null
// element yields a nil Book.
func (rr *RecordReader) Book() *Book {
	return rr.book
}

// Index returns the zero-based position of the current record.
func (rr *RecordReader) Index() int {
	return rr.index
}

// Err returns the first error encountered, if any.
func (rr *RecordReader) Err() error {
	return rr.err
}

func (rr *RecordReader) expectDelim(want json.Delim) error {
	tok, err := rr.dec.Token()
	if err == io.EOF {
		return fmt.Errorf("expected %q, found end of input", want)
	}
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, found %v", want, tok)
	}
	return nil
}

func (rr *RecordReader) fail(err error) bool {
	rr.err = err
	rr.book = nil
	rr.done = true
	return false
}
