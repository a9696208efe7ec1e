package bookstat

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bcongdon/bookstat/internal/pkg/bookfs"
	log "github.com/sirupsen/logrus"
)

// job holds the state shared by every worker of one run. It is created by
// ProcessDirectory and discarded with it.
type job struct {
	attribute  Attribute
	strategy   Strategy
	fileSystem bookfs.FileSystem
	aggregator *Aggregator

	// commitMu is held shared while a file's results are merged and
	// exclusively by freeze, so a tally never sees half a file.
	commitMu sync.RWMutex
	frozen   bool

	fileCount  atomic.Int64
	bookCount  atomic.Uint64
	errorCount atomic.Uint64
}

// tally is the state of a job at the moment it was frozen.
type tally struct {
	files   int
	books   uint64
	errors  uint64
	entries map[string]Entry
}

func newJob(attribute Attribute, strategy Strategy, fs bookfs.FileSystem, agg *Aggregator) *job {
	return &job{
		attribute:  attribute,
		strategy:   strategy,
		fileSystem: fs,
		aggregator: agg,
	}
}

// processFile aggregates every record of one file. Records are staged
// locally and only merged into the shared table once the whole file has
// parsed. A returned error means the file contributed nothing; record
// errors are counted here and do not stop the file.
func (j *job) processFile(ctx context.Context, file bookfs.FileInfo) error {
	reader, err := j.fileSystem.OpenReader(file.Name)
	if err != nil {
		return &FileParseError{File: file.Name, Err: err}
	}
	defer reader.Close()

	emitter := newFileEmitter()
	var books, recordErrors uint64

	records := NewRecordReader(reader)
	for records.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := j.mapRecord(records.Book(), emitter); err != nil {
			recordErrors++
			log.WithField("file", file.Name).Warn(&RecordAggregationError{
				File:  file.Name,
				Index: records.Index(),
				Err:   err,
			})
			continue
		}
		books++
	}
	if err := records.Err(); err != nil {
		return &FileParseError{File: file.Name, Err: err}
	}

	j.commitMu.RLock()
	defer j.commitMu.RUnlock()
	if j.frozen {
		log.Debugf("Dropped late results of %s", file.Name)
		return nil
	}
	emitter.commit(j.aggregator)
	j.fileCount.Add(1)
	j.bookCount.Add(books)
	j.errorCount.Add(recordErrors)
	log.Debugf("Aggregated %d records (%d distinct values) from %s", books, emitter.size(), file.Name)
	return nil
}

// mapRecord runs the strategy on one record, turning a panic into an error.
func (j *job) mapRecord(book *Book, emitter Emitter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("strategy %s panicked: %v", j.attribute, r)
		}
	}()
	return j.strategy.Map(book, emitter)
}

// fileFailed counts a file that contributed nothing because of an error.
func (j *job) fileFailed() {
	j.commitMu.RLock()
	defer j.commitMu.RUnlock()
	if j.frozen {
		return
	}
	j.fileCount.Add(1)
	j.errorCount.Add(1)
}

// freeze stops further merges and returns the counters and table as of
// that moment. Workers still running after a timeout finish into nothing.
func (j *job) freeze() tally {
	j.commitMu.Lock()
	defer j.commitMu.Unlock()
	j.frozen = true
	return tally{
		files:   int(j.fileCount.Load()),
		books:   j.bookCount.Load(),
		errors:  j.errorCount.Load(),
		entries: j.aggregator.Snapshot(),
	}
}
