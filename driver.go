package bookstat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/viper"

	"golang.org/x/sync/semaphore"

	log "github.com/sirupsen/logrus"
	pb "gopkg.in/cheggaaa/pb.v1"

	"github.com/bcongdon/bookstat/internal/pkg/bookfs"
)

// Driver computes attribute statistics over directories of book records.
type Driver struct {
	config   *config
	executor executor
}

// config configures a Driver's runs
type config struct {
	Workers            int
	WorkingLocation    string
	Format             string
	WaitCeiling        time.Duration
	ShutdownGrace      time.Duration
	Shards             uint
	NormalizeCacheSize int
	Progress           bool
	FileSystem         bookfs.FileSystem // nil means inferred from each location
}

func newConfig() *config {
	loadConfig() // Load viper config from settings file(s) and environment
	return &config{
		Workers:            viper.GetInt("workers"),
		WorkingLocation:    viper.GetString("working_location"),
		Format:             viper.GetString("output_format"),
		WaitCeiling:        viper.GetDuration("wait_ceiling"),
		ShutdownGrace:      viper.GetDuration("shutdown_grace"),
		Shards:             viper.GetUint("shards"),
		NormalizeCacheSize: viper.GetInt("normalize_cache_size"),
		Progress:           viper.GetBool("progress"),
	}
}

// Option allows configuration of a Driver
type Option func(*config)

// NewDriver creates a new Driver with optional configuration
func NewDriver(options ...Option) *Driver {
	d := &Driver{
		executor: localExecutor{},
	}

	c := newConfig()
	for _, f := range options {
		f(c)
	}

	if viper.GetBool("verbose") {
		log.SetLevel(log.DebugLevel)
	}

	if c.WaitCeiling <= 0 {
		log.Warn("Configured wait ceiling is not positive; using 30m")
		c.WaitCeiling = 30 * time.Minute
	}

	d.config = c
	log.Debugf("Loaded config: %#v", c)

	return d
}

// WithWorkers sets the worker count used when ProcessDirectory is given no
// thread hint
func WithWorkers(n int) Option {
	return func(c *config) {
		c.Workers = n
	}
}

// WithWorkingLocation sets the location and filesystem the statistics file
// is written to
func WithWorkingLocation(location string) Option {
	return func(c *config) {
		c.WorkingLocation = location
	}
}

// WithFormat sets the output format (xml, json or yaml)
func WithFormat(format string) Option {
	return func(c *config) {
		c.Format = format
	}
}

// WithWaitCeiling sets how long ProcessDirectory waits for workers before
// ranking whatever has been aggregated
func WithWaitCeiling(d time.Duration) Option {
	return func(c *config) {
		c.WaitCeiling = d
	}
}

// WithShutdownGrace sets how long cancelled workers get to stop after the
// wait ceiling expires
func WithShutdownGrace(d time.Duration) Option {
	return func(c *config) {
		c.ShutdownGrace = d
	}
}

// WithShards sets the number of aggregator shards
func WithShards(n uint) Option {
	return func(c *config) {
		c.Shards = n
	}
}

// WithNormalizeCacheSize sets the size of the value normalization cache.
// Zero disables the cache.
func WithNormalizeCacheSize(n int) Option {
	return func(c *config) {
		c.NormalizeCacheSize = n
	}
}

// WithProgress enables or disables the progress bar
func WithProgress(enabled bool) Option {
	return func(c *config) {
		c.Progress = enabled
	}
}

// WithFileSystem makes the Driver use fs for both input and output instead
// of inferring a filesystem from each location
func WithFileSystem(fs bookfs.FileSystem) Option {
	return func(c *config) {
		c.FileSystem = fs
	}
}

func (d *Driver) fileSystemFor(location string) bookfs.FileSystem {
	if d.config.FileSystem != nil {
		return d.config.FileSystem
	}
	return bookfs.InferFilesystem(location)
}

// ProcessDirectory aggregates attribute over every *.json file directly
// inside directory, using up to threads workers (clamped to between 1 and
// twice the number of CPUs; threads <= 0 uses the configured worker count).
// The ranked statistics are written to the working location as
// statistics_by_<attribute>.<format>.
//
// Malformed files and records are counted in the result rather than
// returned. The call itself fails with ErrInvalidAttribute before touching
// any file, with ErrNotADirectory if directory cannot be listed, and with
// ErrInterrupted if ctx is cancelled before all files are processed.
func (d *Driver) ProcessDirectory(ctx context.Context, directory, attribute string, threads int) (*RunResult, error) {
	attr, err := ParseAttribute(attribute)
	if err != nil {
		return nil, err
	}
	sw, err := WriterFor(d.config.Format)
	if err != nil {
		return nil, err
	}

	fs := d.fileSystemFor(directory)
	info, err := fs.Stat(directory)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%v)", ErrNotADirectory, directory, err)
	}
	if !info.IsDir {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, directory)
	}

	files, err := discoverInputs(fs, directory)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%v)", ErrNotADirectory, directory, err)
	}

	result := &RunResult{
		Attribute: attr,
	}
	outFs := d.fileSystemFor(d.config.WorkingLocation)
	result.OutputFile = outFs.Join(d.config.WorkingLocation, outputFilename(attr, sw))

	if len(files) == 0 {
		log.Warnf("No JSON files found in directory: %s", directory)
		result.Statistics = []StatisticsItem{}
		result.WriteTime, err = timePhase(WritePhase, func() error {
			return writeArtifact(outFs, result.OutputFile, sw, result.Statistics)
		})
		if err != nil {
			return nil, fmt.Errorf("writing statistics: %w", err)
		}
		return result, nil
	}

	if threads <= 0 {
		threads = d.config.Workers
	}
	workers := clampWorkers(threads)
	log.Debugf("Processing %d files by %s with %d workers", len(files), attr, workers)

	j := newJob(attr, newStrategy(attr, newNormalizer(d.config.NormalizeCacheSize)), fs, NewAggregator(d.config.Shards))

	result.ParseTime, err = timePhase(ParsePhase, func() error {
		result.TimedOut, err = d.runParsePhase(ctx, j, files, workers)
		return err
	})
	if err != nil {
		return nil, err
	}

	totals := j.freeze()
	result.FileCount = totals.files
	result.BookCount = totals.books
	result.ErrorCount = totals.errors

	result.RankTime, _ = timePhase(RankPhase, func() error {
		result.Statistics = Rank(totals.entries)
		return nil
	})

	result.WriteTime, err = timePhase(WritePhase, func() error {
		return writeArtifact(outFs, result.OutputFile, sw, result.Statistics)
	})
	if err != nil {
		return nil, fmt.Errorf("writing statistics: %w", err)
	}

	if result.ErrorCount > 0 {
		log.Warnf("Processed with %d errors", result.ErrorCount)
	}
	log.Infof("Aggregated %d books from %d files into %d values (%s)",
		result.BookCount, result.FileCount, len(result.Statistics), result.OutputFile)

	return result, nil
}

// runParsePhase runs every file through the executor on a pool of workers
// and waits for them. It reports timedOut if the wait ceiling expired first.
func (d *Driver) runParsePhase(ctx context.Context, j *job, files []bookfs.FileInfo, workers int) (timedOut bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInterrupted, err)
	}

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	bar := pb.New(len(files)).Prefix(ParsePhase.String())
	if d.config.Progress {
		bar.Output = os.Stderr
	} else {
		bar.NotPrint = true
	}
	bar.Start()
	defer bar.Finish()

	done := make(chan struct{})
	go func() {
		defer close(done)

		var wg sync.WaitGroup
		sem := semaphore.NewWeighted(int64(workers))
		for _, file := range files {
			if err := sem.Acquire(workerCtx, 1); err != nil {
				break
			}
			wg.Add(1)
			go func(f bookfs.FileInfo) {
				defer wg.Done()
				defer sem.Release(1)
				defer bar.Increment()
				d.runFile(workerCtx, j, f)
			}(file)
		}
		wg.Wait()
	}()

	ceiling := time.NewTimer(d.config.WaitCeiling)
	defer ceiling.Stop()

	select {
	case <-done:
		if err := ctx.Err(); err != nil {
			return false, fmt.Errorf("%w: %v", ErrInterrupted, err)
		}
		return false, nil
	case <-ctx.Done():
		log.Errorf("Interrupted while waiting for parsing tasks: %s", ctx.Err())
		return false, fmt.Errorf("%w: %v", ErrInterrupted, ctx.Err())
	case <-ceiling.C:
		log.Warnf("Timed out after %s waiting for parsing tasks; cancelling workers", d.config.WaitCeiling)
		cancel()
		select {
		case <-done:
		case <-time.After(d.config.ShutdownGrace):
			log.Warn("Workers did not stop within the shutdown grace period")
		}
		return true, nil
	}
}

// runFile processes one file, counting and logging a failure.
func (d *Driver) runFile(ctx context.Context, j *job, file bookfs.FileInfo) {
	err := d.executor.RunFile(ctx, j, file)
	if err == nil {
		return
	}
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		log.Debugf("Abandoned %s: %s", file.Name, err)
		return
	}
	j.fileFailed()
	log.WithField("file", file.Name).WithError(err).Error("Failed to process file")
}
