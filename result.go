package bookstat

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	humanize "github.com/dustin/go-humanize"
)

// StatisticsItem is one ranked row of the output.
type StatisticsItem struct {
	Value string `json:"value" yaml:"value" xml:"value"`
	Count uint64 `json:"count" yaml:"count" xml:"count"`
}

// RunResult describes one call to Driver.ProcessDirectory.
type RunResult struct {
	Attribute  Attribute
	FileCount  int    // files that finished, whether parsed or failed
	BookCount  uint64 // records aggregated
	ErrorCount uint64 // failed files plus failed records
	Statistics []StatisticsItem

	ParseTime time.Duration // reading and aggregating every file
	RankTime  time.Duration // frequency table to ranked statistics
	WriteTime time.Duration // writing the artifact

	OutputFile string
	// TimedOut is set when the wait ceiling expired before every file was
	// processed. Statistics and the counters then only cover the files
	// merged before the run was tallied. A file still running after the
	// shutdown grace period is left out of both.
	TimedOut bool
}

// TotalTime returns the sum of the stage durations.
func (r *RunResult) TotalTime() time.Duration {
	return r.ParseTime + r.RankTime + r.WriteTime
}

// HasErrors reports whether any file or record failed.
func (r *RunResult) HasErrors() bool {
	return r.ErrorCount > 0
}

// PrintSummary writes a human-readable report of the run to w, including at
// most top statistics rows (all of them if top <= 0).
func (r *RunResult) PrintSummary(w io.Writer, top int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Attribute:\t%s\n", r.Attribute)
	fmt.Fprintf(tw, "Files processed:\t%s\n", humanize.Comma(int64(r.FileCount)))
	fmt.Fprintf(tw, "Books aggregated:\t%s\n", humanize.Comma(int64(r.BookCount)))
	fmt.Fprintf(tw, "Errors:\t%s\n", humanize.Comma(int64(r.ErrorCount)))
	fmt.Fprintf(tw, "Distinct values:\t%s\n", humanize.Comma(int64(len(r.Statistics))))
	fmt.Fprintf(tw, "Parse time:\t%s\n", r.ParseTime)
	fmt.Fprintf(tw, "Rank time:\t%s\n", r.RankTime)
	fmt.Fprintf(tw, "Write time:\t%s\n", r.WriteTime)
	fmt.Fprintf(tw, "Total time:\t%s\n", r.TotalTime())
	fmt.Fprintf(tw, "Output:\t%s\n", r.OutputFile)
	if r.TimedOut {
		fmt.Fprintf(tw, "Warning:\tworkers timed out, statistics are partial\n")
	}

	shown := r.Statistics
	if top > 0 && len(shown) > top {
		shown = shown[:top]
	}
	if len(shown) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "#\tValue\tCount\n")
		for i, item := range shown {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, item.Value, humanize.Comma(int64(item.Count)))
		}
	}
	return tw.Flush()
}
