package bookstat

import (
	"runtime"
	"sort"

	"github.com/bcongdon/bookstat/internal/pkg/bookfs"
	humanize "github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

// inputPattern selects the files of a directory that hold book records.
const inputPattern = "*.json"

// discoverInputs lists the record files directly inside dir, largest first
// so the longest files are not left to the end of the run.
func discoverInputs(fs bookfs.FileSystem, dir string) ([]bookfs.FileInfo, error) {
	files, err := fs.ListFiles(dir, inputPattern)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Size != files[j].Size {
			return files[i].Size > files[j].Size
		}
		return files[i].Name < files[j].Name
	})

	if len(files) > 0 {
		totalSize := int64(0)
		for _, file := range files {
			totalSize += file.Size
		}
		log.Debugf("Found %d input files in %s (%s total, %s average)", len(files), dir,
			humanize.Bytes(uint64(totalSize)), humanize.Bytes(uint64(totalSize/int64(len(files)))))
	}
	return files, nil
}

// clampWorkers bounds a requested worker count to [1, 2 x available CPUs].
func clampWorkers(requested int) int {
	return max(1, min(requested, 2*runtime.NumCPU()))
}
