package bookfs

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
)

// LocalFileSystem wraps the local disk.
type LocalFileSystem struct{}

func (l *LocalFileSystem) ListFiles(dir, pattern string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}

		// Follows symlinks, so a link to a directory is still skipped.
		path := filepath.Join(dir, entry.Name())
		fInfo, err := os.Stat(path)
		if err != nil {
			log.Error(err)
			continue
		}
		if fInfo.IsDir() {
			continue
		}
		files = append(files, FileInfo{
			Name: path,
			Size: fInfo.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (l *LocalFileSystem) OpenReader(filePath string) (io.ReadCloser, error) {
	return os.Open(filePath)
}

// OpenWriter writes to a temporary file next to filePath and renames it
// into place on Close.
func (l *LocalFileSystem) OpenWriter(filePath string) (io.WriteCloser, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &atomicFile{File: tmp, path: filePath}, nil
}

func (l *LocalFileSystem) Stat(filePath string) (FileInfo, error) {
	fInfo, err := os.Stat(filePath)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{
		Name:  filePath,
		Size:  fInfo.Size(),
		IsDir: fInfo.IsDir(),
	}, nil
}

func (l *LocalFileSystem) Init() error {
	return nil
}

func (l *LocalFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

type atomicFile struct {
	*os.File
	path string
}

func (a *atomicFile) Close() error {
	if err := a.File.Sync(); err != nil {
		a.Discard()
		return err
	}
	if err := a.File.Close(); err != nil {
		os.Remove(a.File.Name())
		return err
	}
	if err := os.Chmod(a.File.Name(), 0644); err != nil {
		os.Remove(a.File.Name())
		return err
	}
	if err := os.Rename(a.File.Name(), a.path); err != nil {
		os.Remove(a.File.Name())
		return err
	}
	return nil
}

func (a *atomicFile) Discard() error {
	a.File.Close()
	return os.Remove(a.File.Name())
}
