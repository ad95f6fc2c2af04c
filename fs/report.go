package fs

import (
	"os"
	"path/filepath"
)

// ReportFile writes a report to a temporary file next to its destination
// and renames it into place on Commit, so readers never see a partial
// report.
type ReportFile struct {
	path string
	tmp  *os.File
}

// CreateReportFile opens a temporary file in the directory of path.
func CreateReportFile(path string) (*ReportFile, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return nil, err
	}
	return &ReportFile{path: path, tmp: tmp}, nil
}

// Write appends p to the temporary file.
func (f *ReportFile) Write(p []byte) (int, error) {
	return f.tmp.Write(p)
}

// Commit flushes the temporary file and moves it to the destination.
func (f *ReportFile) Commit() error {
	if err := f.tmp.Sync(); err != nil {
		_ = f.Abort()
		return err
	}
	if err := f.tmp.Close(); err != nil {
		_ = os.Remove(f.tmp.Name())
		return err
	}
	return os.Rename(f.tmp.Name(), f.path)
}

// Abort removes the temporary file. Calling Abort after Commit is a no-op.
func (f *ReportFile) Abort() error {
	_ = f.tmp.Close()
	if err := os.Remove(f.tmp.Name()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
