package driver

import "time"

// FileStatus reports how a file ended up.
type FileStatus int

const (
	// FileStarted is sent before a file is read.
	FileStarted FileStatus = iota
	FileUnchanged
	FileChanged
	FileCached
	FileFailed
)

func (s FileStatus) String() string {
	switch s {
	case FileStarted:
		return "started"
	case FileUnchanged:
		return "unchanged"
	case FileChanged:
		return "changed"
	case FileCached:
		return "cached"
	case FileFailed:
		return "failed"
	}
	return "unknown"
}

// ProgressEvent describes one file boundary in a batch run.
type ProgressEvent struct {
	Path    string
	Index   int
	Total   int
	Status  FileStatus
	Elapsed time.Duration
}

// ProgressObserver receives events from FormatPaths. It is called from the
// worker goroutines and must be safe for concurrent use.
type ProgressObserver func(ProgressEvent)
