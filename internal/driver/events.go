package driver

import "time"

// Stage describes a per-file check phase.
type Stage string

const (
	// StageScan is the literal extraction stage.
	StageScan Stage = "scan"
	// StageAnalyze is the escape-policy stage.
	StageAnalyze Stage = "analyze"
	// StageCache marks a file answered from the verdict cache.
	StageCache Stage = "cache"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being checked.
	StatusWorking Status = "working"
	// StatusDone indicates the file is done.
	StatusDone Status = "done"
	// StatusError indicates the file failed to load or check.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall run when File
// is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe
// for concurrent calls: worker goroutines emit directly.
type ProgressSink interface {
	OnEvent(Event)
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
