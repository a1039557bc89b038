package driver

import "time"

// Stage is a step of one file's conversion as seen by progress sinks.
type Stage string

const (
	StageRead    Stage = "read"
	StageConvert Stage = "convert"
	StageVerify  Stage = "verify"
	StageWrite   Stage = "write"
)

// Status of a file at a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusSkipped marks a file without the @flow marker under skip-non-flow.
	StatusSkipped Status = "skipped"
	StatusCached  Status = "cached"
	StatusError   Status = "error"
)

func (s Stage) String() string  { return string(s) }
func (s Status) String() string { return string(s) }

// Event describes a stage boundary of a file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. OnEvent is called from worker
// goroutines and must be safe for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
