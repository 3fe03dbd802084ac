package domain

import (
	"fmt"
	"time"
)

// GenerationStatus tracks the lifecycle of a generation request.
type GenerationStatus string

const (
	// StatusPending means the request is queued but not started.
	StatusPending GenerationStatus = "pending"
	// StatusProcessing means the pipeline is running.
	StatusProcessing GenerationStatus = "processing"
	// StatusSuccess means the STL was written.
	StatusSuccess GenerationStatus = "success"
	// StatusFailure means the pipeline failed; Error holds the message.
	StatusFailure GenerationStatus = "failure"
)

// IsTerminal reports whether the status is final.
func (s GenerationStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

// Generation is one coin generation request and its progress.
type Generation struct {
	// ID is the unique generation identifier (a UUID string).
	ID string

	// ClientKey identifies the requesting client for rate limiting.
	ClientKey string

	// Status is the current lifecycle state.
	Status GenerationStatus

	// Step names the pipeline stage last reported.
	Step string

	// Progress is the completion percentage, 0-100.
	Progress int

	// Error holds the failure message when Status is StatusFailure.
	Error string

	// CreatedAt is when the generation was created.
	CreatedAt time.Time

	// UpdatedAt is when progress was last reported.
	UpdatedAt time.Time
}

// UpdateProgress records a progress report and derives the status.
// An error message forces StatusFailure; 100 percent without an error
// means StatusSuccess.
func (g *Generation) UpdateProgress(progress int, step, errMsg string) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("%w: progress %d outside [0, 100]", ErrValidation, progress)
	}
	g.Progress = progress
	g.Step = step
	switch {
	case errMsg != "":
		g.Error = errMsg
		g.Status = StatusFailure
	case progress == 100:
		g.Status = StatusSuccess
	default:
		g.Status = StatusProcessing
	}
	return nil
}

// ProgressEvent is one progress report pushed to an observer sink.
// Purely observational; no pipeline state depends on it.
type ProgressEvent struct {
	// Percent is the completion percentage, 0-100.
	Percent int

	// Step names the pipeline stage, e.g. "hmm_mesh_generation".
	Step string
}

// ProgressSink receives progress events. May be nil when the caller
// does not care about progress.
type ProgressSink func(ProgressEvent)

// Report pushes an event to the sink if one is attached.
func (s ProgressSink) Report(percent int, step string) {
	if s != nil {
		s(ProgressEvent{Percent: percent, Step: step})
	}
}
