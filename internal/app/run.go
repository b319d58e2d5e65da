package app

import (
	"time"

	"github.com/google/uuid"
)

// Run tracks one CLI invocation. Its ID tags every log line written during
// the invocation.
type Run struct {
	ID        string
	Command   string
	StartedAt time.Time
	Status    string // "success" or "error"
}

// NewRun creates a Run for command, started now.
func NewRun(command string) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Command:   command,
		StartedAt: time.Now(),
		Status:    "success",
	}
}

// Fail marks the run as failed.
func (r *Run) Fail() {
	r.Status = "error"
}

// Elapsed returns the time since the run started.
func (r *Run) Elapsed() time.Duration {
	return time.Since(r.StartedAt)
}
