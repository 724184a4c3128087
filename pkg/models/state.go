// Package models defines the core domain models for composable workflow execution.
package models

// RunState represents the lifecycle state of a workflow run.
type RunState string

const (
	RunStateNotStarted RunState = "not_started" // Built, Start not yet called
	RunStateInProgress RunState = "in_progress" // Loop is draining the queue
	RunStatePaused     RunState = "paused"      // Dispatch suspended until Resume
	RunStateCanceled   RunState = "canceled"    // Terminal, clean early exit
	RunStateCompleted  RunState = "completed"   // Terminal, queue drained
	RunStateFailed     RunState = "failed"      // Terminal, component error recorded
)

// IsTerminal reports whether the run can make no further progress.
func (s RunState) IsTerminal() bool {
	return s == RunStateCanceled || s == RunStateCompleted || s == RunStateFailed
}

func (s RunState) String() string {
	return string(s)
}
