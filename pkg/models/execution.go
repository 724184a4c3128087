package models

import "time"

// ExecutionTimer captures wall-clock timing for one executed unit.
type ExecutionTimer struct {
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// NewExecutionTimer returns a timer started now.
func NewExecutionTimer() *ExecutionTimer {
	return &ExecutionTimer{StartedAt: time.Now().UTC()}
}

// Stop records the finish timestamp and the elapsed duration.
func (t *ExecutionTimer) Stop() {
	t.FinishedAt = time.Now().UTC()
	t.Duration = t.FinishedAt.Sub(t.StartedAt)
}

// ExecutionDetails records the outcome of one executed component: the state
// it finished in, the outputs it produced, any error, and its timing.
type ExecutionDetails struct {
	State   RunState        `json:"state"`
	Outputs map[string]any  `json:"outputs,omitempty"`
	Error   string          `json:"error,omitempty"`
	Timer   *ExecutionTimer `json:"timer,omitempty"`
}

// Finish stops the timer and stamps the final state, outputs and error.
func (d *ExecutionDetails) Finish(state RunState, outputs map[string]any, err error) {
	if d.Timer != nil {
		d.Timer.Stop()
	}

	d.State = state
	d.Outputs = outputs

	if err != nil {
		d.Error = err.Error()
	}
}
