package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStateIsTerminal(t *testing.T) {
	assert.True(t, RunStateCanceled.IsTerminal())
	assert.True(t, RunStateCompleted.IsTerminal())
	assert.True(t, RunStateFailed.IsTerminal())

	assert.False(t, RunStateNotStarted.IsTerminal())
	assert.False(t, RunStateInProgress.IsTerminal())
	assert.False(t, RunStatePaused.IsTerminal())
}

func TestExecutionTimer(t *testing.T) {
	timer := NewExecutionTimer()
	require.False(t, timer.StartedAt.IsZero())
	assert.True(t, timer.FinishedAt.IsZero())

	time.Sleep(5 * time.Millisecond)
	timer.Stop()

	assert.False(t, timer.FinishedAt.IsZero())
	assert.GreaterOrEqual(t, timer.Duration, 5*time.Millisecond)
}

func TestExecutionDetailsFinish(t *testing.T) {
	details := &ExecutionDetails{Timer: NewExecutionTimer()}
	details.Finish(RunStateCompleted, map[string]any{"a.v": 1}, nil)

	assert.Equal(t, RunStateCompleted, details.State)
	assert.Equal(t, map[string]any{"a.v": 1}, details.Outputs)
	assert.Empty(t, details.Error)
	assert.False(t, details.Timer.FinishedAt.IsZero())
}

func TestExecutionDetailsFinishWithError(t *testing.T) {
	details := &ExecutionDetails{}
	details.Finish(RunStateFailed, nil, errors.New("boom"))

	assert.Equal(t, RunStateFailed, details.State)
	assert.Equal(t, "boom", details.Error)
}

func TestComponentErrorUnwraps(t *testing.T) {
	err := &ComponentError{Component: "fetch", Kind: KindTask, Err: ErrMissingExecutionLogic}

	assert.ErrorIs(t, err, ErrMissingExecutionLogic)
	assert.Contains(t, err.Error(), "fetch")
	assert.Contains(t, err.Error(), string(KindTask))
}

func TestUnexpectedRunStateError(t *testing.T) {
	err := &UnexpectedRunStateError{State: RunStateNotStarted}
	assert.Contains(t, err.Error(), "not_started")
}

func TestComponentKinds(t *testing.T) {
	assert.Equal(t, KindTask, NewTask("t", "", nil, nil).Kind())
	assert.Equal(t, KindTaskGroup, NewTaskGroup("g", "", ModeParallel, nil).Kind())
	assert.Equal(t, KindLogic, NewLogic("l", "", nil).Kind())
	assert.Equal(t, KindTrigger, NewTrigger("tr", "", nil).Kind())
	assert.Equal(t, KindSubflow, NewSubflow("s", "", nil).Kind())
}

func TestComponentMetadata(t *testing.T) {
	task := NewTask("fetch", "fetches a page", map[string]any{"url": "x"}, nil)

	assert.Equal(t, "fetch", task.ComponentName())
	assert.Equal(t, "fetches a page", task.ComponentDescription())
	assert.Equal(t, map[string]any{"url": "x"}, task.Inputs)
}
