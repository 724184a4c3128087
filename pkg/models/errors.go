package models

import (
	"errors"
	"fmt"
)

// ErrMissingExecutionLogic is returned when a task reaches execution without
// an executor body attached.
var ErrMissingExecutionLogic = errors.New("task has no execution logic attached")

// UnexpectedRunStateError reports a run state observed at a loop check point
// outside the set the state machine allows there. It is an internal
// invariant violation and aborts the run as failed.
type UnexpectedRunStateError struct {
	State RunState
}

func (e *UnexpectedRunStateError) Error() string {
	return fmt.Sprintf("unexpected run state %q during execution", e.State)
}

// ComponentError wraps an error thrown by a task, task group member, logic
// evaluator or subflow with the name of the component that produced it.
type ComponentError struct {
	Component string
	Kind      ComponentKind
	Err       error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("%s %q failed: %v", e.Kind, e.Component, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}
