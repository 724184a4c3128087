package models

import "context"

// TaskExecutor is the execution contract plugged in by the host application.
// It receives the task's resolved inputs and produces named outputs, or fails.
// The context carries run-level cancellation; well-behaved executors observe
// it, but the engine never interrupts one forcefully.
type TaskExecutor func(ctx context.Context, inputs map[string]any) (map[string]any, error)

// Task is a named unit of async work. Inputs may contain static literals or
// references of the form "{Name.Key}" resolved against the workflow outputs
// at dispatch time.
type Task struct {
	Name        string         `json:"name"        validate:"required,min=1"`
	Description string         `json:"description"`
	Inputs      map[string]any `json:"inputs,omitempty"`

	Executor TaskExecutor `json:"-"`

	// Details is populated by the execution loop after the task has run.
	Details *ExecutionDetails `json:"details,omitempty"`
}

// NewTask builds a task with static inputs and an executor body.
func NewTask(name, description string, inputs map[string]any, executor TaskExecutor) *Task {
	return &Task{
		Name:        name,
		Description: description,
		Inputs:      inputs,
		Executor:    executor,
	}
}

func (t *Task) ComponentName() string        { return t.Name }
func (t *Task) ComponentDescription() string { return t.Description }
func (t *Task) Kind() ComponentKind          { return KindTask }
