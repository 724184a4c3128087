package models

import "context"

// TriggerWaiter blocks until an external condition fires, then returns the
// components to splice into the queue. It may suspend arbitrarily long; the
// execution loop does not advance past the trigger until it returns.
//
// A waiter may return a fresh Trigger as part of its own result to keep
// polling. That loop is unbounded unless the waiter's closure tracks its own
// stop condition and eventually returns an empty slice; the engine does not
// bound it for you.
type TriggerWaiter func(ctx context.Context) ([]Component, error)

// Trigger waits for an external event and injects new components when the
// condition fires. Waiter failure is logged and swallowed: the run continues
// without the components the trigger would have produced.
type Trigger struct {
	Name        string `json:"name"        validate:"required,min=1"`
	Description string `json:"description"`

	Waiter TriggerWaiter `json:"-"`
}

// NewTrigger builds a trigger component around a waiter.
func NewTrigger(name, description string, waiter TriggerWaiter) *Trigger {
	return &Trigger{
		Name:        name,
		Description: description,
		Waiter:      waiter,
	}
}

func (t *Trigger) ComponentName() string        { return t.Name }
func (t *Trigger) ComponentDescription() string { return t.Description }
func (t *Trigger) Kind() ComponentKind          { return KindTrigger }
