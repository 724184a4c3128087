package models

import "context"

// LogicEvaluator computes which components run next. It is invoked exactly
// once per dispatch and closes over whatever state its constructor captured.
type LogicEvaluator func(ctx context.Context) ([]Component, error)

// Logic is a conditional branch: its evaluator returns components that are
// spliced in at the front of the pending queue, ahead of everything already
// queued behind it.
type Logic struct {
	Name        string `json:"name"        validate:"required,min=1"`
	Description string `json:"description"`

	Evaluator LogicEvaluator `json:"-"`
}

// NewLogic builds a logic component around an evaluator.
func NewLogic(name, description string, evaluator LogicEvaluator) *Logic {
	return &Logic{
		Name:        name,
		Description: description,
		Evaluator:   evaluator,
	}
}

func (l *Logic) ComponentName() string        { return l.Name }
func (l *Logic) ComponentDescription() string { return l.Description }
func (l *Logic) Kind() ComponentKind          { return KindLogic }
