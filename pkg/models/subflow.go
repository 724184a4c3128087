package models

import "context"

// Flow is the surface a nested workflow exposes to its parent. It is
// satisfied by *workflow.Workflow and by test doubles.
type Flow interface {
	Start(ctx context.Context) error
	State() RunState
	Outputs() map[string]any
}

// Subflow embeds a nested workflow and runs it to completion as a single
// component of its parent. The nested flow's final outputs are merged into
// the parent's outputs without additional prefixing: the nested workflow's
// own component-name prefixes already disambiguate the keys.
type Subflow struct {
	Name        string `json:"name"        validate:"required,min=1"`
	Description string `json:"description"`

	Flow Flow `json:"-"`
}

// NewSubflow wraps a nested flow as a schedulable component.
func NewSubflow(name, description string, flow Flow) *Subflow {
	return &Subflow{
		Name:        name,
		Description: description,
		Flow:        flow,
	}
}

func (s *Subflow) ComponentName() string        { return s.Name }
func (s *Subflow) ComponentDescription() string { return s.Description }
func (s *Subflow) Kind() ComponentKind          { return KindSubflow }
