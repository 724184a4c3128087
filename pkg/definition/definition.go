// Package definition builds executable workflows from declarative JSON
// documents. Documents are checked against a JSON Schema, the decoded
// structs are validated, and each component is wired to its executable body
// through the registry.
package definition

import (
	"github.com/flowkit/flowkit/pkg/models"
)

// Definition is a declarative workflow document.
type Definition struct {
	Name        string                 `json:"name"        validate:"required,min=3"`
	Description string                 `json:"description"`
	Components  []*ComponentDefinition `json:"components"  validate:"required,min=1,dive"`
}

// ComponentDefinition describes one component of any kind. Which fields are
// meaningful depends on Kind; Validate enforces the per-kind requirements
// the struct tags cannot express.
type ComponentDefinition struct {
	Kind        models.ComponentKind `json:"kind"        validate:"required,oneof=task task_group logic trigger subflow"`
	Name        string               `json:"name"        validate:"required,min=1"`
	Description string               `json:"description"`

	// Task and trigger bodies are resolved by type through the registry.
	Type   string         `json:"type,omitempty"`
	Config map[string]any `json:"config,omitempty"`
	Inputs map[string]any `json:"inputs,omitempty"`

	// Task group fields.
	Mode  models.ExecutionMode   `json:"mode,omitempty"  validate:"omitempty,oneof=sequential parallel"`
	Tasks []*ComponentDefinition `json:"tasks,omitempty" validate:"omitempty,dive"`

	// Logic branch.
	Switch *SwitchDefinition `json:"switch,omitempty"`

	// Components a trigger emits when it fires.
	Components []*ComponentDefinition `json:"components,omitempty" validate:"omitempty,dive"`

	// Nested workflow for subflows.
	Workflow *Definition `json:"workflow,omitempty"`
}

// SwitchDefinition is the declarative logic form: compare a workflow output
// against the case keys and splice in the matching components, or the
// default ones when no case matches.
type SwitchDefinition struct {
	Output  string                            `json:"output"            validate:"required"`
	Cases   map[string][]*ComponentDefinition `json:"cases"             validate:"required,min=1"`
	Default []*ComponentDefinition            `json:"default,omitempty"`
}
