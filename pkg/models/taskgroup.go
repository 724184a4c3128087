package models

// ExecutionMode selects how a TaskGroup schedules its tasks.
type ExecutionMode string

const (
	ModeSequential ExecutionMode = "sequential" // Strict list order
	ModeParallel   ExecutionMode = "parallel"   // Concurrent, no ordering guarantee
)

// TaskGroup runs an ordered collection of tasks as a single scheduling step,
// either sequentially or concurrently. In parallel mode every task resolves
// its inputs against the pre-group outputs snapshot, so tasks within the
// group never see each other's results.
type TaskGroup struct {
	Name        string        `json:"name"        validate:"required,min=1"`
	Description string        `json:"description"`
	Mode        ExecutionMode `json:"mode"        validate:"required,oneof=sequential parallel"`
	Tasks       []*Task       `json:"tasks"`

	Details *ExecutionDetails `json:"details,omitempty"`
}

// NewTaskGroup builds a group over the given tasks.
func NewTaskGroup(name, description string, mode ExecutionMode, tasks []*Task) *TaskGroup {
	return &TaskGroup{
		Name:        name,
		Description: description,
		Mode:        mode,
		Tasks:       tasks,
	}
}

func (g *TaskGroup) ComponentName() string        { return g.Name }
func (g *TaskGroup) ComponentDescription() string { return g.Description }
func (g *TaskGroup) Kind() ComponentKind          { return KindTaskGroup }
