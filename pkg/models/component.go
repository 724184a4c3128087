package models

// ComponentKind discriminates the five schedulable component variants.
type ComponentKind string

const (
	KindTask      ComponentKind = "task"
	KindTaskGroup ComponentKind = "task_group"
	KindLogic     ComponentKind = "logic"
	KindTrigger   ComponentKind = "trigger"
	KindSubflow   ComponentKind = "subflow"
)

// Component is one schedulable unit in a workflow's queue. The variant set is
// closed: Task, TaskGroup, Logic, Trigger and Subflow are the only kinds the
// execution loop dispatches.
type Component interface {
	ComponentName() string
	ComponentDescription() string
	Kind() ComponentKind
}
