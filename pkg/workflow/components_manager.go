// Package workflow implements the run-level orchestrator: a single-threaded
// cooperative execution loop over an ordered queue of components, with
// pause/resume/cancel control, output threading between components and
// dynamic queue expansion from logic and trigger components.
package workflow

import "github.com/flowkit/flowkit/pkg/models"

// ComponentsManager owns the mutable pending queue and the completed log for
// one workflow run. It carries no locking: it is only ever touched from the
// run loop's single thread of control.
type ComponentsManager struct {
	pending   []models.Component
	completed []models.Component
}

// NewComponentsManager builds a manager seeded with the initial components.
func NewComponentsManager(components []models.Component) *ComponentsManager {
	pending := make([]models.Component, len(components))
	copy(pending, components)

	return &ComponentsManager{
		pending:   pending,
		completed: make([]models.Component, 0, len(components)),
	}
}

// RemoveFirst pops and returns the head of the pending queue.
func (m *ComponentsManager) RemoveFirst() (models.Component, bool) {
	if len(m.pending) == 0 {
		return nil, false
	}

	head := m.pending[0]
	m.pending = m.pending[1:]

	return head, true
}

// Insert prepends the given components, preserving their relative order, so
// they run before anything already queued. Dynamically discovered components
// therefore expand depth-first.
func (m *ComponentsManager) Insert(components ...models.Component) {
	if len(components) == 0 {
		return
	}

	queue := make([]models.Component, 0, len(components)+len(m.pending))
	queue = append(queue, components...)
	queue = append(queue, m.pending...)
	m.pending = queue
}

// Complete appends the component to the completed log. The log only feeds
// reporting; it has no execution semantics.
func (m *ComponentsManager) Complete(component models.Component) {
	m.completed = append(m.completed, component)
}

// IsEmpty reports whether the pending queue has drained.
func (m *ComponentsManager) IsEmpty() bool {
	return len(m.pending) == 0
}

// Len returns the number of pending components.
func (m *ComponentsManager) Len() int {
	return len(m.pending)
}

// Completed returns the completed log in completion order.
func (m *ComponentsManager) Completed() []models.Component {
	return m.completed
}
