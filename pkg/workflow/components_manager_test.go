package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowkit/flowkit/pkg/models"
)

func namedTask(name string) *models.Task {
	return models.NewTask(name, "", nil, nil)
}

func TestComponentsManager_RemoveFirst(t *testing.T) {
	manager := NewComponentsManager([]models.Component{namedTask("a"), namedTask("b")})

	first, ok := manager.RemoveFirst()
	require.True(t, ok)
	assert.Equal(t, "a", first.ComponentName())

	second, ok := manager.RemoveFirst()
	require.True(t, ok)
	assert.Equal(t, "b", second.ComponentName())

	_, ok = manager.RemoveFirst()
	assert.False(t, ok)
}

func TestComponentsManager_InsertRunsBeforeQueued(t *testing.T) {
	manager := NewComponentsManager([]models.Component{namedTask("z")})

	manager.Insert(namedTask("x"), namedTask("y"))

	var order []string

	for {
		component, ok := manager.RemoveFirst()
		if !ok {
			break
		}

		order = append(order, component.ComponentName())
	}

	assert.Equal(t, []string{"x", "y", "z"}, order)
}

func TestComponentsManager_InsertEmptyIsNoop(t *testing.T) {
	manager := NewComponentsManager([]models.Component{namedTask("a")})

	manager.Insert()

	assert.Equal(t, 1, manager.Len())
}

func TestComponentsManager_Complete(t *testing.T) {
	manager := NewComponentsManager(nil)
	assert.True(t, manager.IsEmpty())

	task := namedTask("done")
	manager.Complete(task)

	completed := manager.Completed()
	require.Len(t, completed, 1)
	assert.Equal(t, "done", completed[0].ComponentName())
}

func TestComponentsManager_SeedCopyIsIndependent(t *testing.T) {
	seed := []models.Component{namedTask("a"), namedTask("b")}
	manager := NewComponentsManager(seed)

	seed[0] = namedTask("mutated")

	first, ok := manager.RemoveFirst()
	require.True(t, ok)
	assert.Equal(t, "a", first.ComponentName())
}
