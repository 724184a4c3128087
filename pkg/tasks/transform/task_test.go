package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformPickRenameDefaults(t *testing.T) {
	task, err := NewTransformTask(map[string]any{
		"pick":     []any{"name", "age"},
		"rename":   map[string]any{"name": "full_name"},
		"defaults": map[string]any{"country": "unknown"},
	})
	require.NoError(t, err)

	outputs, err := task.Executor()(context.Background(), map[string]any{
		"name":  "ada",
		"age":   36,
		"email": "dropped",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"full_name": "ada",
		"age":       36,
		"country":   "unknown",
	}, outputs)
}

func TestTransformEmptyPickKeepsAll(t *testing.T) {
	task, err := NewTransformTask(map[string]any{})
	require.NoError(t, err)

	outputs, err := task.Executor()(context.Background(), map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"a": 1, "b": 2}, outputs)
}

func TestTransformDefaultReplacesNil(t *testing.T) {
	task, err := NewTransformTask(map[string]any{
		"defaults": map[string]any{"id": "generated"},
	})
	require.NoError(t, err)

	// A reference to a missing output resolves to nil; the default fills it.
	outputs, err := task.Executor()(context.Background(), map[string]any{"id": nil})
	require.NoError(t, err)

	assert.Equal(t, "generated", outputs["id"])
}

func TestTransformRejectsBadConfig(t *testing.T) {
	_, err := NewTransformTask(map[string]any{"pick": "not-a-list"})
	require.Error(t, err)

	_, err = NewTransformTask(map[string]any{"pick": []any{42}})
	require.Error(t, err)

	_, err = NewTransformTask(map[string]any{"rename": map[string]any{"a": 1}})
	require.Error(t, err)

	_, err = NewTransformTask(map[string]any{"defaults": "not-a-map"})
	require.Error(t, err)
}

func TestTransformFactory(t *testing.T) {
	factory := NewTransformTaskFactory()

	assert.Equal(t, "transform", factory.ID())
	assert.NotEmpty(t, factory.Schema())

	executor, err := factory.Create(nil)
	require.NoError(t, err)

	outputs, err := executor(context.Background(), map[string]any{"x": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 1}, outputs)
}
