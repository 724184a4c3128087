package log_task

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogTaskEchoesMessage(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, nil))
	task := NewLogTask(map[string]any{"message": "hello", "level": "warn"}, logger)

	outputs, err := task.Executor()(context.Background(), map[string]any{"who": "world"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"message": "hello"}, outputs)
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "WARN")
}

func TestLogTaskLevelParsing(t *testing.T) {
	logger := slog.Default()

	assert.Equal(t, slog.LevelDebug, NewLogTask(map[string]any{"level": "debug"}, logger).Level)
	assert.Equal(t, slog.LevelWarn, NewLogTask(map[string]any{"level": "warning"}, logger).Level)
	assert.Equal(t, slog.LevelError, NewLogTask(map[string]any{"level": "error"}, logger).Level)
	assert.Equal(t, slog.LevelInfo, NewLogTask(map[string]any{}, logger).Level)
	assert.Equal(t, slog.LevelInfo, NewLogTask(map[string]any{"level": "bogus"}, logger).Level)
}

func TestLogTaskFactory(t *testing.T) {
	factory := NewLogTaskFactory(slog.Default())

	assert.Equal(t, "log", factory.ID())
	assert.NotEmpty(t, factory.Schema())

	executor, err := factory.Create(map[string]any{"message": "hi"})
	require.NoError(t, err)

	outputs, err := executor(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", outputs["message"])
}
