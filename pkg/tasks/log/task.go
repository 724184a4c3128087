// Package log_task provides a built-in task executor that logs its resolved
// inputs, mainly useful while developing a workflow definition.
package log_task

import (
	"context"
	"log/slog"

	"github.com/flowkit/flowkit/pkg/models"
)

type LogTask struct {
	Message string
	Level   slog.Level
	logger  *slog.Logger
}

func NewLogTask(config map[string]any, logger *slog.Logger) *LogTask {
	message, _ := config["message"].(string)
	levelName, _ := config["level"].(string)

	level := slog.LevelInfo

	switch levelName {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return &LogTask{
		Message: message,
		Level:   level,
		logger:  logger.With("task_type", "log"),
	}
}

// Executor returns the task body. It logs the configured message together
// with the resolved inputs and echoes the message as its only output.
func (t *LogTask) Executor() models.TaskExecutor {
	return func(ctx context.Context, inputs map[string]any) (map[string]any, error) {
		t.logger.Log(ctx, t.Level, t.Message, "inputs", inputs)

		return map[string]any{"message": t.Message}, nil
	}
}
