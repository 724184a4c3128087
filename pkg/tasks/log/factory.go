package log_task

import (
	"log/slog"

	"github.com/flowkit/flowkit/pkg/models"
)

func NewLogTaskFactory(logger *slog.Logger) *LogTaskFactory {
	return &LogTaskFactory{logger: logger}
}

type LogTaskFactory struct {
	logger *slog.Logger
}

func (*LogTaskFactory) ID() string {
	return "log"
}

func (*LogTaskFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{
				"type":        "string",
				"description": "Message to log alongside the resolved task inputs",
			},
			"level": map[string]any{
				"type":        "string",
				"description": "Log level for the message",
				"default":     "info",
				"enum":        []string{"debug", "info", "warn", "warning", "error"},
			},
		},
		"required": []string{"message"},
	}
}

func (f *LogTaskFactory) Create(config map[string]any) (models.TaskExecutor, error) {
	if config == nil {
		config = map[string]any{}
	}

	return NewLogTask(config, f.logger).Executor(), nil
}
