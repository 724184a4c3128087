package transform

import "github.com/flowkit/flowkit/pkg/models"

func NewTransformTaskFactory() *TransformTaskFactory {
	return &TransformTaskFactory{}
}

type TransformTaskFactory struct{}

func (*TransformTaskFactory) ID() string {
	return "transform"
}

func (*TransformTaskFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pick": map[string]any{
				"type":        "array",
				"description": "Input keys to keep. Empty keeps all inputs.",
				"items":       map[string]any{"type": "string"},
			},
			"rename": map[string]any{
				"type":        "object",
				"description": "Key renames applied after picking, old name to new name",
			},
			"defaults": map[string]any{
				"type":        "object",
				"description": "Values filled in for keys that are missing or resolved to null",
			},
		},
	}
}

func (f *TransformTaskFactory) Create(config map[string]any) (models.TaskExecutor, error) {
	if config == nil {
		config = map[string]any{}
	}

	task, err := NewTransformTask(config)
	if err != nil {
		return nil, err
	}

	return task.Executor(), nil
}
