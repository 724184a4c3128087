// Package transform provides a built-in task executor that reshapes its
// resolved inputs into a new output map: picking keys, renaming them and
// filling defaults for inputs that resolved to nothing.
package transform

import (
	"context"
	"fmt"

	"github.com/flowkit/flowkit/pkg/models"
)

type TransformTask struct {
	Pick     []string
	Rename   map[string]string
	Defaults map[string]any
}

func NewTransformTask(config map[string]any) (*TransformTask, error) {
	task := &TransformTask{
		Rename:   make(map[string]string),
		Defaults: make(map[string]any),
	}

	if pickConfig, exists := config["pick"]; exists {
		pickList, ok := pickConfig.([]any)
		if !ok {
			return nil, fmt.Errorf("transform pick must be a list of key names, got %T", pickConfig)
		}

		for _, item := range pickList {
			key, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("transform pick entries must be strings, got %T", item)
			}

			task.Pick = append(task.Pick, key)
		}
	}

	if renameConfig, exists := config["rename"]; exists {
		renameMap, ok := renameConfig.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("transform rename must be a map, got %T", renameConfig)
		}

		for from, to := range renameMap {
			toKey, ok := to.(string)
			if !ok {
				return nil, fmt.Errorf("transform rename targets must be strings, got %T", to)
			}

			task.Rename[from] = toKey
		}
	}

	if defaultsConfig, exists := config["defaults"]; exists {
		defaultsMap, ok := defaultsConfig.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("transform defaults must be a map, got %T", defaultsConfig)
		}

		task.Defaults = defaultsMap
	}

	return task, nil
}

// Executor returns the task body applying pick, rename and defaults in that
// order. An empty pick list keeps every input.
func (t *TransformTask) Executor() models.TaskExecutor {
	return func(ctx context.Context, inputs map[string]any) (map[string]any, error) {
		outputs := make(map[string]any, len(inputs))

		if len(t.Pick) == 0 {
			for k, v := range inputs {
				outputs[k] = v
			}
		} else {
			for _, key := range t.Pick {
				if v, exists := inputs[key]; exists {
					outputs[key] = v
				}
			}
		}

		for from, to := range t.Rename {
			if v, exists := outputs[from]; exists {
				delete(outputs, from)
				outputs[to] = v
			}
		}

		for key, value := range t.Defaults {
			if existing, exists := outputs[key]; !exists || existing == nil {
				outputs[key] = value
			}
		}

		return outputs, nil
	}
}
