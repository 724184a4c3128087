// Package registry maps declarative component type names to the factories
// that build their executable bodies. Workflow definitions reference task
// executors and trigger waiters by type string; the registry resolves them.
package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flowkit/flowkit/pkg/models"
)

// WaitFunc blocks until a trigger condition fires or the context is done.
type WaitFunc func(ctx context.Context) error

// TaskFactory builds a task executor from a configuration map.
type TaskFactory interface {
	ID() string
	Schema() map[string]any
	Create(config map[string]any) (models.TaskExecutor, error)
}

// WaitFactory builds a trigger wait function from a configuration map.
type WaitFactory interface {
	ID() string
	Schema() map[string]any
	Create(config map[string]any, logger *slog.Logger) (WaitFunc, error)
}

type Registry struct {
	logger        *slog.Logger
	taskFactories map[string]TaskFactory
	waitFactories map[string]WaitFactory
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:        logger,
		taskFactories: make(map[string]TaskFactory),
		waitFactories: make(map[string]WaitFactory),
	}
}

func (r *Registry) RegisterTask(factory TaskFactory) {
	r.taskFactories[factory.ID()] = factory
}

func (r *Registry) RegisterWait(factory WaitFactory) {
	r.waitFactories[factory.ID()] = factory
}

// CreateExecutor builds the executor body for a task of the given type.
func (r *Registry) CreateExecutor(taskType string, config map[string]any) (models.TaskExecutor, error) {
	factory, ok := r.taskFactories[taskType]
	if !ok {
		return nil, fmt.Errorf("task type %q not registered", taskType)
	}

	return factory.Create(config)
}

// CreateWait builds the wait function for a trigger of the given type.
func (r *Registry) CreateWait(triggerType string, config map[string]any) (WaitFunc, error) {
	factory, ok := r.waitFactories[triggerType]
	if !ok {
		return nil, fmt.Errorf("trigger type %q not registered", triggerType)
	}

	return factory.Create(config, r.logger)
}

// TaskTypes returns the registered task type names.
func (r *Registry) TaskTypes() []string {
	types := make([]string, 0, len(r.taskFactories))
	for taskType := range r.taskFactories {
		types = append(types, taskType)
	}

	return types
}

// WaitTypes returns the registered trigger type names.
func (r *Registry) WaitTypes() []string {
	types := make([]string, 0, len(r.waitFactories))
	for waitType := range r.waitFactories {
		types = append(types, waitType)
	}

	return types
}
