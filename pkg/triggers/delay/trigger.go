// Package delay provides a built-in trigger waiter that fires after a fixed
// duration.
package delay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flowkit/flowkit/pkg/registry"
)

type DelayTrigger struct {
	Duration time.Duration
	logger   *slog.Logger
}

func NewDelayTrigger(config map[string]any, logger *slog.Logger) (*DelayTrigger, error) {
	durationStr, _ := config["duration"].(string)
	if durationStr == "" {
		return nil, errors.New("delay trigger requires a duration")
	}

	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid delay duration %q: %w", durationStr, err)
	}

	if duration < 0 {
		return nil, fmt.Errorf("delay duration must not be negative, got %s", duration)
	}

	return &DelayTrigger{
		Duration: duration,
		logger:   logger.With("trigger_type", "delay", "duration", duration.String()),
	}, nil
}

// Wait blocks for the configured duration or until the context is done.
func (t *DelayTrigger) Wait(ctx context.Context) error {
	t.logger.InfoContext(ctx, "delay trigger waiting")

	timer := time.NewTimer(t.Duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func NewDelayTriggerFactory() *DelayTriggerFactory {
	return &DelayTriggerFactory{}
}

type DelayTriggerFactory struct{}

func (*DelayTriggerFactory) ID() string {
	return "delay"
}

func (*DelayTriggerFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"duration": map[string]any{
				"type":        "string",
				"description": "How long to wait before firing, in Go duration syntax",
				"examples":    []string{"500ms", "10s", "5m"},
			},
		},
		"required": []string{"duration"},
	}
}

func (f *DelayTriggerFactory) Create(config map[string]any, logger *slog.Logger) (registry.WaitFunc, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	trigger, err := NewDelayTrigger(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create delay trigger: %w", err)
	}

	return trigger.Wait, nil
}
