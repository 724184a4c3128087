// Package schedule provides a built-in trigger waiter that fires at the next
// occurrence of a cron expression.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/flowkit/flowkit/pkg/registry"
)

type ScheduleTrigger struct {
	CronExpr string
	schedule cron.Schedule
	logger   *slog.Logger
}

func NewScheduleTrigger(config map[string]any, logger *slog.Logger) (*ScheduleTrigger, error) {
	cronExpr, _ := config["cron"].(string)
	if cronExpr == "" {
		return nil, errors.New("schedule trigger cron expression is required")
	}

	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}

	return &ScheduleTrigger{
		CronExpr: cronExpr,
		schedule: schedule,
		logger:   logger.With("trigger_type", "schedule", "cron", cronExpr),
	}, nil
}

// Wait blocks until the next cron occurrence or until the context is done.
func (t *ScheduleTrigger) Wait(ctx context.Context) error {
	next := t.schedule.Next(time.Now())
	t.logger.InfoContext(ctx, "schedule trigger waiting", "next", next)

	timer := time.NewTimer(time.Until(next))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func NewScheduleTriggerFactory() *ScheduleTriggerFactory {
	return &ScheduleTriggerFactory{}
}

type ScheduleTriggerFactory struct{}

func (*ScheduleTriggerFactory) ID() string {
	return "schedule"
}

func (*ScheduleTriggerFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cron": map[string]any{
				"type":        "string",
				"description": "Cron expression in standard 5-field format",
				"examples": []string{
					"0 9 * * *",
					"*/15 * * * *",
					"0 18 * * 5",
				},
			},
		},
		"required": []string{"cron"},
	}
}

func (f *ScheduleTriggerFactory) Create(config map[string]any, logger *slog.Logger) (registry.WaitFunc, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	trigger, err := NewScheduleTrigger(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule trigger: %w", err)
	}

	return trigger.Wait, nil
}
