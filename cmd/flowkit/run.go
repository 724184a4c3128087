package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"
	cli "github.com/urfave/cli/v3"

	"github.com/flowkit/flowkit/pkg/channels/gochannel"
	"github.com/flowkit/flowkit/pkg/channels/kafka"
	"github.com/flowkit/flowkit/pkg/config"
	"github.com/flowkit/flowkit/pkg/definition"
	"github.com/flowkit/flowkit/pkg/eventbus"
	"github.com/flowkit/flowkit/pkg/log"
	"github.com/flowkit/flowkit/pkg/otelhelper"
	"github.com/flowkit/flowkit/pkg/registry"
	"github.com/flowkit/flowkit/pkg/tasks/http_request"
	log_task "github.com/flowkit/flowkit/pkg/tasks/log"
	"github.com/flowkit/flowkit/pkg/tasks/transform"
	"github.com/flowkit/flowkit/pkg/triggers/delay"
	"github.com/flowkit/flowkit/pkg/triggers/schedule"
	"github.com/flowkit/flowkit/pkg/workflow"
)

func NewRunCommand() *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Run a workflow definition to completion",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a flowkit YAML config file",
				Sources: cli.EnvVars("FLOWKIT_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "definition",
				Aliases: []string{"f"},
				Usage:   "Path to the workflow definition JSON file",
				Sources: cli.EnvVars("FLOWKIT_DEFINITION"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export OpenTelemetry traces for the run",
				Sources: cli.EnvVars("FLOWKIT_TRACING"),
			},
		},
		Action: runAction,
	}
}

func runAction(ctx context.Context, command *cli.Command) error {
	cfg, err := loadConfig(command)
	if err != nil {
		return err
	}

	log.Setup(cfg.LogLevel)
	logger := log.WithModule("flowkit")

	if cfg.Definition == "" {
		return fmt.Errorf("no workflow definition given, use --definition or a config file")
	}

	doc, err := os.ReadFile(cfg.Definition)
	if err != nil {
		return fmt.Errorf("failed to read workflow definition: %w", err)
	}

	bus, err := newEventBus(cfg)
	if err != nil {
		return fmt.Errorf("failed to create event channel: %w", err)
	}
	defer func() {
		if err := bus.Close(); err != nil {
			logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
		}
	}()

	opts := []workflow.Option{
		workflow.WithLogger(logger),
		workflow.WithPublisher(bus),
	}

	if cfg.Tracing {
		tracer, err := otelhelper.NewTracer(ctx, "flowkit")
		if err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}

		opts = append(opts, workflow.WithTracer(tracer))
	}

	flow, err := definition.NewBuilder(newRegistry(logger), logger, opts...).Build(doc)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.InfoContext(ctx, "Interrupt received, canceling workflow")
		flow.Cancel()
	}()

	if err := flow.Start(ctx); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Workflow finished",
		"state", flow.State(),
		"outputs", flow.Outputs(),
		"completed", len(flow.Completed()),
	)

	return nil
}

// newEventBus builds the run telemetry bus on the configured channel.
func newEventBus(cfg config.Config) (eventbus.EventBus, error) {
	if cfg.Events.Channel == "kafka" {
		publisher, subscriber, err := kafka.CreateChannel(watermill.NopLogger{}, "flowkit", cfg.Events.Brokers)
		if err != nil {
			return nil, err
		}

		return eventbus.NewWatermillEventBus(publisher, subscriber), nil
	}

	publisher, subscriber, err := gochannel.CreateChannel(watermill.NopLogger{})
	if err != nil {
		return nil, err
	}

	return eventbus.NewWatermillEventBus(publisher, subscriber), nil
}

// loadConfig merges the optional config file with the command line flags.
// Flags win when both are set.
func loadConfig(command *cli.Command) (config.Config, error) {
	cfg := config.Default()

	if path := command.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}

		cfg = loaded
	}

	if definition := command.String("definition"); definition != "" {
		cfg.Definition = definition
	}

	if level := command.String("log-level"); level != "" {
		cfg.LogLevel = level
	}

	if command.Bool("tracing") {
		cfg.Tracing = true
	}

	return cfg, nil
}

// newRegistry registers the built-in task executors and trigger waiters.
func newRegistry(logger *slog.Logger) *registry.Registry {
	reg := registry.NewRegistry(logger)

	reg.RegisterTask(log_task.NewLogTaskFactory(logger))
	reg.RegisterTask(transform.NewTransformTaskFactory())
	reg.RegisterTask(http_request.NewHTTPRequestTaskFactory())

	reg.RegisterWait(delay.NewDelayTriggerFactory())
	reg.RegisterWait(schedule.NewScheduleTriggerFactory())

	return reg
}
