package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/flowkit/flowkit/pkg/eventbus"
	"github.com/flowkit/flowkit/pkg/events"
	"github.com/flowkit/flowkit/pkg/log"
	"github.com/flowkit/flowkit/pkg/models"
)

// pausedRecheckInterval bounds how long the loop stays asleep while paused
// even if the resume signal is missed.
const pausedRecheckInterval = 100 * time.Millisecond

// Option configures optional workflow collaborators.
type Option func(*Workflow)

// WithLogger attaches a structured logger. Without it the workflow is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		w.logger = logger
	}
}

// WithPublisher attaches a telemetry publisher. Run and component lifecycle
// events are published to it; publish failures are logged, never fatal.
func WithPublisher(publisher eventbus.EventPublisher) Option {
	return func(w *Workflow) {
		w.publisher = publisher
	}
}

// WithTracer attaches an OpenTelemetry tracer; one span is opened per run
// and one per dispatched component.
func WithTracer(tracer trace.Tracer) Option {
	return func(w *Workflow) {
		w.tracer = tracer
	}
}

// Workflow is the top-level orchestrator. It owns the run queue, the run
// state machine and the output map, and drains the queue component by
// component when started.
//
// Start may be called exactly once; Pause, Resume and Cancel may be called
// at any time from other goroutines.
type Workflow struct {
	id          string
	name        string
	description string

	logger    *slog.Logger
	publisher eventbus.EventPublisher
	tracer    trace.Tracer

	manager *ComponentsManager

	// mu guards state, runErr and resumeCh.
	mu       sync.RWMutex
	state    models.RunState
	runErr   error
	resumeCh chan struct{}

	// outMu guards outputs: the loop thread writes, external readers and the
	// parallel-group merge step race with it.
	outMu   sync.RWMutex
	outputs map[string]any
}

// New builds a workflow over a static initial component list.
func New(name, description string, components []models.Component, opts ...Option) *Workflow {
	w := &Workflow{
		id:          uuid.New().String(),
		name:        name,
		description: description,
		logger:      log.Discard(),
		manager:     NewComponentsManager(components),
		state:       models.RunStateNotStarted,
		outputs:     make(map[string]any),
	}

	for _, opt := range opts {
		opt(w)
	}

	w.logger = w.logger.With("workflow_id", w.id, "workflow_name", w.name)

	if w.tracer == nil {
		w.tracer = noop.NewTracerProvider().Tracer("flowkit")
	}

	return w
}

func (w *Workflow) ID() string          { return w.id }
func (w *Workflow) Name() string        { return w.name }
func (w *Workflow) Description() string { return w.description }

// State returns the current run state.
func (w *Workflow) State() models.RunState {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.state
}

// Err returns the error recorded for a failed run, nil otherwise.
func (w *Workflow) Err() error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.runErr
}

// Outputs returns a copy of the output map accumulated so far, keys
// namespaced as "<ComponentName>.<OutputKey>".
func (w *Workflow) Outputs() map[string]any {
	w.outMu.RLock()
	defer w.outMu.RUnlock()

	outputs := make(map[string]any, len(w.outputs))
	for k, v := range w.outputs {
		outputs[k] = v
	}

	return outputs
}

// Completed returns the components executed so far, in completion order.
func (w *Workflow) Completed() []models.Component {
	return w.manager.Completed()
}

// Pause suspends dispatch after the in-flight component finishes. Only
// accepted while in progress; otherwise a no-op with a diagnostic.
func (w *Workflow) Pause() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != models.RunStateInProgress {
		w.logger.Warn("pause ignored", "state", w.state)

		return
	}

	w.state = models.RunStatePaused
	w.resumeCh = make(chan struct{})
	w.logger.Info("workflow paused")
	w.publish(context.Background(), events.WorkflowPaused{
		BaseEvent: events.NewBaseEvent(events.WorkflowPausedEvent, w.id),
	})
}

// Resume continues a paused workflow. Only accepted while paused; otherwise
// a no-op with a diagnostic.
func (w *Workflow) Resume() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != models.RunStatePaused {
		w.logger.Warn("resume ignored", "state", w.state)

		return
	}

	w.state = models.RunStateInProgress
	if w.resumeCh != nil {
		close(w.resumeCh)
		w.resumeCh = nil
	}

	w.logger.Info("workflow resumed")
	w.publish(context.Background(), events.WorkflowResumed{
		BaseEvent: events.NewBaseEvent(events.WorkflowResumedEvent, w.id),
	})
}

// Cancel requests a clean early exit. Accepted from any non-terminal state.
// The loop observes it at its next state check: an in-flight component is
// allowed to finish its current unit of work first.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.IsTerminal() {
		w.logger.Warn("cancel ignored", "state", w.state)

		return
	}

	w.state = models.RunStateCanceled
	if w.resumeCh != nil {
		close(w.resumeCh)
		w.resumeCh = nil
	}

	w.logger.Info("workflow cancel requested")
}

// setState transitions the run state unless it is already terminal.
func (w *Workflow) setState(state models.RunState) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.IsTerminal() {
		return
	}

	w.state = state
}

func (w *Workflow) setError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.runErr = err
}

// mergeOutputs folds the given already-prefixed outputs into the workflow
// output map, last write wins.
func (w *Workflow) mergeOutputs(outputs map[string]any) {
	if len(outputs) == 0 {
		return
	}

	w.outMu.Lock()
	defer w.outMu.Unlock()

	for k, v := range outputs {
		w.outputs[k] = v
	}
}

// outputsSnapshot returns the outputs as seen at this instant; parallel
// group tasks resolve their inputs against such a pre-group snapshot.
func (w *Workflow) outputsSnapshot() map[string]any {
	return w.Outputs()
}

// publish sends a telemetry event when a publisher is attached. Failures are
// logged and swallowed: telemetry never affects the run outcome.
func (w *Workflow) publish(ctx context.Context, event eventbus.Event) {
	if w.publisher == nil {
		return
	}

	if err := w.publisher.Publish(ctx, w.id, event); err != nil {
		w.logger.Warn("failed to publish telemetry event", "event_type", event.GetType(), "error", err)
	}
}

// prefixOutputs namespaces raw task outputs under the component name.
func prefixOutputs(name string, outputs map[string]any) map[string]any {
	if len(outputs) == 0 {
		return nil
	}

	prefixed := make(map[string]any, len(outputs))
	for k, v := range outputs {
		prefixed[name+"."+k] = v
	}

	return prefixed
}
