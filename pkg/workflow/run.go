package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/flowkit/flowkit/pkg/events"
	"github.com/flowkit/flowkit/pkg/models"
	"github.com/flowkit/flowkit/pkg/otelhelper"
	"github.com/flowkit/flowkit/pkg/template"
)

// errCanceled unwinds the loop when cancellation is observed. It is internal
// only: a canceled run finishes with state Canceled and no recorded error.
var errCanceled = errors.New("workflow canceled during execution")

// Start drains the component queue to completion. It may be called exactly
// once per workflow instance; any later call is a no-op returning nil.
//
// Start returns nil when the run completes or is canceled, and the run error
// when a component failure aborts the run. The failed run keeps its partial
// outputs and the error for inspection.
func (w *Workflow) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.state != models.RunStateNotStarted {
		state := w.state
		w.mu.Unlock()
		w.logger.Warn("start ignored, workflow already started", "state", state)

		return nil
	}

	w.state = models.RunStateInProgress
	w.mu.Unlock()

	timer := models.NewExecutionTimer()

	ctx, span := otelhelper.StartSpan(ctx, w.tracer, "workflow.run",
		attribute.String(otelhelper.WorkflowIDKey, w.id),
		attribute.String(otelhelper.WorkflowNameKey, w.name),
	)
	defer span.End()

	w.logger.Info("starting workflow", "pending", w.manager.Len())
	w.publish(ctx, events.WorkflowStarted{
		BaseEvent:    events.NewBaseEvent(events.WorkflowStartedEvent, w.id),
		WorkflowName: w.name,
		Pending:      w.manager.Len(),
	})

	err := w.drain(ctx)
	timer.Stop()

	switch {
	case err == nil:
		// Queue exhausted. A cancel flagged after the last pop stays.
		if w.State() == models.RunStateCanceled {
			w.finishCanceled(ctx)

			return nil
		}

		w.setState(models.RunStateCompleted)
		otelhelper.SetOK(span)
		w.logger.Info("workflow completed", "duration", timer.Duration)
		w.publish(ctx, events.WorkflowCompleted{
			BaseEvent: events.NewBaseEvent(events.WorkflowCompletedEvent, w.id),
			Outputs:   w.Outputs(),
			Duration:  timer.Duration,
		})

		return nil
	case errors.Is(err, errCanceled):
		w.finishCanceled(ctx)

		return nil
	default:
		w.setError(err)
		w.setState(models.RunStateFailed)
		otelhelper.SetError(span, err)
		w.logger.Error("workflow failed", "error", err, "duration", timer.Duration)
		w.publish(ctx, events.WorkflowFailed{
			BaseEvent: events.NewBaseEvent(events.WorkflowFailedEvent, w.id),
			Error:     err.Error(),
			Outputs:   w.Outputs(),
			Duration:  timer.Duration,
		})

		return err
	}
}

func (w *Workflow) finishCanceled(ctx context.Context) {
	w.logger.Info("workflow canceled", "completed", len(w.manager.Completed()))
	w.publish(ctx, events.WorkflowCanceled{
		BaseEvent: events.NewBaseEvent(events.WorkflowCanceledEvent, w.id),
		Outputs:   w.Outputs(),
	})
}

// drain is the main execution loop: check state, pop, dispatch, complete.
func (w *Workflow) drain(ctx context.Context) error {
	for !w.manager.IsEmpty() {
		if err := w.checkState(ctx); err != nil {
			return err
		}

		component, ok := w.manager.RemoveFirst()
		if !ok {
			break
		}

		if err := w.dispatch(ctx, component); err != nil {
			return err
		}

		w.manager.Complete(component)
	}

	return nil
}

// checkState blocks while the run is paused and reports how the loop should
// proceed: nil to dispatch the next component, errCanceled to unwind
// cleanly, anything else to abort as failed.
func (w *Workflow) checkState(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			// Caller context cancellation is a cooperative cancel.
			w.Cancel()

			return errCanceled
		}

		switch state := w.State(); state {
		case models.RunStateInProgress:
			return nil
		case models.RunStateCanceled:
			return errCanceled
		case models.RunStatePaused:
			w.waitWhilePaused(ctx)
		default:
			return &models.UnexpectedRunStateError{State: state}
		}
	}
}

// waitWhilePaused sleeps until Resume or Cancel signals the resume channel,
// with a coarse interval re-check as a fallback. No busy spinning.
func (w *Workflow) waitWhilePaused(ctx context.Context) {
	w.mu.RLock()
	resumeCh := w.resumeCh
	w.mu.RUnlock()

	if resumeCh == nil {
		return
	}

	timer := time.NewTimer(pausedRecheckInterval)
	defer timer.Stop()

	select {
	case <-resumeCh:
	case <-timer.C:
	case <-ctx.Done():
	}
}

// dispatch runs a single component according to its kind.
func (w *Workflow) dispatch(ctx context.Context, component models.Component) error {
	logger := w.logger.With(
		"component", component.ComponentName(),
		"kind", component.Kind(),
	)
	logger.InfoContext(ctx, "dispatching component")

	ctx, span := otelhelper.StartSpan(ctx, w.tracer, "workflow.dispatch",
		attribute.String(otelhelper.ComponentKey, component.ComponentName()),
		attribute.String(otelhelper.ComponentKindKey, string(component.Kind())),
	)
	defer span.End()

	w.publish(ctx, events.ComponentStarted{
		BaseEvent:     events.NewBaseEvent(events.ComponentStartedEvent, w.id),
		ComponentName: component.ComponentName(),
		ComponentKind: component.Kind(),
	})

	timer := models.NewExecutionTimer()

	var err error

	switch c := component.(type) {
	case *models.Task:
		err = w.dispatchTask(ctx, c)
	case *models.TaskGroup:
		err = w.dispatchTaskGroup(ctx, c)
	case *models.Logic:
		err = w.dispatchLogic(ctx, c)
	case *models.Trigger:
		// Trigger waiter failure is resilient: logged, run continues.
		w.dispatchTrigger(ctx, c)
	case *models.Subflow:
		err = w.dispatchSubflow(ctx, c)
	default:
		err = fmt.Errorf("unknown component kind %q for component %q", component.Kind(), component.ComponentName())
	}

	timer.Stop()

	if err != nil {
		otelhelper.SetError(span, err)
		logger.ErrorContext(ctx, "component failed", "error", err)
		w.publish(ctx, events.ComponentFailed{
			BaseEvent:     events.NewBaseEvent(events.ComponentFailedEvent, w.id),
			ComponentName: component.ComponentName(),
			ComponentKind: component.Kind(),
			Error:         err.Error(),
		})

		return err
	}

	logger.InfoContext(ctx, "component finished", "duration", timer.Duration)
	w.publish(ctx, events.ComponentFinished{
		BaseEvent:     events.NewBaseEvent(events.ComponentFinishedEvent, w.id),
		ComponentName: component.ComponentName(),
		ComponentKind: component.Kind(),
		Duration:      timer.Duration,
	})

	return nil
}

// dispatchTask executes a single task against the current outputs and merges
// its result into the workflow outputs.
func (w *Workflow) dispatchTask(ctx context.Context, task *models.Task) error {
	prefixed, err := w.runTask(ctx, task, w.outputsSnapshot())
	if err != nil {
		return err
	}

	w.mergeOutputs(prefixed)

	return nil
}

// runTask resolves the task's inputs against the given outputs snapshot,
// invokes the executor and returns the name-prefixed outputs. Execution
// details are recorded on the task either way.
func (w *Workflow) runTask(ctx context.Context, task *models.Task, snapshot map[string]any) (map[string]any, error) {
	details := &models.ExecutionDetails{Timer: models.NewExecutionTimer()}
	task.Details = details

	if task.Executor == nil {
		err := &models.ComponentError{Component: task.Name, Kind: models.KindTask, Err: models.ErrMissingExecutionLogic}
		details.Finish(models.RunStateFailed, nil, err)

		return nil, err
	}

	inputs := template.Resolve(task.Inputs, snapshot)

	outputs, err := task.Executor(ctx, inputs)
	if err != nil {
		wrapped := &models.ComponentError{Component: task.Name, Kind: models.KindTask, Err: err}
		details.Finish(models.RunStateFailed, nil, wrapped)

		return nil, wrapped
	}

	prefixed := prefixOutputs(task.Name, outputs)
	details.Finish(models.RunStateCompleted, prefixed, nil)

	return prefixed, nil
}

func (w *Workflow) dispatchTaskGroup(ctx context.Context, group *models.TaskGroup) error {
	group.Details = &models.ExecutionDetails{Timer: models.NewExecutionTimer()}

	var (
		groupOutputs map[string]any
		err          error
	)

	switch group.Mode {
	case models.ModeParallel:
		groupOutputs, err = w.runParallelGroup(ctx, group)
	case models.ModeSequential, "":
		groupOutputs, err = w.runSequentialGroup(ctx, group)
	default:
		err = &models.ComponentError{
			Component: group.Name,
			Kind:      models.KindTaskGroup,
			Err:       fmt.Errorf("unknown execution mode %q", group.Mode),
		}
	}

	if err != nil {
		group.Details.Finish(models.RunStateFailed, groupOutputs, err)

		return err
	}

	group.Details.Finish(models.RunStateCompleted, groupOutputs, nil)

	return nil
}

// runSequentialGroup runs the contained tasks strictly in list order,
// merging into the workflow outputs after each task so later tasks can
// reference earlier results.
func (w *Workflow) runSequentialGroup(ctx context.Context, group *models.TaskGroup) (map[string]any, error) {
	groupOutputs := make(map[string]any)

	for _, task := range group.Tasks {
		prefixed, err := w.runTask(ctx, task, w.outputsSnapshot())
		if err != nil {
			return groupOutputs, &models.ComponentError{Component: group.Name, Kind: models.KindTaskGroup, Err: err}
		}

		for k, v := range prefixed {
			groupOutputs[k] = v
		}

		w.mergeOutputs(prefixed)
	}

	return groupOutputs, nil
}

// runParallelGroup launches all contained tasks concurrently. Every task
// resolves its inputs against the same pre-group snapshot, so tasks within
// the group do not see each other's outputs. The merge into the shared
// accumulator is the group's only shared-mutation point and is mutex
// guarded. The first task failure cancels the remaining in-flight tasks and
// aborts the run; the accumulated partial outputs are still merged so a
// failed run retains them.
func (w *Workflow) runParallelGroup(ctx context.Context, group *models.TaskGroup) (map[string]any, error) {
	snapshot := w.outputsSnapshot()
	groupOutputs := make(map[string]any)

	var mergeMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	for _, task := range group.Tasks {
		g.Go(func() error {
			prefixed, err := w.runTask(gctx, task, snapshot)
			if err != nil {
				return err
			}

			mergeMu.Lock()
			defer mergeMu.Unlock()

			for k, v := range prefixed {
				groupOutputs[k] = v
			}

			return nil
		})
	}

	err := g.Wait()

	w.mergeOutputs(groupOutputs)

	if err != nil {
		return groupOutputs, &models.ComponentError{Component: group.Name, Kind: models.KindTaskGroup, Err: err}
	}

	return groupOutputs, nil
}

// dispatchLogic evaluates the branch and splices the produced components in
// at the front of the queue, ahead of everything already pending.
func (w *Workflow) dispatchLogic(ctx context.Context, logic *models.Logic) error {
	if logic.Evaluator == nil {
		return &models.ComponentError{Component: logic.Name, Kind: models.KindLogic, Err: models.ErrMissingExecutionLogic}
	}

	components, err := logic.Evaluator(ctx)
	if err != nil {
		return &models.ComponentError{Component: logic.Name, Kind: models.KindLogic, Err: err}
	}

	w.logger.InfoContext(ctx, "logic produced components", "logic", logic.Name, "count", len(components))
	w.manager.Insert(components...)

	return nil
}

// dispatchTrigger invokes the waiter, which may suspend arbitrarily long.
// On success the returned components run next; on failure the run simply
// continues without them.
func (w *Workflow) dispatchTrigger(ctx context.Context, trigger *models.Trigger) {
	if trigger.Waiter == nil {
		w.logger.WarnContext(ctx, "trigger has no waiter attached, skipping", "trigger", trigger.Name)

		return
	}

	components, err := trigger.Waiter(ctx)
	if err != nil {
		w.logger.WarnContext(ctx, "trigger wait failed, continuing run", "trigger", trigger.Name, "error", err)
		w.publish(ctx, events.TriggerWaitFailed{
			BaseEvent:     events.NewBaseEvent(events.TriggerWaitFailedEvent, w.id),
			ComponentName: trigger.Name,
			Error:         err.Error(),
		})

		return
	}

	w.logger.InfoContext(ctx, "trigger fired", "trigger", trigger.Name, "count", len(components))
	w.manager.Insert(components...)
}

// dispatchSubflow runs the embedded flow to completion and merges its final
// outputs into the parent, without additional prefixing. A failed subflow
// fails the parent; a canceled subflow does not.
func (w *Workflow) dispatchSubflow(ctx context.Context, subflow *models.Subflow) error {
	if subflow.Flow == nil {
		return &models.ComponentError{Component: subflow.Name, Kind: models.KindSubflow, Err: models.ErrMissingExecutionLogic}
	}

	if err := subflow.Flow.Start(ctx); err != nil {
		return &models.ComponentError{Component: subflow.Name, Kind: models.KindSubflow, Err: err}
	}

	w.mergeOutputs(subflow.Flow.Outputs())
	w.logger.InfoContext(ctx, "subflow finished", "subflow", subflow.Name, "state", subflow.Flow.State())

	return nil
}
