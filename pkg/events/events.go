// Package events defines event types for workflow run telemetry.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/flowkit/flowkit/pkg/models"
)

type EventType string

// Topic is the event bus topic all run telemetry is published to.
const Topic = "flowkit.runs"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Run lifecycle events.
	WorkflowStartedEvent   EventType = "workflow.started"
	WorkflowPausedEvent    EventType = "workflow.paused"
	WorkflowResumedEvent   EventType = "workflow.resumed"
	WorkflowCanceledEvent  EventType = "workflow.canceled"
	WorkflowCompletedEvent EventType = "workflow.completed"
	WorkflowFailedEvent    EventType = "workflow.failed"

	// Component lifecycle events.
	ComponentStartedEvent  EventType = "component.started"
	ComponentFinishedEvent EventType = "component.finished"
	ComponentFailedEvent   EventType = "component.failed"
	TriggerWaitFailedEvent EventType = "trigger.wait.failed"
)

type BaseEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	WorkflowID string         `json:"workflow_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType, workflowID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		WorkflowID: workflowID,
		Metadata:   make(map[string]any),
	}
}

type WorkflowStarted struct {
	BaseEvent

	WorkflowName string `json:"workflow_name"`
	Pending      int    `json:"pending"`
}

func (e WorkflowStarted) GetType() EventType { return WorkflowStartedEvent }

type WorkflowPaused struct {
	BaseEvent
}

func (e WorkflowPaused) GetType() EventType { return WorkflowPausedEvent }

type WorkflowResumed struct {
	BaseEvent
}

func (e WorkflowResumed) GetType() EventType { return WorkflowResumedEvent }

type WorkflowCanceled struct {
	BaseEvent

	Outputs map[string]any `json:"outputs,omitempty"`
}

func (e WorkflowCanceled) GetType() EventType { return WorkflowCanceledEvent }

type WorkflowCompleted struct {
	BaseEvent

	Outputs  map[string]any `json:"outputs,omitempty"`
	Duration time.Duration  `json:"duration"`
}

func (e WorkflowCompleted) GetType() EventType { return WorkflowCompletedEvent }

type WorkflowFailed struct {
	BaseEvent

	Error    string         `json:"error"`
	Outputs  map[string]any `json:"outputs,omitempty"`
	Duration time.Duration  `json:"duration"`
}

func (e WorkflowFailed) GetType() EventType { return WorkflowFailedEvent }

type ComponentStarted struct {
	BaseEvent

	ComponentName string               `json:"component_name"`
	ComponentKind models.ComponentKind `json:"component_kind"`
}

func (e ComponentStarted) GetType() EventType { return ComponentStartedEvent }

type ComponentFinished struct {
	BaseEvent

	ComponentName string               `json:"component_name"`
	ComponentKind models.ComponentKind `json:"component_kind"`
	Duration      time.Duration        `json:"duration"`
}

func (e ComponentFinished) GetType() EventType { return ComponentFinishedEvent }

type ComponentFailed struct {
	BaseEvent

	ComponentName string               `json:"component_name"`
	ComponentKind models.ComponentKind `json:"component_kind"`
	Error         string               `json:"error"`
}

func (e ComponentFailed) GetType() EventType { return ComponentFailedEvent }

// TriggerWaitFailed reports a trigger waiter error. The run itself continues:
// trigger failures are recoverable at the run level.
type TriggerWaitFailed struct {
	BaseEvent

	ComponentName string `json:"component_name"`
	Error         string `json:"error"`
}

func (e TriggerWaitFailed) GetType() EventType { return TriggerWaitFailedEvent }
