package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowkit/flowkit/pkg/channels/gochannel"
	"github.com/flowkit/flowkit/pkg/events"
)

func newTestBus(t *testing.T) EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	t.Cleanup(func() { _ = bus.Close() })

	return bus
}

func TestWatermillEventBusRoundtrip(t *testing.T) {
	bus := newTestBus(t)

	received := make(chan any, 1)

	require.NoError(t, bus.Handle(events.WorkflowCompletedEvent, func(_ context.Context, event any) error {
		received <- event

		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx))

	sent := events.WorkflowCompleted{
		BaseEvent: events.NewBaseEvent(events.WorkflowCompletedEvent, "wf-1"),
		Outputs:   map[string]any{"A.v": "done"},
	}
	require.NoError(t, bus.Publish(ctx, "wf-1", sent))

	select {
	case event := <-received:
		completed, ok := event.(*events.WorkflowCompleted)
		require.True(t, ok)
		assert.Equal(t, "wf-1", completed.WorkflowID)
		assert.Equal(t, "done", completed.Outputs["A.v"])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBusIgnoresUnhandledTypes(t *testing.T) {
	bus := newTestBus(t)

	received := make(chan any, 2)

	require.NoError(t, bus.Handle(events.ComponentFailedEvent, func(_ context.Context, event any) error {
		received <- event

		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx))

	// No handler registered for workflow.started; it is acked and dropped.
	require.NoError(t, bus.Publish(ctx, "wf-1", events.WorkflowStarted{
		BaseEvent: events.NewBaseEvent(events.WorkflowStartedEvent, "wf-1"),
	}))
	require.NoError(t, bus.Publish(ctx, "wf-1", events.ComponentFailed{
		BaseEvent:     events.NewBaseEvent(events.ComponentFailedEvent, "wf-1"),
		ComponentName: "fetch",
		Error:         "boom",
	}))

	select {
	case event := <-received:
		failed, ok := event.(*events.ComponentFailed)
		require.True(t, ok)
		assert.Equal(t, "fetch", failed.ComponentName)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	assert.Empty(t, received)
}

func TestGenerateID(t *testing.T) {
	bus := newTestBus(t)

	first := bus.GenerateID()
	second := bus.GenerateID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
