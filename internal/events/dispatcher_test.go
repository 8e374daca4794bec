package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherPublishInvokesSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var got []EventType
	dispatcher.Subscribe(EventUserCreated, func(_ context.Context, event Event) error {
		got = append(got, event.Type)
		return nil
	})
	dispatcher.Subscribe(EventUserCreated, func(_ context.Context, event Event) error {
		got = append(got, event.Type)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{
		ID:        "evt-1",
		Type:      EventUserCreated,
		Entity:    "USER",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	invoked := false
	dispatcher.Subscribe(EventUserUpdated, func(context.Context, Event) error {
		return errors.New("first handler failed")
	})
	dispatcher.Subscribe(EventUserUpdated, func(context.Context, Event) error {
		invoked = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventUserUpdated})
	require.NoError(t, err)
	assert.True(t, invoked)
}

func TestDispatcherIgnoresUnsubscribedEvents(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	invoked := false
	dispatcher.Subscribe(EventUserCreated, func(context.Context, Event) error {
		invoked = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventFileStored})
	require.NoError(t, err)
	assert.False(t, invoked)
}
