package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/events"
)

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeBroadcaster) Broadcast(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
}

func (f *fakeBroadcaster) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func TestNotificationServiceBroadcastsUserEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	hub := &fakeBroadcaster{}
	svc := NewNotificationService(dispatcher, hub, zap.NewNop())
	svc.RegisterHandlers()

	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	err := dispatcher.Publish(context.Background(), events.Event{
		ID:        "evt-1",
		Type:      events.EventUserCreated,
		Entity:    "USER",
		Timestamp: now,
		Payload: events.UserPayload{
			ID:       7,
			Username: "alice",
			Email:    "alice@example.com",
			Roles:    []domain.Role{domain.RoleUser},
			Active:   true,
		},
	})
	require.NoError(t, err)

	messages := hub.sent()
	require.Len(t, messages, 1)

	var notification domain.Notification
	require.NoError(t, json.Unmarshal([]byte(messages[0]), &notification))
	assert.Equal(t, "USER", notification.Entity)
	assert.Equal(t, domain.NotificationCreate, notification.Type)
	assert.Equal(t, now.Format(time.RFC3339), notification.CreatedAt)
	assert.Contains(t, notification.Data, `"username":"alice"`)
	assert.NotContains(t, notification.Data, "password")
}

func TestNotificationServiceMapsEventKinds(t *testing.T) {
	tests := []struct {
		eventType events.EventType
		want      domain.NotificationType
	}{
		{events.EventUserCreated, domain.NotificationCreate},
		{events.EventUserUpdated, domain.NotificationUpdate},
		{events.EventUserDeactivated, domain.NotificationDelete},
		{events.EventFileStored, domain.NotificationCreate},
		{events.EventFileDeleted, domain.NotificationDelete},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			dispatcher := events.NewInMemoryDispatcher()
			hub := &fakeBroadcaster{}
			NewNotificationService(dispatcher, hub, zap.NewNop()).RegisterHandlers()

			err := dispatcher.Publish(context.Background(), events.Event{
				Type:      tt.eventType,
				Entity:    "USER",
				Timestamp: time.Now(),
				Payload:   events.UserPayload{Username: "alice"},
			})
			require.NoError(t, err)

			messages := hub.sent()
			require.Len(t, messages, 1)

			var notification domain.Notification
			require.NoError(t, json.Unmarshal([]byte(messages[0]), &notification))
			assert.Equal(t, tt.want, notification.Type)
		})
	}
}
