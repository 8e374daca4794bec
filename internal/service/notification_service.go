package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/events"
)

// Broadcaster fans a serialized message out to every open push connection.
type Broadcaster interface {
	Broadcast(message string)
}

// NotificationService turns domain events into push notifications.
type NotificationService struct {
	dispatcher events.Dispatcher
	hub        Broadcaster
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, hub Broadcaster, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, hub: hub, logger: logger}
}

// RegisterHandlers subscribes to the events that produce notifications.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserCreated, n.handle(domain.NotificationCreate))
	n.dispatcher.Subscribe(events.EventUserUpdated, n.handle(domain.NotificationUpdate))
	n.dispatcher.Subscribe(events.EventUserDeactivated, n.handle(domain.NotificationDelete))
	n.dispatcher.Subscribe(events.EventFileStored, n.handle(domain.NotificationCreate))
	n.dispatcher.Subscribe(events.EventFileDeleted, n.handle(domain.NotificationDelete))
}

func (n *NotificationService) handle(kind domain.NotificationType) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		data, err := json.Marshal(event.Payload)
		if err != nil {
			n.logger.Warn("notification payload not serializable",
				zap.String("event_type", string(event.Type)), zap.Error(err))
			return nil
		}

		notification := domain.Notification{
			Entity:    event.Entity,
			Type:      kind,
			Data:      string(data),
			CreatedAt: event.Timestamp.Format(time.RFC3339),
		}

		message, err := json.Marshal(notification)
		if err != nil {
			n.logger.Warn("notification not serializable", zap.Error(err))
			return nil
		}

		n.logger.Info("broadcasting notification",
			zap.String("entity", notification.Entity),
			zap.String("type", string(notification.Type)))
		n.hub.Broadcast(string(message))
		return nil
	}
}
