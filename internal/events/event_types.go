package events

import (
	"time"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated     EventType = "user_created"
	EventUserUpdated     EventType = "user_updated"
	EventUserDeactivated EventType = "user_deactivated"
	EventFileStored      EventType = "file_stored"
	EventFileDeleted     EventType = "file_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Entity    string      `json:"entity"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserPayload carries the notification-safe view of a user.
type UserPayload struct {
	ID       int64         `json:"id"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Roles    []domain.Role `json:"roles"`
	Active   bool          `json:"active"`
}

// FilePayload carries file-store event details.
type FilePayload struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size,omitempty"`
}

// NewUserPayload maps a user to its event payload, dropping credentials.
func NewUserPayload(user *domain.User) UserPayload {
	return UserPayload{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
		Active:   user.Active,
	}
}
