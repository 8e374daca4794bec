package domain

// NotificationType enumerates the lifecycle events a notification can carry.
type NotificationType string

const (
	NotificationCreate NotificationType = "CREATE"
	NotificationUpdate NotificationType = "UPDATE"
	NotificationDelete NotificationType = "DELETE"
)

// Notification is the immutable point-in-time value pushed to connected
// clients. Data carries the serialized payload for the affected entity.
type Notification struct {
	Entity    string           `json:"entity"`
	Type      NotificationType `json:"type"`
	Data      string           `json:"data"`
	CreatedAt string           `json:"created_at"`
}
