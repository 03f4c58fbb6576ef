package response

import (
	"time"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
)

type NotificationResponse struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Channel   string                 `json:"channel"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Status    string                 `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
}

func FromNotification(n entities.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Channel:   n.Channel,
		Metadata:  n.Metadata,
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt,
	}
}

// NotificationListResponse is the feed payload ordered newest first.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Count         int                    `json:"count"`
}

func FromNotifications(items []entities.Notification) NotificationListResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, FromNotification(n))
	}
	return NotificationListResponse{Notifications: out, Count: len(out)}
}
