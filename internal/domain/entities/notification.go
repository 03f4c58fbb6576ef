package entities

import "time"

// NotificationStatus tracks dispatch state. Rows are inserted pending by the
// reconciliation path and marked sent by the dispatcher after delivery.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
)

// Notification types emitted by payment reconciliation.
const (
	NotificationTypePaymentConfirmed = "payment_confirmed"
	NotificationTypePaymentFailed    = "payment_failed"
	NotificationTypePaymentRefunded  = "payment_refunded"
)

// Notification is a queued user-facing message. The reconciliation path only
// inserts the row and publishes a broker event; delivery over
// email/WhatsApp is the dispatcher's concern.
//
// Storage model (DynamoDB):
//   - PK: id (UUID string)
//   - GSI1 (user_id-index): user_id
type Notification struct {
	ID       string                 `json:"id"`
	UserID   string                 `json:"user_id"`
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Message  string                 `json:"message"`
	Channel  string                 `json:"channel"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Status   NotificationStatus     `json:"status"`

	CreatedAt time.Time `json:"created_at"`
}

// NotificationEnqueuedEvent is the broker payload published when a
// notification row is inserted. It carries enough for the dispatcher to
// deliver without re-reading the primary table.
type NotificationEnqueuedEvent struct {
	NotificationID string                 `json:"notification_id"`
	UserID         string                 `json:"user_id"`
	Type           string                 `json:"type"`
	Title          string                 `json:"title"`
	Message        string                 `json:"message"`
	Channel        string                 `json:"channel"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	EnqueuedAt     string                 `json:"enqueued_at"`
}
