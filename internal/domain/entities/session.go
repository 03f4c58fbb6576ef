package entities

import "time"

// SessionStatus is the booking lifecycle of a mentor session. Payment
// settlement moves a scheduled session to confirmed; completion and
// cancellation are driven elsewhere.
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusConfirmed SessionStatus = "confirmed"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// MentorSession is a 1:1 mentor booking. Free sessions skip the payment
// lifecycle entirely and are confirmed at booking time.
//
// Storage model (DynamoDB):
//   - PK: id (UUID string)
//
// CommissionRate is a percentage (0-100) set on the session itself; when zero
// the platform default for sessions applies.
type MentorSession struct {
	ID       string `json:"id"`
	MentorID string `json:"mentor_id"`
	MemberID string `json:"member_id"`
	UserID   string `json:"user_id"`

	Status      SessionStatus `json:"status"`
	ConfirmedAt *time.Time    `json:"confirmed_at,omitempty"`

	CommissionRate float64       `json:"commission_rate,omitempty"`
	PaymentStatus  PaymentStatus `json:"payment_status"`

	PaymentSettlement
	GatewayCorrelation

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
