package entities

import "time"

// Event is a ticketed community event. TicketPricePaise of zero means a free
// event; CommissionRate of zero defers to the platform default for events.
type Event struct {
	ID               string    `json:"id"`
	OrganizerID      string    `json:"organizer_id"`
	Title            string    `json:"title"`
	TicketPricePaise Paise     `json:"ticket_price"`
	CommissionRate   float64   `json:"commission_rate,omitempty"`
	StartsAt         time.Time `json:"starts_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// EventRegistration is a member's ticket for an event.
//
// Storage model (DynamoDB):
//   - PK: id (UUID string)
type EventRegistration struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	MemberID string `json:"member_id"`
	UserID   string `json:"user_id"`

	PaymentStatus PaymentStatus `json:"payment_status"`

	PaymentSettlement
	GatewayCorrelation

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
