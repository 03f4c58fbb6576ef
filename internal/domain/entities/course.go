package entities

import "time"

// Course is an authored course sold on the marketplace. PricePaise of zero
// means a free course; CommissionRate of zero defers to the platform default
// for courses.
type Course struct {
	ID             string    `json:"id"`
	MentorID       string    `json:"mentor_id"`
	Title          string    `json:"title"`
	PricePaise     Paise     `json:"price"`
	CommissionRate float64   `json:"commission_rate,omitempty"`
	Published      bool      `json:"published"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
