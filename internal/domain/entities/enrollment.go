package entities

import "time"

// EnrollmentStatus tracks course access independent of the payment lifecycle:
// a free course enrollment is active without ever being paid.
type EnrollmentStatus string

const (
	EnrollmentStatusPending EnrollmentStatus = "pending"
	EnrollmentStatusActive  EnrollmentStatus = "active"
)

// Enrollment is a member's purchase of a course.
//
// Storage model (DynamoDB):
//   - PK: id (UUID string)
//
// The row id doubles as the gateway order receipt for legacy checkout flows,
// which is what makes the classifier's fallback probe work.
type Enrollment struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	MemberID string `json:"member_id"`
	UserID   string `json:"user_id"`

	PaymentStatus    PaymentStatus    `json:"payment_status"`
	EnrollmentStatus EnrollmentStatus `json:"enrollment_status"`

	PaymentSettlement
	GatewayCorrelation

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
