package interfaces

import (
	"context"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories.go -package=mocks

// IEnrollmentRepository abstracts DynamoDB persistence for course enrollments.
//
// Mark* methods are exists-guarded: a miss returns a zero entity and nil
// error, mirroring GetByID.
type IEnrollmentRepository interface {
	Create(ctx context.Context, e entities.Enrollment) (entities.Enrollment, error)
	GetByID(ctx context.Context, id string) (entities.Enrollment, error)
	SetGatewayOrder(ctx context.Context, id, orderID string) (entities.Enrollment, error)
	MarkPaid(ctx context.Context, id string, s entities.PaymentSettlement, paymentID, signature string) (entities.Enrollment, error)
	MarkFailed(ctx context.Context, id, paymentID string) (entities.Enrollment, error)
	MarkRefunded(ctx context.Context, id string) (entities.Enrollment, error)
}

// ISessionRepository abstracts DynamoDB persistence for mentor sessions.
// MarkPaid additionally confirms the booking (status + confirmation time).
type ISessionRepository interface {
	Create(ctx context.Context, s entities.MentorSession) (entities.MentorSession, error)
	GetByID(ctx context.Context, id string) (entities.MentorSession, error)
	SetGatewayOrder(ctx context.Context, id, orderID string) (entities.MentorSession, error)
	MarkPaid(ctx context.Context, id string, s entities.PaymentSettlement, paymentID, signature string) (entities.MentorSession, error)
	MarkFailed(ctx context.Context, id, paymentID string) (entities.MentorSession, error)
	MarkRefunded(ctx context.Context, id string) (entities.MentorSession, error)
}

// IEventRegistrationRepository abstracts DynamoDB persistence for event
// registrations.
type IEventRegistrationRepository interface {
	Create(ctx context.Context, r entities.EventRegistration) (entities.EventRegistration, error)
	GetByID(ctx context.Context, id string) (entities.EventRegistration, error)
	SetGatewayOrder(ctx context.Context, id, orderID string) (entities.EventRegistration, error)
	MarkPaid(ctx context.Context, id string, s entities.PaymentSettlement, paymentID, signature string) (entities.EventRegistration, error)
	MarkFailed(ctx context.Context, id, paymentID string) (entities.EventRegistration, error)
	MarkRefunded(ctx context.Context, id string) (entities.EventRegistration, error)
}

// IProductPurchaseRepository abstracts DynamoDB persistence for event-product
// purchases. MarkPaid completes the purchase; MarkRefunded also flips the
// purchase status to refunded.
type IProductPurchaseRepository interface {
	Create(ctx context.Context, p entities.ProductPurchase) (entities.ProductPurchase, error)
	GetByID(ctx context.Context, id string) (entities.ProductPurchase, error)
	SetGatewayOrder(ctx context.Context, id, orderID string) (entities.ProductPurchase, error)
	MarkPaid(ctx context.Context, id string, s entities.PaymentSettlement, paymentID, signature string) (entities.ProductPurchase, error)
	MarkFailed(ctx context.Context, id, paymentID string) (entities.ProductPurchase, error)
	MarkRefunded(ctx context.Context, id string) (entities.ProductPurchase, error)
}

// ICourseRepository provides the course rows that own enrollment commission
// rates.
type ICourseRepository interface {
	Create(ctx context.Context, c entities.Course) (entities.Course, error)
	GetByID(ctx context.Context, id string) (entities.Course, error)
}

// IEventRepository provides the event rows that own registration and product
// commission rates.
type IEventRepository interface {
	Create(ctx context.Context, e entities.Event) (entities.Event, error)
	GetByID(ctx context.Context, id string) (entities.Event, error)
}

// ISettingsRepository reads the admin-wide platform settings row.
// A missing row returns a zero value and nil error.
type ISettingsRepository interface {
	Get(ctx context.Context) (entities.PlatformSettings, error)
}

// INotificationRepository abstracts DynamoDB persistence for queued
// notifications. ListPending backs the dispatcher's sweep of rows whose
// broker publish was lost.
type INotificationRepository interface {
	Create(ctx context.Context, n entities.Notification) (entities.Notification, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Notification, error)
	ListPending(ctx context.Context) ([]entities.Notification, error)
	MarkSent(ctx context.Context, id string) (entities.Notification, error)
}

// IWebhookEventRepository is the idempotency ledger. Record performs a
// conditional put keyed by the delivery's ledger id and reports whether the
// row was newly created; false means this delivery was already processed.
type IWebhookEventRepository interface {
	Record(ctx context.Context, e entities.WebhookEvent) (bool, error)
}
