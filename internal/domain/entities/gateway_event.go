package entities

import "time"

// GatewayEventKind is the webhook event name as sent by the payment gateway.
type GatewayEventKind string

const (
	GatewayEventPaymentCaptured GatewayEventKind = "payment.captured"
	GatewayEventPaymentFailed   GatewayEventKind = "payment.failed"
	GatewayEventPaymentRefunded GatewayEventKind = "payment.refunded"
)

// GatewayPayment is the payment entity embedded in a webhook delivery.
// AmountPaise is the gateway's minor-unit amount. Notes is the free-form map
// the checkout flow attaches at order creation; when populated it carries the
// payment type discriminator and the owning entity id.
type GatewayPayment struct {
	ID               string            `json:"id"`
	OrderID          string            `json:"order_id"`
	AmountPaise      Paise             `json:"amount"`
	Currency         string            `json:"currency"`
	Status           string            `json:"status"`
	ErrorDescription string            `json:"error_description,omitempty"`
	Notes            map[string]string `json:"notes,omitempty"`
}

// GatewayRefund is the refund entity embedded in a payment.refunded delivery.
type GatewayRefund struct {
	ID          string `json:"id"`
	PaymentID   string `json:"payment_id"`
	AmountPaise Paise  `json:"amount"`
}

// GatewayEvent is the decoded webhook delivery handed to the reconciliation
// use case after signature verification.
type GatewayEvent struct {
	Kind    GatewayEventKind
	Payment GatewayPayment
	Refund  *GatewayRefund

	// Signature is the verified X-Gateway-Signature header of the delivery;
	// it is persisted on the entity row that the event settles.
	Signature string
}

// Notes keys written at order creation and read by the classifier fast path.
const (
	NoteKeyType      = "type"
	NoteKeyCourseID  = "course_id"
	NoteKeySessionID = "session_id"
	NoteKeyEventID   = "event_id"
	NoteKeyProductID = "product_id"
)

// WebhookEvent is the idempotency ledger row written before any state change.
// The conditional put on its id (payment_id + ":" + event) makes duplicate
// gateway deliveries observable, so a retry neither re-applies payout updates
// nor double-enqueues notifications.
type WebhookEvent struct {
	ID          string           `json:"id"`
	Kind        GatewayEventKind `json:"event"`
	PaymentID   string           `json:"payment_id"`
	OrderID     string           `json:"order_id"`
	PaymentType PaymentType      `json:"payment_type,omitempty"`
	EntityID    string           `json:"entity_id,omitempty"`
	ReceivedAt  time.Time        `json:"received_at"`
}

// LedgerID builds the dedup key for a delivery.
func LedgerID(paymentID string, kind GatewayEventKind) string {
	return paymentID + ":" + string(kind)
}
