package entities

// PaymentStatus is the settlement lifecycle shared by every payment-bearing
// entity.
//
// Transitions: pending -> paid | failed, paid -> refunded. There is no
// failed -> paid edge; a retried payment arrives with a fresh gateway payment
// id and is reconciled from scratch.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentType is the closed set of entities a gateway event can settle.
type PaymentType string

const (
	PaymentTypeCourse       PaymentType = "course"
	PaymentTypeSession      PaymentType = "session"
	PaymentTypeEvent        PaymentType = "event"
	PaymentTypeEventProduct PaymentType = "event_product"
)

// Valid reports whether t is one of the four known payment types.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeCourse, PaymentTypeSession, PaymentTypeEvent, PaymentTypeEventProduct:
		return true
	}
	return false
}

// GatewayCorrelation carries the gateway-side identifiers stored on every
// payment-bearing entity.
type GatewayCorrelation struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	GatewaySignature string `json:"gateway_signature"`
}

// PaymentSettlement is the money breakdown persisted when a payment settles.
// PayoutAmount is always AmountPaise - CommissionPaise, so the
// commission + payout == amount invariant holds by construction.
type PaymentSettlement struct {
	AmountPaise     Paise `json:"payment_amount"`
	CommissionPaise Paise `json:"commission_amount"`
	PayoutPaise     Paise `json:"payout"`
}
