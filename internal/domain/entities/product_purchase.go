package entities

import "time"

// PurchaseStatus is the fulfilment state of an event add-on product purchase.
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusRefunded  PurchaseStatus = "refunded"
)

// ProductPurchase is a member's purchase of an add-on product attached to an
// event (merchandise, recordings, workshop kits).
//
// Storage model (DynamoDB):
//   - PK: id (UUID string)
//
// Commission on product purchases follows the owning event's rate.
type ProductPurchase struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	EventID   string `json:"event_id"`
	MemberID  string `json:"member_id"`
	UserID    string `json:"user_id"`

	PurchaseStatus PurchaseStatus `json:"purchase_status"`
	PaymentStatus  PaymentStatus  `json:"payment_status"`

	PaymentSettlement
	GatewayCorrelation

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
