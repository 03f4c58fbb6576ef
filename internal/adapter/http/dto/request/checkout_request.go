package request

// CheckoutCreateRequest is the payload for the checkout order route.
type CheckoutCreateRequest struct {
	Type     string `json:"type" binding:"required"`
	EntityID string `json:"entity_id" binding:"required"`
}
