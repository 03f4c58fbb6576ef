package response

import "github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase"

// CheckoutOrderResponse is what the client checkout widget consumes. KeyID is
// the gateway's public key id, safe to expose.
type CheckoutOrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id,omitempty"`
}

func FromCheckoutOrder(o usecase.CheckoutOrder, keyID string) CheckoutOrderResponse {
	return CheckoutOrderResponse{
		OrderID:  o.OrderID,
		Amount:   int64(o.Amount),
		Currency: o.Currency,
		KeyID:    keyID,
	}
}
