package interfaces

import (
	"context"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
)

//go:generate mockgen -source=payment_gateway.go -destination=mocks/payment_gateway.go -package=mocks

// IPaymentGateway abstracts the external payment processor's server-side API.
//
// Checkout uses it to create an order the client widget can collect against.
// The receipt is the entity row id and the notes map carries the type
// discriminator, which together give the webhook classifier its two
// correlation schemes.
type IPaymentGateway interface {
	CreateOrder(ctx context.Context, amount entities.Paise, currency, receipt string, notes map[string]string) (orderID string, err error)
}
