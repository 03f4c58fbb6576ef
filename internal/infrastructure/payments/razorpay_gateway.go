package payments

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase/interfaces"

	razorpay "github.com/razorpay/razorpay-go"
)

var ErrMissingGatewayCredentials = errors.New("missing gateway key id/secret")
var ErrGatewayNotConfigured = errors.New("payment gateway not configured")

// RazorpayGateway creates gateway orders through the Razorpay server-side
// API. The receipt is the payment-bearing row id and the notes map carries
// the typed discriminator, so webhook deliveries can be classified under
// either correlation scheme.
type RazorpayGateway struct {
	client *razorpay.Client
}

var _ interfaces.IPaymentGateway = (*RazorpayGateway)(nil)

func NewRazorpayGateway(keyID, keySecret string) (*RazorpayGateway, error) {
	if keyID == "" || keySecret == "" {
		log.Printf("[checkout][gateway] missing GATEWAY_KEY_ID / GATEWAY_KEY_SECRET")
		return nil, ErrMissingGatewayCredentials
	}
	log.Printf("[checkout][gateway] razorpay client initialized")
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}, nil
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount entities.Paise, currency, receipt string, notes map[string]string) (string, error) {
	if g == nil || g.client == nil {
		return "", ErrGatewayNotConfigured
	}
	log.Printf("[checkout][gateway] order create start receipt=%s amount=%d currency=%s", receipt, amount, currency)

	noteData := make(map[string]interface{}, len(notes))
	for k, v := range notes {
		noteData[k] = v
	}
	data := map[string]interface{}{
		"amount":   int64(amount),
		"currency": currency,
		"receipt":  receipt,
		"notes":    noteData,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		log.Printf("[checkout][gateway] order create failed receipt=%s err=%v", receipt, err)
		return "", err
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("gateway order response missing id: %v", body)
	}
	log.Printf("[checkout][gateway] order create success receipt=%s order_id=%s", receipt, orderID)
	return orderID, nil
}
