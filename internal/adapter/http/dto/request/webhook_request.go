package request

import (
	"fmt"
	"strings"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
)

// GatewayWebhookRequest mirrors the gateway's webhook envelope. Only the
// payment and refund payload entities are decoded; everything else in the
// delivery is ignored.
type GatewayWebhookRequest struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity *gatewayPaymentDTO `json:"entity"`
		} `json:"payment"`
		Refund struct {
			Entity *gatewayRefundDTO `json:"entity"`
		} `json:"refund"`
	} `json:"payload"`
}

type gatewayPaymentDTO struct {
	ID               string         `json:"id"`
	OrderID          string         `json:"order_id"`
	Amount           int64          `json:"amount"`
	Currency         string         `json:"currency"`
	Status           string         `json:"status"`
	ErrorDescription string         `json:"error_description"`
	Notes            map[string]any `json:"notes"`
}

type gatewayRefundDTO struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
}

// ToGatewayEvent converts the decoded envelope into the domain event handed
// to the reconciliation use case.
func (r GatewayWebhookRequest) ToGatewayEvent(signature string) entities.GatewayEvent {
	evt := entities.GatewayEvent{
		Kind:      entities.GatewayEventKind(strings.TrimSpace(r.Event)),
		Signature: signature,
	}

	if p := r.Payload.Payment.Entity; p != nil {
		evt.Payment = entities.GatewayPayment{
			ID:               p.ID,
			OrderID:          p.OrderID,
			AmountPaise:      entities.Paise(p.Amount),
			Currency:         p.Currency,
			Status:           p.Status,
			ErrorDescription: p.ErrorDescription,
			Notes:            stringNotes(p.Notes),
		}
	}
	if ref := r.Payload.Refund.Entity; ref != nil {
		evt.Refund = &entities.GatewayRefund{
			ID:          ref.ID,
			PaymentID:   ref.PaymentID,
			AmountPaise: entities.Paise(ref.Amount),
		}
	}
	return evt
}

// stringNotes flattens the gateway's free-form notes map. The gateway allows
// arbitrary JSON values there, but the classifier only reads string ids.
func stringNotes(raw map[string]any) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	notes := make(map[string]string, len(raw))
	for k, v := range raw {
		switch tv := v.(type) {
		case string:
			notes[k] = tv
		default:
			notes[k] = fmt.Sprintf("%v", tv)
		}
	}
	return notes
}
