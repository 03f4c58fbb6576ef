package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase/interfaces"
)

// ErrPaymentUnresolved means neither correlation scheme matched the payment
// to an entity. The caller logs and drops the event; scheduling a retry is
// pointless because nothing it needs will appear later.
var ErrPaymentUnresolved = errors.New("payment could not be classified")

// Classifier maps an inbound gateway payment to the entity it settles.
//
// Fast path: the notes map written at order creation carries the payment type
// and the payment-bearing row id; when both are present no table is probed.
// Fallback: legacy checkout flows pass the row id as the gateway order
// receipt instead of populating notes, so the four entity tables are probed
// in fixed order with the order id until one matches.
type Classifier struct {
	enrollments   interfaces.IEnrollmentRepository
	sessions      interfaces.ISessionRepository
	registrations interfaces.IEventRegistrationRepository
	purchases     interfaces.IProductPurchaseRepository
}

func NewClassifier(
	enrollments interfaces.IEnrollmentRepository,
	sessions interfaces.ISessionRepository,
	registrations interfaces.IEventRegistrationRepository,
	purchases interfaces.IProductPurchaseRepository,
) *Classifier {
	return &Classifier{
		enrollments:   enrollments,
		sessions:      sessions,
		registrations: registrations,
		purchases:     purchases,
	}
}

// Classify returns the payment type and owning entity id, or
// ErrPaymentUnresolved.
func (c *Classifier) Classify(ctx context.Context, p entities.GatewayPayment) (entities.PaymentType, string, error) {
	if pt, id, ok := classifyFromNotes(p.Notes); ok {
		return pt, id, nil
	}

	orderID := strings.TrimSpace(p.OrderID)
	if orderID == "" {
		return "", "", ErrPaymentUnresolved
	}
	log.Printf("[reconcile][classifier] notes missing; probing tables order_id=%s payment_id=%s", orderID, p.ID)

	if e, err := c.enrollments.GetByID(ctx, orderID); err != nil {
		return "", "", err
	} else if e.ID != "" {
		return entities.PaymentTypeCourse, e.ID, nil
	}
	if s, err := c.sessions.GetByID(ctx, orderID); err != nil {
		return "", "", err
	} else if s.ID != "" {
		return entities.PaymentTypeSession, s.ID, nil
	}
	if r, err := c.registrations.GetByID(ctx, orderID); err != nil {
		return "", "", err
	} else if r.ID != "" {
		return entities.PaymentTypeEvent, r.ID, nil
	}
	if pp, err := c.purchases.GetByID(ctx, orderID); err != nil {
		return "", "", err
	} else if pp.ID != "" {
		return entities.PaymentTypeEventProduct, pp.ID, nil
	}

	return "", "", ErrPaymentUnresolved
}

func classifyFromNotes(notes map[string]string) (entities.PaymentType, string, bool) {
	if len(notes) == 0 {
		return "", "", false
	}
	pt := entities.PaymentType(strings.TrimSpace(notes[entities.NoteKeyType]))
	if !pt.Valid() {
		return "", "", false
	}
	id := strings.TrimSpace(notes[noteIDKey(pt)])
	if id == "" {
		return "", "", false
	}
	return pt, id, true
}

// noteIDKey returns the type-specific note key whose value is the
// payment-bearing row id.
func noteIDKey(pt entities.PaymentType) string {
	switch pt {
	case entities.PaymentTypeCourse:
		return entities.NoteKeyCourseID
	case entities.PaymentTypeSession:
		return entities.NoteKeySessionID
	case entities.PaymentTypeEvent:
		return entities.NoteKeyEventID
	case entities.PaymentTypeEventProduct:
		return entities.NoteKeyProductID
	}
	return ""
}
