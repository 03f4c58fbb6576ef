package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase/interfaces"
)

var (
	ErrInvalidCheckoutType   = errors.New("invalid payment type")
	ErrInvalidCheckoutEntity = errors.New("invalid entity id")
	ErrEntityNotFound        = errors.New("entity not found")
	ErrEntityNotPending      = errors.New("entity not awaiting payment")
	ErrNothingToCollect      = errors.New("entity has no amount to collect")
	ErrGatewayOrderFailed    = errors.New("gateway order creation failed")
)

// CheckoutOrder is what the client checkout widget needs to collect a
// payment.
type CheckoutOrder struct {
	OrderID  string
	Amount   entities.Paise
	Currency string
}

// ICheckoutUseCase initiates gateway collection for an existing pending
// payment-bearing entity.
type ICheckoutUseCase interface {
	CreateOrder(ctx context.Context, pt entities.PaymentType, entityID string) (CheckoutOrder, error)
}

// CheckoutUseCase creates a gateway order for a pending entity and persists
// the returned order id on the row. The order carries both correlation
// schemes the classifier understands: the entity id as receipt and the typed
// notes map.
type CheckoutUseCase struct {
	gateway       interfaces.IPaymentGateway
	enrollments   interfaces.IEnrollmentRepository
	sessions      interfaces.ISessionRepository
	registrations interfaces.IEventRegistrationRepository
	purchases     interfaces.IProductPurchaseRepository
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(
	gateway interfaces.IPaymentGateway,
	enrollments interfaces.IEnrollmentRepository,
	sessions interfaces.ISessionRepository,
	registrations interfaces.IEventRegistrationRepository,
	purchases interfaces.IProductPurchaseRepository,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		gateway:       gateway,
		enrollments:   enrollments,
		sessions:      sessions,
		registrations: registrations,
		purchases:     purchases,
	}
}

func (u *CheckoutUseCase) CreateOrder(ctx context.Context, pt entities.PaymentType, entityID string) (CheckoutOrder, error) {
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return CheckoutOrder{}, ErrInvalidCheckoutEntity
	}
	if !pt.Valid() {
		return CheckoutOrder{}, ErrInvalidCheckoutType
	}
	if u.gateway == nil {
		return CheckoutOrder{}, errors.New("payment gateway not configured")
	}

	amount, status, err := u.loadCollectable(ctx, pt, entityID)
	if err != nil {
		return CheckoutOrder{}, err
	}
	if status != entities.PaymentStatusPending {
		log.Printf("[checkout][usecase] entity not pending type=%s entity_id=%s status=%s", pt, entityID, status)
		return CheckoutOrder{}, ErrEntityNotPending
	}
	if amount <= 0 {
		return CheckoutOrder{}, ErrNothingToCollect
	}

	notes := map[string]string{
		entities.NoteKeyType: string(pt),
		noteIDKey(pt):        entityID,
	}
	orderID, err := u.gateway.CreateOrder(ctx, amount, "INR", entityID, notes)
	if err != nil {
		log.Printf("[checkout][usecase] gateway order failed type=%s entity_id=%s err=%v", pt, entityID, err)
		return CheckoutOrder{}, errors.Join(ErrGatewayOrderFailed, err)
	}

	if err := u.persistOrderID(ctx, pt, entityID, orderID); err != nil {
		return CheckoutOrder{}, err
	}
	log.Printf("[checkout][usecase] order created type=%s entity_id=%s order_id=%s amount=%d", pt, entityID, orderID, amount)

	return CheckoutOrder{OrderID: orderID, Amount: amount, Currency: "INR"}, nil
}

func (u *CheckoutUseCase) loadCollectable(ctx context.Context, pt entities.PaymentType, entityID string) (entities.Paise, entities.PaymentStatus, error) {
	switch pt {
	case entities.PaymentTypeCourse:
		e, err := u.enrollments.GetByID(ctx, entityID)
		if err != nil {
			return 0, "", err
		}
		if e.ID == "" {
			return 0, "", ErrEntityNotFound
		}
		return e.AmountPaise, e.PaymentStatus, nil
	case entities.PaymentTypeSession:
		s, err := u.sessions.GetByID(ctx, entityID)
		if err != nil {
			return 0, "", err
		}
		if s.ID == "" {
			return 0, "", ErrEntityNotFound
		}
		return s.AmountPaise, s.PaymentStatus, nil
	case entities.PaymentTypeEvent:
		r, err := u.registrations.GetByID(ctx, entityID)
		if err != nil {
			return 0, "", err
		}
		if r.ID == "" {
			return 0, "", ErrEntityNotFound
		}
		return r.AmountPaise, r.PaymentStatus, nil
	case entities.PaymentTypeEventProduct:
		p, err := u.purchases.GetByID(ctx, entityID)
		if err != nil {
			return 0, "", err
		}
		if p.ID == "" {
			return 0, "", ErrEntityNotFound
		}
		return p.AmountPaise, p.PaymentStatus, nil
	}
	return 0, "", ErrInvalidCheckoutType
}

func (u *CheckoutUseCase) persistOrderID(ctx context.Context, pt entities.PaymentType, entityID, orderID string) error {
	var err error
	switch pt {
	case entities.PaymentTypeCourse:
		_, err = u.enrollments.SetGatewayOrder(ctx, entityID, orderID)
	case entities.PaymentTypeSession:
		_, err = u.sessions.SetGatewayOrder(ctx, entityID, orderID)
	case entities.PaymentTypeEvent:
		_, err = u.registrations.SetGatewayOrder(ctx, entityID, orderID)
	case entities.PaymentTypeEventProduct:
		_, err = u.purchases.SetGatewayOrder(ctx, entityID, orderID)
	}
	return err
}
