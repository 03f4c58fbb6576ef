package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidGatewayEvent = errors.New("invalid gateway event")
)

// ReconcileOutcome reports what a webhook delivery did. Handled is false for
// event kinds this service does not process and for unresolved payments; both
// are acknowledged so the gateway does not retry them forever.
type ReconcileOutcome struct {
	Handled   bool
	Duplicate bool
	Type      entities.PaymentType
	EntityID  string
}

// IPaymentEventUseCase reconciles verified gateway webhook events against the
// payment-bearing entities.
type IPaymentEventUseCase interface {
	ProcessEvent(ctx context.Context, evt entities.GatewayEvent) (ReconcileOutcome, error)
}

// PaymentEventDeps are the ports the reconciliation pipeline writes through.
type PaymentEventDeps struct {
	Enrollments   interfaces.IEnrollmentRepository
	Sessions      interfaces.ISessionRepository
	Registrations interfaces.IEventRegistrationRepository
	Purchases     interfaces.IProductPurchaseRepository
	Courses       interfaces.ICourseRepository
	Events        interfaces.IEventRepository
	Settings      interfaces.ISettingsRepository
	Notifications interfaces.INotificationRepository
	Ledger        interfaces.IWebhookEventRepository
	Publisher     interfaces.INotificationPublisher
}

// PaymentEventUseCase is the single-pass reconciliation pipeline:
// classify -> load entity -> ledger record (idempotency) -> commission split
// -> row update -> notification enqueue.
type PaymentEventUseCase struct {
	classifier *Classifier
	d          PaymentEventDeps
}

var _ IPaymentEventUseCase = (*PaymentEventUseCase)(nil)

func NewPaymentEventUseCase(d PaymentEventDeps) *PaymentEventUseCase {
	return &PaymentEventUseCase{
		classifier: NewClassifier(d.Enrollments, d.Sessions, d.Registrations, d.Purchases),
		d:          d,
	}
}

func (u *PaymentEventUseCase) ProcessEvent(ctx context.Context, evt entities.GatewayEvent) (ReconcileOutcome, error) {
	switch evt.Kind {
	case entities.GatewayEventPaymentCaptured, entities.GatewayEventPaymentFailed, entities.GatewayEventPaymentRefunded:
	default:
		log.Printf("[reconcile][usecase] ignoring unhandled event kind=%q", evt.Kind)
		return ReconcileOutcome{}, nil
	}

	p := evt.Payment
	if strings.TrimSpace(p.ID) == "" {
		return ReconcileOutcome{}, ErrInvalidGatewayEvent
	}
	if evt.Kind == entities.GatewayEventPaymentRefunded && (evt.Refund == nil || strings.TrimSpace(evt.Refund.ID) == "") {
		return ReconcileOutcome{}, ErrInvalidGatewayEvent
	}

	pt, entityID, err := u.classifier.Classify(ctx, p)
	if errors.Is(err, ErrPaymentUnresolved) {
		log.Printf("[reconcile][usecase] unresolved payment dropped payment_id=%s order_id=%s", p.ID, p.OrderID)
		return ReconcileOutcome{}, nil
	}
	if err != nil {
		return ReconcileOutcome{}, err
	}

	view, found, err := u.loadEntity(ctx, pt, entityID)
	if err != nil {
		return ReconcileOutcome{}, err
	}
	if !found {
		log.Printf("[reconcile][usecase] classified entity missing type=%s entity_id=%s payment_id=%s", pt, entityID, p.ID)
		return ReconcileOutcome{}, nil
	}

	// A refund can be delivered before its capture. It must be dropped
	// without a ledger row so the gateway's retry still lands once the
	// entity is paid; ledgering it here would make the retry a duplicate
	// and lose the refund for good.
	if evt.Kind == entities.GatewayEventPaymentRefunded && view.paymentStatus != entities.PaymentStatusPaid {
		log.Printf("[reconcile][usecase] refund for non-paid entity dropped type=%s entity_id=%s status=%s refund_id=%s",
			pt, entityID, view.paymentStatus, evt.Refund.ID)
		return ReconcileOutcome{}, nil
	}

	// One ledger row per (payment, event kind). Writing it before any state
	// change makes duplicate gateway deliveries no-ops.
	created, err := u.d.Ledger.Record(ctx, entities.WebhookEvent{
		ID:          entities.LedgerID(p.ID, evt.Kind),
		Kind:        evt.Kind,
		PaymentID:   p.ID,
		OrderID:     p.OrderID,
		PaymentType: pt,
		EntityID:    entityID,
		ReceivedAt:  time.Now().UTC(),
	})
	if err != nil {
		return ReconcileOutcome{}, err
	}
	if !created {
		log.Printf("[reconcile][usecase] duplicate delivery skipped payment_id=%s event=%s", p.ID, evt.Kind)
		return ReconcileOutcome{Handled: true, Duplicate: true, Type: pt, EntityID: entityID}, nil
	}

	switch evt.Kind {
	case entities.GatewayEventPaymentCaptured:
		err = u.applyCapture(ctx, pt, entityID, view, evt)
	case entities.GatewayEventPaymentFailed:
		err = u.applyFailure(ctx, pt, entityID, view, p)
	case entities.GatewayEventPaymentRefunded:
		err = u.applyRefund(ctx, pt, entityID, view, *evt.Refund)
	}
	if err != nil {
		return ReconcileOutcome{}, err
	}

	log.Printf("[reconcile][usecase] event applied event=%s type=%s entity_id=%s payment_id=%s", evt.Kind, pt, entityID, p.ID)
	return ReconcileOutcome{Handled: true, Type: pt, EntityID: entityID}, nil
}

// entityView is the slice of a payment-bearing row the pipeline needs:
// notification recipient, rate sources, stored amount and status.
type entityView struct {
	userID        string
	courseID      string
	eventID       string
	sessionRate   float64
	amountPaise   entities.Paise
	paymentStatus entities.PaymentStatus
}

func (u *PaymentEventUseCase) loadEntity(ctx context.Context, pt entities.PaymentType, id string) (entityView, bool, error) {
	switch pt {
	case entities.PaymentTypeCourse:
		e, err := u.d.Enrollments.GetByID(ctx, id)
		if err != nil || e.ID == "" {
			return entityView{}, false, err
		}
		return entityView{userID: e.UserID, courseID: e.CourseID, amountPaise: e.AmountPaise, paymentStatus: e.PaymentStatus}, true, nil
	case entities.PaymentTypeSession:
		s, err := u.d.Sessions.GetByID(ctx, id)
		if err != nil || s.ID == "" {
			return entityView{}, false, err
		}
		return entityView{userID: s.UserID, sessionRate: s.CommissionRate, amountPaise: s.AmountPaise, paymentStatus: s.PaymentStatus}, true, nil
	case entities.PaymentTypeEvent:
		r, err := u.d.Registrations.GetByID(ctx, id)
		if err != nil || r.ID == "" {
			return entityView{}, false, err
		}
		return entityView{userID: r.UserID, eventID: r.EventID, amountPaise: r.AmountPaise, paymentStatus: r.PaymentStatus}, true, nil
	case entities.PaymentTypeEventProduct:
		pp, err := u.d.Purchases.GetByID(ctx, id)
		if err != nil || pp.ID == "" {
			return entityView{}, false, err
		}
		return entityView{userID: pp.UserID, eventID: pp.EventID, amountPaise: pp.AmountPaise, paymentStatus: pp.PaymentStatus}, true, nil
	}
	return entityView{}, false, ErrInvalidGatewayEvent
}

func (u *PaymentEventUseCase) applyCapture(ctx context.Context, pt entities.PaymentType, entityID string, view entityView, evt entities.GatewayEvent) error {
	p := evt.Payment

	rate, err := u.resolveCommissionRate(ctx, pt, view)
	if err != nil {
		return err
	}

	// The gateway's captured amount is the gross; the stored row amount is
	// the fallback for gateways that omit it on the webhook.
	amount := p.AmountPaise
	if amount <= 0 {
		amount = view.amountPaise
	}

	commission, payout, err := SplitCommission(amount, rate)
	if err != nil {
		return err
	}
	settlement := entities.PaymentSettlement{
		AmountPaise:     amount,
		CommissionPaise: commission,
		PayoutPaise:     payout,
	}
	log.Printf("[reconcile][usecase] capture split type=%s entity_id=%s amount=%d rate=%.2f commission=%d payout=%d",
		pt, entityID, amount, rate, commission, payout)

	switch pt {
	case entities.PaymentTypeCourse:
		_, err = u.d.Enrollments.MarkPaid(ctx, entityID, settlement, p.ID, evt.Signature)
	case entities.PaymentTypeSession:
		_, err = u.d.Sessions.MarkPaid(ctx, entityID, settlement, p.ID, evt.Signature)
	case entities.PaymentTypeEvent:
		_, err = u.d.Registrations.MarkPaid(ctx, entityID, settlement, p.ID, evt.Signature)
	case entities.PaymentTypeEventProduct:
		_, err = u.d.Purchases.MarkPaid(ctx, entityID, settlement, p.ID, evt.Signature)
	}
	if err != nil {
		return err
	}

	return u.enqueueNotification(ctx, entities.Notification{
		ID:      uuid.NewString(),
		UserID:  view.userID,
		Type:    entities.NotificationTypePaymentConfirmed,
		Title:   "Payment confirmed",
		Message: fmt.Sprintf("Your payment of %s for your %s has been received.", entities.FormatINR(amount), typeLabel(pt)),
		Channel: "email",
		Metadata: map[string]interface{}{
			"transactionId": p.ID,
			"orderId":       p.OrderID,
			"type":          string(pt),
			"entityId":      entityID,
			"amount":        int64(amount),
		},
		Status:    entities.NotificationStatusPending,
		CreatedAt: time.Now().UTC(),
	})
}

func (u *PaymentEventUseCase) applyFailure(ctx context.Context, pt entities.PaymentType, entityID string, view entityView, p entities.GatewayPayment) error {
	var err error
	switch pt {
	case entities.PaymentTypeCourse:
		_, err = u.d.Enrollments.MarkFailed(ctx, entityID, p.ID)
	case entities.PaymentTypeSession:
		_, err = u.d.Sessions.MarkFailed(ctx, entityID, p.ID)
	case entities.PaymentTypeEvent:
		_, err = u.d.Registrations.MarkFailed(ctx, entityID, p.ID)
	case entities.PaymentTypeEventProduct:
		_, err = u.d.Purchases.MarkFailed(ctx, entityID, p.ID)
	}
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Your payment for your %s could not be processed.", typeLabel(pt))
	if desc := strings.TrimSpace(p.ErrorDescription); desc != "" {
		msg = fmt.Sprintf("Your payment for your %s failed: %s", typeLabel(pt), desc)
	}
	return u.enqueueNotification(ctx, entities.Notification{
		ID:      uuid.NewString(),
		UserID:  view.userID,
		Type:    entities.NotificationTypePaymentFailed,
		Title:   "Payment failed",
		Message: msg,
		Channel: "email",
		Metadata: map[string]interface{}{
			"transactionId": p.ID,
			"orderId":       p.OrderID,
			"type":          string(pt),
			"entityId":      entityID,
			"error":         p.ErrorDescription,
		},
		Status:    entities.NotificationStatusPending,
		CreatedAt: time.Now().UTC(),
	})
}

// applyRefund runs only for paid entities; ProcessEvent drops refunds for any
// other status before the ledger write.
func (u *PaymentEventUseCase) applyRefund(ctx context.Context, pt entities.PaymentType, entityID string, view entityView, refund entities.GatewayRefund) error {
	var err error
	switch pt {
	case entities.PaymentTypeCourse:
		_, err = u.d.Enrollments.MarkRefunded(ctx, entityID)
	case entities.PaymentTypeSession:
		_, err = u.d.Sessions.MarkRefunded(ctx, entityID)
	case entities.PaymentTypeEvent:
		_, err = u.d.Registrations.MarkRefunded(ctx, entityID)
	case entities.PaymentTypeEventProduct:
		_, err = u.d.Purchases.MarkRefunded(ctx, entityID)
	}
	if err != nil {
		return err
	}

	return u.enqueueNotification(ctx, entities.Notification{
		ID:      uuid.NewString(),
		UserID:  view.userID,
		Type:    entities.NotificationTypePaymentRefunded,
		Title:   "Payment refunded",
		Message: fmt.Sprintf("Your payment for your %s was refunded. %s will be returned to your payment method.", typeLabel(pt), entities.FormatINR(refund.AmountPaise)),
		Channel: "email",
		Metadata: map[string]interface{}{
			"transactionId": refund.PaymentID,
			"refundId":      refund.ID,
			"type":          string(pt),
			"entityId":      entityID,
			"amount":        int64(refund.AmountPaise),
		},
		Status:    entities.NotificationStatusPending,
		CreatedAt: time.Now().UTC(),
	})
}

// resolveCommissionRate reads the rate in effect at settlement time: the
// owning row first, then the platform settings override, then the hardcoded
// per-type default. The rate is deliberately NOT snapshotted at checkout;
// changing that alters the money split and needs a product decision.
func (u *PaymentEventUseCase) resolveCommissionRate(ctx context.Context, pt entities.PaymentType, view entityView) (float64, error) {
	switch pt {
	case entities.PaymentTypeCourse:
		if view.courseID != "" {
			crs, err := u.d.Courses.GetByID(ctx, view.courseID)
			if err != nil {
				return 0, err
			}
			if crs.CommissionRate > 0 {
				return crs.CommissionRate, nil
			}
		}
		st, err := u.d.Settings.Get(ctx)
		if err != nil {
			return 0, err
		}
		if st.CourseCommissionRate > 0 {
			return st.CourseCommissionRate, nil
		}
	case entities.PaymentTypeSession:
		if view.sessionRate > 0 {
			return view.sessionRate, nil
		}
		st, err := u.d.Settings.Get(ctx)
		if err != nil {
			return 0, err
		}
		if st.SessionCommissionRate > 0 {
			return st.SessionCommissionRate, nil
		}
	case entities.PaymentTypeEvent:
		if view.eventID != "" {
			ev, err := u.d.Events.GetByID(ctx, view.eventID)
			if err != nil {
				return 0, err
			}
			if ev.CommissionRate > 0 {
				return ev.CommissionRate, nil
			}
		}
		st, err := u.d.Settings.Get(ctx)
		if err != nil {
			return 0, err
		}
		if st.EventCommissionRate > 0 {
			return st.EventCommissionRate, nil
		}
	case entities.PaymentTypeEventProduct:
		if view.eventID != "" {
			ev, err := u.d.Events.GetByID(ctx, view.eventID)
			if err != nil {
				return 0, err
			}
			if ev.CommissionRate > 0 {
				return ev.CommissionRate, nil
			}
		}
		st, err := u.d.Settings.Get(ctx)
		if err != nil {
			return 0, err
		}
		if st.ProductCommissionRate > 0 {
			return st.ProductCommissionRate, nil
		}
	}
	return defaultRate(pt), nil
}

func (u *PaymentEventUseCase) enqueueNotification(ctx context.Context, n entities.Notification) error {
	created, err := u.d.Notifications.Create(ctx, n)
	if err != nil {
		return err
	}

	// Broker publish is best-effort; the pending row is the source of truth
	// and the dispatcher can sweep it later.
	if u.d.Publisher != nil {
		evt := entities.NotificationEnqueuedEvent{
			NotificationID: created.ID,
			UserID:         created.UserID,
			Type:           created.Type,
			Title:          created.Title,
			Message:        created.Message,
			Channel:        created.Channel,
			Metadata:       created.Metadata,
			EnqueuedAt:     created.CreatedAt.Format(time.RFC3339Nano),
		}
		if err := u.d.Publisher.Publish(ctx, evt); err != nil {
			log.Printf("[reconcile][usecase] notification publish failed notification_id=%s err=%v", created.ID, err)
		}
	}
	return nil
}

func typeLabel(pt entities.PaymentType) string {
	switch pt {
	case entities.PaymentTypeCourse:
		return "course enrollment"
	case entities.PaymentTypeSession:
		return "mentor session"
	case entities.PaymentTypeEvent:
		return "event registration"
	case entities.PaymentTypeEventProduct:
		return "event product purchase"
	}
	return "purchase"
}
