package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	mock_interfaces "github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type pipelineMocks struct {
	enrollments   *mock_interfaces.MockIEnrollmentRepository
	sessions      *mock_interfaces.MockISessionRepository
	registrations *mock_interfaces.MockIEventRegistrationRepository
	purchases     *mock_interfaces.MockIProductPurchaseRepository
	courses       *mock_interfaces.MockICourseRepository
	events        *mock_interfaces.MockIEventRepository
	settings      *mock_interfaces.MockISettingsRepository
	notifications *mock_interfaces.MockINotificationRepository
	ledger        *mock_interfaces.MockIWebhookEventRepository
	publisher     *mock_interfaces.MockINotificationPublisher
}

func newPipeline(ctrl *gomock.Controller) (*PaymentEventUseCase, pipelineMocks) {
	m := pipelineMocks{
		enrollments:   mock_interfaces.NewMockIEnrollmentRepository(ctrl),
		sessions:      mock_interfaces.NewMockISessionRepository(ctrl),
		registrations: mock_interfaces.NewMockIEventRegistrationRepository(ctrl),
		purchases:     mock_interfaces.NewMockIProductPurchaseRepository(ctrl),
		courses:       mock_interfaces.NewMockICourseRepository(ctrl),
		events:        mock_interfaces.NewMockIEventRepository(ctrl),
		settings:      mock_interfaces.NewMockISettingsRepository(ctrl),
		notifications: mock_interfaces.NewMockINotificationRepository(ctrl),
		ledger:        mock_interfaces.NewMockIWebhookEventRepository(ctrl),
		publisher:     mock_interfaces.NewMockINotificationPublisher(ctrl),
	}
	uc := NewPaymentEventUseCase(PaymentEventDeps{
		Enrollments:   m.enrollments,
		Sessions:      m.sessions,
		Registrations: m.registrations,
		Purchases:     m.purchases,
		Courses:       m.courses,
		Events:        m.events,
		Settings:      m.settings,
		Notifications: m.notifications,
		Ledger:        m.ledger,
		Publisher:     m.publisher,
	})
	return uc, m
}

func courseCaptureEvent() entities.GatewayEvent {
	return entities.GatewayEvent{
		Kind:      entities.GatewayEventPaymentCaptured,
		Signature: "sig-abc",
		Payment: entities.GatewayPayment{
			ID:          "pay_1",
			OrderID:     "order_1",
			AmountPaise: 100000,
			Currency:    "INR",
			Status:      "captured",
			Notes: map[string]string{
				entities.NoteKeyType:     string(entities.PaymentTypeCourse),
				entities.NoteKeyCourseID: "enr-1",
			},
		},
	}
}

func TestProcessEvent_CapturedCourse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPipeline(ctrl)

	m.enrollments.EXPECT().GetByID(gomock.Any(), "enr-1").Return(entities.Enrollment{
		ID: "enr-1", CourseID: "crs-1", UserID: "user-1",
		PaymentStatus:     entities.PaymentStatusPending,
		PaymentSettlement: entities.PaymentSettlement{AmountPaise: 100000},
	}, nil)
	m.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e entities.WebhookEvent) (bool, error) {
			if e.ID != "pay_1:payment.captured" {
				t.Fatalf("unexpected ledger id %q", e.ID)
			}
			if e.PaymentType != entities.PaymentTypeCourse || e.EntityID != "enr-1" {
				t.Fatalf("unexpected ledger classification %s/%s", e.PaymentType, e.EntityID)
			}
			return true, nil
		})
	m.courses.EXPECT().GetByID(gomock.Any(), "crs-1").Return(entities.Course{ID: "crs-1", CommissionRate: 15}, nil)
	m.enrollments.EXPECT().MarkPaid(gomock.Any(), "enr-1", entities.PaymentSettlement{
		AmountPaise:     100000,
		CommissionPaise: 15000,
		PayoutPaise:     85000,
	}, "pay_1", "sig-abc").Return(entities.Enrollment{ID: "enr-1"}, nil)
	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n entities.Notification) (entities.Notification, error) {
			if n.Type != entities.NotificationTypePaymentConfirmed {
				t.Fatalf("unexpected notification type %q", n.Type)
			}
			if n.UserID != "user-1" {
				t.Fatalf("unexpected recipient %q", n.UserID)
			}
			if n.Message != "Your payment of ₹1000.00 for your course enrollment has been received." {
				t.Fatalf("unexpected message %q", n.Message)
			}
			if n.Metadata["transactionId"] != "pay_1" || n.Metadata["amount"] != int64(100000) {
				t.Fatalf("unexpected metadata %v", n.Metadata)
			}
			return n, nil
		})
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := uc.ProcessEvent(context.Background(), courseCaptureEvent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Handled || outcome.Duplicate {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if outcome.Type != entities.PaymentTypeCourse || outcome.EntityID != "enr-1" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestProcessEvent_CapturedSessionUsesRowRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPipeline(ctrl)

	m.sessions.EXPECT().GetByID(gomock.Any(), "ses-1").Return(entities.MentorSession{
		ID: "ses-1", UserID: "user-2", CommissionRate: 25,
		PaymentStatus:     entities.PaymentStatusPending,
		PaymentSettlement: entities.PaymentSettlement{AmountPaise: 40000},
	}, nil)
	m.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(true, nil)
	// Amount missing on the webhook: the stored row amount is used.
	m.sessions.EXPECT().MarkPaid(gomock.Any(), "ses-1", entities.PaymentSettlement{
		AmountPaise:     40000,
		CommissionPaise: 10000,
		PayoutPaise:     30000,
	}, "pay_2", "sig-2").Return(entities.MentorSession{ID: "ses-1"}, nil)
	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n entities.Notification) (entities.Notification, error) {
			if !strings.Contains(n.Message, "mentor session") {
				t.Fatalf("unexpected message %q", n.Message)
			}
			return n, nil
		})
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := uc.ProcessEvent(context.Background(), entities.GatewayEvent{
		Kind:      entities.GatewayEventPaymentCaptured,
		Signature: "sig-2",
		Payment: entities.GatewayPayment{
			ID: "pay_2",
			Notes: map[string]string{
				entities.NoteKeyType:      string(entities.PaymentTypeSession),
				entities.NoteKeySessionID: "ses-1",
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Handled || outcome.Type != entities.PaymentTypeSession {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestProcessEvent_Failed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPipeline(ctrl)

	m.registrations.EXPECT().GetByID(gomock.Any(), "reg-1").Return(entities.EventRegistration{
		ID: "reg-1", EventID: "evt-1", UserID: "user-3",
		PaymentStatus: entities.PaymentStatusPending,
	}, nil)
	m.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(true, nil)
	m.registrations.EXPECT().MarkFailed(gomock.Any(), "reg-1", "pay_3").Return(entities.EventRegistration{ID: "reg-1"}, nil)
	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n entities.Notification) (entities.Notification, error) {
			if n.Type != entities.NotificationTypePaymentFailed {
				t.Fatalf("unexpected notification type %q", n.Type)
			}
			if n.Message != "Your payment for your event registration failed: insufficient funds" {
				t.Fatalf("unexpected message %q", n.Message)
			}
			return n, nil
		})
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := uc.ProcessEvent(context.Background(), entities.GatewayEvent{
		Kind: entities.GatewayEventPaymentFailed,
		Payment: entities.GatewayPayment{
			ID:               "pay_3",
			ErrorDescription: "insufficient funds",
			Notes: map[string]string{
				entities.NoteKeyType:    string(entities.PaymentTypeEvent),
				entities.NoteKeyEventID: "reg-1",
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Handled {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestProcessEvent_Refunded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPipeline(ctrl)

	m.purchases.EXPECT().GetByID(gomock.Any(), "pur-1").Return(entities.ProductPurchase{
		ID: "pur-1", EventID: "evt-1", UserID: "user-4",
		PaymentStatus: entities.PaymentStatusPaid,
	}, nil)
	m.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(true, nil)
	m.purchases.EXPECT().MarkRefunded(gomock.Any(), "pur-1").Return(entities.ProductPurchase{ID: "pur-1"}, nil)
	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n entities.Notification) (entities.Notification, error) {
			if n.Type != entities.NotificationTypePaymentRefunded {
				t.Fatalf("unexpected notification type %q", n.Type)
			}
			if !strings.Contains(n.Message, "₹500.00") {
				t.Fatalf("expected refund amount in message, got %q", n.Message)
			}
			if n.Metadata["refundId"] != "rfnd_1" {
				t.Fatalf("unexpected metadata %v", n.Metadata)
			}
			return n, nil
		})
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := uc.ProcessEvent(context.Background(), entities.GatewayEvent{
		Kind: entities.GatewayEventPaymentRefunded,
		Payment: entities.GatewayPayment{
			ID: "pay_4",
			Notes: map[string]string{
				entities.NoteKeyType:      string(entities.PaymentTypeEventProduct),
				entities.NoteKeyProductID: "pur-1",
			},
		},
		Refund: &entities.GatewayRefund{ID: "rfnd_1", PaymentID: "pay_4", AmountPaise: 50000},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Handled {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestProcessEvent_RefundFromNonPaidDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPipeline(ctrl)

	m.purchases.EXPECT().GetByID(gomock.Any(), "pur-2").Return(entities.ProductPurchase{
		ID: "pur-2", UserID: "user-5",
		PaymentStatus: entities.PaymentStatusPending,
	}, nil)
	// No ledger row, no MarkRefunded, no notification. The gateway's retry
	// must not be shadowed by a ledger entry for the dropped delivery.
	m.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Times(0)

	outcome, err := uc.ProcessEvent(context.Background(), entities.GatewayEvent{
		Kind: entities.GatewayEventPaymentRefunded,
		Payment: entities.GatewayPayment{
			ID: "pay_5",
			Notes: map[string]string{
				entities.NoteKeyType:      string(entities.PaymentTypeEventProduct),
				entities.NoteKeyProductID: "pur-2",
			},
		},
		Refund: &entities.GatewayRefund{ID: "rfnd_2", PaymentID: "pay_5", AmountPaise: 1000},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Handled {
		t.Fatalf("expected dropped outcome, got %+v", outcome)
	}
}

func TestProcessEvent_RefundRetryAfterLateCapture(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPipeline(ctrl)

	refundEvt := entities.GatewayEvent{
		Kind: entities.GatewayEventPaymentRefunded,
		Payment: entities.GatewayPayment{
			ID: "pay_10",
			Notes: map[string]string{
				entities.NoteKeyType:      string(entities.PaymentTypeEventProduct),
				entities.NoteKeyProductID: "pur-3",
			},
		},
		Refund: &entities.GatewayRefund{ID: "rfnd_3", PaymentID: "pay_10", AmountPaise: 50000},
	}

	// Refund delivered out of order, before its capture: dropped, not ledgered.
	m.purchases.EXPECT().GetByID(gomock.Any(), "pur-3").Return(entities.ProductPurchase{
		ID: "pur-3", EventID: "evt-2", UserID: "user-7",
		PaymentStatus: entities.PaymentStatusPending,
	}, nil)

	outcome, err := uc.ProcessEvent(context.Background(), refundEvt)
	if err != nil {
		t.Fatalf("unexpected error on early refund: %v", err)
	}
	if outcome.Handled {
		t.Fatalf("expected early refund to be dropped, got %+v", outcome)
	}

	// The capture lands.
	m.purchases.EXPECT().GetByID(gomock.Any(), "pur-3").Return(entities.ProductPurchase{
		ID: "pur-3", EventID: "evt-2", UserID: "user-7",
		PaymentStatus:     entities.PaymentStatusPending,
		PaymentSettlement: entities.PaymentSettlement{AmountPaise: 50000},
	}, nil)
	m.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(true, nil)
	m.events.EXPECT().GetByID(gomock.Any(), "evt-2").Return(entities.Event{ID: "evt-2", CommissionRate: 10}, nil)
	m.purchases.EXPECT().MarkPaid(gomock.Any(), "pur-3", gomock.Any(), "pay_10", "").Return(entities.ProductPurchase{ID: "pur-3"}, nil)
	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n entities.Notification) (entities.Notification, error) { return n, nil })
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	_, err = uc.ProcessEvent(context.Background(), entities.GatewayEvent{
		Kind: entities.GatewayEventPaymentCaptured,
		Payment: entities.GatewayPayment{
			ID:          "pay_10",
			AmountPaise: 50000,
			Notes: map[string]string{
				entities.NoteKeyType:      string(entities.PaymentTypeEventProduct),
				entities.NoteKeyProductID: "pur-3",
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error on capture: %v", err)
	}

	// The gateway retries the refund: it must apply, not be skipped as a
	// duplicate of the dropped delivery.
	m.purchases.EXPECT().GetByID(gomock.Any(), "pur-3").Return(entities.ProductPurchase{
		ID: "pur-3", EventID: "evt-2", UserID: "user-7",
		PaymentStatus: entities.PaymentStatusPaid,
	}, nil)
	m.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e entities.WebhookEvent) (bool, error) {
			if e.ID != "pay_10:payment.refunded" {
				t.Fatalf("unexpected ledger id %q", e.ID)
			}
			return true, nil
		})
	m.purchases.EXPECT().MarkRefunded(gomock.Any(), "pur-3").Return(entities.ProductPurchase{ID: "pur-3"}, nil)
	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n entities.Notification) (entities.Notification, error) { return n, nil })
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err = uc.ProcessEvent(context.Background(), refundEvt)
	if err != nil {
		t.Fatalf("unexpected error on refund retry: %v", err)
	}
	if !outcome.Handled || outcome.Duplicate {
		t.Fatalf("expected refund retry to apply, got %+v", outcome)
	}
}

func TestProcessEvent_DuplicateDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPipeline(ctrl)

	m.enrollments.EXPECT().GetByID(gomock.Any(), "enr-1").Return(entities.Enrollment{
		ID: "enr-1", CourseID: "crs-1", UserID: "user-1",
		PaymentStatus: entities.PaymentStatusPaid,
	}, nil)
	m.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(false, nil)
	// No MarkPaid, no notification, no publish.

	outcome, err := uc.ProcessEvent(context.Background(), courseCaptureEvent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Handled || !outcome.Duplicate {
		t.Fatalf("expected duplicate outcome, got %+v", outcome)
	}
}

func TestProcessEvent_UnhandledKindAcked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, _ := newPipeline(ctrl)

	outcome, err := uc.ProcessEvent(context.Background(), entities.GatewayEvent{
		Kind:    "payment.authorized",
		Payment: entities.GatewayPayment{ID: "pay_6"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Handled {
		t.Fatalf("expected unhandled outcome, got %+v", outcome)
	}
}

func TestProcessEvent_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, _ := newPipeline(ctrl)

	t.Run("missing payment id", func(t *testing.T) {
		_, err := uc.ProcessEvent(context.Background(), entities.GatewayEvent{
			Kind: entities.GatewayEventPaymentCaptured,
		})
		if !errors.Is(err, ErrInvalidGatewayEvent) {
			t.Fatalf("expected ErrInvalidGatewayEvent, got %v", err)
		}
	})

	t.Run("refund event without refund entity", func(t *testing.T) {
		_, err := uc.ProcessEvent(context.Background(), entities.GatewayEvent{
			Kind:    entities.GatewayEventPaymentRefunded,
			Payment: entities.GatewayPayment{ID: "pay_7"},
		})
		if !errors.Is(err, ErrInvalidGatewayEvent) {
			t.Fatalf("expected ErrInvalidGatewayEvent, got %v", err)
		}
	})
}

func TestProcessEvent_UnresolvedDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPipeline(ctrl)

	m.enrollments.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.Enrollment{}, nil)
	m.sessions.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.MentorSession{}, nil)
	m.registrations.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.EventRegistration{}, nil)
	m.purchases.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.ProductPurchase{}, nil)

	outcome, err := uc.ProcessEvent(context.Background(), entities.GatewayEvent{
		Kind:    entities.GatewayEventPaymentCaptured,
		Payment: entities.GatewayPayment{ID: "pay_8", OrderID: "ghost"},
	})
	if err != nil {
		t.Fatalf("expected drop without error, got %v", err)
	}
	if outcome.Handled {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestProcessEvent_PublishFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPipeline(ctrl)

	m.enrollments.EXPECT().GetByID(gomock.Any(), "enr-1").Return(entities.Enrollment{
		ID: "enr-1", CourseID: "crs-1", UserID: "user-1",
		PaymentStatus:     entities.PaymentStatusPending,
		PaymentSettlement: entities.PaymentSettlement{AmountPaise: 100000},
	}, nil)
	m.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(true, nil)
	m.courses.EXPECT().GetByID(gomock.Any(), "crs-1").Return(entities.Course{ID: "crs-1", CommissionRate: 15}, nil)
	m.enrollments.EXPECT().MarkPaid(gomock.Any(), "enr-1", gomock.Any(), "pay_1", "sig-abc").Return(entities.Enrollment{ID: "enr-1"}, nil)
	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n entities.Notification) (entities.Notification, error) { return n, nil })
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	outcome, err := uc.ProcessEvent(context.Background(), courseCaptureEvent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Handled {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestProcessEvent_SettingsFallbackRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newPipeline(ctrl)

	m.enrollments.EXPECT().GetByID(gomock.Any(), "enr-2").Return(entities.Enrollment{
		ID: "enr-2", CourseID: "crs-2", UserID: "user-6",
		PaymentStatus:     entities.PaymentStatusPending,
		PaymentSettlement: entities.PaymentSettlement{AmountPaise: 20000},
	}, nil)
	m.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(true, nil)
	// Course has no explicit rate; the platform settings override applies.
	m.courses.EXPECT().GetByID(gomock.Any(), "crs-2").Return(entities.Course{ID: "crs-2"}, nil)
	m.settings.EXPECT().Get(gomock.Any()).Return(entities.PlatformSettings{
		ID:                   entities.PlatformSettingsID,
		CourseCommissionRate: 10,
	}, nil)
	m.enrollments.EXPECT().MarkPaid(gomock.Any(), "enr-2", entities.PaymentSettlement{
		AmountPaise:     20000,
		CommissionPaise: 2000,
		PayoutPaise:     18000,
	}, "pay_9", "").Return(entities.Enrollment{ID: "enr-2"}, nil)
	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n entities.Notification) (entities.Notification, error) { return n, nil })
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	_, err := uc.ProcessEvent(context.Background(), entities.GatewayEvent{
		Kind: entities.GatewayEventPaymentCaptured,
		Payment: entities.GatewayPayment{
			ID:          "pay_9",
			AmountPaise: 20000,
			Notes: map[string]string{
				entities.NoteKeyType:     string(entities.PaymentTypeCourse),
				entities.NoteKeyCourseID: "enr-2",
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
