package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	mock_interfaces "github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func newClassifierWithMocks(ctrl *gomock.Controller) (*Classifier, *mock_interfaces.MockIEnrollmentRepository, *mock_interfaces.MockISessionRepository, *mock_interfaces.MockIEventRegistrationRepository, *mock_interfaces.MockIProductPurchaseRepository) {
	enrollments := mock_interfaces.NewMockIEnrollmentRepository(ctrl)
	sessions := mock_interfaces.NewMockISessionRepository(ctrl)
	registrations := mock_interfaces.NewMockIEventRegistrationRepository(ctrl)
	purchases := mock_interfaces.NewMockIProductPurchaseRepository(ctrl)
	return NewClassifier(enrollments, sessions, registrations, purchases), enrollments, sessions, registrations, purchases
}

func TestClassifier_NotesFastPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repository expectations: the fast path must not probe any table.
	c, _, _, _, _ := newClassifierWithMocks(ctrl)

	pt, id, err := c.Classify(context.Background(), entities.GatewayPayment{
		ID:      "pay_1",
		OrderID: "order_1",
		Notes: map[string]string{
			entities.NoteKeyType:     string(entities.PaymentTypeCourse),
			entities.NoteKeyCourseID: "enr-1",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pt != entities.PaymentTypeCourse || id != "enr-1" {
		t.Fatalf("expected course/enr-1, got %s/%s", pt, id)
	}
}

func TestClassifier_NotesIgnoredWhenIncomplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, enrollments, sessions, _, _ := newClassifierWithMocks(ctrl)

	// Type present but the matching id key missing: fall through to probing.
	enrollments.EXPECT().GetByID(gomock.Any(), "order_9").Return(entities.Enrollment{}, nil)
	sessions.EXPECT().GetByID(gomock.Any(), "order_9").Return(entities.MentorSession{ID: "ses-9", UserID: "u-9"}, nil)

	pt, id, err := c.Classify(context.Background(), entities.GatewayPayment{
		ID:      "pay_9",
		OrderID: "order_9",
		Notes:   map[string]string{entities.NoteKeyType: string(entities.PaymentTypeSession)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pt != entities.PaymentTypeSession || id != "ses-9" {
		t.Fatalf("expected session/ses-9, got %s/%s", pt, id)
	}
}

func TestClassifier_FallbackProbeOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, enrollments, sessions, registrations, purchases := newClassifierWithMocks(ctrl)

	enrollments.EXPECT().GetByID(gomock.Any(), "reg-5").Return(entities.Enrollment{}, nil)
	sessions.EXPECT().GetByID(gomock.Any(), "reg-5").Return(entities.MentorSession{}, nil)
	registrations.EXPECT().GetByID(gomock.Any(), "reg-5").Return(entities.EventRegistration{ID: "reg-5"}, nil)
	// Purchases must not be probed once registrations matched.
	purchases.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)

	pt, id, err := c.Classify(context.Background(), entities.GatewayPayment{ID: "pay_5", OrderID: "reg-5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pt != entities.PaymentTypeEvent || id != "reg-5" {
		t.Fatalf("expected event/reg-5, got %s/%s", pt, id)
	}
}

func TestClassifier_Unresolved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("no order id and no notes", func(t *testing.T) {
		c, _, _, _, _ := newClassifierWithMocks(ctrl)
		_, _, err := c.Classify(context.Background(), entities.GatewayPayment{ID: "pay_0"})
		if !errors.Is(err, ErrPaymentUnresolved) {
			t.Fatalf("expected ErrPaymentUnresolved, got %v", err)
		}
	})

	t.Run("all probes miss", func(t *testing.T) {
		c, enrollments, sessions, registrations, purchases := newClassifierWithMocks(ctrl)
		enrollments.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.Enrollment{}, nil)
		sessions.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.MentorSession{}, nil)
		registrations.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.EventRegistration{}, nil)
		purchases.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.ProductPurchase{}, nil)

		_, _, err := c.Classify(context.Background(), entities.GatewayPayment{ID: "pay_0", OrderID: "ghost"})
		if !errors.Is(err, ErrPaymentUnresolved) {
			t.Fatalf("expected ErrPaymentUnresolved, got %v", err)
		}
	})

	t.Run("probe error propagates", func(t *testing.T) {
		c, enrollments, _, _, _ := newClassifierWithMocks(ctrl)
		boom := errors.New("dynamo down")
		enrollments.EXPECT().GetByID(gomock.Any(), "x").Return(entities.Enrollment{}, boom)

		_, _, err := c.Classify(context.Background(), entities.GatewayPayment{ID: "pay_0", OrderID: "x"})
		if !errors.Is(err, boom) {
			t.Fatalf("expected probe error, got %v", err)
		}
	})
}
