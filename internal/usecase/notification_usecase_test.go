package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	mock_interfaces "github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestNotificationUseCase_ListByUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("empty user id", func(t *testing.T) {
		uc := NewNotificationUseCase(nil)
		if _, err := uc.ListByUserID(context.Background(), "  "); !errors.Is(err, ErrInvalidUserID) {
			t.Fatalf("expected ErrInvalidUserID, got %v", err)
		}
	})

	t.Run("returns feed", func(t *testing.T) {
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		repo.EXPECT().ListByUserID(gomock.Any(), "user-1").Return([]entities.Notification{{ID: "n-1"}, {ID: "n-2"}}, nil)

		uc := NewNotificationUseCase(repo)
		items, err := uc.ListByUserID(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 notifications, got %d", len(items))
		}
	})
}

func TestNotificationUseCase_ListPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_interfaces.NewMockINotificationRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any()).Return([]entities.Notification{{ID: "n-1", Status: entities.NotificationStatusPending}}, nil)

	uc := NewNotificationUseCase(repo)
	items, err := uc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "n-1" {
		t.Fatalf("unexpected pending set %+v", items)
	}
}

func TestNotificationUseCase_MarkDelivered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("empty id", func(t *testing.T) {
		uc := NewNotificationUseCase(nil)
		if _, err := uc.MarkDelivered(context.Background(), ""); !errors.Is(err, ErrInvalidNotificationID) {
			t.Fatalf("expected ErrInvalidNotificationID, got %v", err)
		}
	})

	t.Run("missing row", func(t *testing.T) {
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		repo.EXPECT().MarkSent(gomock.Any(), "n-x").Return(entities.Notification{}, nil)

		uc := NewNotificationUseCase(repo)
		if _, err := uc.MarkDelivered(context.Background(), "n-x"); !errors.Is(err, ErrNotificationNotFound) {
			t.Fatalf("expected ErrNotificationNotFound, got %v", err)
		}
	})

	t.Run("marks sent", func(t *testing.T) {
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		repo.EXPECT().MarkSent(gomock.Any(), "n-1").Return(entities.Notification{ID: "n-1", Status: entities.NotificationStatusSent}, nil)

		uc := NewNotificationUseCase(repo)
		n, err := uc.MarkDelivered(context.Background(), "n-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.Status != entities.NotificationStatusSent {
			t.Fatalf("expected sent status, got %s", n.Status)
		}
	})
}
