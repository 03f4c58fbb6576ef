package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase/interfaces"
)

var (
	ErrInvalidUserID         = errors.New("invalid user id")
	ErrInvalidNotificationID = errors.New("invalid notification id")
	ErrNotificationNotFound  = errors.New("notification not found")
)

// INotificationUseCase exposes the notification feed and the dispatcher's
// side: the pending sweep and the delivery acknowledgement.
type INotificationUseCase interface {
	ListByUserID(ctx context.Context, userID string) ([]entities.Notification, error)
	ListPending(ctx context.Context) ([]entities.Notification, error)
	MarkDelivered(ctx context.Context, id string) (entities.Notification, error)
}

type NotificationUseCase struct {
	repo interfaces.INotificationRepository
}

var _ INotificationUseCase = (*NotificationUseCase)(nil)

func NewNotificationUseCase(repo interfaces.INotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

func (u *NotificationUseCase) ListByUserID(ctx context.Context, userID string) ([]entities.Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return u.repo.ListByUserID(ctx, userID)
}

func (u *NotificationUseCase) ListPending(ctx context.Context) ([]entities.Notification, error) {
	return u.repo.ListPending(ctx)
}

func (u *NotificationUseCase) MarkDelivered(ctx context.Context, id string) (entities.Notification, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Notification{}, ErrInvalidNotificationID
	}

	n, err := u.repo.MarkSent(ctx, id)
	if err != nil {
		return entities.Notification{}, err
	}
	if n.ID == "" {
		return entities.Notification{}, ErrNotificationNotFound
	}
	return n, nil
}
