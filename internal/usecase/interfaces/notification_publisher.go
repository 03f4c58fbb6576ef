package interfaces

import (
	"context"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
)

//go:generate mockgen -source=notification_publisher.go -destination=mocks/notification_publisher.go -package=mocks

// INotificationPublisher pushes enqueued-notification events onto the message
// broker for the background dispatcher. Publishing is best-effort on the
// reconciliation path: the notification row is the source of truth.
type INotificationPublisher interface {
	Publish(ctx context.Context, evt entities.NotificationEnqueuedEvent) error
}
