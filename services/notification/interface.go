package notification

import (
	"context"

	"proconecta/models"
)

// NotificationService exposes the read side of the notification feed
// and the push dispatch that runs after a lifecycle transition commits.
type NotificationService interface {
	// Dispatch queues a push for an already-persisted notification.
	// Delivery failures are logged, never surfaced: the in-app record
	// is the durable artifact.
	Dispatch(ctx context.Context, n models.Notification)
	List(userID string) ([]models.Notification, error)
	MarkRead(actorID, id string) error
}
