package notificationRepo

import "proconecta/models"

// NotificationRepository defines persistence for in-app notifications.
// Lifecycle transitions insert their notifications transactionally via
// the service repository; this interface serves direct writes and the
// read side.
type NotificationRepository interface {
	Create(n *models.Notification) error
	ListByUser(userID string) ([]models.Notification, error)
	// MarkRead flips the read flag; the notification must belong to
	// the acting user.
	MarkRead(userID, id string) error
}
