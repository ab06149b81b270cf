package notification

import (
	"context"
	"encoding/json"

	notificationRepo "proconecta/database/repository/notification"
	"proconecta/models"
	"proconecta/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeNotificationPush is the asynq task type for push delivery.
const TypeNotificationPush = "notification:push"

// PushPayload is the queued task body for one push delivery.
type PushPayload struct {
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	ServiceID string `json:"serviceId"`
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Queue *asynq.Client // nil disables push delivery
}

// Dispatch queues a push for the notification. The record itself was
// already committed with the transition, so a queue failure only costs
// the push, not the notification.
func (s *DefaultNotificationService) Dispatch(ctx context.Context, n models.Notification) {
	if s.Queue == nil {
		return
	}
	payload, err := json.Marshal(PushPayload{
		UserID:    n.UserID,
		Title:     n.Title,
		Body:      n.Body,
		ServiceID: n.ServiceID,
	})
	if err != nil {
		utils.GetLogger().Error("Dispatch: failed to marshal push payload", zap.Error(err))
		return
	}
	task := asynq.NewTask(TypeNotificationPush, payload)
	if _, err := s.Queue.EnqueueContext(ctx, task); err != nil {
		utils.GetLogger().Error("Dispatch: failed to enqueue push",
			zap.String("userId", n.UserID), zap.Error(err))
	}
}

// List returns the user's notifications, newest first.
func (s *DefaultNotificationService) List(userID string) ([]models.Notification, error) {
	return s.Repo.ListByUser(userID)
}

// MarkRead flips the read flag on the actor's own notification.
func (s *DefaultNotificationService) MarkRead(actorID, id string) error {
	return s.Repo.MarkRead(actorID, id)
}
