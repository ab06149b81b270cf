package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"proconecta/config"
	userRepo "proconecta/database/repository/user"
	"proconecta/services/notification"
	"proconecta/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewQueueClient builds the asynq client used to enqueue push tasks.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(queueRedisOpt())
}

// InitPushWorker runs the push-delivery worker in the background. Each
// queued task resolves the recipient's current device token at delivery
// time, so tokens refreshed after the enqueue still receive the push.
func InitPushWorker(users userRepo.UserRepository) {
	srv := asynq.NewServer(
		queueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeNotificationPush, handlePushTask(users))

	go func() {
		logger := utils.GetLogger()
		logger.Info("push worker starting")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("push worker failed to start",
				zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("push worker exhausted retries")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

func handlePushTask(users userRepo.UserRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p notification.PushPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("push task has invalid payload", zap.Error(err))
			return err
		}

		usr, err := users.GetByID(p.UserID)
		if err != nil {
			return fmt.Errorf("push: could not load user %s: %w", p.UserID, err)
		}
		if usr.FCMToken == "" {
			// No registered device. The in-app notification record
			// already exists, so drop the push without retrying.
			utils.GetLogger().Debug("push skipped, user has no device token",
				zap.String("userId", p.UserID))
			return nil
		}

		msg := &messaging.Message{
			Token: usr.FCMToken,
			Notification: &messaging.Notification{
				Title: p.Title,
				Body:  p.Body,
			},
			Data: map[string]string{
				"serviceId": p.ServiceID,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					ChannelID: "high_priority",
					Sound:     "default",
				},
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{
					"apns-priority":  "10",
					"apns-push-type": "alert",
				},
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Sound: "default",
					},
				},
			},
		}

		if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
			return fmt.Errorf("push: failed to send FCM message to %s: %w", p.UserID, err)
		}
		return nil
	}
}

func queueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}
