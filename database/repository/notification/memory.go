package notificationRepo

import (
	"sort"
	"sync"
	"time"

	"proconecta/models"
	"proconecta/utils"

	"github.com/google/uuid"
)

// MemoryNotificationRepo implements NotificationRepository in memory.
type MemoryNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
}

// NewMemoryNotificationRepo creates an empty in-memory notification repository.
func NewMemoryNotificationRepo() *MemoryNotificationRepo {
	return &MemoryNotificationRepo{}
}

func (r *MemoryNotificationRepo) Create(n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	r.notifications = append(r.notifications, *n)
	return nil
}

// Ingest stores a fully-built notification, used as a transition sink.
func (r *MemoryNotificationRepo) Ingest(n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *MemoryNotificationRepo) ListByUser(userID string) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryNotificationRepo) MarkRead(userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			r.notifications[i].Read = true
			return nil
		}
	}
	return &utils.NotFoundError{Resource: "notification", ID: id}
}
