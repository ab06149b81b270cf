package messageRepo

import (
	"sort"
	"sync"
	"time"

	"proconecta/models"
)

// MemoryMessageRepo implements MessageRepository with in-memory storage.
// Sequence numbers and timestamps are strictly increasing per service.
type MemoryMessageRepo struct {
	mu       sync.Mutex
	messages map[string][]models.Message
	seqs     map[string]int64
	lastTs   map[string]time.Time
}

// NewMemoryMessageRepo creates an empty in-memory message repository.
func NewMemoryMessageRepo() *MemoryMessageRepo {
	return &MemoryMessageRepo{
		messages: make(map[string][]models.Message),
		seqs:     make(map[string]int64),
		lastTs:   make(map[string]time.Time),
	}
}

func (r *MemoryMessageRepo) Append(msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seqs[msg.ServiceID]++
	msg.Seq = r.seqs[msg.ServiceID]

	ts := time.Now()
	if last, ok := r.lastTs[msg.ServiceID]; ok && !ts.After(last) {
		ts = last.Add(time.Nanosecond)
	}
	r.lastTs[msg.ServiceID] = ts
	msg.CreatedAt = ts

	r.messages[msg.ServiceID] = append(r.messages[msg.ServiceID], *msg)
	return nil
}

func (r *MemoryMessageRepo) ListByService(serviceID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Message, len(r.messages[serviceID]))
	copy(out, r.messages[serviceID])
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}
