package serviceRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"proconecta/models"
	"proconecta/utils"

	"github.com/google/uuid"
)

// MemoryServiceRepo implements ServiceRepository with in-memory storage.
// Notifications and proposal messages produced by transitions are handed
// to the configured sinks, which stand in for the collections the Mongo
// repo writes in the same transaction.
type MemoryServiceRepo struct {
	mu       sync.Mutex
	requests map[string]models.ServiceRequest

	// Sinks receive transition side effects. Either may be nil.
	NotificationSink func(models.Notification)
	MessageSink      func(models.Message)
}

// NewMemoryServiceRepo creates an empty in-memory service repository.
func NewMemoryServiceRepo() *MemoryServiceRepo {
	return &MemoryServiceRepo{requests: make(map[string]models.ServiceRequest)}
}

func (r *MemoryServiceRepo) Create(req *models.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	r.requests[req.ID] = *req
	return nil
}

func (r *MemoryServiceRepo) GetByID(id string) (*models.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "service request", ID: id}
	}
	copy := req
	return &copy, nil
}

func (r *MemoryServiceRepo) ListByParticipant(userID string, role models.UserType) ([]models.ServiceRequest, error) {
	return r.list(func(req models.ServiceRequest) bool {
		if role == models.UserTypeProvider {
			return req.ProviderID == userID
		}
		return req.ClientID == userID
	}), nil
}

func (r *MemoryServiceRepo) ListOpen(categories []string) ([]models.ServiceRequest, error) {
	return r.list(func(req models.ServiceRequest) bool {
		if req.Status != models.StatusPending || req.ProviderID != "" {
			return false
		}
		if len(categories) == 0 {
			return true
		}
		for _, c := range categories {
			if req.ServiceType == c {
				return true
			}
		}
		return false
	}), nil
}

func (r *MemoryServiceRepo) list(match func(models.ServiceRequest) bool) []models.ServiceRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.ServiceRequest
	for _, req := range r.requests {
		if match(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *MemoryServiceRepo) ApplyTransition(_ context.Context, t Transition) (*models.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[t.ServiceID]
	if !ok {
		return nil, ErrPreconditionFailed
	}

	if len(t.From) > 0 {
		legal := false
		for _, s := range t.From {
			if req.Status == s {
				legal = true
				break
			}
		}
		if !legal {
			return nil, ErrPreconditionFailed
		}
	}
	if t.RequireUnassigned && req.ProviderID != "" {
		return nil, ErrPreconditionFailed
	}
	if t.RequireProviderID != "" && req.ProviderID != t.RequireProviderID {
		return nil, ErrPreconditionFailed
	}
	if t.RequireProposalVersion > 0 && req.ProposalVersion != t.RequireProposalVersion {
		return nil, ErrPreconditionFailed
	}

	now := time.Now()
	req.Status = t.NewStatus
	req.UpdatedAt = now
	if t.AssignProvider != nil {
		req.ProviderID = t.AssignProvider.ID
		req.ProviderName = t.AssignProvider.Name
	}
	if t.SetValue != nil {
		req.Value = *t.SetValue
	}
	if t.SetProposedValue != nil {
		req.ProposedValue = *t.SetProposedValue
		req.ProposalVersion++
	}
	if t.ClearProposedValue {
		req.ProposedValue = 0
	}
	if t.SetAcceptedAt {
		at := now
		req.AcceptedAt = &at
	}
	if t.SetCompletedAt {
		at := now
		req.CompletedAt = &at
	}
	if t.Message != nil {
		req.MessageSeq++
	}

	r.requests[req.ID] = req

	if t.Notification != nil && r.NotificationSink != nil {
		n := *t.Notification
		n.ID = uuid.NewString()
		n.ServiceID = t.ServiceID
		n.CreatedAt = now
		r.NotificationSink(n)
	}
	if t.Message != nil && r.MessageSink != nil {
		m := *t.Message
		m.ID = uuid.NewString()
		m.ServiceID = t.ServiceID
		m.Seq = req.MessageSeq
		r.MessageSink(m)
	}

	copy := req
	return &copy, nil
}

func (r *MemoryServiceRepo) AddPhotoRef(serviceID, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[serviceID]
	if !ok {
		return &utils.NotFoundError{Resource: "service request", ID: serviceID}
	}
	req.PhotoRefs = append(req.PhotoRefs, ref)
	req.UpdatedAt = time.Now()
	r.requests[serviceID] = req
	return nil
}

// Put seeds a request directly, bypassing Create's timestamping.
func (r *MemoryServiceRepo) Put(req models.ServiceRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.ID] = req
}
