package lifecycle

import (
	"context"
	"time"

	"proconecta/models"
)

// CreateInput carries the fields fixed at demand creation.
type CreateInput struct {
	Title         string          `json:"title"`
	ServiceType   string          `json:"serviceType"`
	Description   string          `json:"description"`
	Location      models.Location `json:"location"`
	PreferredDate *time.Time      `json:"preferredDate,omitempty"`
	PhotoRefs     []string        `json:"photoRefs,omitempty"`
}

// LifecycleService governs the service-request state machine:
//
//	pending → negotiating → accepted → in_progress → completed
//
// with cancelled reachable from any non-terminal state. Illegal edges
// fail with InvalidStateTransitionError and never mutate the request.
type LifecycleService interface {
	Create(ctx context.Context, actorID string, input CreateInput) (*models.ServiceRequest, error)
	ProposeValue(ctx context.Context, actorID, serviceID string, value float64) (*models.ServiceRequest, error)
	AcceptProposal(ctx context.Context, actorID, serviceID string, proposalVersion int) (*models.ServiceRequest, error)
	AcceptDemand(ctx context.Context, actorID, serviceID string) (*models.ServiceRequest, error)
	Start(ctx context.Context, actorID, serviceID string) (*models.ServiceRequest, error)
	Complete(ctx context.Context, actorID, serviceID string) (*models.ServiceRequest, error)
	Cancel(ctx context.Context, actorID, serviceID string) (*models.ServiceRequest, error)
	AttachPhoto(ctx context.Context, actorID, serviceID, photoRef string) (*models.ServiceRequest, error)
	Get(serviceID string) (*models.ServiceRequest, error)
	ListForUser(userID string, role models.UserType) ([]models.ServiceRequest, error)
}
