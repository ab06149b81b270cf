package serviceRepo

import (
	"context"
	"errors"

	"proconecta/models"
)

// ErrPreconditionFailed reports that a conditional transition matched no
// document: the request either vanished or a concurrent writer moved it
// out of the expected state first. The lifecycle service re-reads to
// decide which.
var ErrPreconditionFailed = errors.New("transition precondition failed")

// Assignment carries the provider being attached to a request.
type Assignment struct {
	ID   string
	Name string
}

// Transition is one conditional lifecycle write. The filter fields
// (From, Require*) must all hold on the stored document for the write to
// apply; otherwise nothing mutates and ErrPreconditionFailed is
// returned. The optional Notification and Message are persisted in the
// same transaction as the status change.
type Transition struct {
	ServiceID string

	// Preconditions on the stored document.
	From                   []models.ServiceStatus
	RequireUnassigned      bool
	RequireProviderID      string
	RequireProposalVersion int // checked when > 0

	// Effects.
	NewStatus          models.ServiceStatus
	AssignProvider     *Assignment
	SetValue           *float64
	SetProposedValue   *float64 // also advances proposalVersion
	ClearProposedValue bool
	SetAcceptedAt      bool
	SetCompletedAt     bool

	Notification *models.Notification
	Message      *models.Message
}

// ServiceRepository defines persistence for service requests.
type ServiceRepository interface {
	Create(req *models.ServiceRequest) error
	GetByID(id string) (*models.ServiceRequest, error)
	// ListByParticipant returns the user's requests, newest first.
	ListByParticipant(userID string, role models.UserType) ([]models.ServiceRequest, error)
	// ListOpen returns pending, unassigned requests, optionally
	// restricted to the given service types.
	ListOpen(categories []string) ([]models.ServiceRequest, error)
	// ApplyTransition performs one conditional lifecycle write and
	// returns the updated document.
	ApplyTransition(ctx context.Context, t Transition) (*models.ServiceRequest, error)
	// AddPhotoRef appends an uploaded photo reference to the request.
	AddPhotoRef(serviceID, ref string) error
}
