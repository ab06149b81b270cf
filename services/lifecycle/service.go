package lifecycle

import (
	"context"
	"errors"
	"strings"

	serviceRepo "proconecta/database/repository/service"
	userRepo "proconecta/database/repository/user"
	"proconecta/models"
	"proconecta/services/notification"
	"proconecta/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultLifecycleService is the production implementation.
type DefaultLifecycleService struct {
	Services serviceRepo.ServiceRepository
	Users    userRepo.UserRepository
	Notifier notification.NotificationService
}

// Create validates the demand and persists it as pending and unassigned.
func (s *DefaultLifecycleService) Create(ctx context.Context, actorID string, input CreateInput) (*models.ServiceRequest, error) {
	actor, err := s.Users.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor.UserType != models.UserTypeClient {
		return nil, utils.Validationf("only clients can create service requests")
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, utils.Validationf("title is required")
	}
	if strings.TrimSpace(input.ServiceType) == "" {
		return nil, utils.Validationf("service type is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, utils.Validationf("description is required")
	}
	if !utils.ValidCoordinates(input.Location.Latitude, input.Location.Longitude) {
		return nil, utils.Validationf("location coordinates are out of range")
	}

	req := models.ServiceRequest{
		ID:            uuid.NewString(),
		Title:         input.Title,
		ServiceType:   input.ServiceType,
		Description:   input.Description,
		ClientID:      actor.ID,
		ClientName:    actor.Name,
		Location:      input.Location,
		PreferredDate: input.PreferredDate,
		PhotoRefs:     input.PhotoRefs,
		Status:        models.StatusPending,
	}
	if err := s.Services.Create(&req); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("service request created",
		zap.String("serviceId", req.ID), zap.String("clientId", actor.ID))
	return &req, nil
}

// AttachPhoto records an uploaded photo reference on the request. Only
// the two parties may attach, and only while the request is still live.
func (s *DefaultLifecycleService) AttachPhoto(ctx context.Context, actorID, serviceID, photoRef string) (*models.ServiceRequest, error) {
	if strings.TrimSpace(photoRef) == "" {
		return nil, utils.Validationf("photo reference is required")
	}

	req, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if req.PartyRole(actorID) == "" {
		return nil, utils.Validationf("only the client or the assigned provider can attach photos")
	}
	if req.Status.Terminal() {
		return nil, &utils.InvalidStateTransitionError{Action: "attach photo", Current: string(req.Status)}
	}

	if err := s.Services.AddPhotoRef(serviceID, photoRef); err != nil {
		return nil, err
	}
	return s.Services.GetByID(serviceID)
}

// Get fetches a request by ID.
func (s *DefaultLifecycleService) Get(serviceID string) (*models.ServiceRequest, error) {
	return s.Services.GetByID(serviceID)
}

// ListForUser returns the user's requests, newest first.
func (s *DefaultLifecycleService) ListForUser(userID string, role models.UserType) ([]models.ServiceRequest, error) {
	return s.Services.ListByParticipant(userID, role)
}

// apply runs one conditional transition and dispatches the counterparty
// push after the commit. On a failed precondition it re-reads to report
// the accurate error without ever mutating state.
func (s *DefaultLifecycleService) apply(ctx context.Context, t serviceRepo.Transition, action string) (*models.ServiceRequest, error) {
	updated, err := s.Services.ApplyTransition(ctx, t)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrPreconditionFailed) {
			current, getErr := s.Services.GetByID(t.ServiceID)
			if getErr != nil {
				return nil, getErr
			}
			return nil, &utils.InvalidStateTransitionError{Action: action, Current: string(current.Status)}
		}
		return nil, err
	}

	if t.Notification != nil && s.Notifier != nil {
		s.Notifier.Dispatch(ctx, *t.Notification)
	}
	return updated, nil
}
