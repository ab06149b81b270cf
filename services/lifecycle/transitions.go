package lifecycle

import (
	"context"
	"fmt"

	serviceRepo "proconecta/database/repository/service"
	"proconecta/models"
	"proconecta/services/notification"
	"proconecta/utils"
)

// ProposeValue opens or continues a negotiation. The provider may
// propose on an unassigned pending demand or on a request already
// assigned to them; each proposal advances the proposal version and
// appends a proposal message in the same transaction as the status
// change.
func (s *DefaultLifecycleService) ProposeValue(ctx context.Context, actorID, serviceID string, value float64) (*models.ServiceRequest, error) {
	if value <= 0 {
		return nil, utils.Validationf("proposed value must be greater than zero")
	}

	actor, err := s.Users.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsProvider() {
		return nil, utils.Validationf("only providers can propose a value")
	}

	req, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}

	t := serviceRepo.Transition{
		ServiceID:        serviceID,
		From:             []models.ServiceStatus{models.StatusPending, models.StatusNegotiating},
		NewStatus:        models.StatusNegotiating,
		SetProposedValue: &value,
		Message: &models.Message{
			SenderID:      actorID,
			Content:       fmt.Sprintf("Value proposal: %.2f", value),
			Type:          models.MessageProposal,
			ProposedValue: value,
		},
	}
	// Proposing on an unassigned demand claims the negotiation: the
	// provider slot is set so it never leaves pending without an owner.
	switch req.ProviderID {
	case "":
		t.RequireUnassigned = true
		t.AssignProvider = &serviceRepo.Assignment{ID: actor.ID, Name: actor.Name}
	case actorID:
		t.RequireProviderID = actorID
	default:
		return nil, &utils.InvalidStateTransitionError{Action: "propose a value for", Current: string(req.Status)}
	}

	notified := *req
	notified.ProposedValue = value
	t.Notification = notification.StatusNotification(&notified, models.StatusNegotiating, req.ClientID)

	return s.apply(ctx, t, "propose a value for")
}

// AcceptProposal locks in the proposed value. The version the client
// saw must still be current; an accept against a superseded proposal is
// rejected rather than silently taking the newer number.
func (s *DefaultLifecycleService) AcceptProposal(ctx context.Context, actorID, serviceID string, proposalVersion int) (*models.ServiceRequest, error) {
	req, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if req.ClientID != actorID {
		return nil, utils.Validationf("only the requesting client can accept a proposal")
	}
	if req.Status != models.StatusNegotiating || req.ProposedValue <= 0 {
		return nil, &utils.InvalidStateTransitionError{Action: "accept a proposal for", Current: string(req.Status)}
	}
	if proposalVersion != req.ProposalVersion {
		return nil, &utils.InvalidStateTransitionError{Action: "accept an outdated proposal for", Current: string(req.Status)}
	}

	value := req.ProposedValue
	t := serviceRepo.Transition{
		ServiceID:              serviceID,
		From:                   []models.ServiceStatus{models.StatusNegotiating},
		RequireProposalVersion: proposalVersion,
		NewStatus:              models.StatusInProgress,
		SetValue:               &value,
		ClearProposedValue:     true,
	}
	if req.ProviderID != "" {
		t.Notification = notification.StatusNotification(req, models.StatusInProgress, req.ProviderID)
	}

	return s.apply(ctx, t, "accept a proposal for")
}

// AcceptDemand assigns the acting provider to a pending demand. The
// conditional write on status and the empty provider slot guarantees at
// most one acceptance per request under concurrency.
func (s *DefaultLifecycleService) AcceptDemand(ctx context.Context, actorID, serviceID string) (*models.ServiceRequest, error) {
	actor, err := s.Users.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsProvider() {
		return nil, utils.Validationf("only providers can accept a demand")
	}

	req, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}

	notified := *req
	notified.ProviderName = actor.Name

	t := serviceRepo.Transition{
		ServiceID:         serviceID,
		From:              []models.ServiceStatus{models.StatusPending},
		RequireUnassigned: true,
		NewStatus:         models.StatusAccepted,
		AssignProvider:    &serviceRepo.Assignment{ID: actor.ID, Name: actor.Name},
		SetAcceptedAt:     true,
		Notification:      notification.StatusNotification(&notified, models.StatusAccepted, req.ClientID),
	}
	return s.apply(ctx, t, "accept")
}

// Start moves an accepted request into in_progress.
func (s *DefaultLifecycleService) Start(ctx context.Context, actorID, serviceID string) (*models.ServiceRequest, error) {
	req, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}

	t := serviceRepo.Transition{
		ServiceID:         serviceID,
		From:              []models.ServiceStatus{models.StatusAccepted},
		RequireProviderID: actorID,
		NewStatus:         models.StatusInProgress,
		Notification:      notification.StatusNotification(req, models.StatusInProgress, req.ClientID),
	}
	return s.apply(ctx, t, "start")
}

// Complete finishes the job, stamps completedAt and prompts the client
// to rate. A second call finds the request terminal and is rejected.
func (s *DefaultLifecycleService) Complete(ctx context.Context, actorID, serviceID string) (*models.ServiceRequest, error) {
	req, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}

	t := serviceRepo.Transition{
		ServiceID:         serviceID,
		From:              []models.ServiceStatus{models.StatusInProgress},
		RequireProviderID: actorID,
		NewStatus:         models.StatusCompleted,
		SetCompletedAt:    true,
		Notification:      notification.StatusNotification(req, models.StatusCompleted, req.ClientID),
	}
	return s.apply(ctx, t, "complete")
}

// Cancel aborts a non-terminal request. Either party may cancel; the
// counterparty, when one exists, is notified.
func (s *DefaultLifecycleService) Cancel(ctx context.Context, actorID, serviceID string) (*models.ServiceRequest, error) {
	req, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}

	role := req.PartyRole(actorID)
	if role == "" {
		return nil, utils.Validationf("only the client or the assigned provider can cancel")
	}
	if req.Status.Terminal() {
		return nil, &utils.InvalidStateTransitionError{Action: "cancel", Current: string(req.Status)}
	}

	t := serviceRepo.Transition{
		ServiceID: serviceID,
		From: []models.ServiceStatus{
			models.StatusPending, models.StatusNegotiating,
			models.StatusAccepted, models.StatusInProgress,
		},
		NewStatus: models.StatusCancelled,
	}

	counterparty := req.ClientID
	if role == models.UserTypeClient {
		counterparty = req.ProviderID
	}
	if counterparty != "" {
		t.Notification = notification.StatusNotification(req, models.StatusCancelled, counterparty)
	}

	return s.apply(ctx, t, "cancel")
}
