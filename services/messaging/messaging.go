package messaging

import (
	"strings"

	messageRepo "proconecta/database/repository/message"
	serviceRepo "proconecta/database/repository/service"
	"proconecta/models"
	"proconecta/utils"

	"github.com/google/uuid"
)

// AppendInput is one outgoing chat entry.
type AppendInput struct {
	ServiceID     string             `json:"serviceId"`
	Content       string             `json:"content"`
	Type          models.MessageType `json:"type,omitempty"`
	ProposedValue float64            `json:"proposedValue,omitempty"`
}

// MessagingService exposes the per-request chat feed.
type MessagingService interface {
	Append(actorID string, input AppendInput) (*models.Message, error)
	List(actorID, serviceID string) ([]models.Message, error)
}

// DefaultMessagingService is the production implementation.
type DefaultMessagingService struct {
	Messages messageRepo.MessageRepository
	Services serviceRepo.ServiceRepository
}

// Append adds a message to the request's feed. Only the two parties may
// write; the repository assigns the sequence number, so concurrent sends
// land in a total order without client coordination.
func (s *DefaultMessagingService) Append(actorID string, input AppendInput) (*models.Message, error) {
	req, err := s.Services.GetByID(input.ServiceID)
	if err != nil {
		return nil, err
	}
	if req.PartyRole(actorID) == "" {
		return nil, utils.Validationf("only the client or the provider of this service can send messages")
	}

	msgType := input.Type
	if msgType == "" {
		msgType = models.MessageText
	}
	switch msgType {
	case models.MessageText:
		if strings.TrimSpace(input.Content) == "" {
			return nil, utils.Validationf("message content is required")
		}
	case models.MessageProposal:
		if input.ProposedValue <= 0 {
			return nil, utils.Validationf("a proposal message needs a value greater than zero")
		}
	default:
		return nil, utils.Validationf("unknown message type %q", msgType)
	}

	msg := models.Message{
		ID:            uuid.NewString(),
		ServiceID:     req.ID,
		SenderID:      actorID,
		Content:       input.Content,
		Type:          msgType,
		ProposedValue: input.ProposedValue,
	}
	if err := s.Messages.Append(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// List returns the request's full feed in send order.
func (s *DefaultMessagingService) List(actorID, serviceID string) ([]models.Message, error) {
	req, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if req.PartyRole(actorID) == "" {
		return nil, utils.Validationf("only the client or the provider of this service can read messages")
	}
	return s.Messages.ListByService(serviceID)
}
