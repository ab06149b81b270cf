package messageRepo

import "proconecta/models"

// MessageRepository defines the append-only per-service message feed.
// Append assigns the server-side sequence number and timestamp; List
// returns messages in ascending sequence order.
type MessageRepository interface {
	Append(msg *models.Message) error
	ListByService(serviceID string) ([]models.Message, error)
}
