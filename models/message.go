package models

import "time"

// MessageType distinguishes chat text from price proposals.
type MessageType string

const (
	MessageText     MessageType = "text"
	MessageProposal MessageType = "proposal"
)

// Message is one append-only entry in a service request's chat feed.
// Seq and CreatedAt are assigned server-side; Seq is strictly
// increasing per service and is the ordering authority.
type Message struct {
	ID            string      `bson:"id" json:"id"`
	ServiceID     string      `bson:"serviceId" json:"serviceId"`
	SenderID      string      `bson:"senderId" json:"senderId"`
	Content       string      `bson:"content" json:"content"`
	Type          MessageType `bson:"type" json:"type"`
	ProposedValue float64     `bson:"proposedValue,omitempty" json:"proposedValue,omitempty"`
	Seq           int64       `bson:"seq" json:"seq"`
	CreatedAt     time.Time   `bson:"createdAt" json:"createdAt"`
}
