package models

import "time"

// Notification is a persisted in-app notice written as a side effect of
// a lifecycle transition. Push delivery happens separately.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	ServiceID string    `bson:"serviceId" json:"serviceId"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
