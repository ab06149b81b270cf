package models

// UserType discriminates the two marketplace roles. Fixed at registration.
type UserType string

const (
	UserTypeClient   UserType = "client"
	UserTypeProvider UserType = "provider"
)

// ServiceStatus is the lifecycle state of a service request.
type ServiceStatus string

const (
	StatusPending     ServiceStatus = "pending"
	StatusNegotiating ServiceStatus = "negotiating"
	StatusAccepted    ServiceStatus = "accepted"
	StatusInProgress  ServiceStatus = "in_progress"
	StatusCompleted   ServiceStatus = "completed"
	StatusCancelled   ServiceStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed from s.
func (s ServiceStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Location is a pickup point with a human-readable address.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Address   string  `bson:"address" json:"address"`
}
