package models

import "time"

// ServiceRequest is a client demand and, once accepted, the running job.
type ServiceRequest struct {
	ID          string   `bson:"id" json:"id"`
	Title       string   `bson:"title" json:"title"`
	ServiceType string   `bson:"serviceType" json:"serviceType"`
	Description string   `bson:"description" json:"description"`
	ClientID    string   `bson:"clientId" json:"clientId"`
	ClientName  string   `bson:"clientName" json:"clientName"`
	Location    Location `bson:"location" json:"location"`

	PreferredDate *time.Time `bson:"preferredDate,omitempty" json:"preferredDate,omitempty"`
	PhotoRefs     []string   `bson:"photoRefs,omitempty" json:"photoRefs,omitempty"`

	Status ServiceStatus `bson:"status" json:"status"`

	// Empty while pending; immutable once set.
	ProviderID   string `bson:"providerId" json:"providerId"`
	ProviderName string `bson:"providerName" json:"providerName"`

	// Value is authoritative once status reaches in_progress.
	// ProposedValue carries the open negotiation offer; ProposalVersion
	// increments on every new offer so stale accepts can be rejected.
	Value           float64 `bson:"value" json:"value"`
	ProposedValue   float64 `bson:"proposedValue" json:"proposedValue"`
	ProposalVersion int     `bson:"proposalVersion" json:"proposalVersion"`

	// MessageSeq is the per-request message counter; every appended
	// message takes the next value.
	MessageSeq int64 `bson:"messageSeq" json:"-"`

	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
	AcceptedAt  *time.Time `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	// One-shot rating slots, denormalized from the rating collections.
	// ClientRating is the client's verdict on the provider;
	// ProviderRating is the provider's verdict on the client.
	ClientRating    int        `bson:"clientRating,omitempty" json:"clientRating,omitempty"`
	ClientComment   string     `bson:"clientComment,omitempty" json:"clientComment,omitempty"`
	ClientRatedAt   *time.Time `bson:"clientRatedAt,omitempty" json:"clientRatedAt,omitempty"`
	ProviderRating  int        `bson:"providerRating,omitempty" json:"providerRating,omitempty"`
	ProviderComment string     `bson:"providerComment,omitempty" json:"providerComment,omitempty"`
	ProviderRatedAt *time.Time `bson:"providerRatedAt,omitempty" json:"providerRatedAt,omitempty"`

	// DistanceKm is computed per discovery query, never persisted.
	DistanceKm float64 `bson:"-" json:"distanceKm,omitempty"`
}

// PartyRole returns the role userID plays on this request, or "" when
// the user is not a party to it.
func (s *ServiceRequest) PartyRole(userID string) UserType {
	switch userID {
	case s.ClientID:
		return UserTypeClient
	case s.ProviderID:
		if s.ProviderID != "" {
			return UserTypeProvider
		}
	}
	return ""
}
