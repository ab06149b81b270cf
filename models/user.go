package models

import "time"

// User represents a platform user, client or provider. The role is fixed
// at registration; provider-only and client-only fields stay zeroed on
// the other role.
type User struct {
	ID           string   `bson:"id" json:"id"`
	Username     string   `bson:"username" json:"username"`
	Name         string   `bson:"name" json:"name"`
	Email        string   `bson:"email" json:"email"`
	PasswordHash string   `bson:"passwordHash" json:"-"`
	UserType     UserType `bson:"userType" json:"userType"`
	HasPhoto     bool     `bson:"hasPhoto" json:"hasPhoto"`
	FCMToken     string   `bson:"fcmToken,omitempty" json:"-"`

	// Provider profile.
	Categories  []string `bson:"categories,omitempty" json:"categories,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Experience  string   `bson:"experience,omitempty" json:"experience,omitempty"`

	// Denormalized rating state. Source of truth is the rating
	// collections; these are caches maintained by the rating service.
	Rating            float64 `bson:"rating" json:"rating"`
	TotalRatings      int     `bson:"totalRatings" json:"totalRatings"`
	ServicesCompleted int     `bson:"servicesCompleted" json:"servicesCompleted"`

	ClientRating           float64 `bson:"clientRating" json:"clientRating"`
	TotalClientRatings     int     `bson:"totalClientRatings" json:"totalClientRatings"`
	TotalServicesRequested int     `bson:"totalServicesRequested" json:"totalServicesRequested"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsProvider reports whether the user registered as a provider.
func (u *User) IsProvider() bool {
	return u.UserType == UserTypeProvider
}
