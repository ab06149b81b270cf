package models

import "time"

// RatingSpace selects one of the two disjoint rating record spaces.
type RatingSpace string

const (
	// SpaceProvider holds clients' ratings of providers ("ratings").
	SpaceProvider RatingSpace = "ratings"
	// SpaceClient holds providers' ratings of clients ("client_ratings").
	SpaceClient RatingSpace = "client_ratings"
)

// RatingRecord is one immutable rating of a subject by a rater for a
// single completed service request.
type RatingRecord struct {
	ID          string    `bson:"id" json:"id"`
	SubjectID   string    `bson:"subjectId" json:"subjectId"`
	RaterID     string    `bson:"raterId" json:"raterId"`
	ServiceID   string    `bson:"serviceId" json:"serviceId"`
	ServiceType string    `bson:"serviceType" json:"serviceType"`
	Rating      int       `bson:"rating" json:"rating"`
	Comment     string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// RatingView is a record hydrated with reviewer details for display.
type RatingView struct {
	ID               string    `json:"id"`
	Rating           int       `json:"rating"`
	Comment          string    `json:"comment,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	ReviewerName     string    `json:"reviewerName"`
	ReviewerHasPhoto bool      `json:"reviewerHasPhoto"`
	ServiceType      string    `json:"serviceType"`
}
