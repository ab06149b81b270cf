package rating

import (
	"context"

	"proconecta/models"
)

// SubmitInput carries one rating submission for a completed request.
type SubmitInput struct {
	ServiceID string `json:"serviceId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// SubmitResult reports the subject's refreshed aggregate alongside the
// stored record.
type SubmitResult struct {
	Record       models.RatingRecord `json:"record"`
	SubjectID    string              `json:"subjectId"`
	Average      float64             `json:"average"`
	TotalRatings int                 `json:"totalRatings"`
}

// RatingService handles the dual-sided rating flow. Each side of a
// completed request may rate the other exactly once; a repeat attempt
// fails with DuplicateRatingError and leaves the aggregate untouched.
type RatingService interface {
	Submit(ctx context.Context, actorID string, input SubmitInput) (*SubmitResult, error)
	ListForUser(userID string, space models.RatingSpace) ([]models.RatingView, error)
}
