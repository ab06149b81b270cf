package ratingRepo

import (
	"context"
	"errors"

	"proconecta/models"
)

// ErrAlreadyRated reports that the rating slot for this service and
// rater role was filled first, by this caller or a concurrent one.
var ErrAlreadyRated = errors.New("rating slot already filled")

// RatingRepository defines persistence for the two rating record spaces.
type RatingRepository interface {
	// Submit appends rec to the given space, recomputes the subject's
	// average over that space, and writes the denormalized copies onto
	// the service request slot and the subject profile, all in one
	// atomic step. Returns the new average and record count.
	Submit(ctx context.Context, space models.RatingSpace, rec *models.RatingRecord) (avg float64, count int, err error)
	// ListBySubject returns the subject's records, newest first.
	ListBySubject(space models.RatingSpace, subjectID string) ([]models.RatingRecord, error)
}
