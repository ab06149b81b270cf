package rating

import (
	"context"
	"errors"
	"time"

	ratingRepo "proconecta/database/repository/rating"
	serviceRepo "proconecta/database/repository/service"
	userRepo "proconecta/database/repository/user"
	"proconecta/models"
	"proconecta/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultRatingService is the production implementation.
type DefaultRatingService struct {
	Ratings  ratingRepo.RatingRepository
	Services serviceRepo.ServiceRepository
	Users    userRepo.UserRepository
}

// Submit records the actor's rating of their counterparty on a completed
// request. The actor's role on the request selects the space: clients
// rate providers, providers rate clients.
func (s *DefaultRatingService) Submit(ctx context.Context, actorID string, input SubmitInput) (*SubmitResult, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, utils.Validationf("rating must be between 1 and 5")
	}

	req, err := s.Services.GetByID(input.ServiceID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusCompleted {
		return nil, &utils.InvalidStateTransitionError{Action: "rate", Current: string(req.Status)}
	}

	role := req.PartyRole(actorID)
	if role == "" {
		return nil, utils.Validationf("only the client or the provider of this service can rate it")
	}

	var space models.RatingSpace
	var subjectID string
	var ratedAt *time.Time
	if role == models.UserTypeClient {
		space = models.SpaceProvider
		subjectID = req.ProviderID
		ratedAt = req.ClientRatedAt
	} else {
		space = models.SpaceClient
		subjectID = req.ClientID
		ratedAt = req.ProviderRatedAt
	}
	if ratedAt != nil {
		return nil, &utils.DuplicateRatingError{ServiceID: req.ID}
	}

	rec := models.RatingRecord{
		ID:          uuid.NewString(),
		SubjectID:   subjectID,
		RaterID:     actorID,
		ServiceID:   req.ID,
		ServiceType: req.ServiceType,
		Rating:      input.Rating,
		Comment:     input.Comment,
		CreatedAt:   time.Now(),
	}

	avg, count, err := s.Ratings.Submit(ctx, space, &rec)
	if err != nil {
		if errors.Is(err, ratingRepo.ErrAlreadyRated) {
			return nil, &utils.DuplicateRatingError{ServiceID: req.ID}
		}
		return nil, err
	}

	utils.GetLogger().Info("rating submitted",
		zap.String("serviceId", req.ID),
		zap.String("space", string(space)),
		zap.Float64("average", avg))

	return &SubmitResult{
		Record:       rec,
		SubjectID:    subjectID,
		Average:      avg,
		TotalRatings: count,
	}, nil
}

// ListForUser returns the ratings received by userID in the given space,
// hydrated with reviewer names for display. Reviewers deleted since the
// rating fall back to an anonymous entry rather than dropping the record.
func (s *DefaultRatingService) ListForUser(userID string, space models.RatingSpace) ([]models.RatingView, error) {
	if _, err := s.Users.GetByID(userID); err != nil {
		return nil, err
	}

	recs, err := s.Ratings.ListBySubject(space, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.RatingView, 0, len(recs))
	for _, rec := range recs {
		view := models.RatingView{
			ID:           rec.ID,
			Rating:       rec.Rating,
			Comment:      rec.Comment,
			CreatedAt:    rec.CreatedAt,
			ReviewerName: "Former user",
			ServiceType:  rec.ServiceType,
		}
		if reviewer, err := s.Users.GetByID(rec.RaterID); err == nil {
			view.ReviewerName = reviewer.Name
			view.ReviewerHasPhoto = reviewer.HasPhoto
		}
		views = append(views, view)
	}
	return views, nil
}
