package ratingRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	serviceRepo "proconecta/database/repository/service"
	userRepo "proconecta/database/repository/user"
	"proconecta/models"
)

// MemoryRatingRepo implements RatingRepository with in-memory storage.
// It mutates the in-memory service and user repositories directly,
// standing in for the cross-collection transaction of the Mongo repo.
type MemoryRatingRepo struct {
	mu      sync.Mutex
	records map[models.RatingSpace][]models.RatingRecord

	Services *serviceRepo.MemoryServiceRepo
	Users    *userRepo.MemoryUserRepo
}

// NewMemoryRatingRepo creates an in-memory rating repository bound to
// the given service and user stores.
func NewMemoryRatingRepo(services *serviceRepo.MemoryServiceRepo, users *userRepo.MemoryUserRepo) *MemoryRatingRepo {
	return &MemoryRatingRepo{
		records:  make(map[models.RatingSpace][]models.RatingRecord),
		Services: services,
		Users:    users,
	}
}

func (r *MemoryRatingRepo) Submit(_ context.Context, space models.RatingSpace, rec *models.RatingRecord) (float64, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	svc, err := r.Services.GetByID(rec.ServiceID)
	if err != nil {
		return 0, 0, ErrAlreadyRated
	}
	if svc.Status != models.StatusCompleted {
		return 0, 0, ErrAlreadyRated
	}

	now := time.Now()
	rec.CreatedAt = now

	if space == models.SpaceClient {
		if svc.ProviderRatedAt != nil {
			return 0, 0, ErrAlreadyRated
		}
		svc.ProviderRating = rec.Rating
		svc.ProviderComment = rec.Comment
		svc.ProviderRatedAt = &now
	} else {
		if svc.ClientRatedAt != nil {
			return 0, 0, ErrAlreadyRated
		}
		svc.ClientRating = rec.Rating
		svc.ClientComment = rec.Comment
		svc.ClientRatedAt = &now
	}
	r.Services.Put(*svc)

	r.records[space] = append(r.records[space], *rec)

	var sum, count int
	for _, existing := range r.records[space] {
		if existing.SubjectID == rec.SubjectID {
			sum += existing.Rating
			count++
		}
	}
	avg := float64(sum) / float64(count)

	subject, err := r.Users.GetByID(rec.SubjectID)
	if err != nil {
		return 0, 0, err
	}
	if space == models.SpaceClient {
		subject.ClientRating = avg
		subject.TotalClientRatings = count
		subject.TotalServicesRequested = count
	} else {
		subject.Rating = avg
		subject.TotalRatings = count
		subject.ServicesCompleted = count
	}
	if err := r.Users.Update(subject); err != nil {
		return 0, 0, err
	}

	return avg, count, nil
}

func (r *MemoryRatingRepo) ListBySubject(space models.RatingSpace, subjectID string) ([]models.RatingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.RatingRecord
	for _, rec := range r.records[space] {
		if rec.SubjectID == subjectID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
