package discovery

import (
	"sort"

	serviceRepo "proconecta/database/repository/service"
	userRepo "proconecta/database/repository/user"
	"proconecta/models"
	"proconecta/utils"
)

// DefaultRadiusKm bounds a demand search when the caller gives none.
const DefaultRadiusKm = 10.0

// Query narrows a provider's demand search. Zero values fall back to
// the provider's own categories and the default radius.
type Query struct {
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	MaxKm      float64  `json:"maxKm,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// DiscoveryService finds open demands near a provider.
type DiscoveryService interface {
	FindAvailableDemands(actorID string, q Query) ([]models.ServiceRequest, error)
}

// DefaultDiscoveryService is the production implementation.
type DefaultDiscoveryService struct {
	Services serviceRepo.ServiceRepository
	Users    userRepo.UserRepository
}

// FindAvailableDemands returns pending, unassigned requests within the
// search radius, nearest first, each stamped with its great-circle
// distance from the query point. Ties on distance break newest first.
func (s *DefaultDiscoveryService) FindAvailableDemands(actorID string, q Query) ([]models.ServiceRequest, error) {
	actor, err := s.Users.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsProvider() {
		return nil, utils.Validationf("only providers can search for demands")
	}
	if !utils.ValidCoordinates(q.Latitude, q.Longitude) {
		return nil, utils.Validationf("search coordinates are out of range")
	}
	if q.MaxKm < 0 {
		return nil, utils.Validationf("search radius cannot be negative")
	}

	radius := q.MaxKm
	if radius == 0 {
		radius = DefaultRadiusKm
	}
	categories := q.Categories
	if len(categories) == 0 {
		categories = actor.Categories
	}

	open, err := s.Services.ListOpen(categories)
	if err != nil {
		return nil, err
	}

	matches := make([]models.ServiceRequest, 0, len(open))
	for _, req := range open {
		if req.ClientID == actorID {
			continue
		}
		d := utils.HaversineKm(q.Latitude, q.Longitude,
			req.Location.Latitude, req.Location.Longitude)
		if d > radius {
			continue
		}
		req.DistanceKm = d
		matches = append(matches, req)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}
