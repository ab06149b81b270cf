package userRepo

import "proconecta/models"

// UserRepository defines persistence for user profiles.
//
// Lookups by email or username return (nil, nil) when no document
// matches; lookups by ID return a NotFoundError. Driver failures are
// translated into the utils error taxonomy, never surfaced raw.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	ListProvidersByCategory(category string) ([]models.User, error)
}
