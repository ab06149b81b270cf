package user

import (
	"proconecta/models"
	"proconecta/utils"
)

// GetUserByID fetches a profile by its unique ID.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}

// GetUserByUsername fetches a profile by username.
func (s *DefaultUserService) GetUserByUsername(username string) (*models.User, error) {
	usr, err := s.Repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, &utils.NotFoundError{Resource: "user", ID: username}
	}
	return usr, nil
}

// ListProvidersByCategory returns providers offering the given category,
// best rated first.
func (s *DefaultUserService) ListProvidersByCategory(category string) ([]models.User, error) {
	if category == "" {
		return nil, utils.Validationf("category is required")
	}
	return s.Repo.ListProvidersByCategory(category)
}
