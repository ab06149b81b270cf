package user

import "proconecta/models"

// UserService defines identity and profile operations. Every mutating
// call takes the acting user's ID explicitly; there is no ambient
// session state in the core.
type UserService interface {
	Register(input RegistrationInput) (*AuthResponse, error)
	SignIn(email, password string) (*AuthResponse, error)
	SignOut(actorID string) error
	GetUserByID(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UpdateProfile(actorID string, input ProfileUpdateInput) (*models.User, error)
	CompleteProviderProfile(actorID string, input ProviderProfileInput) (*models.User, error)
	SetPhotoFlag(actorID string, hasPhoto bool) error
	UpdateFCMToken(actorID, token string) error
	ListProvidersByCategory(category string) ([]models.User, error)
}
