package user

import (
	userRepo "proconecta/database/repository/user"
	"proconecta/models"
	"proconecta/utils"
)

// SessionStore records the active-session hash for issued tokens so the
// auth middleware can check and revoke them.
type SessionStore interface {
	Save(userID, token string) error
	Delete(userID string) error
}

// RedisSessionStore backs SessionStore with the auth cache client.
type RedisSessionStore struct{}

func (RedisSessionStore) Save(userID, token string) error {
	return utils.SaveAuthSession(utils.GetAuthCacheClient(), userID, token)
}

func (RedisSessionStore) Delete(userID string) error {
	return utils.DeleteAuthSession(utils.GetAuthCacheClient(), userID)
}

// DefaultUserService is the production implementation of UserService.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Sessions SessionStore
}

// RegistrationInput carries the fields collected at sign-up. The role
// is fixed here and never changes afterwards.
type RegistrationInput struct {
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	UserType models.UserType `json:"userType"`
}

// ProfileUpdateInput carries the self-editable profile fields.
type ProfileUpdateInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ProviderProfileInput completes a provider's public profile.
type ProviderProfileInput struct {
	Categories  []string `json:"categories"`
	Description string   `json:"description"`
	Experience  string   `json:"experience,omitempty"`
}

// AuthResponse is returned on successful registration or sign-in.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
