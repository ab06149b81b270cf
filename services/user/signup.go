package user

import (
	"time"

	"proconecta/models"
	"proconecta/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register validates the input, checks availability and persists the
// new profile. The role is fixed at this point; provider and client
// counters start at zero.
func (s *DefaultUserService) Register(input RegistrationInput) (*AuthResponse, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	if existing, err := s.Repo.GetByUsername(input.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, utils.Validationf("username %q is already taken", input.Username)
	}
	if existing, err := s.Repo.GetByEmail(input.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, utils.Validationf("an account with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, utils.Validationf("registration failed, please try again")
	}

	userObj := models.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		UserType:     input.UserType,
	}
	if err := s.Repo.Create(&userObj); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(userObj.ID, userObj.Email, 72*time.Hour)
	if err != nil {
		utils.GetLogger().Error("Register: failed to issue token", zap.Error(err))
		return nil, &utils.NetworkError{Op: "issue token", Err: err}
	}

	// The new account is signed in right away: without the session hash
	// the auth middleware would reject the token just issued.
	if err := s.Sessions.Save(userObj.ID, token); err != nil {
		utils.GetLogger().Error("Register: failed to save auth session", zap.Error(err))
		return nil, &utils.NetworkError{Op: "save auth session", Err: err}
	}

	return &AuthResponse{User: &userObj, Token: token}, nil
}
