package user

import (
	"time"

	"proconecta/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SignIn verifies the credentials, issues a JWT and records the session
// hash so the token can be revoked.
func (s *DefaultUserService) SignIn(email, password string) (*AuthResponse, error) {
	if email == "" || password == "" {
		return nil, utils.Validationf("email and password are required")
	}

	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, utils.Validationf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, utils.Validationf("invalid email or password")
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email, 72*time.Hour)
	if err != nil {
		utils.GetLogger().Error("SignIn: failed to issue token", zap.Error(err))
		return nil, &utils.NetworkError{Op: "issue token", Err: err}
	}

	if err := s.Sessions.Save(usr.ID, token); err != nil {
		utils.GetLogger().Error("SignIn: failed to save auth session", zap.Error(err))
		return nil, &utils.NetworkError{Op: "save auth session", Err: err}
	}

	return &AuthResponse{User: usr, Token: token}, nil
}

// SignOut revokes the user's active session.
func (s *DefaultUserService) SignOut(actorID string) error {
	return s.Sessions.Delete(actorID)
}
