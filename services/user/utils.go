package user

import (
	"regexp"
	"strings"

	"proconecta/models"
	"proconecta/utils"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// ValidateUsername enforces the 3-20 character alphanumeric/underscore rule.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return utils.Validationf("username must be 3-20 characters, letters, digits and underscore only")
	}
	return nil
}

func validateRegistration(input RegistrationInput) error {
	if err := ValidateUsername(input.Username); err != nil {
		return err
	}
	if strings.TrimSpace(input.Name) == "" {
		return utils.Validationf("name is required")
	}
	if !strings.Contains(input.Email, "@") {
		return utils.Validationf("a valid email is required")
	}
	if len(input.Password) < 8 {
		return utils.Validationf("password must be at least 8 characters")
	}
	if input.UserType != models.UserTypeClient && input.UserType != models.UserTypeProvider {
		return utils.Validationf("userType must be client or provider")
	}
	return nil
}
