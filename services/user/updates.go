package user

import (
	"strings"

	"proconecta/models"
	"proconecta/utils"
)

// UpdateProfile applies the self-editable fields. The role, username
// and email are not touchable here.
func (s *DefaultUserService) UpdateProfile(actorID string, input ProfileUpdateInput) (*models.User, error) {
	usr, err := s.Repo.GetByID(actorID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, utils.Validationf("name cannot be empty")
		}
		usr.Name = *input.Name
	}
	if input.Description != nil {
		usr.Description = *input.Description
	}

	if err := s.Repo.Update(usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// CompleteProviderProfile fills in the provider-only fields. An active
// provider must offer at least one category.
func (s *DefaultUserService) CompleteProviderProfile(actorID string, input ProviderProfileInput) (*models.User, error) {
	usr, err := s.Repo.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if !usr.IsProvider() {
		return nil, utils.Validationf("only providers can set a provider profile")
	}
	if len(input.Categories) == 0 {
		return nil, utils.Validationf("at least one service category is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, utils.Validationf("description is required")
	}

	usr.Categories = input.Categories
	usr.Description = input.Description
	usr.Experience = input.Experience

	if err := s.Repo.Update(usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// SetPhotoFlag records whether a profile photo blob exists for the user.
func (s *DefaultUserService) SetPhotoFlag(actorID string, hasPhoto bool) error {
	usr, err := s.Repo.GetByID(actorID)
	if err != nil {
		return err
	}
	usr.HasPhoto = hasPhoto
	return s.Repo.Update(usr)
}

// UpdateFCMToken stores the device push token.
func (s *DefaultUserService) UpdateFCMToken(actorID, token string) error {
	usr, err := s.Repo.GetByID(actorID)
	if err != nil {
		return err
	}
	usr.FCMToken = token
	return s.Repo.Update(usr)
}
