// Package services: services/user_service.go
package services

import (
	"errors"
	"strings"

	"betboard/logger"
	"betboard/models"
	"betboard/store"
)

// UserServiceInterface is the profile boundary the controllers use.
type UserServiceInterface interface {
	GetOrCreateProfile(userID, email string) (*models.UserProfile, error)
	GetProfile(userID string) (*models.UserProfile, error)
	UpdateProfile(userID string, upd models.ProfileUpdate) (*models.UserProfile, error)
	IsAdmin(userID string) bool
}

// UserService manages user profiles and their feature flags.
type UserService struct {
	store store.Store
}

// NewUserService creates a UserService backed by the given store.
func NewUserService(s store.Store) *UserService {
	return &UserService{store: s}
}

// GetProfile fetches a profile; store.ErrNotFound when absent.
func (s *UserService) GetProfile(userID string) (*models.UserProfile, error) {
	return s.store.GetProfile(userID)
}

// GetOrCreateProfile fetches the profile, creating a default "user"
// role profile on first sight.
func (s *UserService) GetOrCreateProfile(userID, email string) (*models.UserProfile, error) {
	profile, err := s.store.GetProfile(userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	now := timestampFunc()
	created := models.UserProfile{
		UserID:       userID,
		Email:        email,
		Role:         models.RoleUser,
		FeatureFlags: models.DefaultFeatureFlags(models.RoleUser),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.PutProfile(created); err != nil {
		return nil, err
	}
	logger.Info.Printf("GetOrCreateProfile: created default profile for user %s", userID)
	return &created, nil
}

// UpdateProfile applies a partial profile update. A role change resets
// the feature flags to the new role's defaults; an explicit flag set in
// the same update wins over the reset. Aliases must be non-empty
// strings.
func (s *UserService) UpdateProfile(userID string, upd models.ProfileUpdate) (*models.UserProfile, error) {
	profile, err := s.store.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if upd.Role != nil {
		if *upd.Role != models.RoleUser && *upd.Role != models.RoleAdmin {
			return nil, invalid("role must be 'user' or 'admin'")
		}
		profile.Role = *upd.Role
		profile.FeatureFlags = models.DefaultFeatureFlags(*upd.Role)
	}
	if upd.Email != nil {
		profile.Email = *upd.Email
	}
	if upd.FeatureFlags != nil {
		profile.FeatureFlags = *upd.FeatureFlags
	}
	if upd.Aliases != nil {
		for _, alias := range *upd.Aliases {
			if strings.TrimSpace(alias) == "" {
				return nil, invalid("all aliases must be non-empty strings")
			}
		}
		profile.Aliases = *upd.Aliases
	}

	profile.UpdatedAt = timestampFunc()
	if err := s.store.PutProfile(*profile); err != nil {
		return nil, err
	}
	logger.Info.Printf("UpdateProfile: updated profile for user %s", userID)
	return profile, nil
}

// IsAdmin reports whether the user's stored profile carries the admin
// role. Unknown users are not admins.
func (s *UserService) IsAdmin(userID string) bool {
	profile, err := s.store.GetProfile(userID)
	if err != nil {
		return false
	}
	return profile.IsAdmin()
}

// UsernameFromEmail returns the part of an email before the @, used as
// a display name. Empty when the email is malformed.
func UsernameFromEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return ""
	}
	return email[:at]
}
