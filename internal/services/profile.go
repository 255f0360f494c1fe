package services

import (
	"context"
	"fmt"

	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
	"github.com/sbilibin2017/gw-content-studio/internal/storage"
)

// ProfileService handles onboarding and profile edits.
type ProfileService struct {
	profiles storage.ProfileStore
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profiles storage.ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get returns the user's profile or storage.ErrNotFound.
func (svc *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return svc.profiles.GetProfile(ctx, userID)
}

// Onboard creates or replaces the user's profile.
func (svc *ProfileService) Onboard(ctx context.Context, userID, email string, fields models.ProfileFields) (*models.Profile, error) {
	profile, err := svc.profiles.UpsertProfile(ctx, userID, email, fields)
	if err != nil {
		logger.Log.Errorw("failed to save profile", "user_id", userID, "error", err)
		return nil, err
	}
	return profile, nil
}

// Update changes the supplied fields of an existing profile.
func (svc *ProfileService) Update(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", storage.ErrValidation)
	}

	profile, err := svc.profiles.UpdateProfile(ctx, userID, update)
	if err != nil {
		logger.Log.Errorw("failed to update profile", "user_id", userID, "error", err)
		return nil, err
	}
	return profile, nil
}
