package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
)

// ProfileManager defines the interface that the service must implement.
type ProfileManager interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Onboard(ctx context.Context, userID, email string, fields models.ProfileFields) (*models.Profile, error)
	Update(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error)
}

// OnboardRequest represents the onboarding form
// swagger:model OnboardRequest
type OnboardRequest struct {
	// Optional display name
	Name *string `json:"name,omitempty"`

	// Business category
	// required: true
	// default: ecommerce
	BusinessType string `json:"businessType"`

	// Target audience
	// required: true
	// default: young adults
	TargetPersona string `json:"targetPersona"`

	// Distribution channels, at least one
	// required: true
	Channels []string `json:"channels"`
}

// UpdateProfileRequest represents a partial profile change
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Name          *string  `json:"name,omitempty"`
	BusinessType  *string  `json:"businessType,omitempty"`
	TargetPersona *string  `json:"targetPersona,omitempty"`
	Channels      []string `json:"channels,omitempty"`
}

// NewGetProfileHandler returns an HTTP handler for reading the caller's profile.
// @Summary Get profile
// @Tags profile
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not onboarded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /profile [get]
// @Security BearerAuth
func NewGetProfileHandler(profiles ProfileManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r, tokener)
		if !ok {
			return
		}

		profile, err := profiles.Get(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, profile)
	}
}

// NewOnboardProfileHandler returns an HTTP handler that creates or replaces the caller's profile.
// @Summary Onboard
// @Tags profile
// @Accept json
// @Produce json
// @Param request body handlers.OnboardRequest true "Onboarding data"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse "Invalid profile data"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /profile [post]
// @Security BearerAuth
func NewOnboardProfileHandler(profiles ProfileManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r, tokener)
		if !ok {
			return
		}

		var req OnboardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("invalid onboarding request body", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		profile, err := profiles.Onboard(r.Context(), claims.UserID, claims.Email, models.ProfileFields{
			Name:          req.Name,
			BusinessType:  req.BusinessType,
			TargetPersona: req.TargetPersona,
			Channels:      req.Channels,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, profile)
	}
}

// NewUpdateProfileHandler returns an HTTP handler that changes the supplied profile fields.
// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body handlers.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse "Invalid profile data"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not onboarded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /profile [put]
// @Security BearerAuth
func NewUpdateProfileHandler(profiles ProfileManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r, tokener)
		if !ok {
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("invalid profile update body", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		profile, err := profiles.Update(r.Context(), claims.UserID, models.ProfileUpdate{
			Name:          req.Name,
			BusinessType:  req.BusinessType,
			TargetPersona: req.TargetPersona,
			Channels:      req.Channels,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, profile)
	}
}
