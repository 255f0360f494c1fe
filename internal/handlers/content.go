package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
)

// ContentManager defines the interface that the service must implement.
type ContentManager interface {
	Delete(ctx context.Context, userID, contentID string) error
	SetStatus(ctx context.Context, userID, contentID, status string) (*models.Content, error)
}

// SuccessResponse acknowledges an operation without a payload
// swagger:model SuccessResponse
type SuccessResponse struct {
	Success bool `json:"success"`
}

// StatusRequest represents a content status change
// swagger:model StatusRequest
type StatusRequest struct {
	// New status
	// required: true
	// default: archived
	Status string `json:"status"`
}

// NewDeleteContentHandler returns an HTTP handler deleting one of the caller's content items.
// @Summary Delete content
// @Tags content
// @Produce json
// @Param id path string true "Content id"
// @Success 200 {object} handlers.SuccessResponse
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Content of another user"
// @Failure 404 {object} models.ErrorResponse "Content not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /content/{id} [delete]
// @Security BearerAuth
func NewDeleteContentHandler(manager ContentManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r, tokener)
		if !ok {
			return
		}

		contentID := chi.URLParam(r, "id")

		if err := manager.Delete(r.Context(), claims.UserID, contentID); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}

// NewSetContentStatusHandler returns an HTTP handler archiving or reactivating content.
// @Summary Set content status
// @Tags content
// @Accept json
// @Produce json
// @Param id path string true "Content id"
// @Param request body handlers.StatusRequest true "New status"
// @Success 200 {object} models.Content
// @Failure 400 {object} models.ErrorResponse "Invalid status"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Content of another user"
// @Failure 404 {object} models.ErrorResponse "Content not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /content/{id}/status [patch]
// @Security BearerAuth
func NewSetContentStatusHandler(manager ContentManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r, tokener)
		if !ok {
			return
		}

		var req StatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("invalid status request body", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		content, err := manager.SetStatus(r.Context(), claims.UserID, chi.URLParam(r, "id"), req.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, content)
	}
}
