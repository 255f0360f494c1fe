package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
)

// SessionStarter defines the interface that the service must implement.
type SessionStarter interface {
	Start(ctx context.Context, id, email string) (*models.User, error)
}

// NewSessionHandler returns an HTTP handler that registers the caller on first
// sight and returns the local user record.
// @Summary Start session
// @Description Finds or creates the local user for the token identity
// @Tags session
// @Produce json
// @Success 200 {object} models.User "Local user"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /session [post]
// @Security BearerAuth
func NewSessionHandler(starter SessionStarter, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r, tokener)
		if !ok {
			return
		}

		if claims.Email == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := starter.Start(r.Context(), claims.UserID, claims.Email)
		if err != nil {
			logger.Log.Errorw("failed to start session", "user_id", claims.UserID, "error", err)
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
