package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-content-studio/internal/jwt"
	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
	"github.com/sbilibin2017/gw-content-studio/internal/services"
	"github.com/sbilibin2017/gw-content-studio/internal/storage"
)

// Tokener resolves the caller identity from the bearer token.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

// claimsFromRequest writes 401 and returns false when the caller is not
// authenticated.
func claimsFromRequest(w http.ResponseWriter, r *http.Request, tokener Tokener) (*jwt.Claims, bool) {
	ctx := r.Context()

	tokenStr, err := tokener.GetTokenFromRequest(ctx, r)
	if err != nil {
		logger.Log.Errorw("unauthorized request: missing or invalid token", "error", err)
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	claims, err := tokener.GetClaims(ctx, tokenStr)
	if err != nil {
		logger.Log.Errorw("failed to parse token claims", "error", err)
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	return claims, true
}

// writeServiceError maps a service or storage failure to its HTTP status.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrValidation),
		errors.Is(err, services.ErrInvalidContentType),
		errors.Is(err, services.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInsufficientCredits):
		writeError(w, http.StatusForbidden, "Insufficient credits")
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, services.ErrContentNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrGenerationFailed):
		writeError(w, http.StatusBadGateway, "Content generation failed")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
