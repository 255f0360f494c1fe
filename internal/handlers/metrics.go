package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-content-studio/internal/services"
)

// MetricsReader defines the interface that the service must implement.
type MetricsReader interface {
	Metrics(ctx context.Context, userID string) (*services.Metrics, error)
}

// NewMetricsHandler returns an HTTP handler summarizing the caller's activity.
// @Summary Metrics
// @Tags metrics
// @Produce json
// @Success 200 {object} services.Metrics
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /metrics [get]
// @Security BearerAuth
func NewMetricsHandler(reader MetricsReader, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r, tokener)
		if !ok {
			return
		}

		m, err := reader.Metrics(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, m)
	}
}
