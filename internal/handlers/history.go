package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-content-studio/internal/models"
)

// HistoryReader defines the interface that the service must implement.
type HistoryReader interface {
	History(ctx context.Context, userID string, contentType models.ContentType) ([]models.Content, error)
}

// NewHistoryHandler returns an HTTP handler listing the caller's content newest first.
// @Summary Content history
// @Tags content
// @Produce json
// @Param type query string false "Content category filter"
// @Success 200 {array} models.Content
// @Failure 400 {object} models.ErrorResponse "Invalid content type"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /history [get]
// @Security BearerAuth
func NewHistoryHandler(reader HistoryReader, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r, tokener)
		if !ok {
			return
		}

		contentType := models.ContentType(r.URL.Query().Get("type"))

		contents, err := reader.History(r.Context(), claims.UserID, contentType)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if contents == nil {
			contents = []models.Content{}
		}

		writeJSON(w, http.StatusOK, contents)
	}
}
