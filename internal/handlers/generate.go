package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
	"github.com/sbilibin2017/gw-content-studio/internal/services"
)

// ContentGenerator defines the interface that the service must implement.
type ContentGenerator interface {
	Generate(ctx context.Context, userID string, req services.GenerateRequest) (*services.GenerateResult, error)
}

// GenerateRequest represents a content generation request
// swagger:model GenerateRequest
type GenerateRequest struct {
	// Content category
	// required: true
	// default: INSTAGRAM_POST
	Type models.ContentType `json:"type"`

	// Marketing objective
	Objective string `json:"objective"`

	// Tone of voice
	Tone string `json:"tone"`

	// Theme, also used as the title
	Theme string `json:"theme"`
}

// GenerateResponse represents the stored content and the raw generated text
// swagger:model GenerateResponse
type GenerateResponse struct {
	Content          *models.Content `json:"content"`
	GeneratedContent string          `json:"generatedContent"`
	Credits          int64           `json:"credits"`
}

// NewGenerateHandler returns an HTTP handler that generates and stores content for one credit.
// @Summary Generate content
// @Description Generates marketing text from the profile and request, stores it and charges one credit
// @Tags content
// @Accept json
// @Produce json
// @Param request body handlers.GenerateRequest true "Generation parameters"
// @Success 200 {object} handlers.GenerateResponse
// @Failure 400 {object} models.ErrorResponse "Invalid content type"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Insufficient credits"
// @Failure 502 {object} models.ErrorResponse "Content generation failed"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /generate [post]
// @Security BearerAuth
func NewGenerateHandler(generator ContentGenerator, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r, tokener)
		if !ok {
			return
		}

		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("invalid generate request body", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		res, err := generator.Generate(r.Context(), claims.UserID, services.GenerateRequest{
			Type:      req.Type,
			Objective: req.Objective,
			Tone:      req.Tone,
			Theme:     req.Theme,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, GenerateResponse{
			Content:          res.Content,
			GeneratedContent: res.GeneratedContent,
			Credits:          res.Balance,
		})
	}
}
