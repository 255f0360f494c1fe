package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
)

// CreditManager defines the interface that the service must implement.
type CreditManager interface {
	Balance(ctx context.Context, userID string) (int64, error)
	Grant(ctx context.Context, userID string, amount int64, source string) (int64, error)
	Transactions(ctx context.Context, userID string) ([]models.CreditTransaction, error)
}

// CreditsResponse represents a credit balance
// swagger:model CreditsResponse
type CreditsResponse struct {
	// Current balance
	// default: 5
	Amount int64 `json:"amount"`
}

// AddCreditsRequest represents an administrative credit adjustment
// swagger:model AddCreditsRequest
type AddCreditsRequest struct {
	// Target user
	// required: true
	UserID string `json:"userId"`

	// Signed amount, never zero
	// required: true
	// default: 10
	Amount int64 `json:"amount"`

	// Source label, "admin" when empty
	Source string `json:"source,omitempty"`
}

// NewGetCreditsHandler returns an HTTP handler for the caller's balance.
// @Summary Get credits
// @Tags credits
// @Produce json
// @Success 200 {object} handlers.CreditsResponse
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /credits [get]
// @Security BearerAuth
func NewGetCreditsHandler(credits CreditManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r, tokener)
		if !ok {
			return
		}

		balance, err := credits.Balance(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, CreditsResponse{Amount: balance})
	}
}

// NewGetCreditTransactionsHandler returns an HTTP handler for the caller's ledger.
// @Summary Credit transactions
// @Tags credits
// @Produce json
// @Success 200 {array} models.CreditTransaction
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /credits/transactions [get]
// @Security BearerAuth
func NewGetCreditTransactionsHandler(credits CreditManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r, tokener)
		if !ok {
			return
		}

		txs, err := credits.Transactions(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if txs == nil {
			txs = []models.CreditTransaction{}
		}

		writeJSON(w, http.StatusOK, txs)
	}
}

// NewAddCreditsHandler returns an HTTP handler applying an administrative credit adjustment.
// @Summary Add credits
// @Description Requires the X-Admin-Key header
// @Tags credits
// @Accept json
// @Produce json
// @Param request body handlers.AddCreditsRequest true "Adjustment"
// @Success 200 {object} handlers.CreditsResponse
// @Failure 400 {object} models.ErrorResponse "Invalid amount"
// @Failure 403 {object} models.ErrorResponse "Forbidden"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /credits/add [post]
// @Security AdminKey
func NewAddCreditsHandler(credits CreditManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddCreditsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("invalid add credits body", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		balance, err := credits.Grant(r.Context(), req.UserID, req.Amount, req.Source)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, CreditsResponse{Amount: balance})
	}
}
