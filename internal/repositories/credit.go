package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
	"github.com/sbilibin2017/gw-content-studio/internal/storage"
)

// CreditRepository is the append-only credit ledger.
type CreditRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewCreditRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *CreditRepository {
	return &CreditRepository{db: db, txGetter: txGetter}
}

// GetBalance sums the user's ledger. found is false when the user has no entries.
func (r *CreditRepository) GetBalance(ctx context.Context, userID string) (int64, bool, error) {
	const query = `
		SELECT COUNT(*) AS entries, COALESCE(SUM(amount), 0) AS balance
		FROM credit_transactions
		WHERE user_id = $1
	`

	var row struct {
		Entries int64 `db:"entries"`
		Balance int64 `db:"balance"`
	}
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &row, query, userID)

	// Log query, args, result, error
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", row,
		"error", err,
	)

	if err != nil {
		return 0, false, mapError(err)
	}
	return row.Balance, row.Entries > 0, nil
}

// ApplyTransaction appends one ledger entry and returns the new balance.
// An empty source is stored as NULL.
func (r *CreditRepository) ApplyTransaction(ctx context.Context, userID string, amount int64, source string) (int64, error) {
	if userID == "" {
		return 0, fmt.Errorf("%w: user id is required", storage.ErrValidation)
	}

	const query = `
		INSERT INTO credit_transactions (id, user_id, amount, source, created_at)
		VALUES ($1, $2, $3, NULLIF($4::text, ''), NOW())
	`

	args := []any{uuid.NewString(), userID, amount, source}
	_, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)

	// Log query, args, result, error
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", nil,
		"error", err,
	)

	if err != nil {
		return 0, mapError(err)
	}

	balance, _, err := r.GetBalance(ctx, userID)
	return balance, err
}

// ListTransactions returns the user's ledger newest first.
func (r *CreditRepository) ListTransactions(ctx context.Context, userID string) ([]models.CreditTransaction, error) {
	const query = `
		SELECT id, user_id, amount, source, created_at
		FROM credit_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
	`

	txs := []models.CreditTransaction{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &txs, query, userID)

	// Log query, args, result, error
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(txs),
		"error", err,
	)

	if err != nil {
		return nil, mapError(err)
	}
	return txs, nil
}
