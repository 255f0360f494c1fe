package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
	"github.com/sbilibin2017/gw-content-studio/internal/storage"
)

const contentColumns = `id, user_id, type, title, body, tone, objective, status, created_at, updated_at`

// ContentRepository stores generated content.
type ContentRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewContentRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ContentRepository {
	return &ContentRepository{db: db, txGetter: txGetter}
}

// CreateContent validates and inserts a content item.
func (r *ContentRepository) CreateContent(ctx context.Context, nc models.NewContent) (*models.Content, error) {
	if err := storage.ValidateNewContent(&nc); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO contents (id, user_id, type, title, body, tone, objective, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + contentColumns

	args := []any{uuid.NewString(), nc.UserID, string(nc.Type), nc.Title, nc.Body, nc.Tone, nc.Objective, nc.Status}

	var c models.Content
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &c, query, args...)

	// Log query, args, result, error
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", c.ID,
		"error", err,
	)

	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// GetContent retrieves a content item by id.
func (r *ContentRepository) GetContent(ctx context.Context, id string) (*models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE id = $1`

	var c models.Content
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &c, query, id)

	logger.Log.Infow(
		"query", query,
		"args", []any{id},
		"result", c.ID,
		"error", err,
	)

	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// ListContentByUser returns the user's content newest first, optionally
// restricted to one category.
func (r *ContentRepository) ListContentByUser(ctx context.Context, userID string, contentType models.ContentType) ([]models.Content, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM contents
		WHERE user_id = $1 AND ($2::text = '' OR type = $2::text)
		ORDER BY created_at DESC, seq DESC
	`

	contents := []models.Content{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &contents, query, userID, string(contentType))

	// Log query, args, result, error
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, contentType},
		"result", len(contents),
		"error", err,
	)

	if err != nil {
		return nil, mapError(err)
	}
	return contents, nil
}

// DeleteContent removes a content item. Deleting an unknown id is not an error.
func (r *ContentRepository) DeleteContent(ctx context.Context, id string) error {
	const query = `DELETE FROM contents WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)

	var affected int64
	if err == nil {
		affected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", query,
		"args", []any{id},
		"result", affected,
		"error", err,
	)

	return mapError(err)
}

// CountContentByUser counts the user's content.
func (r *ContentRepository) CountContentByUser(ctx context.Context, userID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM contents WHERE user_id = $1`

	var n int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &n, query, userID)

	logger.Log.Infow(
		"query", query,
		"args", []any{userID},
		"result", n,
		"error", err,
	)

	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// ContentTypeDistribution counts the user's content per category.
func (r *ContentRepository) ContentTypeDistribution(ctx context.Context, userID string) (map[models.ContentType]int64, error) {
	const query = `
		SELECT type, COUNT(*) AS count
		FROM contents
		WHERE user_id = $1
		GROUP BY type
	`

	var rows []struct {
		Type  models.ContentType `db:"type"`
		Count int64              `db:"count"`
	}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &rows, query, userID)

	// Convert to map
	dist := make(map[models.ContentType]int64, len(rows))
	for _, row := range rows {
		dist[row.Type] = row.Count
	}

	// Log query, args, result, error
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", dist,
		"error", err,
	)

	if err != nil {
		return nil, mapError(err)
	}
	return dist, nil
}

// UpdateContentStatus sets the status of a content item.
func (r *ContentRepository) UpdateContentStatus(ctx context.Context, id, status string) (*models.Content, error) {
	if err := storage.ValidateStatus(status); err != nil {
		return nil, err
	}

	query := `
		UPDATE contents SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + contentColumns

	var c models.Content
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &c, query, id, status)

	// Log query, args, result, error
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, status},
		"result", c.Status,
		"error", err,
	)

	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}
