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

const profileColumns = `id, user_id, email, name, business_type, target_persona, channels, created_at, updated_at`

// ProfileRepository stores marketing profiles.
type ProfileRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewProfileRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ProfileRepository {
	return &ProfileRepository{db: db, txGetter: txGetter}
}

// GetProfile retrieves the profile of a user.
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	var p models.Profile
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &p, query, userID)

	logger.Log.Infow(
		"query", query,
		"args", []any{userID},
		"result", p,
		"error", err,
	)

	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// UpsertProfile inserts a profile or replaces the updatable fields of the
// existing one. Email and creation time of an existing row are kept.
func (r *ProfileRepository) UpsertProfile(ctx context.Context, userID, email string, fields models.ProfileFields) (*models.Profile, error) {
	fields, err := storage.ValidateProfileFields(userID, email, fields)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO profiles (id, user_id, email, name, business_type, target_persona, channels, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			business_type = EXCLUDED.business_type,
			target_persona = EXCLUDED.target_persona,
			channels = EXCLUDED.channels,
			updated_at = NOW()
		RETURNING ` + profileColumns

	args := []any{uuid.NewString(), userID, email, fields.Name, fields.BusinessType, fields.TargetPersona, fields.Channels}

	var p models.Profile
	err = sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &p, query, args...)

	// Log query, args, result, error
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", p,
		"error", err,
	)

	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// UpdateProfile applies the non-nil fields of update to an existing profile.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	update, err := storage.ValidateProfileUpdate(update)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE profiles SET
			name = COALESCE($2, name),
			business_type = COALESCE($3, business_type),
			target_persona = COALESCE($4, target_persona),
			channels = COALESCE($5::text[], channels),
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns

	var channels any
	if update.Channels != nil {
		channels = update.Channels
	}
	args := []any{userID, update.Name, update.BusinessType, update.TargetPersona, channels}

	var p models.Profile
	err = sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &p, query, args...)

	// Log query, args, result, error
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", p,
		"error", err,
	)

	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}
