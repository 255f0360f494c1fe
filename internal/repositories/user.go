package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
	"github.com/sbilibin2017/gw-content-studio/internal/storage"
)

// UserRepository stores local user records.
type UserRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserRepository {
	return &UserRepository{db: db, txGetter: txGetter}
}

// GetUserByID retrieves a user by id.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const query = `
		SELECT id, email, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
		SELECT id, email, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.getOne(ctx, query, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var u models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &u, query, arg)

	// Log query, args, result, error
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{arg},
		"result", u,
		"error", err,
	)

	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

// FindOrCreateUser inserts the user unless the id or email is already taken,
// then reads the stored record back by id and, failing that, by email.
func (r *UserRepository) FindOrCreateUser(ctx context.Context, id, email string) (*models.User, error) {
	if err := storage.ValidateUser(id, email); err != nil {
		return nil, err
	}

	const query = `
		INSERT INTO users (id, email, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT DO NOTHING
	`

	_, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id, email)

	// Log query, args, result, error
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, email},
		"result", nil,
		"error", err,
	)

	if err != nil {
		return nil, mapError(err)
	}

	u, err := r.GetUserByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return r.GetUserByEmail(ctx, email)
	}
	return u, err
}

// CreateUser inserts a new user, failing with storage.ErrDuplicateKey when the
// id or email exists.
func (r *UserRepository) CreateUser(ctx context.Context, id, email string) (*models.User, error) {
	if err := storage.ValidateUser(id, email); err != nil {
		return nil, err
	}

	const query = `
		INSERT INTO users (id, email, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, email, created_at, updated_at
	`

	var u models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &u, query, id, email)

	// Log query, args, result, error
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, email},
		"result", u,
		"error", err,
	)

	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}
