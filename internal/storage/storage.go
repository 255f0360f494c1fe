// Package storage defines the persistence contract shared by every backend:
// identity, profile, content and credit ledger stores composed into one Storage.
package storage

import (
	"context"

	"github.com/sbilibin2017/gw-content-studio/internal/models"
)

// UserStore maps external identities to local user records.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindOrCreateUser looks up by id, then by email, and inserts only when both
	// miss. A hit by email with a different id returns the stored record as is.
	FindOrCreateUser(ctx context.Context, id, email string) (*models.User, error)
	CreateUser(ctx context.Context, id, email string) (*models.User, error)
}

// ProfileStore keeps one marketing profile per user.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, userID, email string, fields models.ProfileFields) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error)
}

// ContentStore keeps generated content. An empty contentType lists every category.
type ContentStore interface {
	CreateContent(ctx context.Context, c models.NewContent) (*models.Content, error)
	GetContent(ctx context.Context, id string) (*models.Content, error)
	ListContentByUser(ctx context.Context, userID string, contentType models.ContentType) ([]models.Content, error)
	DeleteContent(ctx context.Context, id string) error
	CountContentByUser(ctx context.Context, userID string) (int64, error)
	ContentTypeDistribution(ctx context.Context, userID string) (map[models.ContentType]int64, error)
	UpdateContentStatus(ctx context.Context, id, status string) (*models.Content, error)
}

// CreditLedger is an append-only log of signed credit transactions.
type CreditLedger interface {
	// GetBalance sums the user's transactions. found is false when the user has none.
	GetBalance(ctx context.Context, userID string) (balance int64, found bool, err error)
	// ApplyTransaction appends one entry and returns the recomputed balance.
	ApplyTransaction(ctx context.Context, userID string, amount int64, source string) (int64, error)
	ListTransactions(ctx context.Context, userID string) ([]models.CreditTransaction, error)
}

// Storage is the single capability surface handed to the request layer.
type Storage interface {
	UserStore
	ProfileStore
	ContentStore
	CreditLedger

	// WithinTx runs fn so that every store call made with the ctx passed to fn
	// either persists together or not at all.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	Ping(ctx context.Context) error
	Close() error
}
