// Package repositories implements storage.Storage on PostgreSQL through sqlx
// and provides the Redis-backed per-user spend lock.
package repositories

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/sbilibin2017/gw-content-studio/internal/repositories/migrations"
	"github.com/sbilibin2017/gw-content-studio/internal/storage"
)

// Postgres composes the table repositories into a storage.Storage.
type Postgres struct {
	*UserRepository
	*ProfileRepository
	*ContentRepository
	*CreditRepository

	db *sqlx.DB
}

var _ storage.Storage = (*Postgres)(nil)

// NewPostgres wires every repository to db. Calls made with a ctx from
// WithinTx run on that transaction.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{
		UserRepository:    NewUserRepository(db, TxFromContext),
		ProfileRepository: NewProfileRepository(db, TxFromContext),
		ContentRepository: NewContentRepository(db, TxFromContext),
		CreditRepository:  NewCreditRepository(db, TxFromContext),
		db:                db,
	}
}

// Open connects with the pgx driver and applies pool limits.
func Open(ctx context.Context, dsn string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, mapError(err)
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	return db, nil
}

// WithinTx runs fn in one database transaction.
func (p *Postgres) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithinTx(ctx, p.db, fn)
}

// Ping checks the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return mapError(p.db.PingContext(ctx))
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
