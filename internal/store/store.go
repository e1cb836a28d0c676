// Package store persists profiles, conferences, sessions, registrations and
// wishlists in Postgres.
package store

import (
	"context"
	"errors"
	"fmt"

	"ConferenceAPI/internal/filter"
	"ConferenceAPI/internal/logger"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Postgres struct {
	pool *pgxpool.Pool
	regs filter.Registries
}

func New(pool *pgxpool.Pool, regs filter.Registries) *Postgres {
	return &Postgres{pool: pool, regs: regs}
}

// NewKey allocates an entity key.
func NewKey() string { return uuid.NewString() }

// validKey reports whether key can address a row; malformed keys are
// treated as missing rows instead of database errors.
func validKey(key string) bool {
	_, err := uuid.Parse(key)
	return err == nil
}

func (s *Postgres) registry(entity string) (*filter.Registry, error) {
	r, ok := s.regs[entity]
	if !ok {
		return nil, fmt.Errorf("store: no filter registry for %s", entity)
	}
	return r, nil
}

func (s *Postgres) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, s.pool, fn)
}

func logSQL(op, sql string, args []any) {
	logger.Debug("sql", map[string]any{
		"op":   op,
		"sql":  sql,
		"args": args,
	})
}
