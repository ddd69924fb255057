package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMedium keeps every key as one row of the kv_store table.
type PostgresMedium struct {
	pool *pgxpool.Pool
}

// NewPostgresMedium wraps an already verified pool.
func NewPostgresMedium(pool *pgxpool.Pool) *PostgresMedium {
	return &PostgresMedium{pool: pool}
}

// EnsureSchema creates the kv_store table when it does not exist yet.
func (p *PostgresMedium) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS kv_store (
		   key        TEXT PRIMARY KEY,
		   value      TEXT NOT NULL,
		   updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		 )`)
	if err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

func (p *PostgresMedium) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := p.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv_store get %s: %w", key, err)
	}
	return v, true, nil
}

func (p *PostgresMedium) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := p.pool.Exec(ctx,
		`INSERT INTO kv_store (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("kv_store set %s: %w", key, err)
	}
	return nil
}

func (p *PostgresMedium) Remove(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("kv_store remove %s: %w", key, err)
	}
	return nil
}

// Swap relies on the row-level conditional write; RowsAffected tells
// whether this caller won.
func (p *PostgresMedium) Swap(ctx context.Context, key string, old *string, value string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	var (
		err  error
		rows int64
	)
	if old == nil {
		tag, e := p.pool.Exec(ctx,
			`INSERT INTO kv_store (key, value, updated_at)
			 VALUES ($1, $2, NOW())
			 ON CONFLICT (key) DO NOTHING`,
			key, value,
		)
		err, rows = e, tag.RowsAffected()
	} else {
		tag, e := p.pool.Exec(ctx,
			`UPDATE kv_store SET value = $2, updated_at = NOW()
			 WHERE key = $1 AND value = $3`,
			key, value, *old,
		)
		err, rows = e, tag.RowsAffected()
	}
	if err != nil {
		return false, fmt.Errorf("kv_store swap %s: %w", key, err)
	}
	return rows == 1, nil
}
