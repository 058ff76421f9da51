package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresKV keeps collection documents in a single table:
//
//	CREATE TABLE ordernow_documents (
//	    collection text PRIMARY KEY,
//	    body       jsonb NOT NULL,
//	    updated_at timestamptz NOT NULL DEFAULT now()
//	);
type PostgresKV struct {
	db *pgxpool.Pool
}

// NewPostgresKV wraps an existing pool.
func NewPostgresKV(db *pgxpool.Pool) *PostgresKV {
	return &PostgresKV{db: db}
}

// Load reads one collection document. A missing row, or a database that
// has not been provisioned yet (undefined table), is ok=false.
func (p *PostgresKV) Load(ctx context.Context, collection string) ([]byte, bool, error) {
	const query = `SELECT body FROM ordernow_documents WHERE collection = $1`
	var data []byte
	err := p.db.QueryRow(ctx, query, collection).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "42P01" {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select %s: %w", collection, err)
	}
	return data, true, nil
}

// Save replaces one collection document.
func (p *PostgresKV) Save(ctx context.Context, collection string, data []byte) error {
	const query = `
		INSERT INTO ordernow_documents (collection, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (collection) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`
	if _, err := p.db.Exec(ctx, query, collection, data); err != nil {
		return fmt.Errorf("upsert %s: %w", collection, err)
	}
	return nil
}

// Reset removes the named collection documents.
func (p *PostgresKV) Reset(ctx context.Context, collections ...string) error {
	const query = `DELETE FROM ordernow_documents WHERE collection = ANY($1)`
	if _, err := p.db.Exec(ctx, query, collections); err != nil {
		return fmt.Errorf("delete collections: %w", err)
	}
	return nil
}
