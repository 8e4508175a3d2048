package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Store on a single JSONB-backed table, for deployments
// that keep documents next to the rest of their Postgres data instead of in
// Firestore. Top-level merge maps onto the jsonb concatenation operator.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps a pgx connection pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Init creates the backing table when it does not exist yet.
func (p *Postgres) Init(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    id         TEXT NOT NULL,
    data       JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (collection, id)
);
`)
	if err != nil {
		return fmt.Errorf("docstore init: %w", err)
	}
	return nil
}

// Get fetches collection/id into dest.
func (p *Postgres) Get(ctx context.Context, collection, id string, dest any) error {
	var raw []byte
	row := p.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("docstore get %s/%s: %w", collection, id, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("docstore decode %s/%s: %w", collection, id, err)
	}
	return nil
}

// Set upserts data at collection/id. Merge keeps stored fields that the new
// record does not name.
func (p *Postgres) Set(ctx context.Context, collection, id string, data any, merge bool) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("docstore encode %s/%s: %w", collection, id, err)
	}

	assign := `data = EXCLUDED.data`
	if merge {
		assign = `data = documents.data || EXCLUDED.data`
	}
	query := fmt.Sprintf(`
INSERT INTO documents (collection, id, data, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (collection, id) DO UPDATE
SET %s,
    updated_at = NOW();
`, assign)

	if _, err := p.pool.Exec(ctx, query, collection, id, raw); err != nil {
		return fmt.Errorf("docstore set %s/%s: %w", collection, id, err)
	}
	return nil
}
