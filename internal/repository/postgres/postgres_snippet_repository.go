// Package postgres provides a Postgres-backed implementation of the snippet repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roguepikachu/snippets/internal/domain"
	"github.com/roguepikachu/snippets/internal/repository"
	"github.com/roguepikachu/snippets/pkg/logger"
)

// SnippetRepository implements repository.SnippetRepository using Postgres.
type SnippetRepository struct {
	pool *pgxpool.Pool
}

// NewSnippetRepository creates a new Postgres-backed snippet repository.
func NewSnippetRepository(pool *pgxpool.Pool) *SnippetRepository {
	return &SnippetRepository{pool: pool}
}

// EnsureSchema creates required tables if they don't exist.
func (r *SnippetRepository) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS snippets (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL CHECK (name <> ''),
    content TEXT NOT NULL,
    hidden BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL
);
-- visible lookups by name, earliest first
CREATE INDEX IF NOT EXISTS idx_snippets_visible_name ON snippets (name, seq) WHERE NOT hidden;
`
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info(ctx, "postgres schema ensured")
	return nil
}

// Insert adds a new snippet row. The statement runs in autocommit mode, so the
// row is durable when Insert returns.
func (r *SnippetRepository) Insert(ctx context.Context, s domain.Snippet) error {
	const q = `
INSERT INTO snippets (id, name, content, hidden, created_at)
VALUES ($1, $2, $3, $4, $5)
`
	if _, err := r.pool.Exec(ctx, q, s.ID, s.Name, s.Text, s.Hidden, s.CreatedAt); err != nil {
		return fmt.Errorf("insert snippet: %w", err)
	}
	return nil
}

// FindVisibleByName retrieves the earliest visible snippet with the given name.
func (r *SnippetRepository) FindVisibleByName(ctx context.Context, name string) (domain.Snippet, error) {
	const q = `
SELECT id, name, content, hidden, created_at
FROM snippets
WHERE name = $1 AND NOT hidden
ORDER BY seq ASC
LIMIT 1
`
	var s domain.Snippet
	err := r.pool.QueryRow(ctx, q, name).Scan(&s.ID, &s.Name, &s.Text, &s.Hidden, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Snippet{}, repository.ErrNotFound
		}
		return domain.Snippet{}, fmt.Errorf("query snippet: %w", err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}

// ListVisibleNames returns visible names in descending byte order.
func (r *SnippetRepository) ListVisibleNames(ctx context.Context) ([]string, error) {
	const q = `
SELECT name
FROM snippets
WHERE NOT hidden
ORDER BY name COLLATE "C" DESC, seq ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan names: %w", err)
	}
	return names, nil
}

// SearchText returns every row whose content contains substring, in insertion order.
// strpos keeps the match literal; LIKE would treat % and _ as wildcards.
func (r *SnippetRepository) SearchText(ctx context.Context, substring string) ([]domain.Snippet, error) {
	const q = `
SELECT id, name, content, hidden, created_at
FROM snippets
WHERE strpos(content, $1) > 0
ORDER BY seq ASC
`
	rows, err := r.pool.Query(ctx, q, substring)
	if err != nil {
		return nil, fmt.Errorf("search snippets: %w", err)
	}
	defer rows.Close()
	res := make([]domain.Snippet, 0)
	for rows.Next() {
		var s domain.Snippet
		if err := rows.Scan(&s.ID, &s.Name, &s.Text, &s.Hidden, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snippet: %w", err)
		}
		s.CreatedAt = s.CreatedAt.UTC()
		res = append(res, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snippets: %w", err)
	}
	return res, nil
}

// Ping verifies the pool can reach the server.
func (r *SnippetRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the underlying pool.
func (r *SnippetRepository) Close() {
	r.pool.Close()
}

var _ repository.SnippetRepository = (*SnippetRepository)(nil)
