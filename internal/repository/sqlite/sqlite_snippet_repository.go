// Package sqlite provides an embedded SQLite implementation of the snippet repository.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roguepikachu/snippets/internal/domain"
	"github.com/roguepikachu/snippets/internal/repository"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SnippetRepository implements repository.SnippetRepository using SQLite.
type SnippetRepository struct {
	db *sql.DB
}

// New opens (creating if needed) the database at path and ensures the schema.
func New(path string) (*SnippetRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == MemoryPath {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	r := &SnippetRepository{db: db}
	if err := r.migrate(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return r, nil
}

func (r *SnippetRepository) migrate(path string) error {
	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := r.db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	const schema = `
	CREATE TABLE IF NOT EXISTS snippets (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL CHECK (name <> ''),
		content TEXT NOT NULL,
		hidden INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snippets_name ON snippets (name, seq);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Insert adds a new snippet row.
func (r *SnippetRepository) Insert(ctx context.Context, s domain.Snippet) error {
	const q = `INSERT INTO snippets (id, name, content, hidden, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, s.ID, s.Name, s.Text, boolToInt(s.Hidden), s.CreatedAt.UnixNano()); err != nil {
		return fmt.Errorf("insert snippet: %w", err)
	}
	return nil
}

// FindVisibleByName returns the earliest visible row named name.
func (r *SnippetRepository) FindVisibleByName(ctx context.Context, name string) (domain.Snippet, error) {
	const q = `
	SELECT id, name, content, hidden, created_at
	FROM snippets
	WHERE name = ? AND hidden = 0
	ORDER BY seq ASC
	LIMIT 1
	`
	s, err := scanSnippet(r.db.QueryRowContext(ctx, q, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Snippet{}, repository.ErrNotFound
		}
		return domain.Snippet{}, fmt.Errorf("query snippet: %w", err)
	}
	return s, nil
}

// ListVisibleNames returns visible names, descending.
func (r *SnippetRepository) ListVisibleNames(ctx context.Context) ([]string, error) {
	const q = `SELECT name FROM snippets WHERE hidden = 0 ORDER BY name DESC, seq ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate names: %w", err)
	}
	return names, nil
}

// SearchText returns rows whose content contains substring, in insertion order.
// instr is used instead of LIKE so the match is literal and case-sensitive.
func (r *SnippetRepository) SearchText(ctx context.Context, substring string) ([]domain.Snippet, error) {
	const q = `
	SELECT id, name, content, hidden, created_at
	FROM snippets
	WHERE instr(content, ?) > 0
	ORDER BY seq ASC
	`
	rows, err := r.db.QueryContext(ctx, q, substring)
	if err != nil {
		return nil, fmt.Errorf("search snippets: %w", err)
	}
	defer rows.Close()

	res := make([]domain.Snippet, 0)
	for rows.Next() {
		s, err := scanSnippet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snippet: %w", err)
		}
		res = append(res, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snippets: %w", err)
	}
	return res, nil
}

// Ping verifies the database is reachable.
func (r *SnippetRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close releases the database handle.
func (r *SnippetRepository) Close() {
	_ = r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnippet(row rowScanner) (domain.Snippet, error) {
	var (
		s       domain.Snippet
		hidden  int64
		created int64
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Text, &hidden, &created); err != nil {
		return domain.Snippet{}, err
	}
	s.Hidden = hidden != 0
	s.CreatedAt = time.Unix(0, created).UTC()
	return s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ repository.SnippetRepository = (*SnippetRepository)(nil)
