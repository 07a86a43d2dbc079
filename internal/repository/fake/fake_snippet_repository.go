// Package fake provides in-memory fakes for repository interfaces for testing.
package fake

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/roguepikachu/snippets/internal/domain"
	"github.com/roguepikachu/snippets/internal/repository"
)

// SnippetRepository is an in-memory fake implementing repository.SnippetRepository.
// Rows are kept in insertion order.
type SnippetRepository struct {
	mu    sync.Mutex
	rows  []domain.Snippet
	err   error
	calls int
}

// Option configures the fake repository.
type Option func(*SnippetRepository)

// WithItems seeds the repository with the provided snippets, in order.
func WithItems(items ...domain.Snippet) Option {
	return func(r *SnippetRepository) {
		r.rows = append(r.rows, items...)
	}
}

// WithErr makes every call fail with err.
func WithErr(err error) Option { return func(r *SnippetRepository) { r.err = err } }

// NewSnippetRepository creates a new in-memory fake repo.
func NewSnippetRepository(opts ...Option) *SnippetRepository {
	r := &SnippetRepository{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Calls reports how many repository methods have been invoked.
func (r *SnippetRepository) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// Rows returns a copy of all stored rows in insertion order.
func (r *SnippetRepository) Rows() []domain.Snippet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Snippet(nil), r.rows...)
}

func (r *SnippetRepository) Insert(_ context.Context, s domain.Snippet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, s)
	return nil
}

func (r *SnippetRepository) FindVisibleByName(_ context.Context, name string) (domain.Snippet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return domain.Snippet{}, r.err
	}
	for _, s := range r.rows {
		if s.Name == name && !s.Hidden {
			return s, nil
		}
	}
	return domain.Snippet{}, repository.ErrNotFound
}

func (r *SnippetRepository) ListVisibleNames(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	names := make([]string, 0, len(r.rows))
	for _, s := range r.rows {
		if !s.Hidden {
			names = append(names, s.Name)
		}
	}
	sort.SliceStable(names, func(i, j int) bool { return names[i] > names[j] })
	return names, nil
}

func (r *SnippetRepository) SearchText(_ context.Context, substring string) ([]domain.Snippet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	res := make([]domain.Snippet, 0)
	for _, s := range r.rows {
		if strings.Contains(s.Text, substring) {
			res = append(res, s)
		}
	}
	return res, nil
}

// Ping reports the injected error, if any.
func (r *SnippetRepository) Ping(_ context.Context) error { return r.err }

// Close is a no-op.
func (r *SnippetRepository) Close() {}

var _ repository.SnippetRepository = (*SnippetRepository)(nil)
