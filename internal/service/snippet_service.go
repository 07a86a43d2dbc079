// Package service contains the snippet rules: how names map to stored text and
// how the hidden flag gates each read.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/roguepikachu/snippets/internal/domain"
	"github.com/roguepikachu/snippets/internal/repository"
	"github.com/roguepikachu/snippets/pkg/logger"
)

// Operation names used in StorageError.
const (
	OpStore            = "store"
	OpRetrieve         = "retrieve"
	OpListVisibleNames = "list visible names"
	OpFindByContent    = "find by content"
)

// Service provides the snippet operations over a storage backend.
// It holds no mutable state of its own.
type Service struct {
	repo  repository.SnippetRepository
	clock Clock
	newID func() string
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator overrides how row IDs are generated.
func WithIDGenerator(f func() string) Option { return func(s *Service) { s.newID = f } }

// NewService creates a new Service with the given SnippetRepository and Clock.
func NewService(repo repository.SnippetRepository, clock Clock) *Service {
	return NewServiceWithOptions(repo, clock)
}

// NewServiceWithOptions is NewService with functional options applied.
func NewServiceWithOptions(repo repository.SnippetRepository, clock Clock, opts ...Option) *Service {
	if clock == nil {
		clock = RealClock{}
	}
	s := &Service{repo: repo, clock: clock, newID: generateID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// generateID returns a new unique ID for a snippet row.
func generateID() string {
	return uuid.New().String()
}

// Store appends a snippet row and returns the (name, text) pair as written.
// No deduplication is performed: storing an existing name adds another row.
func (s *Service) Store(ctx context.Context, name, text string, hidden bool) (domain.Entry, error) {
	if name == "" {
		return domain.Entry{}, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if text == "" {
		return domain.Entry{}, fmt.Errorf("%w: text is required", ErrInvalidArgument)
	}
	logger.Info(ctx, "storing snippet %q: %q", name, text)
	snippet := domain.Snippet{
		ID:        s.newID(),
		Name:      name,
		Text:      text,
		Hidden:    hidden,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, snippet); err != nil {
		logger.Error(ctx, "store snippet %q: %v", name, err)
		return domain.Entry{}, storageFailure(OpStore, name, err)
	}
	logger.With(ctx, map[string]any{"id": snippet.ID, "hidden": hidden}).Debug("snippet stored")
	return snippet.Entry(), nil
}

// Retrieve returns the text of the earliest written visible snippet named name.
// found is false when no visible snippet has that name.
func (s *Service) Retrieve(ctx context.Context, name string) (text string, found bool, err error) {
	if name == "" {
		return "", false, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	logger.Info(ctx, "retrieving snippet %q", name)
	snippet, err := s.repo.FindVisibleByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Debug(ctx, "snippet %q not found", name)
			return "", false, nil
		}
		logger.Error(ctx, "retrieve snippet %q: %v", name, err)
		return "", false, storageFailure(OpRetrieve, name, err)
	}
	return snippet.Text, true, nil
}

// ListVisibleNames returns the names of all visible snippets, descending.
// found is false when there are none.
func (s *Service) ListVisibleNames(ctx context.Context) (names []string, found bool, err error) {
	logger.Info(ctx, "retrieving list of visible snippet names")
	names, err = s.repo.ListVisibleNames(ctx)
	if err != nil {
		logger.Error(ctx, "list visible names: %v", err)
		return nil, false, storageFailure(OpListVisibleNames, "", err)
	}
	if len(names) == 0 {
		return nil, false, nil
	}
	return names, true, nil
}

// FindByContent returns every snippet, hidden or not, whose text contains
// substring (case-sensitive, literal). found is false when nothing matches.
func (s *Service) FindByContent(ctx context.Context, substring string) (entries []domain.Entry, found bool, err error) {
	if substring == "" {
		return nil, false, fmt.Errorf("%w: search string is required", ErrInvalidArgument)
	}
	logger.Info(ctx, "searching snippets containing %q", substring)
	rows, err := s.repo.SearchText(ctx, substring)
	if err != nil {
		logger.Error(ctx, "search snippets for %q: %v", substring, err)
		return nil, false, storageFailure(OpFindByContent, substring, err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	entries = make([]domain.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.Entry())
	}
	logger.WithField(ctx, "count", len(entries)).Debug("snippets matched")
	return entries, true, nil
}
