// Package repository defines the storage contract consumed by the snippet service.
package repository

import (
	"context"
	"errors"

	"github.com/roguepikachu/snippets/internal/domain"
)

// ErrNotFound is returned by FindVisibleByName when no visible row matches.
var ErrNotFound = errors.New("not found")

// SnippetRepository is a durable table of snippet rows.
//
// Implementations keep an insertion order: FindVisibleByName returns the earliest
// written visible row for a name, and SearchText returns rows in insertion order.
// ListVisibleNames orders by name descending (byte-wise), ties in insertion order.
type SnippetRepository interface {
	Insert(ctx context.Context, s domain.Snippet) error
	FindVisibleByName(ctx context.Context, name string) (domain.Snippet, error)
	ListVisibleNames(ctx context.Context) ([]string, error)
	SearchText(ctx context.Context, substring string) ([]domain.Snippet, error)
}
