// Package redis provides a Redis-backed implementation of the snippet repository.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/roguepikachu/snippets/internal/domain"
	"github.com/roguepikachu/snippets/internal/repository"
)

// DefaultPrefix namespaces all keys written by the repository.
const DefaultPrefix = "snippets"

// Row hash fields.
const (
	fieldID        = "id"
	fieldName      = "name"
	fieldContent   = "content"
	fieldHidden    = "hidden"
	fieldCreatedAt = "created_at"
)

// SnippetRepository implements repository.SnippetRepository using Redis as backend.
//
// Layout: <p>:seq counter, <p>:row:<seq> hash per row, <p>:rows list of seqs in
// insertion order, <p>:name:<name> list of seqs per name.
type SnippetRepository struct {
	client *redis.Client
	prefix string
}

// NewSnippetRepository creates a new Redis-backed snippet repository.
func NewSnippetRepository(client *redis.Client, prefix string) *SnippetRepository {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &SnippetRepository{client: client, prefix: prefix}
}

// key helpers
func (r *SnippetRepository) keySeq() string           { return r.prefix + ":seq" }
func (r *SnippetRepository) keyRows() string          { return r.prefix + ":rows" }
func (r *SnippetRepository) keyRow(seq string) string { return r.prefix + ":row:" + seq }
func (r *SnippetRepository) keyName(name string) string {
	return r.prefix + ":name:" + name
}

// Insert adds a new snippet row. The hash and both index lists are written in
// one MULTI/EXEC so readers never see a partially indexed row.
func (r *SnippetRepository) Insert(ctx context.Context, s domain.Snippet) error {
	if s.Name == "" {
		return errors.New("insert snippet: empty name")
	}
	n, err := r.client.Incr(ctx, r.keySeq()).Result()
	if err != nil {
		return fmt.Errorf("next seq: %w", err)
	}
	seq := strconv.FormatInt(n, 10)
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, r.keyRow(seq),
			fieldID, s.ID,
			fieldName, s.Name,
			fieldContent, s.Text,
			fieldHidden, formatBool(s.Hidden),
			fieldCreatedAt, s.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		p.RPush(ctx, r.keyRows(), seq)
		p.RPush(ctx, r.keyName(s.Name), seq)
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert snippet: %w", err)
	}
	return nil
}

// FindVisibleByName returns the earliest visible row named name.
func (r *SnippetRepository) FindVisibleByName(ctx context.Context, name string) (domain.Snippet, error) {
	seqs, err := r.client.LRange(ctx, r.keyName(name), 0, -1).Result()
	if err != nil {
		return domain.Snippet{}, fmt.Errorf("redis lrange: %w", err)
	}
	rows, err := r.loadRows(ctx, seqs)
	if err != nil {
		return domain.Snippet{}, err
	}
	for _, s := range rows {
		if !s.Hidden {
			return s, nil
		}
	}
	return domain.Snippet{}, repository.ErrNotFound
}

// ListVisibleNames returns visible names, descending; duplicates keep insertion order.
func (r *SnippetRepository) ListVisibleNames(ctx context.Context) ([]string, error) {
	rows, err := r.allRows(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, s := range rows {
		if !s.Hidden {
			names = append(names, s.Name)
		}
	}
	sort.SliceStable(names, func(i, j int) bool { return names[i] > names[j] })
	return names, nil
}

// SearchText returns rows whose content contains substring, in insertion order.
func (r *SnippetRepository) SearchText(ctx context.Context, substring string) ([]domain.Snippet, error) {
	rows, err := r.allRows(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Snippet, 0)
	for _, s := range rows {
		if strings.Contains(s.Text, substring) {
			res = append(res, s)
		}
	}
	return res, nil
}

// Ping checks connectivity to Redis.
func (r *SnippetRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the client.
func (r *SnippetRepository) Close() {
	_ = r.client.Close()
}

func (r *SnippetRepository) allRows(ctx context.Context) ([]domain.Snippet, error) {
	seqs, err := r.client.LRange(ctx, r.keyRows(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}
	return r.loadRows(ctx, seqs)
}

// loadRows fetches the row hashes for seqs in one pipeline, preserving order.
func (r *SnippetRepository) loadRows(ctx context.Context, seqs []string) ([]domain.Snippet, error) {
	if len(seqs) == 0 {
		return nil, nil
	}
	cmds := make([]*redis.StringStringMapCmd, len(seqs))
	_, err := r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for i, seq := range seqs {
			cmds[i] = p.HGetAll(ctx, r.keyRow(seq))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	rows := make([]domain.Snippet, 0, len(seqs))
	for i, cmd := range cmds {
		s, err := decodeRow(cmd.Val())
		if err != nil {
			return nil, fmt.Errorf("decode row %s: %w", seqs[i], err)
		}
		rows = append(rows, s)
	}
	return rows, nil
}

func decodeRow(h map[string]string) (domain.Snippet, error) {
	if len(h) == 0 {
		return domain.Snippet{}, errors.New("missing row hash")
	}
	s := domain.Snippet{
		ID:     h[fieldID],
		Name:   h[fieldName],
		Text:   h[fieldContent],
		Hidden: h[fieldHidden] == "1",
	}
	if v := h[fieldCreatedAt]; v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return domain.Snippet{}, fmt.Errorf("parse created_at: %w", err)
		}
		s.CreatedAt = t
	}
	return s, nil
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

var _ repository.SnippetRepository = (*SnippetRepository)(nil)
