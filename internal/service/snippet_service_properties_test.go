package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/roguepikachu/snippets/internal/domain"
	"github.com/roguepikachu/snippets/internal/repository"
	"github.com/roguepikachu/snippets/internal/repository/fake"
	redisRepo "github.com/roguepikachu/snippets/internal/repository/redis"
	sqliteRepo "github.com/roguepikachu/snippets/internal/repository/sqlite"
)

// backends lists every in-process store the service is exercised against.
var backends = []struct {
	name string
	open func(t *testing.T) repository.SnippetRepository
}{
	{"fake", func(t *testing.T) repository.SnippetRepository {
		return fake.NewSnippetRepository()
	}},
	{"sqlite", func(t *testing.T) repository.SnippetRepository {
		r, err := sqliteRepo.New(sqliteRepo.MemoryPath)
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		t.Cleanup(r.Close)
		return r
	}},
	{"redis", func(t *testing.T) repository.SnippetRepository {
		mr, err := miniredis.Run()
		if err != nil {
			t.Fatalf("miniredis: %v", err)
		}
		t.Cleanup(mr.Close)
		r := redisRepo.NewSnippetRepository(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "")
		t.Cleanup(r.Close)
		return r
	}},
}

// forEachBackend runs fn against a fresh service per backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, s *Service)) {
	t.Helper()
	for _, b := range backends {
		b := b
		t.Run(b.name, func(t *testing.T) {
			fn(t, NewService(b.open(t), RealClock{}))
		})
	}
}

func mustStore(t *testing.T, s *Service, name, text string, hidden bool) {
	t.Helper()
	if _, err := s.Store(context.Background(), name, text, hidden); err != nil {
		t.Fatalf("store %q: %v", name, err)
	}
}

func TestRoundTripVisible(t *testing.T) {
	pairs := []struct{ name, text string }{
		{"greeting", "hello there"},
		{"unicode", "こんにちは世界 🌍"},
		{"spaces in name", "  padded  "},
		{"punct", "100% _literal_ 'quotes' \"double\" ; DROP TABLE snippets;"},
	}
	forEachBackend(t, func(t *testing.T, s *Service) {
		ctx := context.Background()
		for _, p := range pairs {
			got, err := s.Store(ctx, p.name, p.text, false)
			if err != nil {
				t.Fatalf("store: %v", err)
			}
			if got.Name != p.name || got.Text != p.text {
				t.Fatalf("store must echo its input, got %+v", got)
			}
			text, found, err := s.Retrieve(ctx, p.name)
			if err != nil || !found || text != p.text {
				t.Fatalf("retrieve %q: want %q, got %q found=%v err=%v", p.name, p.text, text, found, err)
			}
		}
	})
}

func TestHiddenExcludedFromRetrieve(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Service) {
		mustStore(t, s, "secret", "hidden payload", true)
		text, found, err := s.Retrieve(context.Background(), "secret")
		if err != nil {
			t.Fatalf("retrieve: %v", err)
		}
		if found {
			t.Fatalf("hidden snippet must not be retrievable, got %q", text)
		}
	})
}

func TestCatalogueMembership(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Service) {
		mustStore(t, s, "b", "x", false)
		mustStore(t, s, "a", "x", false)
		mustStore(t, s, "d", "x", true)
		mustStore(t, s, "c", "x", false)

		names, found, err := s.ListVisibleNames(context.Background())
		if err != nil || !found {
			t.Fatalf("list: found=%v err=%v", found, err)
		}
		if want := []string{"c", "b", "a"}; !reflect.DeepEqual(names, want) {
			t.Fatalf("want %v, got %v", want, names)
		}
	})
}

// Content search deliberately ignores the hidden flag, unlike Retrieve and
// ListVisibleNames.
func TestSearchIgnoresVisibility(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Service) {
		mustStore(t, s, "secret", "a needle here", true)
		got, found, err := s.FindByContent(context.Background(), "needle")
		if err != nil || !found {
			t.Fatalf("search: found=%v err=%v", found, err)
		}
		if want := []domain.Entry{{Name: "secret", Text: "a needle here"}}; !reflect.DeepEqual(got, want) {
			t.Fatalf("want %v, got %v", want, got)
		}
	})
}

func TestEmptyStoreCatalogue(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Service) {
		names, found, err := s.ListVisibleNames(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if found || names != nil {
			t.Fatalf("want NotFound, got %v", names)
		}
	})
}

func TestOnlyHiddenCatalogueIsNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Service) {
		mustStore(t, s, "secret", "x", true)
		if _, found, err := s.ListVisibleNames(context.Background()); err != nil || found {
			t.Fatalf("want NotFound, got found=%v err=%v", found, err)
		}
	})
}

func TestSearchIsSubstringNotWord(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Service) {
		mustStore(t, s, "hw", "hello world", false)
		got, found, err := s.FindByContent(context.Background(), "lo wo")
		if err != nil || !found {
			t.Fatalf("search: found=%v err=%v", found, err)
		}
		if len(got) != 1 || got[0].Name != "hw" {
			t.Fatalf("want hw, got %v", got)
		}
	})
}

func TestSearchIsLiteralAndCaseSensitive(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Service) {
		ctx := context.Background()
		mustStore(t, s, "pct", "100% done", false)
		mustStore(t, s, "mixed", "Hello", false)

		for _, needle := range []string{"1%0", "hello", "H.llo", "1_0"} {
			if got, found, err := s.FindByContent(ctx, needle); err != nil || found {
				t.Fatalf("search %q: want NotFound, got %v err=%v", needle, got, err)
			}
		}
		if _, found, _ := s.FindByContent(ctx, "0% d"); !found {
			t.Fatalf("literal percent should match")
		}
	})
}

func TestDuplicateNames(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Service) {
		ctx := context.Background()
		mustStore(t, s, "dup", "first", false)
		mustStore(t, s, "dup", "second", false)
		mustStore(t, s, "dup", "third", true)

		text, found, err := s.Retrieve(ctx, "dup")
		if err != nil || !found || text != "first" {
			t.Fatalf("want earliest written, got %q found=%v err=%v", text, found, err)
		}
		names, _, err := s.ListVisibleNames(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if want := []string{"dup", "dup"}; !reflect.DeepEqual(names, want) {
			t.Fatalf("want one name per visible row %v, got %v", want, names)
		}
		got, _, err := s.FindByContent(ctx, "i")
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		want := []domain.Entry{{Name: "dup", Text: "first"}, {Name: "dup", Text: "third"}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("want insertion order %v, got %v", want, got)
		}
	})
}

func TestScenario(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Service) {
		ctx := context.Background()
		mustStore(t, s, "greeting", "hello there", false)
		mustStore(t, s, "secret", "hidden payload", true)

		if text, found, err := s.Retrieve(ctx, "greeting"); err != nil || !found || text != "hello there" {
			t.Fatalf("retrieve greeting: %q found=%v err=%v", text, found, err)
		}
		if _, found, err := s.Retrieve(ctx, "secret"); err != nil || found {
			t.Fatalf("retrieve secret: want NotFound, found=%v err=%v", found, err)
		}
		names, found, err := s.ListVisibleNames(ctx)
		if err != nil || !found || !reflect.DeepEqual(names, []string{"greeting"}) {
			t.Fatalf("catalogue: %v found=%v err=%v", names, found, err)
		}
		got, found, err := s.FindByContent(ctx, "hidden")
		if err != nil || !found {
			t.Fatalf("search: found=%v err=%v", found, err)
		}
		if want := []domain.Entry{{Name: "secret", Text: "hidden payload"}}; !reflect.DeepEqual(got, want) {
			t.Fatalf("want %v, got %v", want, got)
		}
	})
}

func TestManyRowsOrdering(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Service) {
		for i := 0; i < 25; i++ {
			mustStore(t, s, fmt.Sprintf("n%02d", i), fmt.Sprintf("text %02d", i), i%5 == 0)
		}
		names, _, err := s.ListVisibleNames(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(names) != 20 || names[0] != "n24" || names[len(names)-1] != "n01" {
			t.Fatalf("unexpected catalogue: %v", names)
		}
		got, _, err := s.FindByContent(context.Background(), "text")
		if err != nil || len(got) != 25 || got[0].Name != "n00" || got[24].Name != "n24" {
			t.Fatalf("want all 25 in insertion order, got %d err=%v", len(got), err)
		}
	})
}

// Names sort by bytes, not by locale: upper case before lower case, and
// multi-byte UTF-8 after ASCII.
func TestCatalogueIsByteOrdered(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Service) {
		for _, name := range []string{"a", "B", "é", "Z"} {
			mustStore(t, s, name, "x", false)
		}
		names, found, err := s.ListVisibleNames(context.Background())
		if err != nil || !found {
			t.Fatalf("list: found=%v err=%v", found, err)
		}
		if want := []string{"é", "a", "Z", "B"}; !reflect.DeepEqual(names, want) {
			t.Fatalf("want %v, got %v", want, names)
		}
	})
}

func TestStorageFailureFromFake(t *testing.T) {
	boom := errors.New("boom")
	s := NewService(fake.NewSnippetRepository(fake.WithErr(boom)), RealClock{})
	if _, err := s.Store(context.Background(), "a", "b", false); !errors.Is(err, ErrStorageFailure) || !errors.Is(err, boom) {
		t.Fatalf("want storage failure wrapping boom, got %v", err)
	}
}
