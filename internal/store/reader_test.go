package store

import (
	"context"
	"testing"
	"time"

	"scout-data-service/internal/cache"
	"scout-data-service/internal/domain"
)

type stubLister struct {
	games []domain.Game
	calls int
}

func (s *stubLister) GamesByDate(_ context.Context, _ string) ([]domain.Game, error) {
	s.calls++
	return s.games, nil
}

func TestCachedGamesServesFromCache(t *testing.T) {
	lister := &stubLister{games: []domain.Game{{ID: 1, ExternalID: "balldontlie-1"}}}
	reader := NewCachedGames(lister, cache.NewMemory(), time.Hour, nil)

	for i := 0; i < 3; i++ {
		games, err := reader.GamesByDate(context.Background(), "2025-12-14", false)
		if err != nil {
			t.Fatalf("read %d failed: %v", i, err)
		}
		if len(games) != 1 {
			t.Fatalf("read %d: expected 1 game, got %d", i, len(games))
		}
	}
	if lister.calls != 1 {
		t.Fatalf("expected one database read, got %d", lister.calls)
	}
}

func TestCachedGamesForceBypassesReadNotWrite(t *testing.T) {
	lister := &stubLister{games: []domain.Game{{ID: 1, ExternalID: "balldontlie-1"}}}
	reader := NewCachedGames(lister, cache.NewMemory(), time.Hour, nil)

	if _, err := reader.GamesByDate(context.Background(), "2025-12-14", false); err != nil {
		t.Fatalf("warm read failed: %v", err)
	}
	if _, err := reader.GamesByDate(context.Background(), "2025-12-14", true); err != nil {
		t.Fatalf("forced read failed: %v", err)
	}
	if lister.calls != 2 {
		t.Fatalf("force should hit the database, got %d calls", lister.calls)
	}

	if _, err := reader.GamesByDate(context.Background(), "2025-12-14", false); err != nil {
		t.Fatalf("post-force read failed: %v", err)
	}
	if lister.calls != 2 {
		t.Fatalf("forced read should refresh the cache, got %d calls", lister.calls)
	}
}

func TestCachedGamesNilCachePassesThrough(t *testing.T) {
	lister := &stubLister{}
	reader := NewCachedGames(lister, nil, time.Hour, nil)

	for i := 0; i < 2; i++ {
		if _, err := reader.GamesByDate(context.Background(), "2025-12-14", false); err != nil {
			t.Fatalf("read failed: %v", err)
		}
	}
	if lister.calls != 2 {
		t.Fatalf("nil cache should pass through, got %d calls", lister.calls)
	}
}
