package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"scout-data-service/internal/cache"
	"scout-data-service/internal/sources"
)

type stubBackend struct {
	text  string
	err   error
	calls int
}

func (b *stubBackend) Complete(_ context.Context, _ string) (string, error) {
	b.calls++
	return b.text, b.err
}

func leagueAbbrs(_ context.Context) ([]string, error) {
	return []string{"BOS", "NYK", "LAL", "GSW"}, nil
}

func TestSourceFetchGames(t *testing.T) {
	backend := &stubBackend{text: `[{"away_team": "NYK", "home_team": "BOS", "time": "7:30 PM ET"}]`}
	src := NewSource(backend, leagueAbbrs, nil, 0, nil)

	records, err := src.FetchGames(context.Background(), "2025-12-14")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	g := records[0]
	if g.ExternalID != "llm-BOS-NYK-2025-12-14" {
		t.Fatalf("unexpected external id %q", g.ExternalID)
	}
	if g.TimeText != "7:30 PM ET" {
		t.Fatalf("unexpected time text %q", g.TimeText)
	}
	if string(g.Status) != "scheduled" {
		t.Fatalf("unexpected status %q", g.Status)
	}
}

func TestSourceDropsUnknownAbbreviations(t *testing.T) {
	backend := &stubBackend{text: `[
		{"away_team": "NYK", "home_team": "BOS"},
		{"away_team": "XXX", "home_team": "BOS"},
		{"away_team": "LAL", "home_team": "LAL"}
	]`}
	src := NewSource(backend, leagueAbbrs, nil, 0, nil)

	records, err := src.FetchGames(context.Background(), "2025-12-14")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected invented matchups dropped, got %d records", len(records))
	}
}

func TestSourceCachesOutput(t *testing.T) {
	backend := &stubBackend{text: `[{"away_team": "NYK", "home_team": "BOS"}]`}
	src := NewSource(backend, leagueAbbrs, cache.NewMemory(), time.Hour, nil)

	for i := 0; i < 3; i++ {
		if _, err := src.FetchGames(context.Background(), "2025-12-14"); err != nil {
			t.Fatalf("fetch %d failed: %v", i, err)
		}
	}
	if backend.calls != 1 {
		t.Fatalf("expected a single completion, got %d", backend.calls)
	}
}

func TestSourceCachesEmptySlate(t *testing.T) {
	backend := &stubBackend{text: "[]"}
	src := NewSource(backend, leagueAbbrs, cache.NewMemory(), time.Hour, nil)

	for i := 0; i < 3; i++ {
		records, err := src.FetchGames(context.Background(), "2025-07-04")
		if err != nil {
			t.Fatalf("fetch %d failed: %v", i, err)
		}
		if len(records) != 0 {
			t.Fatalf("expected an empty slate, got %d records", len(records))
		}
	}
	if backend.calls != 1 {
		t.Fatalf("off day should cost one completion, got %d", backend.calls)
	}
}

func TestSourceNilBackendIsNotConfigured(t *testing.T) {
	src := NewSource(nil, leagueAbbrs, nil, 0, nil)
	_, err := src.FetchGames(context.Background(), "2025-12-14")
	if !errors.Is(err, sources.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSourceBackendErrorPropagates(t *testing.T) {
	backend := &stubBackend{err: errors.New("overloaded")}
	src := NewSource(backend, leagueAbbrs, nil, 0, nil)

	if _, err := src.FetchGames(context.Background(), "2025-12-14"); err == nil {
		t.Fatalf("expected backend error to propagate")
	}
}

func TestSourceAbbrProviderError(t *testing.T) {
	failing := func(context.Context) ([]string, error) {
		return nil, errors.New("catalog empty")
	}
	src := NewSource(&stubBackend{text: "[]"}, failing, nil, 0, nil)

	if _, err := src.FetchGames(context.Background(), "2025-12-14"); err == nil {
		t.Fatalf("expected abbreviation provider error to propagate")
	}
}
