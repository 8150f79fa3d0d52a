package sportsblaze

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"scout-data-service/internal/sources"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		HTTPClient: server.Client(),
	})
}

func TestFetchGamesMapsSchedule(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/nba/v1/schedule/daily/2025-12-14.json" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Fatalf("unexpected key param %q", got)
		}
		fmt.Fprint(w, `{
			"games": [{
				"id": "sb-123",
				"date": {"start_time": "2025-12-15T00:30:00Z"},
				"status": "Scheduled",
				"teams": {
					"home": {"alias": "bos", "name": "Celtics"},
					"away": {"abbreviation": "nyk", "name": "Knicks"}
				},
				"venue": {"name": "TD Garden"}
			}]
		}`)
	}))

	records, err := client.FetchGames(context.Background(), "2025-12-14")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	g := records[0]
	if g.ExternalID != "sportsblaze-sb-123" {
		t.Fatalf("unexpected external id %q", g.ExternalID)
	}
	if g.HomeAbbr != "BOS" || g.AwayAbbr != "NYK" {
		t.Fatalf("alias/abbreviation fallback broken: %s/%s", g.HomeAbbr, g.AwayAbbr)
	}
	if g.StartTime == nil {
		t.Fatalf("expected absolute start time")
	}
	if g.Arena != "TD Garden" {
		t.Fatalf("unexpected arena %q", g.Arena)
	}
}

func TestFetchGamesLocalTimeFallsToTimeText(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"games": [{
				"date": {"time": "7:30 PM ET"},
				"teams": {
					"home": {"alias": "BOS"},
					"away": {"alias": "NYK"}
				}
			}]
		}`)
	}))

	records, err := client.FetchGames(context.Background(), "2025-12-14")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	g := records[0]
	if g.StartTime != nil {
		t.Fatalf("expected no absolute time")
	}
	if g.TimeText != "7:30 PM ET" {
		t.Fatalf("unexpected time text %q", g.TimeText)
	}
	if g.ExternalID != "" {
		t.Fatalf("missing upstream id should leave external id empty, got %q", g.ExternalID)
	}
}

func TestFetchGamesSkipsGamesWithoutTeams(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"games": [
				{"teams": {"home": {"alias": "BOS"}, "away": {}}},
				{"teams": {"home": {"alias": "LAL"}, "away": {"alias": "GSW"}}}
			]
		}`)
	}))

	records, err := client.FetchGames(context.Background(), "2025-12-14")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected the malformed game skipped, got %d records", len(records))
	}
}

func TestFetchGamesNotFoundMeansNoGames(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))

	records, err := client.FetchGames(context.Background(), "2025-07-04")
	if err != nil {
		t.Fatalf("404 should not be an error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestFetchGamesMissingKey(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.FetchGames(context.Background(), "2025-12-14")
	if !errors.Is(err, sources.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
