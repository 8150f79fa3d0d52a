package nbastats

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSeasonRollsOverInOctober(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"mid season", time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC), "2025-26"},
		{"spring same season", time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), "2025-26"},
		{"september still previous", time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), "2024-25"},
		{"october rollover", time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), "2025-26"},
		{"decade boundary", time.Date(2029, 11, 1, 0, 0, 0, 0, time.UTC), "2029-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Season(tt.now); got != tt.want {
				t.Fatalf("Season(%s) = %q, want %q", tt.now.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestFetchPlayersParsesColumnarPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats/commonallplayers" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("Season"); got != "2025-26" {
			t.Fatalf("unexpected season %q", got)
		}
		if got := r.Header.Get("x-nba-stats-origin"); got != "stats" {
			t.Fatalf("missing stats headers")
		}
		// DISPLAY_FIRST_LAST deliberately not in the same position every
		// season; parsing must go through the header index.
		fmt.Fprint(w, `{
			"resultSets": [{
				"name": "CommonAllPlayers",
				"headers": ["PERSON_ID", "ROSTERSTATUS", "DISPLAY_FIRST_LAST", "TEAM_ID"],
				"rowSet": [
					[203999, 1, "Nikola Jokić", 1610612743],
					[1629027, 0, "Luka Dončić", 1610612747],
					[0, 1, "Bad Row", 1],
					[12345, 1, "", 1]
				]
			}]
		}`)
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Now:        func() time.Time { return time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC) },
	})

	players, err := client.FetchPlayers(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 usable rows, got %d", len(players))
	}

	jokic := players[0]
	if jokic.Name != "Nikola Jokić" {
		t.Fatalf("expected accent-correct name, got %q", jokic.Name)
	}
	if !jokic.CanonicalName {
		t.Fatalf("stats names should be flagged canonical")
	}
	if jokic.NBAPlayerID == nil || *jokic.NBAPlayerID != 203999 {
		t.Fatalf("unexpected player id %v", jokic.NBAPlayerID)
	}
	if jokic.Active == nil || !*jokic.Active {
		t.Fatalf("roster status 1 should map to active")
	}
	if jokic.HeadshotURL != "https://cdn.nba.com/headshots/nba/latest/1040x760/203999.png" {
		t.Fatalf("unexpected headshot url %q", jokic.HeadshotURL)
	}

	doncic := players[1]
	if doncic.Active == nil || *doncic.Active {
		t.Fatalf("roster status 0 should map to inactive")
	}
}

func TestFetchPlayersMissingResultSet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"resultSets": [{"name": "SomethingElse", "headers": [], "rowSet": []}]}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	if _, err := client.FetchPlayers(context.Background()); err == nil {
		t.Fatalf("expected error when result set missing")
	}
}

func TestFetchPlayersUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	if _, err := client.FetchPlayers(context.Background()); err == nil {
		t.Fatalf("expected error on 403")
	}
}
