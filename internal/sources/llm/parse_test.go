package llm

import "testing"

func TestParseGamesPlainJSON(t *testing.T) {
	text := `[{"away_team": "NYK", "home_team": "BOS", "time": "7:30 PM ET"}]`

	games := parseGames(text)
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if games[0].AwayTeam != "NYK" || games[0].HomeTeam != "BOS" || games[0].Time != "7:30 PM ET" {
		t.Fatalf("unexpected game %+v", games[0])
	}
}

func TestParseGamesStripsCodeFences(t *testing.T) {
	text := "Here is the schedule:\n```json\n[{\"away_team\": \"NYK\", \"home_team\": \"BOS\", \"time\": \"7:30 PM ET\"}]\n```\nLet me know if you need more."

	games := parseGames(text)
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
}

func TestParseGamesBareFences(t *testing.T) {
	text := "```\n[{\"away_team\": \"LAL\", \"home_team\": \"GSW\"}]\n```"

	games := parseGames(text)
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if games[0].Time != "" {
		t.Fatalf("expected empty time, got %q", games[0].Time)
	}
}

func TestParseGamesSurroundingProse(t *testing.T) {
	text := `Sure! The games on that date are: [{"away_team": "NYK", "home_team": "BOS", "time": "7:30 PM ET"}, {"away_team": "LAL", "home_team": "GSW", "time": "10:00 PM ET"}] Enjoy!`

	games := parseGames(text)
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
}

func TestParseGamesRegexFallback(t *testing.T) {
	text := "NBA schedule:\nNYK @ BOS - 7:30 PM ET\nLAL @ GSW 10:00 PM ET\nMIA @ ORL\n"

	games := parseGames(text)
	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(games))
	}
	if games[0].AwayTeam != "NYK" || games[0].HomeTeam != "BOS" || games[0].Time != "7:30 PM ET" {
		t.Fatalf("unexpected first game %+v", games[0])
	}
	if games[2].Time != "" {
		t.Fatalf("expected missing time tolerated, got %q", games[2].Time)
	}
}

func TestParseGamesEmptyArray(t *testing.T) {
	games := parseGames("[]")
	if len(games) != 0 {
		t.Fatalf("expected no games, got %d", len(games))
	}
}

func TestParseGamesEmptyArrayFallsBackToLines(t *testing.T) {
	text := "Schedule sources returned []\nNYK @ BOS - 7:30 PM ET\n"

	games := parseGames(text)
	if len(games) != 1 {
		t.Fatalf("expected line sweep after empty JSON array, got %d games", len(games))
	}
	if games[0].AwayTeam != "NYK" || games[0].HomeTeam != "BOS" {
		t.Fatalf("unexpected game %+v", games[0])
	}
}

func TestParseGamesAllPartialEntriesFallsBackToLines(t *testing.T) {
	// Every JSON entry is unusable; the same games appear as free text below.
	text := `[{"away_team": "", "home_team": "BOS"}]` + "\nNYK @ BOS 7:30 PM ET\n"

	games := parseGames(text)
	if len(games) != 1 {
		t.Fatalf("expected line sweep after unusable JSON entries, got %d games", len(games))
	}
}

func TestParseGamesDropsPartialEntries(t *testing.T) {
	text := `[{"away_team": "NYK", "home_team": "BOS"}, {"away_team": "", "home_team": "GSW"}]`

	games := parseGames(text)
	if len(games) != 1 {
		t.Fatalf("expected partial entry dropped, got %d", len(games))
	}
}

func TestParseGamesGarbage(t *testing.T) {
	games := parseGames("I cannot help with that request.")
	if len(games) != 0 {
		t.Fatalf("expected no games from refusal text, got %d", len(games))
	}
}
