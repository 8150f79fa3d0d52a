package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

type llmGame struct {
	AwayTeam string `json:"away_team"`
	HomeTeam string `json:"home_team"`
	Time     string `json:"time"`
}

var (
	fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	// Matches schedule lines like "NYK @ BOS - 7:30 PM ET".
	lineRe = regexp.MustCompile(`(?m)\b([A-Z]{2,3})\s*@\s*([A-Z]{2,3})\b[^\S\n]*[-–:]?[^\S\n]*(\d{1,2}(?::\d{2})?\s*(?:AM|PM)(?:\s*[A-Z]{2,4})?)?`)
)

// parseGames extracts game entries from model output. JSON is tried first
// (after stripping code fences); if that yields no entries, a line-oriented
// regex sweep recovers what it can.
func parseGames(text string) []llmGame {
	if games, ok := parseJSON(text); ok {
		return games
	}
	return parseLines(text)
}

func parseJSON(text string) ([]llmGame, bool) {
	candidate := text
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	}

	start := strings.Index(candidate, "[")
	end := strings.LastIndex(candidate, "]")
	if start < 0 || end <= start {
		return nil, false
	}

	var games []llmGame
	if err := json.Unmarshal([]byte(candidate[start:end+1]), &games); err != nil {
		return nil, false
	}

	kept := games[:0]
	for _, g := range games {
		if g.HomeTeam != "" && g.AwayTeam != "" {
			kept = append(kept, g)
		}
	}
	// An empty array is treated as a failed parse, not an empty slate: the
	// model sometimes answers with "[]" plus the real schedule as free text.
	if len(kept) == 0 {
		return nil, false
	}
	return kept, true
}

func parseLines(text string) []llmGame {
	var games []llmGame
	for _, m := range lineRe.FindAllStringSubmatch(text, -1) {
		games = append(games, llmGame{
			AwayTeam: m[1],
			HomeTeam: m[2],
			Time:     strings.TrimSpace(m[3]),
		})
	}
	return games
}
