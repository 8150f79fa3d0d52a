package balldontlie

import (
	"fmt"
	"strings"
	"time"

	"scout-data-service/internal/domain"
)

func mapGame(g gameResponse) domain.GameRecord {
	record := domain.GameRecord{
		ExternalID: fmt.Sprintf("%s-%d", sourceName, g.ID),
		HomeAbbr:   strings.ToUpper(g.HomeTeam.Abbreviation),
		AwayAbbr:   strings.ToUpper(g.VisitorTeam.Abbreviation),
		Date:       truncateDate(g.Date),
		Status:     domain.MapStatus(g.Status),
		Source:     sourceName,
	}

	if start, ok := parseInstant(g.Datetime); ok {
		record.StartTime = &start
	} else if start, ok := parseInstant(g.Status); ok {
		// Upstream reports the tip-off instant in the status field until
		// the game goes live.
		record.StartTime = &start
		record.Status = domain.StatusScheduled
	} else {
		record.TimeText = strings.TrimSpace(g.Time)
	}

	return record
}

func mapTeam(t teamResponse) domain.TeamRecord {
	id := t.ID
	return domain.TeamRecord{
		FullName:      t.FullName,
		Abbreviation:  strings.ToUpper(t.Abbreviation),
		Nickname:      t.Name,
		League:        "NBA",
		BallDontLieID: &id,
		Source:        sourceName,
	}
}

func mapPlayer(p playerResponse, active *bool) domain.PlayerRecord {
	id := p.ID
	record := domain.PlayerRecord{
		Name:          strings.TrimSpace(p.FirstName + " " + p.LastName),
		Jersey:        p.JerseyNumber,
		Position:      p.Position,
		Height:        formatHeight(p.Height),
		Weight:        formatWeight(p.Weight),
		BallDontLieID: &id,
		Active:        active,
		Source:        sourceName,
	}
	if p.Team.ID != 0 {
		teamID := p.Team.ID
		record.TeamSourceID = &teamID
	}
	return record
}

// formatHeight converts the feed's "6-6" form to the conventional 6'6".
func formatHeight(raw string) string {
	raw = strings.TrimSpace(raw)
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return raw
	}
	return fmt.Sprintf("%s'%s\"", strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
}

func formatWeight(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return raw + " lbs"
}

func truncateDate(raw string) string {
	if len(raw) >= 10 {
		return raw[:10]
	}
	return raw
}

func parseInstant(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
