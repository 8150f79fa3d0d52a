package sources

import (
	"context"

	"scout-data-service/internal/domain"
)

// GameSource fetches a normalized schedule for a single date. The date is a
// YYYY-MM-DD string interpreted in US Eastern time, matching how the league
// publishes its schedule.
type GameSource interface {
	Name() string
	FetchGames(ctx context.Context, date string) ([]domain.GameRecord, error)
}

// PlayerSource fetches normalized player records.
type PlayerSource interface {
	Name() string
	FetchPlayers(ctx context.Context) ([]domain.PlayerRecord, error)
}

// TeamSource fetches normalized team records, used to seed the catalog.
type TeamSource interface {
	FetchTeams(ctx context.Context) ([]domain.TeamRecord, error)
}
