package reconcile

import (
	"context"

	"scout-data-service/internal/domain"
)

// Store is the persistence surface the engine writes through.
type Store interface {
	// TeamCatalog returns all teams keyed by upper-cased abbreviation.
	TeamCatalog(ctx context.Context) (map[string]domain.Team, error)
	// TeamsBySourceID returns teams keyed by their primary roster API id.
	TeamsBySourceID(ctx context.Context) (map[int]domain.Team, error)
	// UpsertGame inserts or updates a game by external id and reports whether
	// a new row was created.
	UpsertGame(ctx context.Context, game domain.Game) (bool, error)
	ListPlayers(ctx context.Context) ([]domain.Player, error)
	// SavePlayer inserts or updates a player and returns the stored row.
	SavePlayer(ctx context.Context, player domain.Player) (domain.Player, error)
	// SetActivePlayers marks exactly the given ids active and everyone else
	// inactive.
	SetActivePlayers(ctx context.Context, ids []uint) error
}
