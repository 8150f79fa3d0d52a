package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"scout-data-service/internal/domain"
)

// Store persists canonical rows through gorm.
type Store struct {
	db *gorm.DB
}

// New wraps an open database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// TeamCatalog returns all teams keyed by upper-cased abbreviation.
func (s *Store) TeamCatalog(ctx context.Context) (map[string]domain.Team, error) {
	var teams []domain.Team
	if err := s.db.WithContext(ctx).Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("store: load teams: %w", err)
	}

	catalog := make(map[string]domain.Team, len(teams))
	for _, t := range teams {
		catalog[strings.ToUpper(t.Abbreviation)] = t
	}
	return catalog, nil
}

// TeamsBySourceID returns teams keyed by their primary roster API id.
func (s *Store) TeamsBySourceID(ctx context.Context) (map[int]domain.Team, error) {
	var teams []domain.Team
	if err := s.db.WithContext(ctx).Where("balldontlie_id IS NOT NULL").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("store: load team index: %w", err)
	}

	index := make(map[int]domain.Team, len(teams))
	for _, t := range teams {
		if t.BallDontLieID != nil {
			index[*t.BallDontLieID] = t
		}
	}
	return index, nil
}

// Abbreviations returns the sorted team abbreviation list.
func (s *Store) Abbreviations(ctx context.Context) ([]string, error) {
	var abbrs []string
	err := s.db.WithContext(ctx).
		Model(&domain.Team{}).
		Order("abbreviation").
		Pluck("abbreviation", &abbrs).Error
	if err != nil {
		return nil, fmt.Errorf("store: load abbreviations: %w", err)
	}
	return abbrs, nil
}

// SeedTeams upserts the team catalog by abbreviation. Existing rows keep
// their id; names and upstream ids are refreshed.
func (s *Store) SeedTeams(ctx context.Context, records []domain.TeamRecord) error {
	for _, record := range records {
		team := domain.Team{
			FullName:      record.FullName,
			Abbreviation:  strings.ToUpper(record.Abbreviation),
			Nickname:      record.Nickname,
			League:        record.League,
			BallDontLieID: record.BallDontLieID,
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "abbreviation"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "nickname", "league", "balldontlie_id", "updated_at"}),
		}).Create(&team).Error
		if err != nil {
			return fmt.Errorf("store: seed team %s: %w", team.Abbreviation, err)
		}
	}
	return nil
}

// UpsertGame inserts or updates a game keyed by external id and reports
// whether a new row was created.
func (s *Store) UpsertGame(ctx context.Context, game domain.Game) (bool, error) {
	var existing domain.Game
	err := s.db.WithContext(ctx).
		Where("external_id = ?", game.ExternalID).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// OnConflict still guards the insert against a concurrent sync pass.
		err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"home_team_id", "away_team_id", "scheduled_at", "status", "updated_at"}),
		}).Create(&game).Error
		if err != nil {
			return false, fmt.Errorf("store: insert game %s: %w", game.ExternalID, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: lookup game %s: %w", game.ExternalID, err)
	}

	updates := map[string]interface{}{
		"home_team_id": game.HomeTeamID,
		"away_team_id": game.AwayTeamID,
		"scheduled_at": game.ScheduledAt,
		"status":       game.Status,
	}
	if err := s.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return false, fmt.Errorf("store: update game %s: %w", game.ExternalID, err)
	}
	return false, nil
}

// GamesByDate returns the games scheduled on a date, ordered by tip-off. The
// date window is the UTC day; callers own timezone presentation.
func (s *Store) GamesByDate(ctx context.Context, date string) ([]domain.Game, error) {
	var games []domain.Game
	err := s.db.WithContext(ctx).
		Where("scheduled_at >= ?::date AND scheduled_at < ?::date + interval '1 day'", date, date).
		Order("scheduled_at").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("store: games for %s: %w", date, err)
	}
	return games, nil
}

// ListPlayers returns all stored players.
func (s *Store) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	var players []domain.Player
	if err := s.db.WithContext(ctx).Find(&players).Error; err != nil {
		return nil, fmt.Errorf("store: load players: %w", err)
	}
	return players, nil
}

// SavePlayer inserts or updates a player and returns the stored row.
func (s *Store) SavePlayer(ctx context.Context, player domain.Player) (domain.Player, error) {
	if player.ID == 0 {
		if err := s.db.WithContext(ctx).Create(&player).Error; err != nil {
			return domain.Player{}, fmt.Errorf("store: insert player %s: %w", player.Name, err)
		}
		return player, nil
	}
	if err := s.db.WithContext(ctx).Save(&player).Error; err != nil {
		return domain.Player{}, fmt.Errorf("store: update player %d: %w", player.ID, err)
	}
	return player, nil
}

// SetActivePlayers marks exactly the given ids active and everyone else
// inactive, in one transaction so readers never see an empty active set.
func (s *Store) SetActivePlayers(ctx context.Context, ids []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Player{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("store: reset active players: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Model(&domain.Player{}).
			Where("id IN ?", ids).
			Update("is_active", true).Error; err != nil {
			return fmt.Errorf("store: mark active players: %w", err)
		}
		return nil
	})
}
