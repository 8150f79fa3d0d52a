package domain

import (
	"strings"
	"time"
)

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled GameStatus = "scheduled"
	StatusLive      GameStatus = "live"
	StatusHalftime  GameStatus = "halftime"
	StatusFinal     GameStatus = "final"
	StatusPostponed GameStatus = "postponed"
	StatusCancelled GameStatus = "cancelled"
)

// MapStatus normalizes an upstream status string into a GameStatus.
// Unknown values default to scheduled rather than failing the record.
func MapStatus(raw string) GameStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "final", "complete", "closed", "ended":
		return StatusFinal
	case "live", "in progress", "inprogress", "in_progress", "end of period":
		return StatusLive
	case "halftime":
		return StatusHalftime
	case "postponed":
		return StatusPostponed
	case "cancelled", "canceled":
		return StatusCancelled
	default:
		return StatusScheduled
	}
}

// Team is the canonical team row. The abbreviation is the cross-source join
// key and is matched case-insensitively; it never changes after seeding.
type Team struct {
	ID           uint     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FullName     string   `gorm:"column:full_name;type:varchar(128);not null" json:"fullName"`
	Abbreviation string   `gorm:"column:abbreviation;type:varchar(8);uniqueIndex;not null" json:"abbreviation"`
	Nickname     string   `gorm:"column:nickname;type:varchar(64)" json:"nickname"`
	League       string   `gorm:"column:league;type:varchar(16)" json:"league"`
	ArenaName    string   `gorm:"column:arena_name;type:varchar(128)" json:"arenaName"`
	ArenaLat     *float64 `gorm:"column:arena_lat;type:numeric(9,6)" json:"arenaLat,omitempty"`
	ArenaLng     *float64 `gorm:"column:arena_lng;type:numeric(9,6)" json:"arenaLng,omitempty"`
	// Upstream id on the primary roster API, when known.
	BallDontLieID *int      `gorm:"column:balldontlie_id;uniqueIndex" json:"ballDontLieId,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// Player is the canonical player row. Name may be upgraded to the
// accent-correct spelling when an authoritative source matches; it is never
// downgraded back to an ASCII fallback. Players are soft-marked inactive,
// never deleted.
type Player struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Jersey   string `gorm:"column:jersey;type:varchar(8)" json:"jersey"`
	Position string `gorm:"column:position;type:varchar(8)" json:"position"`
	Height   string `gorm:"column:height;type:varchar(16)" json:"height"`
	Weight   string `gorm:"column:weight;type:varchar(16)" json:"weight"`
	// A player belongs to exactly one team at a time; reassignment is
	// last-write-wins.
	TeamID        *uint     `gorm:"column:team_id" json:"teamId,omitempty"`
	BallDontLieID *int      `gorm:"column:balldontlie_id;uniqueIndex" json:"ballDontLieId,omitempty"`
	NBAPlayerID   *int      `gorm:"column:nba_player_id;uniqueIndex" json:"nbaPlayerId,omitempty"`
	IsActive      bool      `gorm:"column:is_active;default:false" json:"isActive"`
	HeadshotURL   string    `gorm:"column:headshot_url;type:varchar(256)" json:"headshotUrl"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// Game is the canonical game row. ExternalID is the sole identity for upsert
// matching; the (home, away, time) tuple is never used because it can repeat
// (double-headers) or drift across source corrections.
type Game struct {
	ID          uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ExternalID  string     `gorm:"column:external_id;type:varchar(64);uniqueIndex;not null" json:"externalId"`
	HomeTeamID  uint       `gorm:"column:home_team_id;not null" json:"homeTeamId"`
	AwayTeamID  uint       `gorm:"column:away_team_id;not null" json:"awayTeamId"`
	ScheduledAt time.Time  `gorm:"column:scheduled_at;not null" json:"scheduledAt"` // always UTC
	Status      GameStatus `gorm:"column:status;type:varchar(16);default:scheduled" json:"status"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

func (Team) TableName() string   { return "teams" }
func (Player) TableName() string { return "players" }
func (Game) TableName() string   { return "games" }
