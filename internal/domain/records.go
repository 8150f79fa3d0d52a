package domain

import "time"

// GameRecord is the normalized shape every schedule source emits before
// reconciliation. Sources that know the absolute tip-off instant set
// StartTime; sources that only know a local time string leave StartTime nil
// and fill TimeText (plus TZHint when the feed carries one) for the time
// resolver.
type GameRecord struct {
	// ExternalID is the dedup key. Left empty when the source has no native
	// id; the reconciler then synthesizes <date>-<HOME>-<AWAY>.
	ExternalID string
	HomeAbbr   string
	AwayAbbr   string
	Date       string // YYYY-MM-DD
	TimeText   string // e.g. "7:30 PM ET", empty when StartTime is set
	TZHint     string
	StartTime  *time.Time
	Status     GameStatus
	Arena      string
	Source     string
}

// PlayerRecord is the normalized shape roster sources emit. Optional fields
// are pointers: an absent value never overwrites a stored one.
type PlayerRecord struct {
	Name          string
	Jersey        string
	Position      string
	Height        string
	Weight        string
	BallDontLieID *int
	NBAPlayerID   *int
	TeamSourceID  *int // team id in the emitting source's namespace
	Active        *bool
	HeadshotURL   string
	// CanonicalName marks the emitting source as authoritative for spelling;
	// only then may a stored name be overwritten.
	CanonicalName bool
	Source        string
}

// TeamRecord is the normalized shape the catalog seed consumes.
type TeamRecord struct {
	FullName      string
	Abbreviation  string
	Nickname      string
	League        string
	BallDontLieID *int
	Source        string
}
