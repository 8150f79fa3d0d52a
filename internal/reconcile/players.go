package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"scout-data-service/internal/domain"
	"scout-data-service/internal/logging"
	"scout-data-service/internal/names"
)

// SyncPlayers reconciles the primary roster and the stats index against the
// stored player set. Primary records may create players; stats records only
// enrich existing ones. At the end, exactly the players seen active this pass
// are marked active.
func (e *Engine) SyncPlayers(ctx context.Context) (PlayerSummary, error) {
	summary := PlayerSummary{}

	if e.roster == nil {
		return summary, fmt.Errorf("no roster source configured")
	}

	stored, err := e.store.ListPlayers(ctx)
	if err != nil {
		return summary, fmt.Errorf("list players: %w", err)
	}
	teamsBySource, err := e.store.TeamsBySourceID(ctx)
	if err != nil {
		return summary, fmt.Errorf("load team index: %w", err)
	}

	m := newMatcher(stored)
	activeIDs := make(map[uint]bool)

	roster, err := e.roster.FetchActivePlayers(ctx)
	if err != nil {
		return summary, fmt.Errorf("fetch roster: %w", err)
	}
	summary.Fetched += len(roster)

	for _, record := range roster {
		player, matched, ambiguous := m.match(record)
		if ambiguous {
			summary.Unmatched++
			e.logUnmatched(record, "ambiguous fuzzy match")
			continue
		}

		var next domain.Player
		created := false
		if matched {
			next = mergePlayer(*player, record, teamsBySource)
		} else {
			next = newPlayer(record, teamsBySource)
			created = true
		}

		saved, err := e.store.SavePlayer(ctx, next)
		if err != nil {
			summary.Failed++
			logging.Error(e.logger, "player upsert failed", err,
				slog.String(logging.FieldSource, record.Source),
				slog.String("player", record.Name),
			)
			continue
		}
		m.absorb(saved)
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
		if record.Active == nil || *record.Active {
			activeIDs[saved.ID] = true
		}
	}

	if e.stats != nil {
		statsSummary := e.syncStats(ctx, m, teamsBySource, activeIDs)
		summary.Fetched += statsSummary.Fetched
		summary.Updated += statsSummary.Updated
		summary.Unmatched += statsSummary.Unmatched
		summary.Failed += statsSummary.Failed
	}

	ids := make([]uint, 0, len(activeIDs))
	for id := range activeIDs {
		ids = append(ids, id)
	}
	if err := e.store.SetActivePlayers(ctx, ids); err != nil {
		return summary, fmt.Errorf("mark active players: %w", err)
	}

	e.recorder.RecordUpserts("players", summary.Created+summary.Updated)
	e.recorder.RecordUnmatched("players", summary.Unmatched)

	return summary, nil
}

// syncStats cross-references the stats index. Unmatched records are counted,
// never created: a stats row carries no team assignment worth storing.
func (e *Engine) syncStats(ctx context.Context, m *matcher, teamsBySource map[int]domain.Team, activeIDs map[uint]bool) PlayerSummary {
	summary := PlayerSummary{}

	records, err := e.stats.FetchPlayers(ctx)
	if err != nil {
		logging.Warn(e.logger, "stats source failed, skipping cross-reference",
			slog.String(logging.FieldSource, e.stats.Name()),
			slog.String("err", err.Error()),
		)
		return summary
	}
	summary.Fetched = len(records)

	for _, record := range records {
		player, matched, ambiguous := m.match(record)
		if ambiguous || !matched {
			summary.Unmatched++
			if ambiguous {
				e.logUnmatched(record, "ambiguous fuzzy match")
			}
			continue
		}

		next := mergePlayer(*player, record, teamsBySource)
		saved, err := e.store.SavePlayer(ctx, next)
		if err != nil {
			summary.Failed++
			continue
		}
		m.absorb(saved)
		summary.Updated++
		if record.Active != nil && *record.Active {
			activeIDs[saved.ID] = true
		}
	}

	return summary
}

func (e *Engine) logUnmatched(record domain.PlayerRecord, reason string) {
	logging.Warn(e.logger, "player record unmatched",
		slog.String(logging.FieldSource, record.Source),
		slog.String("player", record.Name),
		slog.String("reason", reason),
	)
}

func newPlayer(record domain.PlayerRecord, teamsBySource map[int]domain.Team) domain.Player {
	player := domain.Player{Name: record.Name}
	return mergePlayer(player, record, teamsBySource)
}

// mergePlayer folds a source record into a stored row. Absent fields never
// erase stored values, and a stored name is only replaced by a source that is
// authoritative for spelling.
func mergePlayer(player domain.Player, record domain.PlayerRecord, teamsBySource map[int]domain.Team) domain.Player {
	if record.CanonicalName && record.Name != "" {
		player.Name = record.Name
	} else if player.Name == "" {
		player.Name = record.Name
	}

	if record.Jersey != "" {
		player.Jersey = record.Jersey
	}
	if record.Position != "" {
		player.Position = record.Position
	}
	if record.Height != "" {
		player.Height = record.Height
	}
	if record.Weight != "" {
		player.Weight = record.Weight
	}
	if record.HeadshotURL != "" {
		player.HeadshotURL = record.HeadshotURL
	}
	if record.BallDontLieID != nil {
		player.BallDontLieID = record.BallDontLieID
	}
	if record.NBAPlayerID != nil {
		player.NBAPlayerID = record.NBAPlayerID
	}
	if record.TeamSourceID != nil {
		if team, ok := teamsBySource[*record.TeamSourceID]; ok {
			teamID := team.ID
			player.TeamID = &teamID
		}
	}
	if record.Active != nil {
		player.IsActive = *record.Active
	}
	return player
}

// matcher resolves a source record to a stored player through a ladder of
// increasingly loose strategies: source id, known alias, normalized name,
// then fuzzy last-name match. Fuzzy matches that fit more than one stored
// player are rejected outright.
type matcher struct {
	players []*domain.Player
	byBdlID map[int]*domain.Player
	byNBAID map[int]*domain.Player
	byKey   map[string][]*domain.Player
	byLast  map[string][]*domain.Player
}

func newMatcher(stored []domain.Player) *matcher {
	m := &matcher{
		byBdlID: make(map[int]*domain.Player),
		byNBAID: make(map[int]*domain.Player),
		byKey:   make(map[string][]*domain.Player),
		byLast:  make(map[string][]*domain.Player),
	}
	for i := range stored {
		m.index(&stored[i])
	}
	return m
}

func (m *matcher) index(p *domain.Player) {
	m.players = append(m.players, p)
	if p.BallDontLieID != nil {
		m.byBdlID[*p.BallDontLieID] = p
	}
	if p.NBAPlayerID != nil {
		m.byNBAID[*p.NBAPlayerID] = p
	}
	key := names.Normalize(p.Name)
	if key == "" {
		return
	}
	m.byKey[key] = append(m.byKey[key], p)
	tokens := names.SplitKey(key)
	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		m.byLast[last] = append(m.byLast[last], p)
	}
}

// absorb refreshes the index after a save, picking up newly assigned ids and
// name upgrades.
func (m *matcher) absorb(saved domain.Player) {
	if saved.BallDontLieID != nil {
		if existing, ok := m.byBdlID[*saved.BallDontLieID]; ok {
			*existing = saved
			return
		}
	}
	if saved.NBAPlayerID != nil {
		if existing, ok := m.byNBAID[*saved.NBAPlayerID]; ok {
			*existing = saved
			return
		}
	}
	key := names.Normalize(saved.Name)
	for _, existing := range m.byKey[key] {
		if existing.ID == saved.ID {
			*existing = saved
			m.reindexIDs(existing)
			return
		}
	}
	p := saved
	m.index(&p)
}

func (m *matcher) reindexIDs(p *domain.Player) {
	if p.BallDontLieID != nil {
		m.byBdlID[*p.BallDontLieID] = p
	}
	if p.NBAPlayerID != nil {
		m.byNBAID[*p.NBAPlayerID] = p
	}
}

func (m *matcher) match(record domain.PlayerRecord) (player *domain.Player, matched bool, ambiguous bool) {
	if record.BallDontLieID != nil {
		if p, ok := m.byBdlID[*record.BallDontLieID]; ok {
			return p, true, false
		}
	}
	if record.NBAPlayerID != nil {
		if p, ok := m.byNBAID[*record.NBAPlayerID]; ok {
			return p, true, false
		}
	}

	key := names.Normalize(record.Name)
	if key == "" {
		return nil, false, false
	}

	if aliasKey, ok := names.Alias(key); ok {
		if p, found := m.lookupKey(aliasKey); found {
			return p, true, false
		}
	}
	if p, found := m.lookupKey(key); found {
		return p, true, false
	}

	return m.fuzzyMatch(key)
}

func (m *matcher) lookupKey(key string) (*domain.Player, bool) {
	candidates := m.byKey[key]
	if len(candidates) == 1 {
		return candidates[0], true
	}
	return nil, false
}

// fuzzyMatch accepts a candidate whose last token matches exactly and whose
// first initial agrees. More than one such candidate means the record is
// ambiguous and must not be guessed at.
func (m *matcher) fuzzyMatch(key string) (*domain.Player, bool, bool) {
	tokens := names.SplitKey(key)
	if len(tokens) < 2 {
		return nil, false, false
	}
	first, last := tokens[0], tokens[len(tokens)-1]

	var found *domain.Player
	for _, candidate := range m.byLast[last] {
		candTokens := names.SplitKey(names.Normalize(candidate.Name))
		if len(candTokens) < 2 {
			continue
		}
		if !strings.HasPrefix(candTokens[0], first[:1]) {
			continue
		}
		if found != nil {
			return nil, false, true
		}
		found = candidate
	}
	if found == nil {
		return nil, false, false
	}
	return found, true, false
}
