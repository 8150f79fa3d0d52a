package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"scout-data-service/internal/cache"
	"scout-data-service/internal/domain"
	"scout-data-service/internal/logging"
	"scout-data-service/internal/metrics"
	"scout-data-service/internal/sources"
	"scout-data-service/internal/timeparse"
)

// gameCacheKey is the read-model cache entry invalidated whenever that
// date's schedule changes.
func gameCacheKey(date string) string {
	return "games:date:" + date
}

// ScheduleSummary reports what a schedule sync pass did.
type ScheduleSummary struct {
	Date    string
	Fetched int
	Created int
	Updated int
	Skipped int
	Failed  int
}

// PlayerSummary reports what a player sync pass did.
type PlayerSummary struct {
	Fetched   int
	Created   int
	Updated   int
	Unmatched int
	Failed    int
}

// Engine reconciles source records against the canonical store.
type Engine struct {
	chain    *sources.Chain
	roster   RosterSource
	stats    sources.PlayerSource
	store    Store
	cache    cache.Cache
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// RosterSource is the primary roster feed: the full player list plus the
// currently-active subset.
type RosterSource interface {
	Name() string
	FetchActivePlayers(ctx context.Context) ([]domain.PlayerRecord, error)
}

// Config wires the engine's collaborators. Roster, stats, cache, and
// recorder are optional.
type Config struct {
	Chain    *sources.Chain
	Roster   RosterSource
	Stats    sources.PlayerSource
	Store    Store
	Cache    cache.Cache
	Recorder *metrics.Recorder
	Logger   *slog.Logger
}

// NewEngine constructs an engine.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		chain:    cfg.Chain,
		roster:   cfg.Roster,
		stats:    cfg.Stats,
		store:    cfg.Store,
		cache:    cfg.Cache,
		recorder: cfg.Recorder,
		logger:   cfg.Logger,
	}
}

// SyncSchedule fetches the schedule for a date through the fallback chain
// and upserts it. Individual bad records are skipped, not fatal; the pass
// fails only when nothing could be fetched or nothing could be written.
func (e *Engine) SyncSchedule(ctx context.Context, date string, force bool) (ScheduleSummary, error) {
	summary := ScheduleSummary{Date: date}

	teams, err := e.store.TeamCatalog(ctx)
	if err != nil {
		return summary, fmt.Errorf("load team catalog: %w", err)
	}

	records, err := e.chain.FetchGames(ctx, date, force)
	if err != nil {
		return summary, err
	}
	summary.Fetched = len(records)

	for _, record := range records {
		game, ok := e.buildGame(record, teams)
		if !ok {
			summary.Skipped++
			continue
		}

		created, err := e.store.UpsertGame(ctx, game)
		if err != nil {
			summary.Failed++
			logging.Error(e.logger, "game upsert failed", err,
				slog.String(logging.FieldExternalID, game.ExternalID),
				slog.String(logging.FieldDate, date),
			)
			continue
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	e.recorder.RecordUpserts("games", summary.Created+summary.Updated)
	e.recorder.RecordSkips("games", summary.Skipped)

	if summary.Created+summary.Updated > 0 && e.cache != nil {
		if err := e.cache.Forget(ctx, gameCacheKey(date)); err != nil {
			logging.Warn(e.logger, "cache invalidation failed",
				slog.String(logging.FieldDate, date),
				slog.String("err", err.Error()),
			)
		}
	}

	if summary.Fetched > 0 && summary.Created+summary.Updated == 0 && summary.Failed > 0 {
		return summary, fmt.Errorf("all %d game upserts failed for %s", summary.Failed, date)
	}
	return summary, nil
}

func (e *Engine) buildGame(record domain.GameRecord, teams map[string]domain.Team) (domain.Game, bool) {
	home, homeOK := teams[strings.ToUpper(record.HomeAbbr)]
	away, awayOK := teams[strings.ToUpper(record.AwayAbbr)]
	if !homeOK || !awayOK {
		logging.Warn(e.logger, "unknown team abbreviation, dropping game",
			slog.String(logging.FieldSource, record.Source),
			slog.String(logging.FieldDate, record.Date),
			slog.String("home", record.HomeAbbr),
			slog.String("away", record.AwayAbbr),
		)
		return domain.Game{}, false
	}

	externalID := record.ExternalID
	if externalID == "" {
		externalID = SynthesizeExternalID(record.Date, record.HomeAbbr, record.AwayAbbr)
	}

	var scheduledAt time.Time
	if record.StartTime != nil {
		scheduledAt = record.StartTime.UTC()
	} else {
		scheduledAt = timeparse.Resolve(record.Date, record.TimeText, record.TZHint)
	}

	status := record.Status
	if status == "" {
		status = domain.StatusScheduled
	}

	return domain.Game{
		ExternalID:  externalID,
		HomeTeamID:  home.ID,
		AwayTeamID:  away.ID,
		ScheduledAt: scheduledAt,
		Status:      status,
	}, true
}

// SynthesizeExternalID builds the dedup key for sources without native game
// ids. Two sources reporting the same matchup on the same date collapse to
// one row.
func SynthesizeExternalID(date, homeAbbr, awayAbbr string) string {
	return fmt.Sprintf("%s-%s-%s", date, strings.ToUpper(homeAbbr), strings.ToUpper(awayAbbr))
}
