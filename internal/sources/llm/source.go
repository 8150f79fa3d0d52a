package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"scout-data-service/internal/cache"
	"scout-data-service/internal/domain"
	"scout-data-service/internal/logging"
	"scout-data-service/internal/sources"
)

const sourceName = "llm"

func llmCacheKey(date string) string {
	return "nba_schedule_llm:" + date
}

// AbbrProvider supplies the set of valid team abbreviations for prompt
// construction and output validation.
type AbbrProvider func(ctx context.Context) ([]string, error)

// Source is the last-resort schedule source: it asks a language model for
// the slate and parses the reply. Output is cached under its own key so a
// flapping primary source does not burn tokens on every sync.
type Source struct {
	backend TextBackend
	abbrs   AbbrProvider
	cache   cache.Cache
	ttl     time.Duration
	logger  *slog.Logger
}

// NewSource constructs the fallback source. A nil backend marks the source
// unconfigured; a nil cache disables memoization.
func NewSource(backend TextBackend, abbrs AbbrProvider, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Source {
	return &Source{
		backend: backend,
		abbrs:   abbrs,
		cache:   c,
		ttl:     ttl,
		logger:  logger,
	}
}

func (s *Source) Name() string { return sourceName }

func (s *Source) FetchGames(ctx context.Context, date string) ([]domain.GameRecord, error) {
	if s == nil || s.backend == nil {
		return nil, fmt.Errorf("%s: no backend: %w", sourceName, sources.ErrNotConfigured)
	}

	if cached, ok := s.readCache(ctx, date); ok {
		return cached, nil
	}

	abbrs, err := s.abbrs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: load abbreviations: %w", sourceName, err)
	}
	valid := make(map[string]bool, len(abbrs))
	for _, a := range abbrs {
		valid[strings.ToUpper(a)] = true
	}

	text, err := s.backend.Complete(ctx, buildPrompt(date, abbrs))
	if err != nil {
		return nil, err
	}

	games := parseGames(text)
	records := make([]domain.GameRecord, 0, len(games))
	for _, g := range games {
		home := strings.ToUpper(strings.TrimSpace(g.HomeTeam))
		away := strings.ToUpper(strings.TrimSpace(g.AwayTeam))
		if !valid[home] || !valid[away] || home == away {
			logging.Warn(s.logger, "dropping hallucinated matchup",
				slog.String(logging.FieldSource, sourceName),
				slog.String(logging.FieldDate, date),
				slog.String("matchup", away+" @ "+home),
			)
			continue
		}
		records = append(records, domain.GameRecord{
			ExternalID: fmt.Sprintf("%s-%s-%s-%s", sourceName, home, away, date),
			HomeAbbr:   home,
			AwayAbbr:   away,
			Date:       date,
			TimeText:   strings.TrimSpace(g.Time),
			Status:     domain.StatusScheduled,
			Source:     sourceName,
		})
	}

	s.writeCache(ctx, date, records)
	return records, nil
}

func (s *Source) readCache(ctx context.Context, date string) ([]domain.GameRecord, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, llmCacheKey(date))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logging.Warn(s.logger, "llm cache read failed",
				slog.String(logging.FieldDate, date),
				slog.String("err", err.Error()),
			)
		}
		return nil, false
	}
	var records []domain.GameRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false
	}
	return records, true
}

// writeCache stores the parsed slate, empty or not: an off day must not cost
// a completion on every subsequent sync within the TTL.
func (s *Source) writeCache(ctx context.Context, date string, records []domain.GameRecord) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := s.cache.Put(ctx, llmCacheKey(date), raw, s.ttl); err != nil {
		logging.Warn(s.logger, "llm cache write failed",
			slog.String(logging.FieldDate, date),
			slog.String("err", err.Error()),
		)
	}
}
