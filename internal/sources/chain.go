package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"scout-data-service/internal/cache"
	"scout-data-service/internal/domain"
	"scout-data-service/internal/logging"
)

// scheduleCacheKey holds raw source output, keyed by date, so repeated syncs
// within the TTL do not spend upstream quota.
func scheduleCacheKey(date string) string {
	return "schedule:date:" + date
}

// Chain tries each schedule source in order and returns the first non-empty
// result. Source failures are logged and folded into the returned error only
// when every source fails.
type Chain struct {
	sources []GameSource
	cache   cache.Cache
	ttl     time.Duration
	logger  *slog.Logger
}

// NewChain builds a fallback chain over the given sources. A nil cache
// disables memoization.
func NewChain(srcs []GameSource, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Chain {
	return &Chain{
		sources: srcs,
		cache:   c,
		ttl:     ttl,
		logger:  logger,
	}
}

// FetchGames returns the schedule for a date. force skips the cache read but
// a fresh result is still written back, so subsequent non-forced calls reuse
// it.
func (c *Chain) FetchGames(ctx context.Context, date string, force bool) ([]domain.GameRecord, error) {
	if c == nil || len(c.sources) == 0 {
		return nil, ErrSourceUnavailable
	}

	if !force {
		if cached, ok := c.readCache(ctx, date); ok {
			return cached, nil
		}
	}

	var failures []error
	for _, src := range c.sources {
		records, err := src.FetchGames(ctx, date)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logging.Warn(c.logger, "schedule source failed",
				slog.String(logging.FieldSource, src.Name()),
				slog.String(logging.FieldDate, date),
				slog.String("err", err.Error()),
			)
			failures = append(failures, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		if len(records) == 0 {
			logging.Info(c.logger, "schedule source returned no games",
				slog.String(logging.FieldSource, src.Name()),
				slog.String(logging.FieldDate, date),
			)
			continue
		}

		c.writeCache(ctx, date, records)
		return records, nil
	}

	if len(failures) > 0 {
		return nil, fmt.Errorf("all schedule sources failed for %s: %w", date, errors.Join(failures...))
	}
	return nil, nil
}

func (c *Chain) readCache(ctx context.Context, date string) ([]domain.GameRecord, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, scheduleCacheKey(date))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logging.Warn(c.logger, "schedule cache read failed",
				slog.String(logging.FieldDate, date),
				slog.String("err", err.Error()),
			)
		}
		return nil, false
	}

	var records []domain.GameRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		logging.Warn(c.logger, "schedule cache entry corrupt, ignoring",
			slog.String(logging.FieldDate, date),
			slog.String("err", err.Error()),
		)
		return nil, false
	}
	return records, true
}

func (c *Chain) writeCache(ctx context.Context, date string, records []domain.GameRecord) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := c.cache.Put(ctx, scheduleCacheKey(date), raw, c.ttl); err != nil {
		logging.Warn(c.logger, "schedule cache write failed",
			slog.String(logging.FieldDate, date),
			slog.String("err", err.Error()),
		)
	}
}
