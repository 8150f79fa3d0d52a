package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"scout-data-service/internal/cache"
	"scout-data-service/internal/domain"
	"scout-data-service/internal/logging"
)

func gamesCacheKey(date string) string {
	return "games:date:" + date
}

// GamesLister is the read surface CachedGames wraps.
type GamesLister interface {
	GamesByDate(ctx context.Context, date string) ([]domain.Game, error)
}

// CachedGames fronts per-date game reads with a cache. The sync engine
// invalidates these entries after writing, so a hit is never staler than the
// last completed sync.
type CachedGames struct {
	lister GamesLister
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedGames wraps a lister. A nil cache passes reads straight through.
func NewCachedGames(lister GamesLister, c cache.Cache, ttl time.Duration, logger *slog.Logger) *CachedGames {
	return &CachedGames{
		lister: lister,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// GamesByDate returns the stored games for a date. force skips the cache
// read; the fresh result is still written back.
func (r *CachedGames) GamesByDate(ctx context.Context, date string, force bool) ([]domain.Game, error) {
	if !force && r.cache != nil {
		raw, err := r.cache.Get(ctx, gamesCacheKey(date))
		if err == nil {
			var games []domain.Game
			if jsonErr := json.Unmarshal(raw, &games); jsonErr == nil {
				return games, nil
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			logging.Warn(r.logger, "game cache read failed",
				slog.String(logging.FieldDate, date),
				slog.String("err", err.Error()),
			)
		}
	}

	games, err := r.lister.GamesByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if raw, err := json.Marshal(games); err == nil {
			if err := r.cache.Put(ctx, gamesCacheKey(date), raw, r.ttl); err != nil {
				logging.Warn(r.logger, "game cache write failed",
					slog.String(logging.FieldDate, date),
					slog.String("err", err.Error()),
				)
			}
		}
	}
	return games, nil
}
