package balldontlie

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"scout-data-service/internal/logging"
	"scout-data-service/internal/metrics"
	"scout-data-service/internal/ratelimit"
	"scout-data-service/internal/sources"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// limitedTransport reserves a rate limit slot before every request and
// absorbs one 429 by cooling down for a full quota window, then retrying
// once. A second 429 surfaces as a RateLimitError.
type limitedTransport struct {
	inner    httpDoer
	limiter  *ratelimit.Limiter
	recorder *metrics.Recorder
	logger   *slog.Logger
	cooldown time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

func newLimitedTransport(inner httpDoer, limiter *ratelimit.Limiter, recorder *metrics.Recorder, logger *slog.Logger) *limitedTransport {
	return &limitedTransport{
		inner:    inner,
		limiter:  limiter,
		recorder: recorder,
		logger:   logger,
		cooldown: rateLimitCooldown,
		sleep:    sleepOrDone,
	}
}

func (t *limitedTransport) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	for attempt := 0; ; attempt++ {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := t.inner.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		resp.Body.Close()

		cooldown := retryAfter(resp, t.cooldown)
		t.recorder.RecordRateLimit(sourceName, cooldown)

		if attempt > 0 {
			return nil, &sources.RateLimitError{
				Source:     sourceName,
				StatusCode: http.StatusTooManyRequests,
				RetryAfter: cooldown,
			}
		}

		logging.Warn(t.logger, "upstream rate limited, cooling down",
			slog.String(logging.FieldSource, sourceName),
			slog.Duration("cooldown", cooldown),
		)
		if err := t.sleep(ctx, cooldown); err != nil {
			return nil, err
		}
	}
}

func retryAfter(resp *http.Response, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

func sleepOrDone(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}
