package balldontlie

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"scout-data-service/internal/metrics"
	"scout-data-service/internal/sources"
)

type scriptedDoer struct {
	statuses []int
	calls    int
}

func (d *scriptedDoer) Do(_ *http.Request) (*http.Response, error) {
	status := d.statuses[d.calls]
	d.calls++
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("{}")),
	}, nil
}

func newTestTransport(inner httpDoer, rec *metrics.Recorder) *limitedTransport {
	t := newLimitedTransport(inner, nil, rec, nil)
	t.sleep = func(context.Context, time.Duration) error { return nil }
	return t
}

func TestTransportPassesThroughSuccess(t *testing.T) {
	inner := &scriptedDoer{statuses: []int{http.StatusOK}}
	transport := newTestTransport(inner, nil)

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example/games", nil)
	resp, err := transport.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()
	if inner.calls != 1 {
		t.Fatalf("expected 1 call, got %d", inner.calls)
	}
}

func TestTransportRetriesOnceAfterRateLimit(t *testing.T) {
	rec := metrics.NewRecorder()
	inner := &scriptedDoer{statuses: []int{http.StatusTooManyRequests, http.StatusOK}}
	transport := newTestTransport(inner, rec)

	var slept time.Duration
	transport.sleep = func(_ context.Context, d time.Duration) error {
		slept += d
		return nil
	}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example/games", nil)
	resp, err := transport.Do(req)
	if err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	resp.Body.Close()

	if inner.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", inner.calls)
	}
	if slept != rateLimitCooldown {
		t.Fatalf("expected one full cooldown, slept %s", slept)
	}
	if rec.RateLimitHits(sourceName) != 1 {
		t.Fatalf("expected 1 recorded rate limit hit")
	}
}

func TestTransportSurfacesSecondRateLimit(t *testing.T) {
	inner := &scriptedDoer{statuses: []int{http.StatusTooManyRequests, http.StatusTooManyRequests}}
	transport := newTestTransport(inner, nil)

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example/games", nil)
	_, err := transport.Do(req)
	if err == nil {
		t.Fatalf("expected rate limit error")
	}

	rlErr, ok := sources.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rlErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected status %d", rlErr.StatusCode)
	}
	if inner.calls != 2 {
		t.Fatalf("rate limited request should retry exactly once, got %d calls", inner.calls)
	}
}

func TestTransportHonorsRetryAfterHeader(t *testing.T) {
	inner := &headerDoer{}
	transport := newTestTransport(inner, nil)

	var slept time.Duration
	transport.sleep = func(_ context.Context, d time.Duration) error {
		slept += d
		return nil
	}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example/games", nil)
	resp, err := transport.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if slept != 30*time.Second {
		t.Fatalf("expected Retry-After honored, slept %s", slept)
	}
}

type headerDoer struct {
	calls int
}

func (d *headerDoer) Do(_ *http.Request) (*http.Response, error) {
	d.calls++
	if d.calls == 1 {
		header := http.Header{}
		header.Set("Retry-After", "30")
		return &http.Response{
			StatusCode: http.StatusTooManyRequests,
			Header:     header,
			Body:       io.NopCloser(strings.NewReader("")),
		}, nil
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("{}")),
	}, nil
}
