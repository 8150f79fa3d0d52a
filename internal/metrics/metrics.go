package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type reconcileStats struct {
	upserted  int
	skipped   int
	unmatched int
}

// Recorder keeps in-memory counters for source calls and reconciliation
// outcomes, and mirrors them to OpenTelemetry instruments when telemetry is
// enabled.
type Recorder struct {
	mu        sync.Mutex
	sources   map[string]*sourceStats
	reconcile map[string]*reconcileStats
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		sources:   make(map[string]*sourceStats),
		reconcile: make(map[string]*reconcileStats),
		otel:      otel,
	}
}

// RecordSourceAttempt increments counters for a source call and stores the
// last observed latency.
func (r *Recorder) RecordSourceAttempt(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureSourceLocked(source)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSourceAttempt(source, duration, err)
	}
}

// RecordRateLimit tracks that a source response hit a rate limit and stores
// the last observed cooldown.
func (r *Recorder) RecordRateLimit(source string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureSourceLocked(source)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(source, retryAfter)
	}
}

// RecordUpserts tracks records written during a reconciliation pass.
func (r *Recorder) RecordUpserts(entity string, count int) {
	if r == nil || count <= 0 {
		return
	}
	r.mu.Lock()
	r.ensureReconcileLocked(entity).upserted += count
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpserts(entity, count)
	}
}

// RecordSkips tracks per-record drops (unresolvable abbreviations,
// unparseable fields) during a reconciliation pass.
func (r *Recorder) RecordSkips(entity string, count int) {
	if r == nil || count <= 0 {
		return
	}
	r.mu.Lock()
	r.ensureReconcileLocked(entity).skipped += count
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSkips(entity, count)
	}
}

// RecordUnmatched tracks source records that matched no stored player.
func (r *Recorder) RecordUnmatched(entity string, count int) {
	if r == nil || count <= 0 {
		return
	}
	r.mu.Lock()
	r.ensureReconcileLocked(entity).unmatched += count
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUnmatched(entity, count)
	}
}

// SourceSnapshot is a point-in-time copy of a source's counters.
type SourceSnapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

// ReconcileSnapshot is a point-in-time copy of an entity's reconciliation
// counters.
type ReconcileSnapshot struct {
	Upserted  int
	Skipped   int
	Unmatched int
}

// SourceCalls returns the total attempts recorded for a source.
func (r *Recorder) SourceCalls(source string) int {
	return r.Snapshot(source).Calls
}

// SourceErrors returns the total failed attempts recorded for a source.
func (r *Recorder) SourceErrors(source string) int {
	return r.Snapshot(source).Errors
}

// RateLimitHits returns the number of rate limit events seen for a source.
func (r *Recorder) RateLimitHits(source string) int {
	return r.Snapshot(source).RateLimitHits
}

// Snapshot returns a copy of a source's counters.
func (r *Recorder) Snapshot(source string) SourceSnapshot {
	if r == nil {
		return SourceSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.sources[source]
	if !ok {
		return SourceSnapshot{}
	}
	return SourceSnapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// ReconcileCounts returns a copy of an entity's reconciliation counters.
func (r *Recorder) ReconcileCounts(entity string) ReconcileSnapshot {
	if r == nil {
		return ReconcileSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.reconcile[entity]
	if !ok {
		return ReconcileSnapshot{}
	}
	return ReconcileSnapshot{
		Upserted:  stats.upserted,
		Skipped:   stats.skipped,
		Unmatched: stats.unmatched,
	}
}

func (r *Recorder) ensureSourceLocked(source string) *sourceStats {
	stats, ok := r.sources[source]
	if !ok {
		stats = &sourceStats{}
		r.sources[source] = stats
	}
	return stats
}

func (r *Recorder) ensureReconcileLocked(entity string) *reconcileStats {
	stats, ok := r.reconcile[entity]
	if !ok {
		stats = &reconcileStats{}
		r.reconcile[entity] = stats
	}
	return stats
}
