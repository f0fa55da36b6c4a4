package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type jobStats struct {
	runs           int
	errors         int
	rowsRead       int
	rowsRejected   int
	recordsWritten int
	lastDuration   time.Duration
}

// Export describes one unit of export work: a division, a range, a file.
type Export struct {
	RowsRead       int
	RowsRejected   int
	RecordsWritten int
	Duration       time.Duration
	Err            error
}

// Recorder captures lightweight, in-memory metrics about export jobs and
// provider calls, mirrored into OpenTelemetry instruments when enabled.
type Recorder struct {
	mu        sync.Mutex
	providers map[string]*providerStats
	jobs      map[string]*jobStats
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		providers: make(map[string]*providerStats),
		jobs:      make(map[string]*jobStats),
		otel:      otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.providerStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.providerStatsLocked(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordExport tracks one unit of work for a job.
func (r *Recorder) RecordExport(job string, e Export) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.jobStatsLocked(job)
	stats.runs++
	stats.rowsRead += e.RowsRead
	stats.rowsRejected += e.RowsRejected
	stats.recordsWritten += e.RecordsWritten
	stats.lastDuration = e.Duration
	if e.Err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordExport(job, e)
	}
}

// RecordRejected counts rows a job dropped for reason.
func (r *Recorder) RecordRejected(job, reason string, n int) {
	if r == nil || r.otel == nil || n <= 0 {
		return
	}
	r.otel.recordRejected(job, reason, n)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.providers[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// JobSnapshot is a copy of the accumulated stats for a job.
type JobSnapshot struct {
	Runs           int
	Errors         int
	RowsRead       int
	RowsRejected   int
	RecordsWritten int
	LastDuration   time.Duration
}

func (r *Recorder) JobSnapshot(job string) JobSnapshot {
	if r == nil {
		return JobSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.jobs[job]
	if !ok || stats == nil {
		return JobSnapshot{}
	}
	return JobSnapshot{
		Runs:           stats.runs,
		Errors:         stats.errors,
		RowsRead:       stats.rowsRead,
		RowsRejected:   stats.rowsRejected,
		RecordsWritten: stats.recordsWritten,
		LastDuration:   stats.lastDuration,
	}
}

func (r *Recorder) providerStatsLocked(provider string) *providerStats {
	stats, ok := r.providers[provider]
	if !ok {
		stats = &providerStats{}
		r.providers[provider] = stats
	}
	return stats
}

func (r *Recorder) jobStatsLocked(job string) *jobStats {
	stats, ok := r.jobs[job]
	if !ok {
		stats = &jobStats{}
		r.jobs[job] = stats
	}
	return stats
}
