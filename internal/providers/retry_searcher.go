package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"bbmi-data-export/internal/domain/logos"
	"bbmi-data-export/internal/metrics"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 5 * time.Second
	defaultName       = "provider"
)

// scheduledBackOff hands backoff.Retry the delay chosen by the last failed attempt.
type scheduledBackOff struct {
	next time.Duration
}

func (b *scheduledBackOff) NextBackOff() time.Duration { return b.next }
func (b *scheduledBackOff) Reset()                     { b.next = 0 }

// retryingSearcher retries rate-limited searches with a linearly growing delay.
// Any other error is returned immediately.
type retryingSearcher struct {
	inner        TeamSearcher
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxRetries   int
	retryDelay   time.Duration
	timer        backoff.Timer
	now          func() time.Time
}

// NewRetryingSearcher wraps inner with rate-limit retries. If maxRetries/retryDelay are <= 0, defaults are used.
func NewRetryingSearcher(inner TeamSearcher, logger *slog.Logger, rec *metrics.Recorder, providerName string, maxRetries int, retryDelay time.Duration) TeamSearcher {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	if providerName == "" {
		providerName = defaultName
	}
	return &retryingSearcher{
		inner:        inner,
		logger:       logger,
		metrics:      rec,
		providerName: providerName,
		maxRetries:   maxRetries,
		retryDelay:   retryDelay,
		now:          time.Now,
	}
}

func (r *retryingSearcher) SearchTeams(ctx context.Context, name string) ([]logos.Team, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	var (
		teams   []logos.Team
		attempt int
	)
	schedule := &scheduledBackOff{}
	policy := backoff.WithContext(backoff.WithMaxRetries(schedule, uint64(r.maxRetries)), ctx)

	op := func() error {
		attempt++
		start := r.now()
		res, err := r.inner.SearchTeams(ctx, name)
		r.metrics.RecordProviderAttempt(r.providerName, r.now().Sub(start), err)
		if err == nil {
			teams = res
			return nil
		}
		rlErr, ok := AsRateLimitError(err)
		if !ok {
			return backoff.Permanent(err)
		}
		r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		schedule.next = r.computeDelay(err, attempt)
		return err
	}

	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "rate limited, retrying",
			slog.String("team", name),
			slog.Int("attempt", attempt),
			slog.Int("max_retries", r.maxRetries),
			slog.Duration("delay", delay),
			slog.Any("err", err),
		)
	}

	if err := backoff.RetryNotifyWithTimer(op, policy, notify, r.timer); err != nil {
		if _, ok := AsRateLimitError(err); ok {
			logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "rate limit retries exhausted",
				slog.String("team", name),
				slog.Int("attempts", attempt),
			)
		}
		return nil, err
	}
	return teams, nil
}

// computeDelay waits retryDelay*attempt, or the server's Retry-After when that is longer.
func (r *retryingSearcher) computeDelay(err error, attempt int) time.Duration {
	delay := r.retryDelay * time.Duration(attempt)
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > delay {
		delay = rlErr.RetryAfter
	}
	return delay
}
