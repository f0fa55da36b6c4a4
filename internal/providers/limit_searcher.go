package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"bbmi-data-export/internal/domain/logos"
)

const defaultInterval = 2 * time.Second

// rateLimitedSearcher enforces a minimum interval between upstream searches.
// The first call goes through immediately.
type rateLimitedSearcher struct {
	next     TeamSearcher
	interval time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	last  time.Time
	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// NewRateLimitedSearcher returns a TeamSearcher that spaces calls at least interval apart.
// Calls block until the interval elapses to avoid exceeding upstream quotas.
func NewRateLimitedSearcher(next TeamSearcher, interval time.Duration, logger *slog.Logger) TeamSearcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &rateLimitedSearcher{
		next:     next,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		after:    time.After,
	}
}

func (p *rateLimitedSearcher) SearchTeams(ctx context.Context, name string) ([]logos.Team, error) {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		}
		return nil, ErrProviderUnavailable
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() {
		if wait := p.interval - p.now().Sub(p.last); wait > 0 {
			select {
			case <-ctx.Done():
				logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited search canceled")
				return nil, ctx.Err()
			case <-p.after(wait):
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.last = p.now()
	logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited search", slog.String("team", name))
	return p.next.SearchTeams(ctx, name)
}
