// Package logos downloads team logos from TheSportsDB and maintains the
// team to logo mapping the front-end reads.
package logos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	domain "bbmi-data-export/internal/domain/logos"
	"bbmi-data-export/internal/logging"
	"bbmi-data-export/internal/metrics"
	"bbmi-data-export/internal/output"
	"bbmi-data-export/internal/providers"
	"bbmi-data-export/internal/store"
)

const (
	// FetchJobName labels fetch runs in logs and metrics.
	FetchJobName = "logos-fetch"
	// URLDir is where the site serves logo files from.
	URLDir = "logos/ncaa"

	defaultSaveEvery = 10

	reasonNotFound       = "not_found"
	reasonNotBasketball  = "not_basketball"
	reasonNoLogoURL      = "no_logo_url"
	reasonDownloadFailed = "download_failed"
)

// FetcherConfig locates the files a fetch run reads and writes.
type FetcherConfig struct {
	LogoDir     string
	MappingFile string
	SaveEvery   int
}

// Fetcher walks a team list and downloads any logo not already on disk.
type Fetcher struct {
	searcher   providers.TeamSearcher
	downloader providers.LogoDownloader
	cache      *store.SearchCache
	cfg        FetcherConfig
	logger     *slog.Logger
	metrics    *metrics.Recorder
	now        func() time.Time
}

// NewFetcher constructs a Fetcher. searcher should already carry retry and
// rate limiting; cache answers repeat lookups without calling it.
func NewFetcher(searcher providers.TeamSearcher, downloader providers.LogoDownloader, cache *store.SearchCache, cfg FetcherConfig, logger *slog.Logger, recorder *metrics.Recorder) *Fetcher {
	if cfg.SaveEvery <= 0 {
		cfg.SaveEvery = defaultSaveEvery
	}
	if cache == nil {
		cache = store.NewSearchCache("")
	}
	return &Fetcher{
		searcher:   searcher,
		downloader: downloader,
		cache:      cache,
		cfg:        cfg,
		logger:     logger,
		metrics:    recorder,
		now:        time.Now,
	}
}

// outcome is what happened to one team.
type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeDownloaded
	outcomeFailed
)

// Run processes teams in order. Progress is saved every SaveEvery teams and
// again before returning, including when ctx is canceled.
func (f *Fetcher) Run(ctx context.Context, teams []string) (domain.Stats, error) {
	start := f.now()
	logger := logging.FromContext(ctx, f.logger)
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldJob, FetchJobName))
	}

	stats := domain.Stats{Total: len(teams)}
	mapping, err := store.LoadMapping(f.cfg.MappingFile)
	if err != nil {
		return stats, err
	}
	logging.Info(logger, "logo fetch started",
		slog.Int(logging.FieldCount, len(teams)),
		slog.Int("cached", f.cache.Len()),
		slog.Int("mapped", len(mapping)),
	)
	if err := os.MkdirAll(f.cfg.LogoDir, 0o755); err != nil {
		return stats, fmt.Errorf("create logo dir: %w", err)
	}

	rejected := map[string]int{}
	var runErr error
	for i, team := range teams {
		if err := ctx.Err(); err != nil {
			logging.Warn(logger, "logo fetch interrupted", slog.Int("processed", stats.Processed), slog.Int("remaining", stats.Remaining()))
			runErr = err
			break
		}
		teamLogger := logger
		if teamLogger != nil {
			teamLogger = teamLogger.With(slog.String(logging.FieldTeam, team))
		}

		res, reason, found := f.processTeam(ctx, teamLogger, team, mapping)
		if found {
			stats.Found++
		}
		switch res {
		case outcomeSkipped:
			stats.Skipped++
		case outcomeDownloaded:
			stats.Downloaded++
		case outcomeFailed:
			stats.Failed++
			rejected[reason]++
		}
		stats.Processed++

		if (i+1)%f.cfg.SaveEvery == 0 {
			if err := f.save(mapping); err != nil {
				logging.Error(logger, "save progress failed", err)
			} else {
				logging.Info(logger, "progress saved", slog.Int("processed", stats.Processed), slog.Int("total", stats.Total))
			}
		}
	}

	if err := f.save(mapping); err != nil {
		runErr = errors.Join(runErr, err)
	}

	elapsed := f.now().Sub(start)
	f.metrics.RecordExport(FetchJobName, metrics.Export{
		RowsRead:       stats.Processed,
		RowsRejected:   stats.Failed,
		RecordsWritten: stats.Downloaded,
		Duration:       elapsed,
		Err:            runErr,
	})
	for reason, n := range rejected {
		f.metrics.RecordRejected(FetchJobName, reason, n)
	}
	logging.Info(logger, "logo fetch summary",
		slog.Int("total", stats.Total),
		slog.Int("processed", stats.Processed),
		slog.Int("downloaded", stats.Downloaded),
		slog.Int("skipped", stats.Skipped),
		slog.Int("found", stats.Found),
		slog.Int("failed", stats.Failed),
		slog.Int("remaining", stats.Remaining()),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return stats, runErr
}

func (f *Fetcher) processTeam(ctx context.Context, logger *slog.Logger, team string, mapping domain.Mapping) (outcome, string, bool) {
	filename := domain.LogoFilename(team)
	target := filepath.Join(f.cfg.LogoDir, filename)

	if _, err := os.Stat(target); err == nil {
		logging.Debug(logger, "logo already present", slog.String(logging.FieldPath, target))
		entry := domain.NewEntry(URLDir, filename, mapping[team].SportsDBID)
		mapping[team] = entry
		return outcomeSkipped, "", false
	}

	results, err := f.search(ctx, logger, team)
	if err != nil || len(results) == 0 {
		logging.Warn(logger, "team not found", slog.Any("error", err))
		return outcomeFailed, reasonNotFound, false
	}
	match, ok := domain.PickBasketball(results)
	if !ok {
		logging.Warn(logger, "no basketball team in results", slog.Int(logging.FieldCount, len(results)))
		return outcomeFailed, reasonNotBasketball, false
	}
	url := match.LogoURL()
	if url == "" {
		logging.Warn(logger, "team has no logo url", slog.String("sportsdb_id", match.ID))
		return outcomeFailed, reasonNoLogoURL, true
	}

	if f.downloader == nil {
		logging.Warn(logger, "logo download failed", slog.Any("error", providers.ErrProviderUnavailable))
		return outcomeFailed, reasonDownloadFailed, true
	}
	data, err := f.downloader.DownloadLogo(ctx, url)
	if err == nil {
		_, err = output.WriteFileAtomic(target, data)
	}
	if err != nil {
		logging.Warn(logger, "logo download failed", slog.Any("error", err))
		return outcomeFailed, reasonDownloadFailed, true
	}

	mapping[team] = domain.NewEntry(URLDir, filename, match.ID)
	logging.Info(logger, "logo downloaded", slog.String(logging.FieldPath, target))
	return outcomeDownloaded, "", true
}

// search answers from the cache when possible. Failed lookups are cached as
// misses so later runs do not retry them, except when ctx ended the lookup.
func (f *Fetcher) search(ctx context.Context, logger *slog.Logger, team string) ([]domain.Team, error) {
	if teams, ok := f.cache.Get(team); ok {
		logging.Debug(logger, "using cached search result")
		return teams, nil
	}
	if f.searcher == nil {
		return nil, providers.ErrProviderUnavailable
	}
	teams, err := f.searcher.SearchTeams(ctx, team)
	if err != nil {
		if ctx.Err() == nil {
			f.cache.SetMiss(team)
		}
		return nil, err
	}
	f.cache.Set(team, teams)
	return teams, nil
}

func (f *Fetcher) save(mapping domain.Mapping) error {
	var errs []error
	if _, err := f.cache.Save(); err != nil {
		errs = append(errs, err)
	}
	if f.cfg.MappingFile != "" {
		if _, err := store.SaveMapping(f.cfg.MappingFile, mapping); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
