package cli

import (
	"github.com/spf13/cobra"

	"bbmi-data-export/internal/app/logos"
	"bbmi-data-export/internal/config"
	"bbmi-data-export/internal/providers"
	"bbmi-data-export/internal/providers/sportsdb"
	"bbmi-data-export/internal/store"
)

// logoFlags override the configured logo paths.
type logoFlags struct {
	publicDir string
	rankings  string
	mapping   string
}

func (f *logoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.publicDir, "public-dir", "", "Site public directory holding logos/ncaa (default $PUBLIC_DIR or public)")
	cmd.Flags().StringVar(&f.rankings, "rankings", "", "Rankings JSON with team names (default <data-dir>/rankings/rankings.json)")
	cmd.Flags().StringVar(&f.mapping, "mapping", "", "Logo mapping file (default <data-dir>/ncaa-logo-mapping.json)")
}

func (a *app) logoConfig(f *logoFlags) config.LogosConfig {
	cfg := a.cfg.WithPublicDir(config.ExpandHome(f.publicDir)).Logos
	if f.rankings != "" {
		cfg.RankingsFile = config.ExpandHome(f.rankings)
	}
	if f.mapping != "" {
		cfg.MappingFile = config.ExpandHome(f.mapping)
	}
	return cfg
}

func (a *app) logosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logos",
		Short: "Fetch NCAA team logos and maintain the logo mapping",
	}
	cmd.AddCommand(a.logosFetchCmd(), a.logosUpdateMappingCmd())
	return cmd
}

func (a *app) logosFetchCmd() *cobra.Command {
	f := &logoFlags{}
	var cacheFile string
	var saveEvery int
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download missing team logos from TheSportsDB",
		Long: `Searches TheSportsDB for every team in the rankings file that has no logo
on disk yet and downloads its badge. Searches are spaced out to respect the
free API's rate limit; results are cached so interrupted runs resume cheaply.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.logoConfig(f)
			if cacheFile != "" {
				cfg.CacheFile = config.ExpandHome(cacheFile)
			}
			if saveEvery > 0 {
				cfg.SaveEvery = saveEvery
			}

			teams, err := logos.LoadTeamNames(cfg.RankingsFile)
			if err != nil {
				return err
			}
			cache, err := store.LoadSearchCache(cfg.CacheFile)
			if err != nil {
				return err
			}

			sdb := a.cfg.SportsDB
			client := sportsdb.NewClient(sportsdb.Config{
				BaseURL: sdb.BaseURL,
				APIKey:  sdb.APIKey,
				Timeout: sdb.Timeout,
			})
			searcher := providers.NewRetryingSearcher(
				providers.NewRateLimitedSearcher(client, sdb.RequestDelay, a.logger),
				a.logger, a.metrics, sportsdb.ProviderName, sdb.MaxRetries, sdb.RetryDelay,
			)

			fetcher := logos.NewFetcher(searcher, client, cache, logos.FetcherConfig{
				LogoDir:     cfg.Dir,
				MappingFile: cfg.MappingFile,
				SaveEvery:   cfg.SaveEvery,
			}, a.logger, a.metrics)
			stats, err := fetcher.Run(cmd.Context(), teams)
			a.printf("processed %d/%d: downloaded %d, already had %d, found %d, failed %d\n",
				stats.Processed, stats.Total, stats.Downloaded, stats.Skipped, stats.Found, stats.Failed)
			if remaining := stats.Remaining(); remaining > 0 {
				a.printf("%d teams remaining; run again to continue\n", remaining)
			}
			return err
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&cacheFile, "cache", "", "Search cache file (default $LOGO_CACHE_FILE or logo-fetch-cache.json)")
	cmd.Flags().IntVar(&saveEvery, "save-every", 0, "Save progress after this many teams (default $LOGO_SAVE_EVERY or 10)")
	return cmd
}

func (a *app) logosUpdateMappingCmd() *cobra.Command {
	f := &logoFlags{}
	cmd := &cobra.Command{
		Use:   "update-mapping",
		Short: "Add logos placed in the logo directory by hand to the mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.logoConfig(f)
			teams, err := logos.LoadTeamNames(cfg.RankingsFile)
			if err != nil {
				return err
			}
			res, err := logos.UpdateMapping(cmd.Context(), cfg.Dir, cfg.MappingFile, teams, a.logger, a.metrics)
			if err != nil {
				return err
			}
			if res.Saved {
				a.printf("mapping updated: %d added, %d updated, %d total\n", len(res.Added), len(res.Updated), res.Mapped)
			} else {
				a.printf("mapping already up to date (%d entries)\n", res.Mapped)
			}
			for _, team := range res.Added {
				a.printf("  + %s\n", team)
			}
			for _, team := range res.Updated {
				a.printf("  ~ %s\n", team)
			}
			for _, file := range res.Orphaned {
				a.printf("  ? %s matches no team\n", file)
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
