package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"bbmi-data-export/internal/config"
	"bbmi-data-export/internal/logging"
	"bbmi-data-export/internal/metrics"
)

const (
	ExitSuccess = 0
	ExitError   = 1

	serviceName     = "bbmi-data-export"
	shutdownTimeout = 10 * time.Second
)

var metricsSetup = metrics.Setup

// app carries what every command needs once the root pre-run has finished.
type app struct {
	version string
	stdout  io.Writer
	stderr  io.Writer

	logLevel  string
	logFormat string
	dataDir   string

	cfg         config.Config
	logger      *slog.Logger
	metrics     *metrics.Recorder
	metricsStop func(context.Context) error
}

// NewRootCmd builds the command tree. Output goes to stdout and logs to stderr.
func NewRootCmd(version string, stdout, stderr io.Writer) *cobra.Command {
	a := &app{version: version, stdout: stdout, stderr: stderr}
	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bbmi-export",
		Short: "Export BBMI model workbooks to the site's JSON and CSV data files",
		Long: `Reads the WIAA and NCAA model workbooks and writes the data files the
website consumes. Also fetches NCAA team logos from TheSportsDB.`,
		Version:           a.version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (default $LOG_LEVEL or info)")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: text or json (default $LOG_FORMAT or text)")
	flags.StringVar(&a.dataDir, "data-dir", "", "Root directory for exported data files (default $DATA_DIR or src/data)")

	cmd.AddCommand(
		a.bracketsCmd(),
		a.wiaaRankingsCmd(),
		a.wiaaTeamCmd(),
		a.ncaaExportsCmd(),
		a.bubblewatchCmd(),
		a.rangeCmd(),
		a.ncaaScoresCmd(),
		a.logosCmd(),
		a.allCmd(),
	)
	return cmd
}

// setup loads configuration and builds the logger and metrics recorder.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.cfg = config.Load()
	if a.dataDir != "" {
		a.cfg = a.cfg.WithDataDir(config.ExpandHome(a.dataDir))
	}

	if a.cfg.Metrics.ServiceName == "" {
		a.cfg.Metrics.ServiceName = serviceName
	}

	a.logger = logging.NewLogger(logging.Config{
		Level:   firstNonEmpty(a.logLevel, a.cfg.LogLevel),
		Format:  firstNonEmpty(a.logFormat, a.cfg.LogFormat),
		Service: a.cfg.Metrics.ServiceName,
		Version: a.version,
		Output:  a.stderr,
	})
	rec, stop, err := metricsSetup(cmd.Context(), metrics.TelemetryConfig{
		Enabled:      a.cfg.Metrics.Enabled,
		ServiceName:  a.cfg.Metrics.ServiceName,
		TextfilePath: a.cfg.Metrics.TextfilePath,
		OtlpEndpoint: a.cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: a.cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		logging.Warn(a.logger, "metrics setup failed, continuing without telemetry", slog.Any("error", err))
		rec, stop = metrics.NewRecorder(), nil
	}
	a.metrics = rec
	a.metricsStop = stop

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// shutdown flushes metrics. It runs whether or not the command succeeded.
func (a *app) shutdown() {
	if a.metricsStop == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.metricsStop(ctx); err != nil {
		logging.Warn(a.logger, "metrics shutdown failed", slog.Any("error", err))
	}
	a.metricsStop = nil
}

func (a *app) printf(format string, args ...any) {
	if a.stdout != nil {
		fmt.Fprintf(a.stdout, format, args...)
	}
}

// Execute runs args against a fresh command tree and returns the exit code.
func Execute(ctx context.Context, version string, args []string, stdout, stderr io.Writer) int {
	a := &app{version: version, stdout: stdout, stderr: stderr}
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	a.shutdown()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(stderr, "Interrupted")
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return ExitError
	}
	return ExitSuccess
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
