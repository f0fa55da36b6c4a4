package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestSetupDisabledReturnsRecorder(t *testing.T) {
	rec, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown function")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected noop shutdown, got %v", err)
	}
}

func TestSetupEnabledWritesTextfileOnShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics", "bbmi.prom")
	rec, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:      true,
		ServiceName:  "bbmi-data-export",
		TextfilePath: path,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rec.RecordExport("brackets", Export{RowsRead: 10, RecordsWritten: 8, Duration: time.Millisecond})
	rec.RecordRejected("brackets", "invalid_seed", 2)
	rec.RecordProviderAttempt("sportsdb", time.Millisecond, nil)
	rec.RecordRateLimit("sportsdb", time.Second)

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "export_records_written") {
		t.Fatalf("expected export counter in textfile, got:\n%s", data)
	}
}

func TestSetupPropagatesReaderError(t *testing.T) {
	orig := promReaderFactory
	t.Cleanup(func() { promReaderFactory = orig })
	promReaderFactory = func() (sdkmetric.Reader, prometheus.Gatherer, error) {
		return nil, nil, errors.New("registry failed")
	}

	if _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true}); err == nil {
		t.Fatal("expected reader error")
	}
}
