package logos

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	domain "bbmi-data-export/internal/domain/logos"
	"bbmi-data-export/internal/logging"
	"bbmi-data-export/internal/metrics"
	"bbmi-data-export/internal/store"
)

// UpdateJobName labels mapping updates in logs and metrics.
const UpdateJobName = "logos-update-mapping"

// UpdateResult reports what a mapping update found and changed.
type UpdateResult struct {
	Teams    int
	Logos    int
	Mapped   int
	Added    []string
	Updated  []string
	Orphaned []string
	Saved    bool
}

// UpdateMapping reconciles the mapping file with the .png files in logoDir.
// A logo whose name matches a team is added to the mapping, or has its entry
// corrected when the file name differs. Files that match no team are
// reported as orphans. The mapping is written only when something changed.
func UpdateMapping(ctx context.Context, logoDir, mappingFile string, teams []string, logger *slog.Logger, recorder *metrics.Recorder) (UpdateResult, error) {
	logger = logging.FromContext(ctx, logger)
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldJob, UpdateJobName))
	}
	var res UpdateResult
	res.Teams = len(teams)

	files, err := listLogos(logoDir)
	if err != nil {
		recorder.RecordExport(UpdateJobName, metrics.Export{Err: err})
		return res, err
	}
	res.Logos = len(files)

	mapping, err := store.LoadMapping(mappingFile)
	if err != nil {
		recorder.RecordExport(UpdateJobName, metrics.Export{Err: err})
		return res, err
	}

	byFile := make(map[string]string, len(teams))
	for _, team := range teams {
		byFile[domain.LogoFilename(team)] = team
	}

	for _, file := range files {
		team, ok := byFile[file]
		if !ok {
			res.Orphaned = append(res.Orphaned, file)
			continue
		}
		entry, exists := mapping[team]
		switch {
		case !exists:
			mapping[team] = domain.NewEntry(URLDir, file, "")
			res.Added = append(res.Added, team)
		case entry.Filename != file:
			mapping[team] = domain.NewEntry(URLDir, file, entry.SportsDBID)
			res.Updated = append(res.Updated, team)
		}
	}
	sort.Strings(res.Added)
	sort.Strings(res.Updated)
	res.Mapped = len(mapping)

	if len(res.Added) > 0 || len(res.Updated) > 0 {
		if _, err := store.SaveMapping(mappingFile, mapping); err != nil {
			recorder.RecordExport(UpdateJobName, metrics.Export{Err: err})
			return res, err
		}
		res.Saved = true
	}

	recorder.RecordExport(UpdateJobName, metrics.Export{
		RowsRead:       res.Logos,
		RowsRejected:   len(res.Orphaned),
		RecordsWritten: len(res.Added) + len(res.Updated),
	})
	logging.Info(logger, "logo mapping summary",
		slog.Int("teams", res.Teams),
		slog.Int("logos", res.Logos),
		slog.Int("mapped", res.Mapped),
		slog.Int("added", len(res.Added)),
		slog.Int("updated", len(res.Updated)),
		slog.Bool("saved", res.Saved),
	)
	if len(res.Orphaned) > 0 {
		logging.Warn(logger, "logo files match no team",
			slog.Int(logging.FieldCount, len(res.Orphaned)),
			slog.String("files", strings.Join(res.Orphaned, ",")),
		)
	}
	return res, nil
}

// listLogos returns the sorted .png file names directly inside dir.
func listLogos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read logo dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".png" {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}
