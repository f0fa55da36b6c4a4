package providers

import (
	"context"

	"bbmi-data-export/internal/domain/logos"
	"bbmi-data-export/internal/domain/sheet"
)

// SheetSource reads typed cells from a workbook. Row numbers are 1-based and
// columns are letters ("B", "AL"), the way the workbook authors address them.
type SheetSource interface {
	// ReadColumns returns endRow-startRow+1 rows, each holding one cell per
	// column in cols order.
	ReadColumns(sheetName string, cols []string, startRow, endRow int) ([][]sheet.Cell, error)
	// ReadRange reads a rectangular A1 range such as "AH8:AQ3000".
	ReadRange(sheetName, ref string) ([][]sheet.Cell, error)
	// LastRowBeforeGap returns the row before the first blank cell in col at
	// or after startRow, never past limit. It is startRow-1 when startRow is blank.
	LastRowBeforeGap(sheetName, col string, startRow, limit int) (int, error)
	// LastUsedRow returns the last row whose cell in col is non-blank, or 0.
	LastUsedRow(sheetName, col string) (int, error)
}

// TeamSearcher looks teams up by name in an upstream sports catalog.
type TeamSearcher interface {
	SearchTeams(ctx context.Context, name string) ([]logos.Team, error)
}

// LogoDownloader fetches logo image bytes.
type LogoDownloader interface {
	DownloadLogo(ctx context.Context, url string) ([]byte, error)
}
