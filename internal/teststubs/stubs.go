package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"bbmi-data-export/internal/domain/logos"
	"bbmi-data-export/internal/domain/sheet"
	"bbmi-data-export/internal/output"
)

// StubSearcher is a test double for providers.TeamSearcher.
type StubSearcher struct {
	Results map[string][]logos.Team
	Errs    map[string]error // per-name errors, checked before Err
	Err     error
	Calls   atomic.Int32
	OnCall  func(name string)

	mu    sync.Mutex
	names []string
}

// SearchTeams returns the configured results for name while tracking calls.
func (s *StubSearcher) SearchTeams(ctx context.Context, name string) ([]logos.Team, error) {
	_ = ctx
	s.Calls.Add(1)
	s.mu.Lock()
	s.names = append(s.names, name)
	s.mu.Unlock()
	if s.OnCall != nil {
		s.OnCall(name)
	}
	if err := s.Errs[name]; err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Results[name], nil
}

// Names returns the searched names in call order.
func (s *StubSearcher) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

// StubDownloader is a test double for providers.LogoDownloader keyed by URL.
type StubDownloader struct {
	Bodies map[string][]byte
}

// DownloadLogo returns the body registered for url or a not-found error.
func (d *StubDownloader) DownloadLogo(ctx context.Context, url string) ([]byte, error) {
	_ = ctx
	body, ok := d.Bodies[url]
	if !ok {
		return nil, errors.New("logo not found")
	}
	return body, nil
}

// FailingSource is a providers.SheetSource whose every read returns Err.
type FailingSource struct {
	Err error
}

func (f FailingSource) ReadColumns(string, []string, int, int) ([][]sheet.Cell, error) {
	return nil, f.Err
}

func (f FailingSource) ReadRange(string, string) ([][]sheet.Cell, error) {
	return nil, f.Err
}

func (f FailingSource) LastRowBeforeGap(string, string, int, int) (int, error) {
	return 0, f.Err
}

func (f FailingSource) LastUsedRow(string, string) (int, error) {
	return 0, f.Err
}

// StubWriter records export writes instead of touching disk.
type StubWriter struct {
	JSON map[string]any
	CSV  map[string][][]string // header first when present
	Err  error
}

// WriteJSON records payload under rel.
func (w *StubWriter) WriteJSON(rel string, payload any) (output.Result, error) {
	if w.Err != nil {
		return output.Result{}, w.Err
	}
	if w.JSON == nil {
		w.JSON = make(map[string]any)
	}
	w.JSON[rel] = payload
	return output.Result{Path: rel, Changed: true}, nil
}

// WriteCSV records header and rows under rel.
func (w *StubWriter) WriteCSV(rel string, header []string, rows [][]string) (output.Result, error) {
	if w.Err != nil {
		return output.Result{}, w.Err
	}
	if w.CSV == nil {
		w.CSV = make(map[string][][]string)
	}
	var all [][]string
	if len(header) > 0 {
		all = append(all, header)
	}
	w.CSV[rel] = append(all, rows...)
	return output.Result{Path: rel, Rows: len(rows), Changed: true}, nil
}
