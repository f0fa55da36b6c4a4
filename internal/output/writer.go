// Package output writes export files atomically and records them in a manifest.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"
)

// Writer persists export files under a root directory. Files whose bytes
// are unchanged are left alone, so reruns on the same input touch nothing.
type Writer struct {
	root     string
	manifest bool
	now      func() time.Time

	mu sync.Mutex
}

// Option customizes a Writer.
type Option func(*Writer)

// WithoutManifest disables export-manifest.json bookkeeping.
func WithoutManifest() Option {
	return func(w *Writer) { w.manifest = false }
}

// WithClock overrides the time source used for manifest timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWriter constructs a writer rooted at root.
func NewWriter(root string, opts ...Option) *Writer {
	w := &Writer{
		root:     root,
		manifest: true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Result describes one written file.
type Result struct {
	Path    string
	Rows    int
	Changed bool
}

// Root exposes the writer root path.
func (w *Writer) Root() string {
	if w == nil {
		return ""
	}
	return w.root
}

// Path resolves rel against the writer root.
func (w *Writer) Path(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

// WriteJSON writes payload as 2-space indented UTF-8 JSON with a trailing newline.
func (w *Writer) WriteJSON(rel string, payload any) (Result, error) {
	data, err := EncodeJSON(payload)
	if err != nil {
		return Result{}, fmt.Errorf("encode %s: %w", rel, err)
	}
	return w.write(rel, data, countRows(payload))
}

// WriteCSV writes an optional header followed by rows.
func (w *Writer) WriteCSV(rel string, header []string, rows [][]string) (Result, error) {
	data, err := EncodeCSV(header, rows)
	if err != nil {
		return Result{}, fmt.Errorf("encode %s: %w", rel, err)
	}
	return w.write(rel, data, len(rows))
}

func (w *Writer) write(rel string, data []byte, rows int) (Result, error) {
	if w == nil {
		return Result{}, errors.New("output writer not configured")
	}
	if rel == "" {
		return Result{}, errors.New("output path required")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	target := w.Path(rel)
	res := Result{Path: target, Rows: rows}
	changed, err := WriteFileAtomic(target, data)
	if err != nil {
		return res, err
	}
	res.Changed = changed

	if w.manifest {
		if err := w.updateManifest(rel, data, rows); err != nil {
			return res, fmt.Errorf("update manifest: %w", err)
		}
	}
	return res, nil
}

// WriteFileAtomic writes data to path through a temp file and rename, creating
// parent directories. It reports false without writing when the file already
// holds exactly data.
func WriteFileAtomic(path string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, err
	}
	return true, nil
}

// EncodeJSON renders payload the way every export file is written:
// 2-space indent, no HTML escaping, trailing newline.
func EncodeJSON(payload any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeCSV renders header (when non-empty) and rows as CSV.
func EncodeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if len(header) > 0 {
		if err := cw.Write(header); err != nil {
			return nil, err
		}
	}
	if err := cw.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func countRows(payload any) int {
	v := reflect.ValueOf(payload)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len()
	case reflect.Invalid:
		return 0
	default:
		return 1
	}
}
