package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"bbmi-data-export/internal/domain/logos"
	"bbmi-data-export/internal/output"
)

// LoadMapping reads the team to logo mapping. A missing file is an empty mapping.
func LoadMapping(path string) (logos.Mapping, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return logos.Mapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read logo mapping: %w", err)
	}
	m := logos.Mapping{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode logo mapping %s: %w", path, err)
	}
	if m == nil {
		m = logos.Mapping{}
	}
	return m, nil
}

// SaveMapping writes m to path, reporting whether the file changed.
func SaveMapping(path string, m logos.Mapping) (bool, error) {
	if m == nil {
		m = logos.Mapping{}
	}
	data, err := output.EncodeJSON(m)
	if err != nil {
		return false, fmt.Errorf("encode logo mapping: %w", err)
	}
	changed, err := output.WriteFileAtomic(path, data)
	if err != nil {
		return false, fmt.Errorf("write logo mapping: %w", err)
	}
	return changed, nil
}
