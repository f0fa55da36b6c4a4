package output

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// ManifestFile is the manifest's name at the writer root.
const ManifestFile = "export-manifest.json"

const manifestVersion = 1

// Manifest indexes every file the writer produced.
type Manifest struct {
	Version int                      `json:"version"`
	Files   map[string]ManifestEntry `json:"files"`
}

// ManifestEntry describes one exported file. UpdatedAt moves only when the content changes.
type ManifestEntry struct {
	Rows      int       `json:"rows"`
	SHA256    string    `json:"sha256"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version: manifestVersion,
		Files:   map[string]ManifestEntry{},
	}
}

// ReadManifest loads the manifest under root. A missing or unreadable manifest yields an empty one.
func ReadManifest(root string) (Manifest, error) {
	f, err := os.Open(filepath.Join(root, ManifestFile))
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	if m.Files == nil {
		m.Files = map[string]ManifestEntry{}
	}
	return m, nil
}

func (w *Writer) updateManifest(rel string, data []byte, rows int) error {
	m, _ := ReadManifest(w.root)
	key := filepath.ToSlash(rel)
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	if entry, ok := m.Files[key]; ok && entry.SHA256 == digest && entry.Rows == rows {
		return nil
	}
	m.Version = manifestVersion
	m.Files[key] = ManifestEntry{
		Rows:      rows,
		SHA256:    digest,
		UpdatedAt: w.now().UTC().Truncate(time.Second),
	}

	data, err := EncodeJSON(m)
	if err != nil {
		return err
	}
	_, err = WriteFileAtomic(filepath.Join(w.root, ManifestFile), data)
	return err
}
