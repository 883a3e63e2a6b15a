// Package upload persists uploaded spreadsheet files to a local directory.
// Files are written once and never deleted by this system; lifecycle is
// managed externally.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/excelaipro/excelaipro/internal/schema"
)

// Store writes uploads under a single base directory.
type Store struct {
	dir string

	// now is swappable for tests.
	now func() time.Time
}

func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the base upload directory.
func (s *Store) Dir() string { return s.dir }

// Save writes one uploaded file under a collision-free name of the form
// {unix-ms}-{original name} and returns its immutable reference.
func (s *Store) Save(originalName string, r io.Reader) (schema.FileReference, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return schema.FileReference{}, fmt.Errorf("create upload dir: %w", err)
	}

	name := sanitizeName(originalName)
	filename := fmt.Sprintf("%d-%s", s.now().UnixMilli(), name)
	path := filepath.Join(s.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return schema.FileReference{}, fmt.Errorf("create %s: %w", filename, err)
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return schema.FileReference{}, fmt.Errorf("write %s: %w", filename, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return schema.FileReference{
		OriginalName: name,
		Filename:     filename,
		Filepath:     abs,
		Size:         size,
	}, nil
}

// Usage reports the current file count and total bytes under the store.
// Used by the maintenance usage report; it never modifies anything.
func (s *Store) Usage() (count int, bytes int64, err error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		count++
		bytes += info.Size()
	}
	return count, bytes, nil
}

// sanitizeName reduces a client-supplied filename to a safe base name.
func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || name == "/" || name == "" {
		return "upload"
	}
	return name
}
