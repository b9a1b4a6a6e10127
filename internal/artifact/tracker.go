package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pdf-validator/internal/domain"
)

// Tracker knows where page artifacts are written and how they are named:
// <dir>/<base><page><ext>, with pages numbered from 1.
type Tracker struct {
	dir    string
	ext    string
	logger domain.Logger
}

// NewTracker creates a Tracker for dir. The extension gets a leading dot if
// it has none.
func NewTracker(dir, ext string, logger domain.Logger) *Tracker {
	if dir == "" {
		dir = os.TempDir()
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Tracker{dir: dir, ext: ext, logger: logger}
}

// Dir returns the artifact directory.
func (t *Tracker) Dir() string {
	return t.dir
}

// Template returns the output pattern handed to the renderer; %d stands
// for the 1-based page number.
func (t *Tracker) Template(base string) string {
	return filepath.Join(t.dir, base+"%d"+t.ext)
}

// Path returns the artifact path of one page.
func (t *Tracker) Path(base string, page int) string {
	return filepath.Join(t.dir, fmt.Sprintf("%s%d%s", base, page, t.ext))
}

// ExpectedPaths lists one path per page, in page order.
func (t *Tracker) ExpectedPaths(base string, pages int) []string {
	if pages <= 0 {
		return nil
	}
	paths := make([]string, 0, pages)
	for page := 1; page <= pages; page++ {
		paths = append(paths, t.Path(base, page))
	}
	return paths
}

// VerifyAll reports whether every path exists. Each path is stat'ed
// anew since an external process creates them.
func (t *Tracker) VerifyAll(paths []string) bool {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			t.debug("Expected artifact missing", "path", path, "error", err)
			return false
		}
	}
	return true
}

// DeleteAll removes every path that exists and returns how many were
// removed. Failures are logged and never stop the remaining deletions.
func (t *Tracker) DeleteAll(paths []string) int {
	removed := 0
	for _, path := range paths {
		err := os.Remove(path)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, fs.ErrNotExist):
		default:
			if t.logger != nil {
				t.logger.Warn("Failed to delete artifact", "path", path, "error", err)
			}
		}
	}
	return removed
}

func (t *Tracker) debug(msg string, fields ...interface{}) {
	if t.logger != nil {
		t.logger.Debug(msg, fields...)
	}
}

// Set accumulates artifact paths and hands each of them to DeleteAll
// exactly once.
type Set struct {
	mu       sync.Mutex
	paths    []string
	released int
}

// Add appends paths to the set.
func (s *Set) Add(paths ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, paths...)
}

// Paths returns a copy of every path ever added.
func (s *Set) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

// Release deletes the paths added since the previous Release.
func (s *Set) Release(t *Tracker) int {
	s.mu.Lock()
	pending := s.paths[s.released:]
	s.released = len(s.paths)
	s.mu.Unlock()

	if len(pending) == 0 {
		return 0
	}
	return t.DeleteAll(pending)
}
