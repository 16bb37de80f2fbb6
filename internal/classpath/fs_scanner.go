package classpath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
)

// FSScanner is the filesystem-backed ClasspathScanner. Grounded on the
// teacher's FileScanner (internal/indexing/pipeline.go): directories are
// walked lazily and results cached per root, invalidated by the root's own
// mtime rather than re-walked on every query.
type FSScanner struct {
	roots []string

	mu    sync.RWMutex
	cache map[uint64]*rootListing
}

type rootListing struct {
	rootModTime time.Time
	// relPath (slash-separated) -> absolute path, modtime
	files map[string]fileEntry
}

type fileEntry struct {
	absPath string
	modTime time.Time
}

// Create validates that every classpath/module-path entry exists up
// front — a missing entry is a configuration error, not a runtime miss
// (spec.md §4.6).
func Create(cfg Config) (*FSScanner, error) {
	roots := cfg.entries()
	for _, root := range roots {
		statPath := root
		if idx := strings.IndexByte(root, '*'); idx >= 0 {
			statPath = filepath.Dir(root[:idx])
		}
		info, err := os.Stat(statPath)
		if err != nil {
			return nil, fmt.Errorf("classpath entry %q does not exist: %w", root, err)
		}
		if !info.IsDir() && !strings.Contains(root, "*") {
			return nil, fmt.Errorf("classpath entry %q is not a directory", root)
		}
	}
	return &FSScanner{
		roots: roots,
		cache: make(map[uint64]*rootListing),
	}, nil
}

// FindClass implements Scanner.
func (s *FSScanner) FindClass(relPath string) (string, time.Time, bool) {
	relPath = filepath.ToSlash(relPath)
	for _, root := range s.roots {
		listing, err := s.listing(root)
		if err != nil {
			continue
		}
		if entry, ok := listing.files[relPath]; ok {
			return entry.absPath, entry.modTime, true
		}
	}
	return "", time.Time{}, false
}

// Close implements Scanner. FSScanner holds no external resources beyond
// its in-memory cache, so Close only clears it.
func (s *FSScanner) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[uint64]*rootListing)
	return nil
}

func (s *FSScanner) listing(root string) (*rootListing, error) {
	key := xxhash.Sum64String(root)

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()

	rootMod, statErr := rootModTime(root)
	if ok && statErr == nil && !rootMod.After(cached.rootModTime) {
		return cached, nil
	}

	fresh, err := scanRoot(root)
	if err != nil {
		return nil, err
	}
	fresh.rootModTime = rootMod

	s.mu.Lock()
	s.cache[key] = fresh
	s.mu.Unlock()
	return fresh, nil
}

func rootModTime(root string) (time.Time, error) {
	base := root
	if idx := strings.IndexByte(base, '*'); idx >= 0 {
		base = filepath.Dir(base[:idx])
	}
	info, err := os.Stat(base)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func scanRoot(root string) (*rootListing, error) {
	listing := &rootListing{files: make(map[string]fileEntry)}

	if strings.Contains(root, "*") {
		matches, err := doublestar.FilepathGlob(filepath.ToSlash(root))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if err := addClassFilesUnder(listing, m, m); err != nil {
				return nil, err
			}
		}
		return listing, nil
	}

	if err := addClassFilesUnder(listing, root, root); err != nil {
		return nil, err
	}
	return listing, nil
}

func addClassFilesUnder(listing *rootListing, base, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // tolerate unreadable subtrees, same as the teacher's scanner
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".class") {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			rel = path
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		listing.files[filepath.ToSlash(rel)] = fileEntry{absPath: path, modTime: info.ModTime()}
		return nil
	})
}
