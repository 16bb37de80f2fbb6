// Package classpath defines the ClasspathScanner contract (spec.md §4.6,
// C12) and a filesystem-backed implementation used by the compilation
// validator and, indirectly, the import-organizer rule.
package classpath

import "time"

// Scanner enumerates class files across a configured set of classpath and
// module-path entries and answers existence/staleness queries. It must be
// safe for concurrent read-only use once constructed (spec.md §5: "the
// shared ClasspathScanner is the only cross-file resource and must be safe
// for concurrent read-only queries").
type Scanner interface {
	// FindClass returns the absolute path and modification time of the
	// first class file matching relPath (e.g. "com/example/Foo.class")
	// across the configured entries, in entry order. ok is false if no
	// entry has a matching file.
	FindClass(relPath string) (absPath string, modTime time.Time, ok bool)

	// Close releases any resources (cache handles) held by the scanner.
	Close() error
}

// Config describes the classpath/module-path entries a Scanner searches,
// in order.
type Config struct {
	ClasspathEntries  []string
	ModulePathEntries []string
}

// entries returns the combined, ordered list of filesystem roots this
// config searches: classpath entries first, then module-path entries.
func (c Config) entries() []string {
	out := make([]string, 0, len(c.ClasspathEntries)+len(c.ModulePathEntries))
	out = append(out, c.ClasspathEntries...)
	out = append(out, c.ModulePathEntries...)
	return out
}
