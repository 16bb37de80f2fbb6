package classpath

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCreateRejectsMissingEntry(t *testing.T) {
	if _, err := Create(Config{ClasspathEntries: []string{"/no/such/directory-xyz"}}); err == nil {
		t.Fatal("expected error for nonexistent classpath entry")
	}
}

func TestFindClassHitAndMiss(t *testing.T) {
	dir := t.TempDir()
	classDir := filepath.Join(dir, "com", "example")
	if err := os.MkdirAll(classDir, 0o755); err != nil {
		t.Fatal(err)
	}
	classFile := filepath.Join(classDir, "Foo.class")
	if err := os.WriteFile(classFile, []byte("cafebabe"), 0o644); err != nil {
		t.Fatal(err)
	}

	scanner, err := Create(Config{ClasspathEntries: []string{dir}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer scanner.Close()

	abs, modTime, ok := scanner.FindClass("com/example/Foo.class")
	if !ok {
		t.Fatal("expected FindClass to find Foo.class")
	}
	if abs != classFile {
		t.Fatalf("abs = %q, want %q", abs, classFile)
	}
	if modTime.IsZero() {
		t.Fatal("expected non-zero modtime")
	}

	if _, _, ok := scanner.FindClass("com/example/Bar.class"); ok {
		t.Fatal("expected FindClass to miss for a class file that doesn't exist")
	}
}

func TestFindClassRefreshesOnRootChange(t *testing.T) {
	dir := t.TempDir()
	scanner, err := Create(Config{ClasspathEntries: []string{dir}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer scanner.Close()

	if _, _, ok := scanner.FindClass("com/example/Foo.class"); ok {
		t.Fatal("expected miss before file exists")
	}

	classDir := filepath.Join(dir, "com", "example")
	if err := os.MkdirAll(classDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(classDir, "Foo.class"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Force the directory mtime forward so the cache invalidates even on
	// filesystems with coarse mtime resolution.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(dir, future, future); err != nil {
		t.Fatal(err)
	}

	if _, _, ok := scanner.FindClass("com/example/Foo.class"); !ok {
		t.Fatal("expected FindClass to see the newly created file after root mtime advanced")
	}
}
