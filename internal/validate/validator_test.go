package validate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScanner struct {
	classes map[string]time.Time
}

func (f *fakeScanner) FindClass(relPath string) (string, time.Time, bool) {
	mt, ok := f.classes[relPath]
	return relPath, mt, ok
}

func (f *fakeScanner) Close() error { return nil }

func writeSource(t *testing.T, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Foo.java")
	require.NoError(t, os.WriteFile(path, []byte("package com.example; class Foo {}"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestValidate_Valid(t *testing.T) {
	now := time.Now()
	source := writeSource(t, now.Add(-time.Hour))
	scanner := &fakeScanner{classes: map[string]time.Time{
		"com/example/Foo.class": now,
	}}
	v := New(scanner)

	result, err := v.Validate(source, "com.example", []string{"Foo"})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.MissingClasses)
	assert.Empty(t, result.StaleClasses)
}

func TestValidate_Missing(t *testing.T) {
	source := writeSource(t, time.Now())
	scanner := &fakeScanner{classes: map[string]time.Time{}}
	v := New(scanner)

	result, err := v.Validate(source, "com.example", []string{"Foo"})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"com.example.Foo"}, result.MissingClasses)
	assert.Empty(t, result.StaleClasses)
	assert.Contains(t, result.ErrorMessage(), "com.example.Foo")
	assert.Contains(t, result.ErrorMessage(), "compile")
}

func TestValidate_Stale(t *testing.T) {
	now := time.Now()
	source := writeSource(t, now)
	scanner := &fakeScanner{classes: map[string]time.Time{
		"com/example/Foo.class": now.Add(-time.Hour),
	}}
	v := New(scanner)

	result, err := v.Validate(source, "com.example", []string{"Foo"})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"com.example.Foo"}, result.StaleClasses)
}

func TestValidate_EmptyPackage(t *testing.T) {
	source := writeSource(t, time.Now())
	scanner := &fakeScanner{classes: map[string]time.Time{
		"Foo.class": time.Now(),
	}}
	v := New(scanner)

	result, err := v.Validate(source, "", []string{"Foo"})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestErrorMessageAlwaysHasCompileAndPath(t *testing.T) {
	result := Result{Valid: false, MissingClasses: []string{"a.B"}, SourceFile: "a/B.java"}
	msg := result.ErrorMessage()
	assert.Contains(t, msg, "a/B.java")
	assert.Contains(t, msg, "compile")
}
