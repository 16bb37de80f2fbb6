package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/goleak"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfmt/styler/internal/report"
	"github.com/jfmt/styler/internal/rules"
	"github.com/jfmt/styler/internal/rules/importorganizer"
	"github.com/jfmt/styler/internal/stage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeJava(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Foo.java")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func buildPipeline(t *testing.T, validationOnly bool, rs ...rules.Rule) *FileProcessingPipeline {
	t.Helper()
	b := NewBuilder().WithValidationOnly(validationOnly).WithRules(rs...).WithOutputFormat(report.FormatHuman)
	p, err := b.Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestProcessFile_EmptySourceFails(t *testing.T) {
	path := writeJava(t, "")
	p := buildPipeline(t, true)
	result := p.ProcessFile(context.Background(), path)
	assert.False(t, result.OverallSuccess)
	assert.Contains(t, result.FailureMessage(), "valid Java")
	result.Release()
}

func TestProcessFile_ValidFileNoRules(t *testing.T) {
	path := writeJava(t, "package com.example;\n\nclass Foo {}\n")
	p := buildPipeline(t, true)
	result := p.ProcessFile(context.Background(), path)
	require.True(t, result.OverallSuccess)
	assert.Contains(t, result.RenderedOutput(), "No errors found")
	result.Release()
}

func TestProcessFile_UnsortedImportsValidationOnly(t *testing.T) {
	path := writeJava(t, "package com.example;\n\nimport java.util.List;\nimport java.io.File;\n\nclass Foo {}\n")
	p := buildPipeline(t, true, importorganizer.New())
	result := p.ProcessFile(context.Background(), path)
	require.True(t, result.OverallSuccess)
	assert.Contains(t, result.RenderedOutput(), "import-organizer")
	result.Release()
}

func TestProcessFile_UnsortedImportsFixMode(t *testing.T) {
	path := writeJava(t, "package com.example;\n\nimport java.util.List;\nimport java.io.File;\n\nclass Foo {}\n")
	p := buildPipeline(t, false, importorganizer.New())
	result := p.ProcessFile(context.Background(), path)
	require.True(t, result.OverallSuccess)
	result.Release()
}

func TestProcessFile_FileNotFound(t *testing.T) {
	p := buildPipeline(t, true)
	result := p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "Missing.java"))
	assert.False(t, result.OverallSuccess)
	assert.Contains(t, result.FailureMessage(), "not found")
	result.Release()
}

func TestProcessFiles_RunsEachFileOnAWorker(t *testing.T) {
	paths := []string{
		writeJava(t, "package a; class A {}\n"),
		writeJava(t, "package b; class B {}\n"),
		writeJava(t, "package c; class C {}\n"),
	}
	p := buildPipeline(t, true)
	results, err := p.ProcessFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.OverallSuccess)
		r.Release()
	}
}

func TestValidateCompilation_SkipsPackageInfo(t *testing.T) {
	dir := t.TempDir()
	pkgInfo := filepath.Join(dir, "package-info.java")
	require.NoError(t, os.WriteFile(pkgInfo, []byte("package com.example;\n"), 0o644))

	p := buildPipeline(t, true)
	result, err := p.ValidateCompilation([]string{pkgInfo})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestCarryForward_SuccessUpdatesPayload(t *testing.T) {
	prev := FormatResult{FinalSource: "old"}
	next := FormatResult{FinalSource: "new"}
	got := carryForward(prev, stage.Success(next))
	assert.Equal(t, next, got)
}

func TestCarryForward_SkippedKeepsPreviousPayload(t *testing.T) {
	prev := FormatResult{FinalSource: "old"}
	got := carryForward(prev, stage.Skipped("no rules configured"))
	assert.Equal(t, prev, got)
}

func TestValidateCompilation_MissingClassFile(t *testing.T) {
	path := writeJava(t, "package com.example;\n\nclass Foo {}\n")
	p := buildPipeline(t, true)
	result, err := p.ValidateCompilation([]string{path})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.MissingClasses, "com.example.Foo")
}
