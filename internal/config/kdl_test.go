package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKDL(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".styler.kdl"), []byte(content), 0o644))
	return dir
}

func TestLoadProjectSettingsMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	s, err := LoadProjectSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Root)
	assert.Equal(t, 100, s.Limits.MaxNodeDepth)
}

func TestLoadProjectSettingsParsesClasspathAndLimits(t *testing.T) {
	dir := writeKDL(t, `
classpath {
  entry "build/classes"
  entry "lib"
}
module-path {
  entry "build/modules"
}
limits {
  max_node_depth 50
  parsing_timeout_ms 5000
}
performance {
  workers 3
}
`)
	s, err := LoadProjectSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"build/classes", "lib"}, s.ClasspathEntries)
	assert.Equal(t, []string{"build/modules"}, s.ModulePathEntries)
	assert.Equal(t, 50, s.Limits.MaxNodeDepth)
	assert.Equal(t, 3, s.Workers)
}

func TestLoadProjectSettingsProjectRootRelative(t *testing.T) {
	dir := writeKDL(t, `
project {
  root "subdir"
}
`)
	s, err := LoadProjectSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "subdir"), s.Root)
}
