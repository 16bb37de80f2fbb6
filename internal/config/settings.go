// Package config loads the two configuration surfaces a pipeline
// invocation runs under: per-project settings (.styler.kdl — classpath
// entries, resource limits, worker count) and per-rule formatting config
// (.styler.toml — spec.md §4.5's ordered rule_configs list).
package config

import "github.com/jfmt/styler/internal/limits"

// ProjectSettings is the decoded shape of a .styler.kdl file, merged over
// compiled-in defaults.
type ProjectSettings struct {
	Root              string
	ClasspathEntries  []string
	ModulePathEntries []string
	Limits            limits.SecurityLimits
	Workers           int
}

// Defaults returns the settings used when no .styler.kdl is present.
func Defaults() ProjectSettings {
	return ProjectSettings{
		Limits: limits.Defaults(),
	}
}
