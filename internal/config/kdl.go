package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/jfmt/styler/internal/limits"
)

// LoadProjectSettings reads <projectRoot>/.styler.kdl, merging it over
// Defaults(). A missing file is not an error: it returns Defaults() with
// Root set to projectRoot made absolute.
func LoadProjectSettings(projectRoot string) (ProjectSettings, error) {
	settings := Defaults()
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		absRoot = projectRoot
	}
	settings.Root = absRoot

	kdlPath := filepath.Join(projectRoot, ".styler.kdl")
	content, err := os.ReadFile(kdlPath)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return ProjectSettings{}, fmt.Errorf("read .styler.kdl: %w", err)
	}

	if err := parseKDL(string(content), &settings); err != nil {
		return ProjectSettings{}, err
	}
	return settings, nil
}

func parseKDL(content string, settings *ProjectSettings) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("parse .styler.kdl: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children {
				if s, ok := firstStringArg(cn); ok && nodeName(cn) == "root" {
					if filepath.IsAbs(s) {
						settings.Root = filepath.Clean(s)
					} else {
						settings.Root = filepath.Clean(filepath.Join(settings.Root, s))
					}
				}
			}
		case "classpath":
			for _, cn := range n.Children {
				if nodeName(cn) == "entry" {
					if s, ok := firstStringArg(cn); ok {
						settings.ClasspathEntries = append(settings.ClasspathEntries, s)
					}
				}
			}
		case "module-path":
			for _, cn := range n.Children {
				if nodeName(cn) == "entry" {
					if s, ok := firstStringArg(cn); ok {
						settings.ModulePathEntries = append(settings.ModulePathEntries, s)
					}
				}
			}
		case "limits":
			parseLimitsNode(n, &settings.Limits)
		case "performance":
			for _, cn := range n.Children {
				if nodeName(cn) == "workers" {
					if v, ok := firstIntArg(cn); ok {
						settings.Workers = v
					}
				}
			}
		}
	}
	return nil
}

func parseLimitsNode(n *document.Node, l *limits.SecurityLimits) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "max_source_size_bytes":
			if v, ok := firstIntArg(cn); ok {
				l.MaxSourceSizeBytes = int64(v)
			}
		case "max_token_count":
			if v, ok := firstIntArg(cn); ok {
				l.MaxTokenCount = v
			}
		case "max_arena_capacity":
			if v, ok := firstIntArg(cn); ok {
				l.MaxArenaCapacity = v
			}
		case "max_node_depth":
			if v, ok := firstIntArg(cn); ok {
				l.MaxNodeDepth = v
			}
		case "parsing_timeout_ms":
			if v, ok := firstIntArg(cn); ok {
				l.ParsingTimeout = time.Duration(v) * time.Millisecond
			}
		case "max_heap_usage_bytes":
			if v, ok := firstIntArg(cn); ok {
				l.MaxHeapUsageBytes = int64(v)
			}
		}
	}
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i, true
		}
	}
	return 0, false
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}
