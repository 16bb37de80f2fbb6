package pipeline

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/jfmt/styler/internal/validate"
)

// packagePattern and typePattern are the "conservative regex over the
// source text" spec.md §4.4 calls for: good enough to locate a top-level
// package declaration and type declarations without a full parse.
var (
	packagePattern = regexp.MustCompile(`(?m)^\s*package\s+([\w.]+)\s*;`)
	typePattern    = regexp.MustCompile(`(?m)^\s*(?:public\s+|final\s+|abstract\s+|sealed\s+|non-sealed\s+)*(?:class|interface|enum|record|@interface)\s+(\w+)`)
)

func extractPackageAndTypes(source string) (string, []string) {
	pkg := ""
	if m := packagePattern.FindStringSubmatch(source); m != nil {
		pkg = m[1]
	}
	var types []string
	for _, m := range typePattern.FindAllStringSubmatch(source, -1) {
		types = append(types, m[1])
	}
	return pkg, types
}

// isSkippedForCompilationCheck reports whether a file name never yields
// its own class file (spec.md §4.4).
func isSkippedForCompilationCheck(path string) bool {
	base := filepath.Base(path)
	return base == "package-info.java" || base == "module-info.java"
}

// ValidateCompilation runs the pre-flight compilation check across every
// path, skipping package-info.java/module-info.java, and aggregates all
// per-file results into a single Result (spec.md §4.4,
// "results across files are aggregated into one Invalid with concatenated
// lists").
func (p *FileProcessingPipeline) ValidateCompilation(paths []string) (validate.Result, error) {
	aggregate := validate.Result{Valid: true}
	for _, path := range paths {
		if isSkippedForCompilationCheck(path) {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return validate.Result{}, err
		}
		pkg, types := extractPackageAndTypes(string(content))
		result, err := p.validator.Validate(path, pkg, types)
		if err != nil {
			return validate.Result{}, err
		}
		if result.Valid {
			continue
		}
		aggregate.Valid = false
		aggregate.MissingClasses = append(aggregate.MissingClasses, result.MissingClasses...)
		aggregate.StaleClasses = append(aggregate.StaleClasses, result.StaleClasses...)
		if aggregate.SourceFile == "" {
			aggregate.SourceFile = result.SourceFile
		}
	}
	return aggregate, nil
}
