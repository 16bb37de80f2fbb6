// Package validate implements the pre-flight CompilationValidator (spec.md
// §4.6, C11): the check that every source file has an up-to-date class
// file on the classpath before the formatter touches it.
package validate

import (
	"fmt"
	"os"
	"strings"

	"github.com/jfmt/styler/internal/classpath"
)

// Result is the sealed sum type CompilationValidationResult.
type Result struct {
	Valid          bool
	MissingClasses []string
	StaleClasses   []string
	SourceFile     string
}

// ErrorMessage formats the multi-line message spec.md §6 requires: source
// path, missing list, stale list, and the "Run 'mvn compile' or 'javac'"
// guidance line. Only meaningful when !Valid.
func (r Result) ErrorMessage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Compilation required for: %s\n", r.SourceFile)
	b.WriteString("Missing class files:\n")
	for _, fqn := range r.MissingClasses {
		fmt.Fprintf(&b, "  - %s\n", fqn)
	}
	b.WriteString("Stale class files (source is newer):\n")
	for _, fqn := range r.StaleClasses {
		fmt.Fprintf(&b, "  - %s\n", fqn)
	}
	b.WriteString("\nRun 'mvn compile' or 'javac' before formatting.\n")
	return b.String()
}

// Validator runs the compilation pre-flight check.
type Validator struct {
	Scanner classpath.Scanner
}

// New creates a Validator backed by the given scanner.
func New(scanner classpath.Scanner) *Validator {
	return &Validator{Scanner: scanner}
}

// Validate checks that every typeName in the given package has an
// up-to-date class file on the classpath (spec.md §4.6 algorithm).
func (v *Validator) Validate(sourceFile, packageName string, typeNames []string) (Result, error) {
	sourceInfo, err := os.Stat(sourceFile)
	if err != nil {
		return Result{}, fmt.Errorf("validate: stat source file %s: %w", sourceFile, err)
	}
	sourceMTime := sourceInfo.ModTime()

	var missing, stale []string
	for _, typeName := range typeNames {
		relPath := classFileRelPath(packageName, typeName)
		_, classMTime, ok := v.Scanner.FindClass(relPath)
		fqn := fullyQualifiedName(packageName, typeName)
		if !ok {
			missing = append(missing, fqn)
			continue
		}
		if sourceMTime.After(classMTime) {
			stale = append(stale, fqn)
		}
	}

	if len(missing) == 0 && len(stale) == 0 {
		return Result{Valid: true}, nil
	}
	return Result{
		Valid:          false,
		MissingClasses: missing,
		StaleClasses:   stale,
		SourceFile:     sourceFile,
	}, nil
}

func classFileRelPath(packageName, typeName string) string {
	if packageName == "" {
		return typeName + ".class"
	}
	return strings.ReplaceAll(packageName, ".", "/") + "/" + typeName + ".class"
}

func fullyQualifiedName(packageName, typeName string) string {
	if packageName == "" {
		return typeName
	}
	return packageName + "." + typeName
}
