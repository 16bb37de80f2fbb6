package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jfmt/styler/internal/classpath"
	"github.com/jfmt/styler/internal/config"
	stylererrors "github.com/jfmt/styler/internal/errors"
	"github.com/jfmt/styler/internal/pipeline"
	"github.com/jfmt/styler/internal/report"
	"github.com/jfmt/styler/internal/rules"
	"github.com/jfmt/styler/internal/rules/importorganizer"
	"github.com/jfmt/styler/internal/rules/linelength"
	"github.com/jfmt/styler/internal/version"
)

// exit codes, spec.md §6.
const (
	exitSuccess            = 0
	exitViolationsFound    = 1
	exitUsage              = 2
	exitCompilationInvalid = 3
)

func defaultRules() []rules.Rule {
	return []rules.Rule{linelength.New(), importorganizer.New()}
}

func ruleIDs(ruleList []rules.Rule) []string {
	ids := make([]string, len(ruleList))
	for i, r := range ruleList {
		ids[i] = r.ID()
	}
	return ids
}

func buildPipeline(c *cli.Context, root string, reporter *stylererrors.Reporter) (*pipeline.FileProcessingPipeline, error) {
	settings, err := config.LoadProjectSettings(root)
	if err != nil {
		return nil, err
	}
	settings.ClasspathEntries = append(settings.ClasspathEntries, c.StringSlice("classpath")...)
	settings.ModulePathEntries = append(settings.ModulePathEntries, c.StringSlice("module-path")...)
	if n := c.Int("workers"); n > 0 {
		settings.Workers = n
	}
	if err := config.NewValidator().ValidateAndSetDefaults(&settings); err != nil {
		return nil, err
	}

	ruleSet := defaultRules()
	ruleConfigs, err := config.LoadRuleConfigs(root, ruleIDs(ruleSet), reporter)
	if err != nil {
		return nil, err
	}

	b := pipeline.NewBuilder().
		WithLimits(settings.Limits).
		WithRules(ruleSet...).
		WithRuleConfigs(ruleConfigs...).
		WithValidationOnly(!c.Bool("fix")).
		WithWorkers(settings.Workers).
		WithClasspathConfig(classpath.Config{
			ClasspathEntries:  settings.ClasspathEntries,
			ModulePathEntries: settings.ModulePathEntries,
		})

	switch c.String("format") {
	case "human":
		b = b.WithOutputFormat(report.FormatHuman)
	case "json":
		b = b.WithOutputFormat(report.FormatJSON)
	case "":
		// leave unset: OutputStage auto-detects
	default:
		return nil, fmt.Errorf("unknown --format %q (want \"human\" or \"json\")", c.String("format"))
	}

	return b.Build()
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("no source files given", exitUsage)
	}
	root := c.String("root")
	if root == "" {
		root = "."
	}

	reporter := stylererrors.NewReporter(ruleIDs(defaultRules()))

	p, err := buildPipeline(c, root, reporter)
	if err != nil {
		if len(reporter.Entries()) > 0 {
			fmt.Fprintln(os.Stderr, reporter.RenderHuman())
		}
		return cli.Exit(err.Error(), exitUsage)
	}
	defer p.Close()

	files := c.Args().Slice()

	if c.Bool("validate-compilation") {
		result, err := p.ValidateCompilation(files)
		if err != nil {
			return cli.Exit(err.Error(), exitUsage)
		}
		if !result.Valid {
			fmt.Fprint(os.Stderr, result.ErrorMessage())
			return cli.Exit("", exitCompilationInvalid)
		}
		return nil
	}

	results, err := p.ProcessFiles(context.Background(), files)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	anyIssue := false
	for _, r := range results {
		if !r.OverallSuccess {
			anyIssue = true
			if cause := r.FailureCause(); cause != nil {
				reporter.ReportError(r.FilePath, cause)
			}
			r.Release()
			continue
		}
		fmt.Println(r.RenderedOutput())
		if c.Bool("fix") {
			if src, ok := r.FormattedSource(); ok {
				if err := os.WriteFile(r.FilePath, []byte(src), 0o644); err != nil {
					anyIssue = true
				}
			}
		} else if r.HasViolations() {
			anyIssue = true
		}
		r.Release()
	}

	if len(reporter.Entries()) > 0 {
		if c.String("format") == "json" {
			rendered, err := reporter.RenderJSON(time.Now())
			if err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}
			fmt.Fprintln(os.Stderr, rendered)
		} else {
			fmt.Fprintln(os.Stderr, reporter.RenderHuman())
		}
	}

	if anyIssue {
		return cli.Exit("", exitViolationsFound)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:                   "styler",
		Usage:                  "Formats and validates Java source files",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "Project root to load .styler.kdl / .styler.toml from",
				Value: ".",
			},
			&cli.BoolFlag{
				Name:  "fix",
				Usage: "Apply formatting fixes instead of only reporting violations",
			},
			&cli.BoolFlag{
				Name:  "validate-compilation",
				Usage: "Run only the pre-flight compilation check",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: human or json (default: auto-detect)",
			},
			&cli.StringSliceFlag{
				Name:  "classpath",
				Usage: "Additional classpath entry (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "module-path",
				Usage: "Additional module-path entry (repeatable)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Parallel file workers (default: cores-1)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(exitUsage)
	}
}
