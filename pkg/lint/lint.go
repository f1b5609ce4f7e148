// Package lint checks proposed Hive table definitions, and changes to
// existing ones, against the rules the metastore enforces. It reports
// violations up front instead of at ALTER TABLE time.
//
// # Basic Usage
//
// Linters are registered via init() functions and executed via RunLinters():
//
//	func init() {
//	    lint.Register(&ColumnNameLinter{})
//	}
//
//	// Later, run all linters:
//	violations, err := lint.RunLinters(changes, config)
//
// A whole schema is linted by passing every table as a TableChange with
// only New set. A diff passes Old and New for altered tables.
//
// # Configuration
//
// Linters can be enabled/disabled via the Config.Enabled map:
//
//	config := lint.Config{
//	    Enabled: map[string]bool{
//	        "positional_rename": false,
//	    },
//	}
//
// Configurable linters implement ConfigurableLinter and receive their
// settings from Config.Settings merged over their defaults:
//
//	config := lint.Config{
//	    Settings: map[string]map[string]string{
//	        "column_name": {"max_length": "64"},
//	    },
//	}
package lint

import (
	"errors"
	"fmt"
	"maps"
)

// Config holds linter configuration
type Config struct {
	// Enabled maps linter names to whether they are enabled
	// If a linter is not in this map, it uses its default enabled state
	Enabled map[string]bool

	// Settings maps linter names to their configuration as map[string]string
	// Each linter's settings are provided as key-value string pairs
	Settings map[string]map[string]string

	// IgnoreTables holds table names whose changes are not linted
	IgnoreTables map[string]bool
}

// RunLinters runs all enabled linters and returns any violations found.
// Linters are executed in an undefined order.
//
// A linter is executed if:
//   - It is enabled by default (set during Register), AND
//   - It is not explicitly disabled in config.Enabled
//
// OR:
//   - It is explicitly enabled in config.Enabled
//
// If a linter implements ConfigurableLinter, its default settings merged
// with config.Settings are applied before running the linter. A linter that
// fails to configure is skipped and its error returned.
func RunLinters(changes []TableChange, config Config) ([]Violation, error) {
	var errs []error

	lock.RLock()
	defer lock.RUnlock()

	changes = withoutIgnored(changes, config.IgnoreTables)

	var violations []Violation
	for name, l := range linters {
		enabled, explicit := config.Enabled[name]
		if explicit && !enabled {
			continue
		}
		if !l.enabled && !explicit {
			continue
		}

		if configurable, ok := l.impl.(ConfigurableLinter); ok {
			finalConfig := maps.Clone(configurable.DefaultConfig())
			if finalConfig == nil {
				finalConfig = map[string]string{}
			}
			maps.Copy(finalConfig, config.Settings[name])
			if err := configurable.Configure(finalConfig); err != nil {
				errs = append(errs, fmt.Errorf("configuring %s: %w", name, err))
				continue
			}
		}

		violations = append(violations, l.impl.Lint(changes)...)
	}

	return violations, errors.Join(errs...)
}

func withoutIgnored(changes []TableChange, ignore map[string]bool) []TableChange {
	if len(ignore) == 0 {
		return changes
	}
	kept := make([]TableChange, 0, len(changes))
	for _, c := range changes {
		if !ignore[c.Table().TableName] {
			kept = append(kept, c)
		}
	}
	return kept
}

// HasErrors returns true if any violations have ERROR severity.
func HasErrors(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}

	return false
}

// HasWarnings returns true if any violations have WARNING severity.
func HasWarnings(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityWarning {
			return true
		}
	}

	return false
}

// FilterBySeverity returns only violations with the specified severity.
func FilterBySeverity(violations []Violation, severity Severity) []Violation {
	var filtered []Violation

	for _, v := range violations {
		if v.Severity == severity {
			filtered = append(filtered, v)
		}
	}

	return filtered
}

// FilterByLinter returns only violations from the specified linter.
func FilterByLinter(violations []Violation, linterName string) []Violation {
	var filtered []Violation

	for _, v := range violations {
		if v.Linter.Name() == linterName {
			filtered = append(filtered, v)
		}
	}

	return filtered
}
