package lint

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/block/hivemeta/pkg/metastore"
	"github.com/block/hivemeta/pkg/metrics"
)

// sortViolations returns a sorted copy of violations: by table name, then
// severity (errors first), then linter name.
func sortViolations(violations []Violation) []Violation {
	sorted := make([]Violation, len(violations))
	copy(sorted, violations)

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := "", ""
		if sorted[i].Location != nil {
			ti = sorted[i].Location.Table
		}
		if sorted[j].Location != nil {
			tj = sorted[j].Location.Table
		}
		if ti != tj {
			return ti < tj
		}
		if sorted[i].Severity != sorted[j].Severity {
			return sorted[i].Severity > sorted[j].Severity // errors first
		}
		return sorted[i].Linter.Name() < sorted[j].Linter.Name()
	})

	return sorted
}

// printViolations prints violations sorted by table name then severity,
// each line starting with prefix.
func printViolations(w io.Writer, prefix string, violations []Violation) {
	for _, v := range sortViolations(violations) {
		fmt.Fprintf(w, "%s%s\n", prefix, v.String())
	}
}

// buildIgnoreTablesConfig constructs a Config with IgnoreTables populated
// from a regex pattern matched against the names of the given tables.
func buildIgnoreTablesConfig(pattern string, tables ...[]*metastore.Table) (Config, error) {
	config := Config{}

	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Config{}, fmt.Errorf("invalid --ignore-tables regex %q: %w", pattern, err)
		}

		config.IgnoreTables = make(map[string]bool)
		for _, set := range tables {
			for _, t := range set {
				if re.MatchString(t.TableName) {
					config.IgnoreTables[t.TableName] = true
				}
			}
		}
	}

	return config, nil
}

// applyLinterFlags adds --enable, --disable and --set values to config.
// Settings are written as linter.key=value.
func applyLinterFlags(config *Config, enable, disable []string, settings map[string]string) error {
	if err := setEnabledFlags(config, enable, true); err != nil {
		return err
	}
	if err := setEnabledFlags(config, disable, false); err != nil {
		return err
	}

	for key, value := range settings {
		name, setting, ok := strings.Cut(key, ".")
		if !ok || name == "" || setting == "" {
			return fmt.Errorf("invalid setting %q, expected linter.key=value", key)
		}
		if _, err := Get(name); err != nil {
			return err
		}
		if config.Settings == nil {
			config.Settings = make(map[string]map[string]string)
		}
		if config.Settings[name] == nil {
			config.Settings[name] = make(map[string]string)
		}
		config.Settings[name][setting] = value
	}
	return nil
}

func setEnabledFlags(config *Config, names []string, enabled bool) error {
	for _, name := range names {
		if _, err := Get(name); err != nil {
			return err
		}
		if config.Enabled == nil {
			config.Enabled = make(map[string]bool)
		}
		config.Enabled[name] = enabled
	}
	return nil
}

// metricsSink returns sink when set, a LogSink when logMetrics is true and
// a NoopSink otherwise.
func metricsSink(sink metrics.Sink, logMetrics bool, logger *slog.Logger) metrics.Sink {
	switch {
	case sink != nil:
		return sink
	case logMetrics:
		return metrics.NewLogSink(logger)
	}
	return &metrics.NoopSink{}
}

// sendLintMetrics reports the violation and error counts of a run. Sink
// failures are logged, the lint result stands either way.
func sendLintMetrics(ctx context.Context, logger *slog.Logger, sink metrics.Sink, command string, violations []Violation) {
	m := &metrics.Metrics{
		Labels: map[string]string{"command": command},
		Values: []metrics.MetricValue{
			{Name: metrics.LintViolationsMetricName, Value: float64(len(violations)), Type: metrics.GAUGE},
			{Name: metrics.LintErrorsMetricName, Value: float64(len(FilterBySeverity(violations, SeverityError))), Type: metrics.GAUGE},
		},
	}
	if err := metrics.Send(ctx, sink, m); err != nil {
		logger.Warn("failed to send lint metrics", "command", command, "error", err)
	}
}
