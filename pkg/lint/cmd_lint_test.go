package lint

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/block/hivemeta/pkg/metastore"
	"github.com/block/hivemeta/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintCmd_BuildConfig_NoIgnoreTables(t *testing.T) {
	source := []*metastore.Table{newTable("default", "users", "id bigint")}

	config, err := buildIgnoreTablesConfig("", source)
	require.NoError(t, err)
	assert.Nil(t, config.IgnoreTables)
}

func TestLintCmd_BuildConfig_IgnoreTablesRegex(t *testing.T) {
	source := []*metastore.Table{
		newTable("default", "users", "id bigint"),
		newTable("default", "orders", "id bigint"),
	}
	target := []*metastore.Table{newTable("default", "order_items", "id bigint")}

	config, err := buildIgnoreTablesConfig("^order", source, target)
	require.NoError(t, err)
	assert.True(t, config.IgnoreTables["orders"])
	assert.True(t, config.IgnoreTables["order_items"])
	assert.False(t, config.IgnoreTables["users"])
}

func TestLintCmd_BuildConfig_IgnoreTablesInvalidRegex(t *testing.T) {
	_, err := buildIgnoreTablesConfig("[invalid", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --ignore-tables regex")
}

func TestLintCmd_ApplyLinterFlags(t *testing.T) {
	resetBuiltins(t)

	config := Config{}
	err := applyLinterFlags(&config, []string{"column_type"}, []string{"positional_rename"},
		map[string]string{"column_name.max_length": "10"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"column_type": true, "positional_rename": false}, config.Enabled)
	assert.Equal(t, map[string]map[string]string{"column_name": {"max_length": "10"}}, config.Settings)

	assert.ErrorContains(t, applyLinterFlags(&Config{}, []string{"nope"}, nil, nil), "not found")
	assert.ErrorContains(t, applyLinterFlags(&Config{}, nil, nil, map[string]string{"max_length": "1"}), "expected linter.key=value")
	assert.ErrorContains(t, applyLinterFlags(&Config{}, nil, nil, map[string]string{"nope.x": "1"}), "not found")
}

func TestLintCmd_LintEntireSchemaFromHCL(t *testing.T) {
	resetBuiltins(t)

	dir := t.TempDir()
	writeFile(t, dir, "schema.hcl", `
table "users" {
  column "id" {
    type = "bigint"
  }
  column "display-name" {
    type = "string"
  }
}

table "orders" {
  column "id" {
    type = "bigint"
  }
  column "total" {
    type = "money"
  }
  skewed = ["missing"]
}
`)

	var out bytes.Buffer
	cmd := &LintCmd{SourceHCL: filepath.Join(dir, "schema.hcl")}
	violations, err := cmd.run(t.Context(), slog.Default(), &out)
	require.NoError(t, err)
	assert.True(t, HasErrors(violations))

	assert.Len(t, filterByTable(violations, "users"), 1)
	assert.Len(t, filterByTable(violations, "orders"), 2)

	// output is sorted by table name
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Table: default.orders")
	assert.Contains(t, lines[2], "Table: default.users")
}

func TestLintCmd_LintEntireSchemaFromDir(t *testing.T) {
	resetBuiltins(t)

	dir := t.TempDir()
	writeFile(t, dir, "users.sql", `CREATE TABLE users (
		id bigint NOT NULL AUTO_INCREMENT,
		name varchar(100) DEFAULT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`)

	var out bytes.Buffer
	cmd := &LintCmd{SourceDir: dir}
	violations, err := cmd.run(t.Context(), slog.Default(), &out)
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.Empty(t, out.String())
}

func TestLintCmd_IgnoreTablesFiltersViolations(t *testing.T) {
	resetBuiltins(t)

	dir := t.TempDir()
	writeFile(t, dir, "schema.hcl", `
table "users" {
  column "bad-name" {
    type = "string"
  }
}

table "tmp_users" {
  column "bad-name" {
    type = "string"
  }
}
`)

	cmd := &LintCmd{SourceHCL: filepath.Join(dir, "schema.hcl"), IgnoreTables: "^tmp_"}
	violations, err := cmd.run(t.Context(), slog.Default(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.NotEmpty(t, filterByTable(violations, "users"))
	assert.Empty(t, filterByTable(violations, "tmp_users"))

	cmd.Disable = []string{"column_name"}
	violations, err = cmd.run(t.Context(), slog.Default(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

type recordingSink struct {
	sent []*metrics.Metrics
	err  error
}

func (s *recordingSink) Send(_ context.Context, m *metrics.Metrics) error {
	s.sent = append(s.sent, m)
	return s.err
}

// metricValues flattens the values of sent metrics by name.
func metricValues(sent []*metrics.Metrics) map[string]float64 {
	values := map[string]float64{}
	for _, m := range sent {
		for _, v := range m.Values {
			values[v.Name] = v.Value
		}
	}
	return values
}

func TestLintCmd_SendsMetrics(t *testing.T) {
	resetBuiltins(t)

	dir := t.TempDir()
	writeFile(t, dir, "schema.hcl", `
table "users" {
  column "id" {
    type = "bigint"
  }
  column "created" {
    type = "interval"
  }
}
`)

	sink := &recordingSink{}
	cmd := &LintCmd{SourceHCL: filepath.Join(dir, "schema.hcl"), sink: sink}
	violations, err := cmd.run(t.Context(), slog.Default(), &bytes.Buffer{})
	require.NoError(t, err)
	require.NotEmpty(t, violations)

	require.Len(t, sink.sent, 1)
	assert.Equal(t, map[string]string{"command": "lint"}, sink.sent[0].Labels)
	assert.Equal(t, map[string]float64{
		metrics.LintViolationsMetricName: float64(len(violations)),
		metrics.LintErrorsMetricName:     float64(len(FilterBySeverity(violations, SeverityError))),
	}, metricValues(sink.sent))
}

func TestLintCmd_SinkFailureKeepsResult(t *testing.T) {
	resetBuiltins(t)

	sink := &recordingSink{err: errors.New("sink down")}
	cmd := &LintCmd{SourceDir: t.TempDir(), sink: sink}
	violations, err := cmd.run(t.Context(), slog.Default(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.Len(t, sink.sent, 1)
}

func TestMetricsSink(t *testing.T) {
	sink := &recordingSink{}
	assert.Same(t, sink, metricsSink(sink, true, slog.Default()))
	assert.IsType(t, &metrics.LogSink{}, metricsSink(nil, true, slog.Default()))
	assert.IsType(t, &metrics.NoopSink{}, metricsSink(nil, false, slog.Default()))
}

func TestLintCmd_Errors(t *testing.T) {
	resetBuiltins(t)

	cmd := &LintCmd{SourceDir: filepath.Join(t.TempDir(), "missing")}
	_, err := cmd.run(t.Context(), slog.Default(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "loading source schema")

	cmd = &LintCmd{SourceDir: t.TempDir(), Enable: []string{"nope"}}
	_, err = cmd.run(t.Context(), slog.Default(), &bytes.Buffer{})
	assert.ErrorContains(t, err, `linter "nope" not found`)
}

func TestListLinters(t *testing.T) {
	resetBuiltins(t)

	var out bytes.Buffer
	require.NoError(t, listLinters(&out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "column_name: "))
}

// filterByTable filters violations to only those for a specific table.
func filterByTable(violations []Violation, table string) []Violation {
	var result []Violation
	for _, v := range violations {
		if v.Location != nil && v.Location.Table == table {
			result = append(result, v)
		}
	}
	return result
}
