package lint

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/block/hivemeta/pkg/metrics"
)

// LintCmd is the Kong CLI struct for the lint command.
// It lints an entire schema without requiring a target.
type LintCmd struct {
	// Source of the schema (exactly one required)
	SourceHCL string `help:"HCL schema file" xor:"source" required:"" type:"existingfile"`
	SourceDir string `help:"Directory of MySQL CREATE TABLE .sql files" xor:"source" required:"" type:"existingdir"`
	SourceDB  string `help:"Hive database to read from the metastore backing database" xor:"source" required:""`
	Conf      string `help:"ini file with the backing database connection" type:"existingfile" env:"HIVEMETA_CONF"`

	// Filtering
	IgnoreTables string `help:"Regex pattern of table names to ignore" default:""`

	// Linter selection
	Enable  []string          `help:"Linters to enable" sep:","`
	Disable []string          `help:"Linters to disable" sep:","`
	Set     map[string]string `help:"Linter settings as linter.key=value"`

	LogMetrics bool `help:"Log the violation counts as metrics"`

	sink metrics.Sink
}

// Run executes the lint command. It is called by Kong.
func (cmd *LintCmd) Run() error {
	violations, err := cmd.run(context.Background(), slog.Default(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}
	if HasErrors(violations) {
		os.Exit(1)
	}
	return nil
}

func (cmd *LintCmd) run(ctx context.Context, logger *slog.Logger, w io.Writer) ([]Violation, error) {
	source := Source{HCL: cmd.SourceHCL, Dir: cmd.SourceDir, DB: cmd.SourceDB, Conf: cmd.Conf}
	tables, err := source.Load(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("loading source schema: %w", err)
	}

	config, err := buildIgnoreTablesConfig(cmd.IgnoreTables, tables)
	if err != nil {
		return nil, err
	}
	if err := applyLinterFlags(&config, cmd.Enable, cmd.Disable, cmd.Set); err != nil {
		return nil, err
	}

	// Every table is linted as if it were being created.
	changes := make([]TableChange, 0, len(tables))
	for _, t := range tables {
		changes = append(changes, TableChange{New: t})
	}

	violations, err := RunLinters(changes, config)
	if err != nil {
		return nil, fmt.Errorf("running linters: %w", err)
	}
	printViolations(w, "", violations)
	logger.Debug("lint finished", "tables", len(tables), "violations", len(violations))
	sendLintMetrics(ctx, logger, metricsSink(cmd.sink, cmd.LogMetrics, logger), "lint", violations)
	return violations, nil
}

// LintersCmd lists the registered linters.
type LintersCmd struct{}

func (cmd *LintersCmd) Run() error {
	return listLinters(os.Stdout)
}

func listLinters(w io.Writer) error {
	_, err := fmt.Fprintln(w, strings.Join(Describe(), "\n"))
	return err
}
