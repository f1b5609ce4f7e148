package lint

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/block/hivemeta/pkg/config"
	"github.com/block/hivemeta/pkg/listener"
	"github.com/block/hivemeta/pkg/metastore"
	"github.com/block/hivemeta/pkg/metrics"
	"github.com/block/hivemeta/pkg/schema"
)

// DiffCmd is the Kong CLI struct for the diff command.
// It diffs two schemas, shows the HiveQL needed to go from one to the
// other, and lints the changes.
type DiffCmd struct {
	// Existing schema (exactly one required)
	SourceHCL string `help:"HCL schema file for the existing schema" xor:"source" required:"" type:"existingfile"`
	SourceDir string `help:"Directory of MySQL CREATE TABLE .sql files for the existing schema" xor:"source" required:"" type:"existingdir"`
	SourceDB  string `help:"Hive database to read the existing schema from" xor:"source" required:""`

	// Target schema (exactly one required)
	TargetHCL string `help:"HCL schema file for the target schema" xor:"target" required:"" type:"existingfile"`
	TargetDir string `help:"Directory of MySQL CREATE TABLE .sql files for the target schema" xor:"target" required:"" type:"existingdir"`
	TargetDB  string `help:"Hive database to read the target schema from" xor:"target" required:""`

	// Database both schemas are compared in. Defaults to the source's
	// database when each side holds a single database.
	Database string `help:"Hive database both schemas belong to (default: the source database when each side has only one)"`

	Conf string `help:"ini file with the backing database connection and [listeners]" type:"existingfile" env:"HIVEMETA_CONF"`

	// Filtering
	IgnoreTables string `help:"Regex pattern of table names to ignore" default:""`

	// Linter selection
	Enable  []string          `help:"Linters to enable" sep:","`
	Disable []string          `help:"Linters to disable" sep:","`
	Set     map[string]string `help:"Linter settings as linter.key=value"`

	Listeners string `help:"Comma separated listeners notified of every change (overrides the config file)"`

	LogMetrics bool `help:"Log the violation counts as metrics"`

	sink metrics.Sink
}

// Run executes the diff command. It is called by Kong.
// The output is valid HiveQL: lint violations appear as comments at the top,
// followed by the DDL statements.
func (cmd *DiffCmd) Run() error {
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

func (cmd *DiffCmd) run(ctx context.Context, logger *slog.Logger, w io.Writer) ([]Violation, error) {
	params, err := config.Load(cmd.Conf)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	source, err := Source{HCL: cmd.SourceHCL, Dir: cmd.SourceDir, DB: cmd.SourceDB, Conf: cmd.Conf}.Load(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("loading source schema: %w", err)
	}
	target, err := Source{HCL: cmd.TargetHCL, Dir: cmd.TargetDir, DB: cmd.TargetDB, Conf: cmd.Conf}.Load(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("loading target schema: %w", err)
	}

	if db := cmd.Database; db != "" {
		source, target = inDatabase(db, source), inDatabase(db, target)
	} else if db, ok := singleDatabase(source); ok {
		if other, ok := singleDatabase(target); ok && other != db {
			logger.Info("comparing schemas from different databases", "source", db, "target", other)
			target = inDatabase(db, target)
		}
	}

	lintConfig, err := buildIgnoreTablesConfig(cmd.IgnoreTables, source, target)
	if err != nil {
		return nil, err
	}
	if err := applyLinterFlags(&lintConfig, cmd.Enable, cmd.Disable, cmd.Set); err != nil {
		return nil, err
	}

	changes := diffTables(source, target)
	violations, err := RunLinters(changes, lintConfig)
	if err != nil {
		return nil, fmt.Errorf("running linters: %w", err)
	}

	printViolations(w, "-- ", violations)
	if len(violations) > 0 && len(changes) > 0 {
		fmt.Fprintln(w)
	}
	printDiff(w, changes)
	sendLintMetrics(ctx, logger, metricsSink(cmd.sink, cmd.LogMetrics, logger), "diff", violations)

	names := cmd.Listeners
	if names == "" {
		names = params.GetListeners()
	}
	listeners, err := listener.New(names, listener.Config{Logger: logger, Settings: params.GetListenerSettings()})
	if err != nil {
		return nil, err
	}
	if err := notifyChanges(ctx, listeners, changes, !HasErrors(violations)); err != nil {
		return nil, err
	}
	return violations, nil
}

// singleDatabase returns the database all tables belong to, or false when
// there are none or more than one.
func singleDatabase(tables []*metastore.Table) (string, bool) {
	if len(tables) == 0 {
		return "", false
	}
	db := tables[0].DBName
	for _, t := range tables[1:] {
		if t.DBName != db {
			return "", false
		}
	}
	return db, true
}

// inDatabase returns tables moved to db. Tables already in db are shared,
// the rest are shallow copies.
func inDatabase(db string, tables []*metastore.Table) []*metastore.Table {
	moved := make([]*metastore.Table, len(tables))
	for i, t := range tables {
		if t.DBName != db {
			c := *t
			c.DBName = db
			t = &c
		}
		moved[i] = t
	}
	return moved
}

func tableKey(t *metastore.Table) string {
	return t.DBName + "." + t.TableName
}

// diffTables pairs up the tables of source and target by database and name.
// Tables only in target are creates, tables only in source are drops, and
// tables in both whose columns, partition keys or skew differ are alters.
// The result is sorted by database and table name.
func diffTables(source, target []*metastore.Table) []TableChange {
	sourceMap := make(map[string]*metastore.Table, len(source))
	for _, t := range source {
		sourceMap[tableKey(t)] = t
	}

	var changes []TableChange
	seen := make(map[string]bool, len(target))
	for _, t := range target {
		key := tableKey(t)
		seen[key] = true
		old, exists := sourceMap[key]
		switch {
		case !exists:
			changes = append(changes, TableChange{New: t})
		case !sameDefinition(old, t):
			changes = append(changes, TableChange{Old: old, New: t})
		}
	}
	for _, t := range source {
		if !seen[tableKey(t)] {
			changes = append(changes, TableChange{Old: t})
		}
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return tableKey(changes[i].Table()) < tableKey(changes[j].Table())
	})
	return changes
}

func sameDefinition(a, b *metastore.Table) bool {
	return schema.Equal(columns(a), columns(b)) &&
		schema.Equal(a.PartitionKeys, b.PartitionKeys) &&
		strings.Join(skewedNames(a), ",") == strings.Join(skewedNames(b), ",")
}

func skewedNames(t *metastore.Table) []string {
	if t.Sd == nil || t.Sd.SkewedInfo == nil {
		return nil
	}
	return t.Sd.SkewedInfo.SkewedColNames
}

// printDiff prints the HiveQL statements for the changes.
func printDiff(w io.Writer, changes []TableChange) {
	if len(changes) == 0 {
		fmt.Fprintln(w, "-- No schema differences found.")
		return
	}
	for _, c := range changes {
		if c.IsCreate() {
			// The struct DDL is the form serializers receive the columns in.
			fmt.Fprintf(w, "-- %s\n", schema.StructDDL(c.New.TableName, columns(c.New)))
		}
		fmt.Fprintf(w, "%s;\n", changeDDL(c))
	}
}

// changeDDL renders one change as HiveQL. Columns appended to the end of
// a table become ADD COLUMNS; any other column change replaces the whole
// column list.
func changeDDL(c TableChange) string {
	switch {
	case c.IsCreate():
		return createTableDDL(c.New)
	case c.IsDrop():
		return "DROP TABLE " + quoteTable(c.Old)
	}
	oldCols, newCols := columns(c.Old), columns(c.New)
	if len(newCols) > len(oldCols) && schema.Equal(oldCols, newCols[:len(oldCols)]) {
		return fmt.Sprintf("ALTER TABLE %s ADD COLUMNS (%s)", quoteTable(c.New), columnList(newCols[len(oldCols):]))
	}
	return fmt.Sprintf("ALTER TABLE %s REPLACE COLUMNS (%s)", quoteTable(c.New), columnList(newCols))
}

func createTableDDL(t *metastore.Table) string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(quoteTable(t))
	sb.WriteString(" (")
	sb.WriteString(columnList(columns(t)))
	sb.WriteString(")")
	if len(t.PartitionKeys) > 0 {
		sb.WriteString(" PARTITIONED BY (")
		sb.WriteString(columnList(t.PartitionKeys))
		sb.WriteString(")")
	}
	if skewed := skewedDDL(t); skewed != "" {
		sb.WriteString(" ")
		sb.WriteString(skewed)
	}
	return sb.String()
}

// skewedDDL renders SKEWED BY ... ON .... Hive requires the skewed values,
// so a table with skewed names but no values renders nothing.
func skewedDDL(t *metastore.Table) string {
	names := skewedNames(t)
	if len(names) == 0 || len(t.Sd.SkewedInfo.SkewedColValues) == 0 {
		return ""
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	values := make([]string, len(t.Sd.SkewedInfo.SkewedColValues))
	for i, vals := range t.Sd.SkewedInfo.SkewedColValues {
		literals := make([]string, len(vals))
		for j, v := range vals {
			literals[j] = quoteString(v)
		}
		values[i] = strings.Join(literals, ", ")
		if len(names) > 1 {
			values[i] = "(" + values[i] + ")"
		}
	}
	return fmt.Sprintf("SKEWED BY (%s) ON (%s)", strings.Join(quoted, ", "), strings.Join(values, ", "))
}

func columnList(cols schema.Columns) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = quoteIdent(col.Name) + " " + col.Type
		if col.Comment != "" {
			parts[i] += " COMMENT " + quoteString(col.Comment)
		}
	}
	return strings.Join(parts, ", ")
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), "'", `\'`) + "'"
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func quoteTable(t *metastore.Table) string {
	return quoteIdent(t.DBName) + "." + quoteIdent(t.TableName)
}

// notifyChanges sends one event per change. Success is false when the
// changes did not lint clean.
func notifyChanges(ctx context.Context, listeners []listener.Listener, changes []TableChange, success bool) error {
	if len(listeners) == 0 {
		return nil
	}
	for _, c := range changes {
		typ := listener.AlterTable
		switch {
		case c.IsCreate():
			typ = listener.CreateTable
		case c.IsDrop():
			typ = listener.DropTable
		}
		t := c.Table()
		e := listener.NewEvent(typ, t.DBName, t.TableName)
		e.Success = success
		if err := listener.Notify(ctx, listeners, e); err != nil {
			return err
		}
	}
	return nil
}
