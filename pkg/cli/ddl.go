// Package cli holds the Kong commands that inspect table definitions: the
// serializer DDL of tables, the columns the metastore service reports, and
// the fast statistics of table directories.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/block/hivemeta/pkg/lint"
	"github.com/block/hivemeta/pkg/metastore"
	"github.com/block/hivemeta/pkg/schema"
)

// DdlCmd prints the Thrift struct DDL of every table in a schema.
type DdlCmd struct {
	SourceHCL string `help:"HCL schema file" xor:"source" required:"" type:"existingfile"`
	SourceDir string `help:"Directory of MySQL CREATE TABLE .sql files" xor:"source" required:"" type:"existingdir"`
	SourceDB  string `help:"Hive database to read from the metastore backing database" xor:"source" required:""`
	Conf      string `help:"ini file with the backing database connection" type:"existingfile" env:"HIVEMETA_CONF"`

	Table      []string `help:"Only print these tables" sep:","`
	Full       bool     `help:"Append the column names and types after the struct DDL"`
	Properties bool     `help:"Print the schema properties handed to serializers instead of the DDL"`
}

func (cmd *DdlCmd) Run() error {
	if err := cmd.run(context.Background(), slog.Default(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}
	return nil
}

func (cmd *DdlCmd) run(ctx context.Context, logger *slog.Logger, w io.Writer) error {
	source := lint.Source{HCL: cmd.SourceHCL, Dir: cmd.SourceDir, DB: cmd.SourceDB, Conf: cmd.Conf}
	tables, err := source.Load(ctx, logger)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	printed := 0
	for _, t := range tables {
		if len(cmd.Table) > 0 && !slices.Contains(cmd.Table, t.TableName) {
			continue
		}
		printed++
		if cmd.Properties {
			printProperties(logger, w, t)
			continue
		}
		var cols schema.Columns
		if t.Sd != nil {
			cols = t.Sd.Cols
		}
		ddl := schema.StructDDL(t.TableName, cols)
		if cmd.Full {
			ddl = schema.FullDDL(t.TableName, cols)
		}
		fmt.Fprintf(w, "%s.%s\t%s\n", t.DBName, t.TableName, ddl)
	}
	if printed == 0 && len(cmd.Table) > 0 {
		return fmt.Errorf("none of the tables %v found", cmd.Table)
	}
	return nil
}

func printProperties(logger *slog.Logger, w io.Writer, t *metastore.Table) {
	props := metastore.TableMetadata(logger, t)
	fmt.Fprintf(w, "# %s.%s\n", t.DBName, t.TableName)
	for _, key := range slices.Sorted(maps.Keys(props)) {
		fmt.Fprintf(w, "%s=%s\n", key, props[key])
	}
}
