package main

import (
	"github.com/alecthomas/kong"
	"github.com/block/hivemeta/pkg/buildinfo"
	"github.com/block/hivemeta/pkg/cli"
	"github.com/block/hivemeta/pkg/lint"
)

// Set with -ldflags by release builds.
var (
	version string
	commit  string
	date    string
)

var cmd struct {
	Version kong.VersionFlag `help:"Print the version and exit."`

	Ddl     cli.DdlCmd      `cmd:"" help:"Print the Thrift struct DDL of Hive tables."`
	Fields  cli.FieldsCmd   `cmd:"" help:"Fetch the columns of a table from the metastore service."`
	Stats   cli.StatsCmd    `cmd:"" help:"Compute the fast statistics of an unpartitioned table."`
	Lint    lint.LintCmd    `cmd:"" help:"Lint every table of a Hive schema."`
	Diff    lint.DiffCmd    `cmd:"" help:"Diff two Hive schemas and lint the changes."`
	Linters lint.LintersCmd `cmd:"" help:"List the available linters."`
}

func main() {
	buildinfo.Set(version, commit, date)
	ctx := kong.Parse(&cmd,
		kong.Name("hivemeta"),
		kong.Description("hivemeta: Hive metastore schema tools"),
		kong.UsageOnError(),
		kong.Vars{"version": buildinfo.Get().String()},
	)
	ctx.FatalIfErrorf(ctx.Run())
}
