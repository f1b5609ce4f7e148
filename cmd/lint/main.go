package main

import (
	"github.com/alecthomas/kong"
	"github.com/block/hivemeta/pkg/lint"
)

var cli struct {
	lint.LintCmd `cmd:"" help:"Lint every table of a Hive schema."`
}

func main() {
	ctx := kong.Parse(&cli)
	ctx.FatalIfErrorf(ctx.Run())
}
