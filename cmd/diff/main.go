package main

import (
	"github.com/alecthomas/kong"
	"github.com/block/hivemeta/pkg/lint"
)

var cli struct {
	lint.DiffCmd `cmd:"" help:"Diff two Hive schemas and lint the changes."`
}

func main() {
	ctx := kong.Parse(&cli)
	ctx.FatalIfErrorf(ctx.Run())
}
