package main

import (
	"github.com/alecthomas/kong"
	"github.com/block/hivemeta/pkg/cli"
)

var cmd struct {
	cli.FieldsCmd `cmd:"" help:"Fetch the columns of a table from the metastore service."`
}

func main() {
	ctx := kong.Parse(&cmd)
	ctx.FatalIfErrorf(ctx.Run())
}
