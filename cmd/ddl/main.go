package main

import (
	"github.com/alecthomas/kong"
	"github.com/block/hivemeta/pkg/cli"
)

var cmd struct {
	cli.DdlCmd `cmd:"" help:"Print the Thrift struct DDL of Hive tables."`
}

func main() {
	ctx := kong.Parse(&cmd)
	ctx.FatalIfErrorf(ctx.Run())
}
