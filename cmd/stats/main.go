package main

import (
	"github.com/alecthomas/kong"
	"github.com/block/hivemeta/pkg/cli"
)

var cmd struct {
	cli.StatsCmd `cmd:"" help:"Compute the fast statistics of an unpartitioned table."`
}

func main() {
	ctx := kong.Parse(&cmd)
	ctx.FatalIfErrorf(ctx.Run())
}
