package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/block/hivemeta/pkg/client"
	"github.com/block/hivemeta/pkg/config"
	"github.com/block/hivemeta/pkg/metastore"
	"github.com/block/hivemeta/pkg/schema"
	"github.com/block/hivemeta/pkg/schemafile"
	"github.com/block/hivemeta/pkg/utils"
)

// FieldsCmd asks a running metastore service for the columns of a table.
type FieldsCmd struct {
	Database string `arg:"" help:"Database name"`
	Table    string `arg:"" help:"Table name"`

	Conf   string `help:"ini file with the [metastore] connection" type:"existingfile" env:"HIVEMETA_CONF"`
	Host   string `help:"Metastore host, overrides the config file"`
	Port   int    `help:"Metastore port, overrides the config file"`
	Framed bool   `help:"Use the framed transport"`

	Schema bool `help:"Include partition keys (get_schema instead of get_fields)"`
	HCL    bool `help:"Print the columns as an HCL schema file"`
}

// fieldsGetter is the part of the metastore client FieldsCmd needs.
type fieldsGetter interface {
	GetFields(ctx context.Context, db, table string) (schema.Columns, error)
	GetSchema(ctx context.Context, db, table string) (schema.Columns, error)
}

func (cmd *FieldsCmd) Run() error {
	ctx := context.Background()
	logger := slog.Default()

	cfg, err := cmd.clientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %s\n", err)
		os.Exit(2)
	}
	c, err := client.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}
	defer utils.CloseAndLogTo(logger, c)

	if err := cmd.run(ctx, c, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return nil
}

func (cmd *FieldsCmd) clientConfig() (client.Config, error) {
	params, err := config.Load(cmd.Conf)
	if err != nil {
		return client.Config{}, err
	}
	cfg := params.ClientConfig()
	if cmd.Host != "" {
		cfg.Host = cmd.Host
	}
	if cmd.Port != 0 {
		cfg.Port = cmd.Port
	}
	if cmd.Framed {
		cfg.Framed = true
	}
	return cfg, nil
}

func (cmd *FieldsCmd) run(ctx context.Context, c fieldsGetter, w io.Writer) error {
	var (
		cols schema.Columns
		err  error
	)
	if cmd.Schema {
		cols, err = c.GetSchema(ctx, cmd.Database, cmd.Table)
	} else {
		cols, err = c.GetFields(ctx, cmd.Database, cmd.Table)
	}
	if err != nil {
		return err
	}

	if cmd.HCL {
		t := &metastore.Table{
			DBName:    cmd.Database,
			TableName: cmd.Table,
			Sd:        &metastore.StorageDescriptor{Cols: cols},
		}
		_, err = w.Write(schemafile.Encode([]*metastore.Table{t}))
		return err
	}
	for _, col := range cols {
		if col.Comment != "" {
			fmt.Fprintf(w, "%s\t%s\t%s\n", col.Name, col.Type, col.Comment)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", col.Name, col.Type)
	}
	return nil
}
