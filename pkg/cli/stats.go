package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/block/hivemeta/pkg/config"
	"github.com/block/hivemeta/pkg/lint"
	"github.com/block/hivemeta/pkg/metastore"
	"github.com/block/hivemeta/pkg/metastoredb"
	"github.com/block/hivemeta/pkg/metrics"
	"github.com/block/hivemeta/pkg/utils"
	"github.com/block/hivemeta/pkg/warehouse"
)

// StatsCmd computes the fast statistics (file count and total size) of a
// table from the files in its warehouse directory.
type StatsCmd struct {
	Database string `arg:"" help:"Database name"`
	Table    string `arg:"" help:"Table name"`

	Conf      string `help:"ini file with the [client] and [hdfs] sections" type:"existingfile" env:"HIVEMETA_CONF"`
	SourceHCL string `help:"Read the table definition from an HCL schema file instead of the backing database" type:"existingfile"`
	Local     string `help:"Use this local directory as the warehouse instead of HDFS" type:"existingdir"`
	Keep      bool   `help:"Leave fast stats alone when the table already has them"`

	LogMetrics bool `help:"Also log the statistics as metrics"`
}

func (cmd *StatsCmd) Run() error {
	ctx := context.Background()
	logger := slog.Default()

	params, err := config.Load(cmd.Conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %s\n", err)
		os.Exit(2)
	}

	var fs warehouse.FileSystem
	if cmd.Local != "" {
		fs = warehouse.NewLocal(cmd.Local)
	} else {
		h, err := warehouse.NewHDFS(params.HDFSConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to HDFS: %s\n", err)
			os.Exit(2)
		}
		defer utils.CloseAndLogTo(logger, h)
		fs = h
	}
	root := params.GetWarehouseRoot()
	if cmd.Local != "" {
		root = "/"
	}

	t, err := cmd.loadTable(ctx, logger, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}
	var sink metrics.Sink = &metrics.NoopSink{}
	if cmd.LogMetrics {
		sink = metrics.NewLogSink(logger)
	}
	if err := cmd.run(ctx, logger, warehouse.New(fs, root, logger), sink, t, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return nil
}

func (cmd *StatsCmd) loadTable(ctx context.Context, logger *slog.Logger, params *config.Params) (*metastore.Table, error) {
	if cmd.SourceHCL != "" {
		tables, err := lint.LoadTablesFromHCL(cmd.SourceHCL)
		if err != nil {
			return nil, err
		}
		return findTable(tables, cmd.Database, cmd.Table)
	}
	db, err := metastoredb.Open(params.DBConfig())
	if err != nil {
		return nil, err
	}
	defer utils.CloseAndLogTo(logger, db)
	return metastoredb.NewLoader(db, logger).LoadTable(ctx, cmd.Database, cmd.Table)
}

func findTable(tables []*metastore.Table, db, name string) (*metastore.Table, error) {
	for _, t := range tables {
		if t.DBName == db && t.TableName == name {
			return t, nil
		}
	}
	return nil, &metastore.NoSuchObjectError{Message: fmt.Sprintf("%s.%s table not found", db, name)}
}

func (cmd *StatsCmd) run(ctx context.Context, logger *slog.Logger, wh *warehouse.Warehouse, sink metrics.Sink, t *metastore.Table, w io.Writer) error {
	if len(t.PartitionKeys) > 0 {
		return fmt.Errorf("table %s.%s is partitioned; fast stats are kept per partition", t.DBName, t.TableName)
	}
	db := &metastore.Database{Name: t.DBName}
	updated, err := metastore.UpdateTableStatsFast(ctx, logger, wh, db, t, false, !cmd.Keep)
	if err != nil {
		return err
	}
	if !updated {
		fmt.Fprintf(w, "%s.%s already has fast stats\n", t.DBName, t.TableName)
	}
	fmt.Fprintf(w, "location\t%s\n", wh.TableLocation(db, t))
	for _, key := range metastore.FastStats {
		fmt.Fprintf(w, "%s\t%s\n", key, t.Parameters[key])
	}
	return metrics.Send(ctx, sink, statsMetrics(t, updated))
}

func statsMetrics(t *metastore.Table, updated bool) *metrics.Metrics {
	m := &metrics.Metrics{Labels: map[string]string{"table": t.DBName + "." + t.TableName}}
	for name, key := range map[string]string{
		metrics.TableNumFilesMetricName:  metastore.NumFiles,
		metrics.TableTotalSizeMetricName: metastore.TotalSize,
	} {
		v, err := strconv.ParseFloat(t.Parameters[key], 64)
		if err != nil {
			continue
		}
		m.Values = append(m.Values, metrics.MetricValue{Name: name, Value: v, Type: metrics.GAUGE})
	}
	if updated {
		m.Values = append(m.Values, metrics.MetricValue{Name: metrics.TableStatsUpdatedMetricName, Value: 1, Type: metrics.COUNTER})
	}
	return m
}
