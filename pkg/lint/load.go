package lint

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/block/hivemeta/pkg/config"
	"github.com/block/hivemeta/pkg/metastore"
	"github.com/block/hivemeta/pkg/metastoredb"
	"github.com/block/hivemeta/pkg/schemafile"
	"github.com/block/hivemeta/pkg/statement"
	"github.com/block/hivemeta/pkg/utils"
)

// Source names where a set of tables is read from. Exactly one of HCL, Dir
// and DB is expected to be set.
type Source struct {
	// HCL is a schema file.
	HCL string
	// Dir is a directory of MySQL CREATE TABLE .sql files.
	Dir string
	// DB is a Hive database read from the metastore backing database
	// configured by Conf.
	DB   string
	Conf string
}

// Load reads the tables named by the source.
func (s Source) Load(ctx context.Context, logger *slog.Logger) ([]*metastore.Table, error) {
	switch {
	case s.HCL != "":
		return LoadTablesFromHCL(s.HCL)
	case s.Dir != "":
		return LoadTablesFromDir(s.Dir)
	case s.DB != "":
		params, err := config.Load(s.Conf)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", s.Conf, err)
		}
		return LoadTablesFromDB(ctx, logger, params.DBConfig(), s.DB)
	}
	return nil, fmt.Errorf("no schema source given")
}

// LoadTablesFromHCL reads the tables defined in a schema file.
func LoadTablesFromHCL(path string) ([]*metastore.Table, error) {
	tables, err := schemafile.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return tables, nil
}

// LoadTablesFromDB connects to the metastore backing database and reads
// every table of the Hive database dbName.
func LoadTablesFromDB(ctx context.Context, logger *slog.Logger, dbConfig *metastoredb.DBConfig, dbName string) ([]*metastore.Table, error) {
	db, err := metastoredb.Open(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer utils.CloseAndLogTo(logger, db)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	tables, err := metastoredb.NewLoader(db, logger).LoadTables(ctx, dbName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables of %s: %w", dbName, err)
	}
	return tables, nil
}

// LoadTablesFromDir reads all .sql files from a directory and parses them as
// MySQL CREATE TABLE statements. A file may hold several statements.
func LoadTablesFromDir(dir string) ([]*metastore.Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var tables []*metastore.Table
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), ".sql") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		stmts, err := statement.ParseCreateTables(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for _, ct := range stmts {
			tables = append(tables, ct.Table())
		}
	}

	return tables, nil
}
