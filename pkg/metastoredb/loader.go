package metastoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/block/hivemeta/pkg/metastore"
	"github.com/block/hivemeta/pkg/schema"
	"golang.org/x/sync/errgroup"
)

const (
	selectTable = `SELECT t.TBL_ID, t.TBL_NAME, COALESCE(t.TBL_TYPE, ''), COALESCE(t.OWNER, ''),
 t.CREATE_TIME, t.LAST_ACCESS_TIME, t.RETENTION,
 COALESCE(t.VIEW_ORIGINAL_TEXT, ''), COALESCE(t.VIEW_EXPANDED_TEXT, ''),
 COALESCE(s.SD_ID, 0), COALESCE(s.CD_ID, 0), COALESCE(s.LOCATION, ''),
 COALESCE(s.INPUT_FORMAT, ''), COALESCE(s.OUTPUT_FORMAT, ''),
 COALESCE(s.NUM_BUCKETS, -1), COALESCE(s.IS_COMPRESSED, 0)
 FROM TBLS t JOIN DBS d ON t.DB_ID = d.DB_ID LEFT JOIN SDS s ON t.SD_ID = s.SD_ID
 WHERE d.NAME = ? AND t.TBL_NAME = ?`
	selectColumnsByCD = `SELECT COLUMN_NAME, TYPE_NAME, COALESCE(COMMENT, '')
 FROM COLUMNS_V2 WHERE CD_ID = ? ORDER BY INTEGER_IDX`
	selectColumnsByName = `SELECT c.COLUMN_NAME, c.TYPE_NAME, COALESCE(c.COMMENT, '')
 FROM COLUMNS_V2 c JOIN SDS s ON c.CD_ID = s.CD_ID
 JOIN TBLS t ON t.SD_ID = s.SD_ID JOIN DBS d ON t.DB_ID = d.DB_ID
 WHERE d.NAME = ? AND t.TBL_NAME = ? ORDER BY c.INTEGER_IDX`
	selectPartitionKeys = `SELECT PKEY_NAME, PKEY_TYPE, COALESCE(PKEY_COMMENT, '')
 FROM PARTITION_KEYS WHERE TBL_ID = ? ORDER BY INTEGER_IDX`
	selectTableParams = `SELECT PARAM_KEY, COALESCE(PARAM_VALUE, '') FROM TABLE_PARAMS WHERE TBL_ID = ?`
	selectSkewedNames = `SELECT SKEWED_COL_NAME FROM SKEWED_COL_NAMES WHERE SD_ID = ? ORDER BY INTEGER_IDX`
	selectTableNames  = `SELECT t.TBL_NAME FROM TBLS t JOIN DBS d ON t.DB_ID = d.DB_ID
 WHERE d.NAME = ? ORDER BY t.TBL_NAME`
)

// DefaultConcurrency is the number of tables LoadTables reads at once.
const DefaultConcurrency = 4

// Loader reads tables from the metastore backing database.
type Loader struct {
	db          *sql.DB
	logger      *slog.Logger
	Concurrency int
}

func NewLoader(db *sql.DB, logger *slog.Logger) *Loader {
	return &Loader{db: db, logger: logger, Concurrency: DefaultConcurrency}
}

// LoadColumns returns the columns of dbName.tableName in column order.
func (l *Loader) LoadColumns(ctx context.Context, dbName, tableName string) (schema.Columns, error) {
	cols, err := l.queryColumns(ctx, selectColumnsByName, dbName, tableName)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, noSuchTable(dbName, tableName)
	}
	return cols, nil
}

// ListTables returns the names of the tables in dbName, sorted.
func (l *Loader) ListTables(ctx context.Context, dbName string) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, selectTableNames, dbName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// LoadTable reads a table with its storage descriptor, columns, partition
// keys, skewed column names and parameters.
func (l *Loader) LoadTable(ctx context.Context, dbName, tableName string) (*metastore.Table, error) {
	var (
		tblID, sdID, cdID int64
		tableType         string
		compressed        int
	)
	t := &metastore.Table{DBName: dbName, Sd: &metastore.StorageDescriptor{}}
	err := l.db.QueryRowContext(ctx, selectTable, dbName, tableName).Scan(
		&tblID, &t.TableName, &tableType, &t.Owner,
		&t.CreateTime, &t.LastAccessTime, &t.Retention,
		&t.ViewOriginalText, &t.ViewExpandedText,
		&sdID, &cdID, &t.Sd.Location,
		&t.Sd.InputFormat, &t.Sd.OutputFormat,
		&t.Sd.NumBuckets, &compressed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, noSuchTable(dbName, tableName)
	}
	if err != nil {
		return nil, fmt.Errorf("load table %s.%s: %w", dbName, tableName, err)
	}
	t.TableType = metastore.TableType(tableType)
	t.Sd.Compressed = compressed != 0

	if t.Sd.Cols, err = l.queryColumns(ctx, selectColumnsByCD, cdID); err != nil {
		return nil, err
	}
	if t.PartitionKeys, err = l.queryColumns(ctx, selectPartitionKeys, tblID); err != nil {
		return nil, err
	}
	skewed, err := l.querySkewedNames(ctx, sdID)
	if err != nil {
		return nil, err
	}
	if len(skewed) > 0 {
		t.Sd.SkewedInfo = &metastore.SkewedInfo{SkewedColNames: skewed}
	}
	if t.Parameters, err = l.queryParams(ctx, tblID); err != nil {
		return nil, err
	}
	l.logger.Debug("loaded table", "db", dbName, "table", tableName, "columns", len(t.Sd.Cols))
	return t, nil
}

// LoadTables reads the named tables concurrently, or every table of dbName
// when names is empty. The result keeps the order of names.
func (l *Loader) LoadTables(ctx context.Context, dbName string, names []string) ([]*metastore.Table, error) {
	if len(names) == 0 {
		var err error
		if names, err = l.ListTables(ctx, dbName); err != nil {
			return nil, err
		}
	}
	tables := make([]*metastore.Table, len(names))
	g, gctx := errgroup.WithContext(ctx)
	if l.Concurrency > 0 {
		g.SetLimit(l.Concurrency)
	}
	for i, name := range names {
		g.Go(func() error {
			t, err := l.LoadTable(gctx, dbName, name)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

func (l *Loader) queryColumns(ctx context.Context, query string, args ...any) (schema.Columns, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cols := schema.Columns{}
	for rows.Next() {
		var c schema.Column
		if err := rows.Scan(&c.Name, &c.Type, &c.Comment); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (l *Loader) querySkewedNames(ctx context.Context, sdID int64) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, selectSkewedNames, sdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (l *Loader) queryParams(ctx context.Context, tblID int64) (map[string]string, error) {
	rows, err := l.db.QueryContext(ctx, selectTableParams, tblID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	params := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		params[k] = v
	}
	return params, rows.Err()
}

func noSuchTable(dbName, tableName string) error {
	return &metastore.NoSuchObjectError{Message: fmt.Sprintf("%s.%s table not found", dbName, tableName)}
}
