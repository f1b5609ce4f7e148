// Package testutils contains some common utilities used exclusively
// by the test suite.
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/block/hivemeta/pkg/metastoredb"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

// DSN returns the MySQL server used by integration tests, taken from
// HIVEMETA_TEST_DSN. Tests calling it are skipped when it is not set.
func DSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("HIVEMETA_TEST_DSN")
	if dsn == "" {
		t.Skip("HIVEMETA_TEST_DSN not set")
	}
	return dsn
}

// DBConfig returns a connection config for dbName on the test server.
func DBConfig(t *testing.T, dbName string) *metastoredb.DBConfig {
	t.Helper()
	cfg, err := mysql.ParseDSN(DSN(t))
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(cfg.Addr)
	require.NoError(t, err)

	dbConfig := metastoredb.NewDBConfig()
	dbConfig.Host = host
	dbConfig.Port, err = strconv.Atoi(port)
	require.NoError(t, err)
	dbConfig.User = cfg.User
	dbConfig.Password = cfg.Passwd
	dbConfig.Database = dbName
	dbConfig.TLSMode = "DISABLED"
	return dbConfig
}

// CreateUniqueTestDatabase creates a database named after the test and
// drops it when the test ends.
func CreateUniqueTestDatabase(t *testing.T) string {
	t.Helper()

	dbName := fmt.Sprintf("t_%s_%d",
		strings.ReplaceAll(strings.ToLower(t.Name()), "/", "_"),
		os.Getpid())

	RunSQL(t, "", "CREATE DATABASE IF NOT EXISTS "+dbName)
	t.Cleanup(func() {
		runSQL(t, context.Background(), "", "DROP DATABASE IF EXISTS "+dbName)
	})
	return dbName
}

// RunSQL runs stmt in dbName, or without a default database when dbName
// is empty.
func RunSQL(t *testing.T, dbName, stmt string) {
	t.Helper()
	runSQL(t, t.Context(), dbName, stmt)
}

func runSQL(t *testing.T, ctx context.Context, dbName, stmt string) {
	t.Helper()
	cfg, err := mysql.ParseDSN(DSN(t))
	require.NoError(t, err)
	cfg.DBName = dbName
	db, err := sql.Open("mysql", cfg.FormatDSN())
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()
	_, err = db.ExecContext(ctx, stmt)
	require.NoError(t, err)
}

// metastoreSchema is the subset of the metastore backing schema that
// metastoredb reads.
var metastoreSchema = []string{
	`CREATE TABLE DBS (DB_ID bigint NOT NULL PRIMARY KEY, NAME varchar(128))`,
	`CREATE TABLE SDS (SD_ID bigint NOT NULL PRIMARY KEY, CD_ID bigint, LOCATION varchar(4000),
		INPUT_FORMAT varchar(4000), OUTPUT_FORMAT varchar(4000), NUM_BUCKETS int NOT NULL, IS_COMPRESSED tinyint(1) NOT NULL)`,
	`CREATE TABLE TBLS (TBL_ID bigint NOT NULL PRIMARY KEY, DB_ID bigint, SD_ID bigint, TBL_NAME varchar(128),
		TBL_TYPE varchar(128), OWNER varchar(767), CREATE_TIME int NOT NULL, LAST_ACCESS_TIME int NOT NULL,
		RETENTION int NOT NULL, VIEW_ORIGINAL_TEXT mediumtext, VIEW_EXPANDED_TEXT mediumtext)`,
	`CREATE TABLE COLUMNS_V2 (CD_ID bigint NOT NULL, COMMENT varchar(256), COLUMN_NAME varchar(767) NOT NULL,
		TYPE_NAME mediumtext, INTEGER_IDX int NOT NULL, PRIMARY KEY (CD_ID, COLUMN_NAME))`,
	`CREATE TABLE PARTITION_KEYS (TBL_ID bigint NOT NULL, PKEY_COMMENT varchar(4000), PKEY_NAME varchar(128) NOT NULL,
		PKEY_TYPE varchar(767) NOT NULL, INTEGER_IDX int NOT NULL, PRIMARY KEY (TBL_ID, PKEY_NAME))`,
	`CREATE TABLE TABLE_PARAMS (TBL_ID bigint NOT NULL, PARAM_KEY varchar(256) NOT NULL, PARAM_VALUE mediumtext,
		PRIMARY KEY (TBL_ID, PARAM_KEY))`,
	`CREATE TABLE SKEWED_COL_NAMES (SD_ID bigint NOT NULL, SKEWED_COL_NAME varchar(256), INTEGER_IDX int NOT NULL,
		PRIMARY KEY (SD_ID, INTEGER_IDX))`,
}

// CreateMetastoreSchema creates a fresh database holding the metastore
// tables and returns its name.
func CreateMetastoreSchema(t *testing.T) string {
	t.Helper()
	dbName := CreateUniqueTestDatabase(t)
	for _, stmt := range metastoreSchema {
		RunSQL(t, dbName, stmt)
	}
	return dbName
}
