package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersHCL = `
table "orders" {
  database = "sales"
  column "id" {
    type = "bigint"
  }
  column "note" {
    type    = "string"
    comment = "free text"
  }
  partition "ds" {
    type = "string"
  }
}
`

func TestLoadTablesFromDir_Basic(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "users.sql", `CREATE TABLE users (
		id bigint NOT NULL AUTO_INCREMENT,
		name varchar(100) DEFAULT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`)

	writeFile(t, dir, "orders.sql", `CREATE TABLE sales.orders (id bigint NOT NULL, user_id bigint NOT NULL);
		CREATE TABLE sales.order_items (id bigint NOT NULL);`)

	tables, err := LoadTablesFromDir(dir)
	require.NoError(t, err)
	require.Len(t, tables, 3)

	// os.ReadDir returns entries sorted by name
	assert.Equal(t, "orders", tables[0].TableName)
	assert.Equal(t, "sales", tables[0].DBName)
	assert.Equal(t, "order_items", tables[1].TableName)
	assert.Equal(t, "users", tables[2].TableName)
	assert.Equal(t, "default", tables[2].DBName)
	assert.Equal(t, []string{"bigint", "string"}, tables[2].Sd.Cols.Types())
}

func TestLoadTablesFromDir_SkipsNonSQL(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "users.sql", `CREATE TABLE users (id bigint NOT NULL)`)
	writeFile(t, dir, "README.md", "This is not SQL")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.sql"), 0o755))

	tables, err := LoadTablesFromDir(dir)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "users", tables[0].TableName)
}

func TestLoadTablesFromDir_Errors(t *testing.T) {
	_, err := LoadTablesFromDir(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "failed to read directory")

	dir := t.TempDir()
	writeFile(t, dir, "bad.sql", "DROP TABLE users")
	_, err = LoadTablesFromDir(dir)
	assert.ErrorContains(t, err, "failed to parse")
}

func TestLoadTablesFromHCL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "schema.hcl", ordersHCL)

	tables, err := LoadTablesFromHCL(filepath.Join(dir, "schema.hcl"))
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "sales", tables[0].DBName)
	assert.Equal(t, []string{"id", "note"}, tables[0].Sd.Cols.Names())
	assert.Equal(t, []string{"ds"}, tables[0].PartitionKeys.Names())

	writeFile(t, dir, "bad.hcl", `table "x" {`)
	_, err = LoadTablesFromHCL(filepath.Join(dir, "bad.hcl"))
	assert.ErrorContains(t, err, "failed to parse")
}

func TestSource_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "schema.hcl", ordersHCL)
	writeFile(t, dir, "users.sql", `CREATE TABLE users (id bigint NOT NULL)`)

	tables, err := Source{HCL: filepath.Join(dir, "schema.hcl")}.Load(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, "orders", tables[0].TableName)

	tables, err = Source{Dir: dir}.Load(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, "users", tables[0].TableName)

	_, err = Source{}.Load(t.Context(), nil)
	assert.ErrorContains(t, err, "no schema source")

	_, err = Source{DB: "sales", Conf: filepath.Join(dir, "missing.ini")}.Load(t.Context(), nil)
	assert.ErrorContains(t, err, "failed to load config")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
	require.NoError(t, err)
}
