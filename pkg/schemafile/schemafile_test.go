package schemafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/block/hivemeta/pkg/metastore"
	"github.com/block/hivemeta/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersHCL = `
table "orders" {
  database = "sales"
  column "id" {
    type    = "bigint"
    comment = "order id"
  }
  column "items" {
    type = "array<struct<sku:string,qty:int>>"
  }
  column "attrs" {
    type = "map<string,string>"
  }
  partition "ds" {
    type = "string"
  }
  skewed = ["id"]
}

table "events" {
  column "name" {
    type = "string"
  }
}
`

func TestParse(t *testing.T) {
	tables, err := Parse([]byte(ordersHCL), "orders.hcl")
	require.NoError(t, err)
	require.Len(t, tables, 2)

	orders := tables[0]
	assert.Equal(t, "orders", orders.TableName)
	assert.Equal(t, "sales", orders.DBName)
	assert.Equal(t, schema.Columns{
		{Name: "id", Type: "bigint", Comment: "order id"},
		{Name: "items", Type: "array<struct<sku:string,qty:int>>"},
		{Name: "attrs", Type: "map<string,string>"},
	}, orders.Sd.Cols)
	assert.Equal(t, schema.Columns{{Name: "ds", Type: "string"}}, orders.PartitionKeys)
	assert.Equal(t, []string{"id"}, orders.Sd.SkewedInfo.SkewedColNames)
	assert.Equal(t, "struct orders { i64 id, list<struct<sku:string,qty:i32>> items, map<string,string> attrs}",
		schema.StructDDL(orders.TableName, orders.Sd.Cols))

	events := tables[1]
	assert.Equal(t, metastore.DefaultDatabase, events.DBName)
	assert.Nil(t, events.Sd.SkewedInfo)
	assert.Empty(t, events.PartitionKeys)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`table "t" {`), "bad.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`table "t" { column "c" {} }`), "missing_type.hcl")
	assert.ErrorContains(t, err, "type")

	_, err = Parse([]byte(`
table "t" {
  column "a" { type = "int" }
}
table "t" {
  column "b" { type = "int" }
}`), "dup.hcl")
	assert.ErrorContains(t, err, "default.t defined twice")
}

func TestEncodeParse(t *testing.T) {
	tables, err := Parse([]byte(ordersHCL), "orders.hcl")
	require.NoError(t, err)

	out := Encode(tables)
	assert.Contains(t, string(out), `table "orders" {`)
	assert.Contains(t, string(out), `database = "sales"`)
	assert.NotContains(t, string(out), `database = "default"`)

	again, err := Parse(out, "encoded.hcl")
	require.NoError(t, err)
	assert.Equal(t, tables, again)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.hcl")
	require.NoError(t, os.WriteFile(path, []byte(ordersHCL), 0o644))
	tables, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, tables, 2)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
