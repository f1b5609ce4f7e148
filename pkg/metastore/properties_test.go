package metastore

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/block/hivemeta/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func testTable() *Table {
	return &Table{
		DBName:    "sales",
		TableName: "orders",
		Sd: &StorageDescriptor{
			Cols: schema.Columns{
				{Name: "id", Type: "bigint"},
				{Name: "tags", Type: "map<string,string>"},
			},
			Location:   "hdfs://nn/warehouse/sales.db/orders",
			NumBuckets: 4,
			BucketCols: []string{"id", "tags"},
			SerdeInfo: &SerDeInfo{
				SerializationLib: LazySimpleSerDe,
				Parameters:       map[string]string{SerializationFormat: "1"},
			},
		},
		PartitionKeys: schema.Columns{{Name: "ds", Type: "string"}, {Name: "hr", Type: "string"}},
		Parameters:    map[string]string{"owner_team": "payments"},
	}
}

func TestTableMetadata(t *testing.T) {
	props := TableMetadata(slog.Default(), testTable())
	assert.Equal(t, Properties{
		FileInputFormat:        DefaultInputFormat,
		FileOutputFormat:       DefaultOutputFormat,
		MetaTableName:          "sales.orders",
		MetaTableLocation:      "hdfs://nn/warehouse/sales.db/orders",
		BucketCount:            "4",
		BucketFieldName:        "id",
		SerializationFormat:    "1",
		SerializationLib:       LazySimpleSerDe,
		MetaTableColumns:       "id,tags",
		MetaTableColumnTypes:   "bigint:map<string,string>",
		SerializationDDL:       "struct orders { i64 id, map<string,string> tags}",
		MetaTablePartitionCols: "ds/hr",
		"owner_team":           "payments",
	}, props)
}

func TestTableMetadataNoStorage(t *testing.T) {
	props := TableMetadata(slog.Default(), &Table{DBName: "d", TableName: "t"})
	assert.Equal(t, "d.t", props[MetaTableName])
	assert.Equal(t, "0", props[BucketCount])
	assert.Equal(t, "", props[MetaTableColumns])
	assert.NotContains(t, props, SerializationDDL)
	assert.NotContains(t, props, MetaTablePartitionCols)
}

func TestPartitionMetadata(t *testing.T) {
	tbl := testTable()
	part := &Partition{
		Values: []string{"2024-01-01", "00"},
		Sd: &StorageDescriptor{
			Cols:        schema.Columns{{Name: "id", Type: "bigint"}},
			Location:    "hdfs://nn/warehouse/sales.db/orders/ds=2024-01-01/hr=00",
			InputFormat: "org.apache.hadoop.hive.ql.io.RCFileInputFormat",
		},
		Parameters: map[string]string{NumFiles: "3"},
	}

	props := PartitionMetadata(slog.Default(), part, tbl)
	assert.Equal(t, "org.apache.hadoop.hive.ql.io.RCFileInputFormat", props[FileInputFormat])
	assert.Equal(t, "id", props[MetaTableColumns])
	assert.Equal(t, "3", props[NumFiles])
	assert.NotContains(t, props, "owner_team")

	// read through the table, columns and parameters come from the table
	props = PartitionSchema(slog.Default(), part, tbl)
	assert.Equal(t, "id,tags", props[MetaTableColumns])
	assert.Equal(t, "struct orders { i64 id}", props[SerializationDDL])
	assert.Equal(t, "payments", props["owner_team"])
	assert.NotContains(t, props, NumFiles)
}

func TestPartitionSchemaFromTable(t *testing.T) {
	tbl := testTable()
	tblProps := TableMetadata(slog.Default(), tbl)

	sd := &StorageDescriptor{
		Location:   "hdfs://nn/p",
		NumBuckets: 2,
		SerdeInfo: &SerDeInfo{
			SerializationLib: "org.example.SerDe",
			Parameters: map[string]string{
				MetaTableColumns: "should,not,win",
				"field.delim":    ",",
			},
		},
	}
	props := PartitionSchemaFromTable(sd, map[string]string{NumFiles: "1"}, tblProps)

	assert.Equal(t, "id,tags", props[MetaTableColumns])
	assert.Equal(t, ",", props["field.delim"])
	assert.Equal(t, "org.example.SerDe", props[SerializationLib])
	assert.Equal(t, "hdfs://nn/p", props[MetaTableLocation])
	assert.Equal(t, "2", props[BucketCount])
	assert.Equal(t, DefaultInputFormat, props[FileInputFormat])
	assert.Equal(t, "1", props[NumFiles])

	// the table properties are not modified
	assert.Equal(t, "4", tblProps[BucketCount])
	assert.NotContains(t, tblProps, "field.delim")

	props = PartitionSchemaFromTable(&StorageDescriptor{}, nil, nil)
	assert.Equal(t, DefaultOutputFormat, props[FileOutputFormat])
}

func TestSchema_LogsDDL(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	props := TableMetadata(logger, testTable())
	assert.Contains(t, buf.String(), "rendered serialization DDL")
	assert.Contains(t, buf.String(), "table=sales.orders")
	assert.Contains(t, buf.String(), `ddl="`+props[SerializationDDL]+`"`)
}
