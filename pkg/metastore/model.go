// Package metastore holds the Hive metastore object model together with the
// rules the metastore applies to it: table and partition validation, schema
// properties handed to serializers, and fast statistics bookkeeping.
package metastore

import (
	"fmt"

	"github.com/block/hivemeta/pkg/schema"
)

// TableType is the kind of a table.
type TableType string

const (
	ManagedTable     TableType = "MANAGED_TABLE"
	ExternalTable    TableType = "EXTERNAL_TABLE"
	VirtualView      TableType = "VIRTUAL_VIEW"
	IndexTable       TableType = "INDEX_TABLE"
	StaticTableLink  TableType = "STATIC_TABLE_LINK"
	DynamicTableLink TableType = "DYNAMIC_TABLE_LINK"
)

const (
	TableLinkSymbol   = "@"
	DefaultDatabase   = "default"
	DefaultDBComment  = "Default Hive database"
	DatabaseDirSuffix = ".db"
)

// ParseTableType returns the TableType named by s.
func ParseTableType(s string) (TableType, error) {
	switch t := TableType(s); t {
	case ManagedTable, ExternalTable, VirtualView, IndexTable, StaticTableLink, DynamicTableLink:
		return t, nil
	}
	return "", fmt.Errorf("unknown table type %q", s)
}

// IsTableLink reports whether t is one of the table link types.
func (t TableType) IsTableLink() bool {
	return t == StaticTableLink || t == DynamicTableLink
}

type Database struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	LocationURI string            `json:"location_uri,omitempty"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}

type SerDeInfo struct {
	Name             string            `json:"name,omitempty"`
	SerializationLib string            `json:"serialization_lib,omitempty"`
	Parameters       map[string]string `json:"parameters,omitempty"`
}

type Order struct {
	Col   string `json:"col"`
	Order int    `json:"order"`
}

type SkewedInfo struct {
	SkewedColNames  []string   `json:"skewed_col_names,omitempty"`
	SkewedColValues [][]string `json:"skewed_col_values,omitempty"`
}

type StorageDescriptor struct {
	Cols         schema.Columns    `json:"cols"`
	Location     string            `json:"location,omitempty"`
	InputFormat  string            `json:"input_format,omitempty"`
	OutputFormat string            `json:"output_format,omitempty"`
	Compressed   bool              `json:"compressed,omitempty"`
	NumBuckets   int               `json:"num_buckets"`
	SerdeInfo    *SerDeInfo        `json:"serde_info,omitempty"`
	BucketCols   []string          `json:"bucket_cols,omitempty"`
	SortCols     []Order           `json:"sort_cols,omitempty"`
	Parameters   map[string]string `json:"parameters,omitempty"`
	SkewedInfo   *SkewedInfo       `json:"skewed_info,omitempty"`
}

type Table struct {
	TableName        string             `json:"table_name"`
	DBName           string             `json:"db_name"`
	Owner            string             `json:"owner,omitempty"`
	CreateTime       int64              `json:"create_time,omitempty"`
	LastAccessTime   int64              `json:"last_access_time,omitempty"`
	Retention        int                `json:"retention,omitempty"`
	Sd               *StorageDescriptor `json:"sd,omitempty"`
	PartitionKeys    schema.Columns     `json:"partition_keys,omitempty"`
	Parameters       map[string]string  `json:"parameters,omitempty"`
	ViewOriginalText string             `json:"view_original_text,omitempty"`
	ViewExpandedText string             `json:"view_expanded_text,omitempty"`
	TableType        TableType          `json:"table_type,omitempty"`
	// LinkTarget is the table a table link points at.
	LinkTarget *Table `json:"link_target,omitempty"`
	// LinkTables are the table links pointing at this table.
	LinkTables []*Table `json:"link_tables,omitempty"`
}

type Partition struct {
	Values         []string           `json:"values"`
	DBName         string             `json:"db_name"`
	TableName      string             `json:"table_name"`
	CreateTime     int64              `json:"create_time,omitempty"`
	LastAccessTime int64              `json:"last_access_time,omitempty"`
	Sd             *StorageDescriptor `json:"sd,omitempty"`
	Parameters     map[string]string  `json:"parameters,omitempty"`
}

// StringColumnStatsData holds the statistics of a string column.
type StringColumnStatsData struct {
	MaxColLen int64   `json:"max_col_len"`
	AvgColLen float64 `json:"avg_col_len"`
	NumNulls  int64   `json:"num_nulls"`
	NumDVs    int64   `json:"num_dvs"`
}

func (s StringColumnStatsData) String() string {
	return fmt.Sprintf("StringColumnStatsData{maxColLen=%d, avgColLen=%g, numNulls=%d, numDVs=%d}",
		s.MaxColLen, s.AvgColLen, s.NumNulls, s.NumDVs)
}
