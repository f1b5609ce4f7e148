package metastore

import (
	"log/slog"
	"maps"
	"strconv"
	"strings"

	"github.com/block/hivemeta/pkg/schema"
)

// Properties is the flat key/value schema description handed to
// serializers.
type Properties map[string]string

// TableMetadata returns the schema properties of a table.
func TableMetadata(logger *slog.Logger, t *Table) Properties {
	return Schema(logger, t.Sd, t.Sd, t.Parameters, t.DBName, t.TableName, t.PartitionKeys)
}

// PartitionMetadata returns the schema properties of a partition, using the
// partition's own columns and parameters.
func PartitionMetadata(logger *slog.Logger, p *Partition, t *Table) Properties {
	return Schema(logger, p.Sd, p.Sd, p.Parameters, t.DBName, t.TableName, t.PartitionKeys)
}

// PartitionSchema returns the schema properties of a partition read through
// the table: storage from the partition, columns and parameters from the
// table.
func PartitionSchema(logger *slog.Logger, p *Partition, t *Table) Properties {
	return Schema(logger, p.Sd, t.Sd, t.Parameters, t.DBName, t.TableName, t.PartitionKeys)
}

// Schema builds schema properties. Storage settings come from sd, column
// names and types from tblSd.
func Schema(logger *slog.Logger, sd, tblSd *StorageDescriptor, parameters map[string]string, dbName, tableName string, partitionKeys schema.Columns) Properties {
	if sd == nil {
		sd = &StorageDescriptor{}
	}
	if tblSd == nil {
		tblSd = &StorageDescriptor{}
	}
	props := Properties{}

	props[FileInputFormat] = orDefault(sd.InputFormat, DefaultInputFormat)
	props[FileOutputFormat] = orDefault(sd.OutputFormat, DefaultOutputFormat)
	props[MetaTableName] = dbName + "." + tableName
	if sd.Location != "" {
		props[MetaTableLocation] = sd.Location
	}
	props[BucketCount] = strconv.Itoa(sd.NumBuckets)
	if len(sd.BucketCols) > 0 {
		props[BucketFieldName] = sd.BucketCols[0]
	}
	if sd.SerdeInfo != nil {
		maps.Copy(props, sd.SerdeInfo.Parameters)
		if sd.SerdeInfo.SerializationLib != "" {
			props[SerializationLib] = sd.SerdeInfo.SerializationLib
		}
	}

	props[MetaTableColumns] = strings.Join(tblSd.Cols.Names(), ",")
	props[MetaTableColumnTypes] = strings.Join(tblSd.Cols.Types(), ":")
	if sd.Cols != nil {
		ddl := schema.StructDDL(tableName, sd.Cols)
		logger.Debug("rendered serialization DDL", "table", dbName+"."+tableName, "ddl", ddl)
		props[SerializationDDL] = ddl
	}

	if len(partitionKeys) > 0 {
		props[MetaTablePartitionCols] = strings.Join(partitionKeys.Names(), "/")
	}

	maps.Copy(props, parameters)
	return props
}

// PartitionSchemaFromTable derives partition properties from already built
// table properties, overriding only what the partition changes.
func PartitionSchemaFromTable(sd *StorageDescriptor, parameters map[string]string, tblSchema Properties) Properties {
	if sd == nil {
		sd = &StorageDescriptor{}
	}
	props := maps.Clone(tblSchema)
	if props == nil {
		props = Properties{}
	}

	if sd.InputFormat != "" {
		props[FileInputFormat] = sd.InputFormat
	} else if _, ok := props[FileInputFormat]; !ok {
		props[FileInputFormat] = DefaultInputFormat
	}
	if sd.OutputFormat != "" {
		props[FileOutputFormat] = sd.OutputFormat
	} else if _, ok := props[FileOutputFormat]; !ok {
		props[FileOutputFormat] = DefaultOutputFormat
	}

	if sd.Location != "" {
		props[MetaTableLocation] = sd.Location
	}
	props[BucketCount] = strconv.Itoa(sd.NumBuckets)
	if len(sd.BucketCols) > 0 {
		props[BucketFieldName] = sd.BucketCols[0]
	}

	if sd.SerdeInfo != nil {
		for k, v := range sd.SerdeInfo.Parameters {
			// The column lists are shared with the table.
			if _, ok := props[k]; ok && (k == MetaTableColumns || k == MetaTableColumnTypes || k == MetaTablePartitionCols) {
				continue
			}
			props[k] = v
		}
		if sd.SerdeInfo.SerializationLib != "" {
			props[SerializationLib] = sd.SerdeInfo.SerializationLib
		}
	}

	maps.Copy(props, parameters)
	return props
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
