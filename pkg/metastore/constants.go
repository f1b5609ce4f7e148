package metastore

// Keys of the schema properties handed to serializers.
const (
	FileInputFormat          = "file.inputformat"
	FileOutputFormat         = "file.outputformat"
	MetaTableName            = "name"
	MetaTableLocation        = "location"
	MetaTableColumns         = "columns"
	MetaTableColumnTypes     = "columns.types"
	MetaTablePartitionCols   = "partition_columns"
	MetaTableStorage         = "storage_handler"
	BucketCount              = "bucket_count"
	BucketFieldName          = "bucket_field_name"
	SerializationLib         = "serialization.lib"
	SerializationDDL         = "serialization.ddl"
	SerializationFormat      = "serialization.format"
	IsArchivedKey            = "is_archived"
	OriginalLocationKey      = "original_location"
	ExternalKey              = "EXTERNAL"
	PartitionWhitelistConfig = "hive.metastore.partition.name.whitelist.pattern"
)

// Defaults used when a storage descriptor leaves them unset.
const (
	DefaultInputFormat  = "org.apache.hadoop.mapred.SequenceFileInputFormat"
	DefaultOutputFormat = "org.apache.hadoop.mapred.SequenceFileOutputFormat"
	LazySimpleSerDe     = "org.apache.hadoop.hive.serde2.lazy.LazySimpleSerDe"
)

// Statistics parameters.
const (
	NumFiles    = "numFiles"
	TotalSize   = "totalSize"
	RowCount    = "numRows"
	RawDataSize = "rawDataSize"
)

// FastStats are the statistics that can be gathered without scanning data.
var FastStats = []string{NumFiles, TotalSize}
