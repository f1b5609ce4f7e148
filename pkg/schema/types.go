package schema

// Hive type names.
const (
	VoidTypeName      = "void"
	BooleanTypeName   = "boolean"
	TinyintTypeName   = "tinyint"
	SmallintTypeName  = "smallint"
	IntTypeName       = "int"
	BigintTypeName    = "bigint"
	FloatTypeName     = "float"
	DoubleTypeName    = "double"
	StringTypeName    = "string"
	DateTypeName      = "date"
	DatetimeTypeName  = "datetime"
	TimestampTypeName = "timestamp"
	DecimalTypeName   = "decimal"
	BinaryTypeName    = "binary"

	ListTypeName   = "array"
	MapTypeName    = "map"
	StructTypeName = "struct"
	UnionTypeName  = "uniontype"
)

// thriftTypes maps Hive type names to the type tokens used in Thrift DDL.
// date, datetime, timestamp and decimal have no Thrift counterpart and map
// to themselves.
var thriftTypes = map[string]string{
	BooleanTypeName:   "bool",
	TinyintTypeName:   "byte",
	SmallintTypeName:  "i16",
	IntTypeName:       "i32",
	BigintTypeName:    "i64",
	DoubleTypeName:    "double",
	FloatTypeName:     "float",
	ListTypeName:      "list",
	MapTypeName:       "map",
	StringTypeName:    "string",
	BinaryTypeName:    "binary",
	DateTypeName:      "date",
	DatetimeTypeName:  "datetime",
	TimestampTypeName: "timestamp",
	DecimalTypeName:   "decimal",
}

// primitiveTypes are the types that can be cast to each other.
var primitiveTypes = map[string]struct{}{
	VoidTypeName:      {},
	BooleanTypeName:   {},
	TinyintTypeName:   {},
	SmallintTypeName:  {},
	IntTypeName:       {},
	BigintTypeName:    {},
	FloatTypeName:     {},
	DoubleTypeName:    {},
	StringTypeName:    {},
	DateTypeName:      {},
	DatetimeTypeName:  {},
	TimestampTypeName: {},
	DecimalTypeName:   {},
	BinaryTypeName:    {},
}

// knownTypes is the set used to validate the leading name of a column type.
var knownTypes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(primitiveTypes)+4)
	for t := range primitiveTypes {
		m[t] = struct{}{}
	}
	m[ListTypeName] = struct{}{}
	m[MapTypeName] = struct{}{}
	m[UnionTypeName] = struct{}{}
	m[StructTypeName] = struct{}{}
	return m
}()

// IsPrimitive reports whether t is a primitive type name. The comparison is
// case-insensitive.
func IsPrimitive(t string) bool {
	_, ok := primitiveTypes[lower(t)]
	return ok
}

// ThriftTypeName returns the Thrift token for a single Hive type name.
func ThriftTypeName(name string) (string, bool) {
	t, ok := thriftTypes[name]
	return t, ok
}
