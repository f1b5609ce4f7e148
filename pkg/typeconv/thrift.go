package typeconv

import "github.com/block/hivemeta/pkg/schema"

// ThriftTypeMapper maps Hive types to the types used in Thrift DDL.
type ThriftTypeMapper struct{}

var _ Mapper = (*ThriftTypeMapper)(nil)

func (m *ThriftTypeMapper) MapType(hiveType string) string {
	return schema.ThriftType(hiveType)
}
