// Package typeconv maps column types from one type system to another.
package typeconv

// Mapper maps a source column type to a target type.
type Mapper interface {
	MapType(sourceType string) string
}

// TargetType represents the type system to map into
type TargetType string

const (
	// TargetTypeIdentity leaves types untouched.
	TargetTypeIdentity TargetType = "identity"
	// TargetTypeHive maps MySQL column types to Hive types.
	TargetTypeHive TargetType = "hive"
	// TargetTypeThrift maps Hive types to Thrift DDL types.
	TargetTypeThrift TargetType = "thrift"
)

// GetTypeMapper returns the appropriate type mapper for the target type
func GetTypeMapper(targetType TargetType) Mapper {
	switch targetType {
	case TargetTypeHive:
		return &HiveTypeMapper{}
	case TargetTypeThrift:
		return &ThriftTypeMapper{}
	default:
		return &IdentityTypeMapper{}
	}
}

// IdentityTypeMapper returns every type unchanged.
type IdentityTypeMapper struct{}

var _ Mapper = (*IdentityTypeMapper)(nil)

func (m *IdentityTypeMapper) MapType(sourceType string) string {
	return sourceType
}
