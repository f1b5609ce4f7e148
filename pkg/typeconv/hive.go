package typeconv

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/block/hivemeta/pkg/schema"
)

// HiveTypeMapper maps MySQL column types to Hive types.
type HiveTypeMapper struct{}

var _ Mapper = (*HiveTypeMapper)(nil)

var (
	// Regex to extract length/precision from type strings
	lengthRegex    = regexp.MustCompile(`\((\d+)\)`)
	precisionRegex = regexp.MustCompile(`\((\d+),\s*(\d+)\)`)
)

func (m *HiveTypeMapper) MapType(mysqlType string) string {
	info := ExtractTypeInfo(mysqlType)
	upperType := strings.ToUpper(mysqlType)

	switch info.BaseType {
	// Integer types. Unsigned values need the next wider type.
	case "TINYINT":
		// TINYINT(1) is boolean in MySQL
		if strings.Contains(upperType, "TINYINT(1)") {
			return schema.BooleanTypeName
		}
		if info.Unsigned {
			return schema.SmallintTypeName
		}
		return schema.TinyintTypeName
	case "SMALLINT":
		if info.Unsigned {
			return schema.IntTypeName
		}
		return schema.SmallintTypeName
	case "MEDIUMINT":
		return schema.IntTypeName
	case "INT", "INTEGER":
		if info.Unsigned {
			return schema.BigintTypeName
		}
		return schema.IntTypeName
	case "BIGINT":
		if info.Unsigned {
			return schema.DecimalTypeName + "(20,0)"
		}
		return schema.BigintTypeName
	case "BOOL", "BOOLEAN":
		return schema.BooleanTypeName
	case "YEAR":
		return schema.SmallintTypeName

	// Floating point types
	case "FLOAT":
		return schema.FloatTypeName
	case "DOUBLE", "DOUBLE PRECISION", "REAL":
		return schema.DoubleTypeName

	// Decimal types - preserve precision and scale
	case "DECIMAL", "NUMERIC", "DEC":
		if info.Precision > 0 {
			return fmt.Sprintf("%s(%d,%d)", schema.DecimalTypeName, info.Precision, info.Scale)
		} else if info.Length > 0 {
			return fmt.Sprintf("%s(%d,0)", schema.DecimalTypeName, info.Length)
		}
		return schema.DecimalTypeName

	// Character types, ENUM, SET and JSON are all read back as strings
	case "CHAR", "VARCHAR", "TINYTEXT", "TEXT", "MEDIUMTEXT", "LONGTEXT",
		"ENUM", "SET", "JSON", "TIME":
		return schema.StringTypeName

	// Binary types
	case "BINARY", "VARBINARY", "TINYBLOB", "BLOB", "MEDIUMBLOB", "LONGBLOB", "BIT":
		return schema.BinaryTypeName

	// Date and time types
	case "DATE":
		return schema.DateTypeName
	case "DATETIME", "TIMESTAMP":
		return schema.TimestampTypeName

	default:
		// If we don't recognize the type, return it as-is
		// so that validation reports it rather than silently converting it.
		return mysqlType
	}
}

// TypeInfo holds the parts of a MySQL type string.
type TypeInfo struct {
	BaseType  string
	Length    int
	Precision int
	Scale     int
	Unsigned  bool
}

// ExtractTypeInfo extracts base type, length, precision, and scale from a MySQL type string
func ExtractTypeInfo(mysqlType string) TypeInfo {
	info := TypeInfo{}

	// Normalize
	upperType := strings.ToUpper(strings.TrimSpace(mysqlType))

	// Check for UNSIGNED and ZEROFILL
	info.Unsigned = strings.Contains(upperType, "UNSIGNED")
	upperType = strings.Replace(upperType, "UNSIGNED", "", 1)
	upperType = strings.TrimSpace(strings.Replace(upperType, "ZEROFILL", "", 1))

	// Extract base type
	if idx := strings.Index(upperType, "("); idx != -1 {
		info.BaseType = strings.TrimSpace(upperType[:idx])

		// Extract length/precision/scale
		if matches := precisionRegex.FindStringSubmatch(upperType); len(matches) == 3 {
			info.Precision, _ = strconv.Atoi(matches[1])
			info.Scale, _ = strconv.Atoi(matches[2])
		} else if matches := lengthRegex.FindStringSubmatch(upperType); len(matches) == 2 {
			info.Length, _ = strconv.Atoi(matches[1])
		}
	} else {
		info.BaseType = upperType
	}

	return info
}
