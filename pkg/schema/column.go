// Package schema converts Hive column definitions between the SQL-style type
// notation and the Thrift DDL notation, validates column names and types, and
// decides which column changes are safe during schema evolution.
//
// Everything in this package is a pure function over its inputs and a few
// read-only lookup tables, so it is safe for concurrent use.
package schema

import "strings"

// Column is a single column definition. Column identity is positional:
// the index of a Column within Columns is significant.
type Column struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Comment string `json:"comment,omitempty"`
}

// Columns is an ordered list of column definitions.
type Columns []Column

// Names returns the column names in order.
func (c Columns) Names() []string {
	names := make([]string, 0, len(c))
	for _, col := range c {
		names = append(names, col.Name)
	}
	return names
}

// Types returns the column types in order.
func (c Columns) Types() []string {
	types := make([]string, 0, len(c))
	for _, col := range c {
		types = append(types, col.Type)
	}
	return types
}

// ByName returns the first column named name, or nil.
func (c Columns) ByName(name string) *Column {
	for i := range c {
		if c[i].Name == name {
			return &c[i]
		}
	}
	return nil
}

// ColumnNames returns the column names joined with ",".
func ColumnNames(cols Columns) string {
	return strings.Join(cols.Names(), ",")
}

// ColumnTypes returns the column types joined with ",".
func ColumnTypes(cols Columns) string {
	return strings.Join(cols.Types(), ",")
}

// Equal reports whether a and b have the same names and types in the same
// order. Comments are ignored.
func Equal(a, b Columns) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Type != b[i].Type {
			return false
		}
	}
	return true
}

// ListType returns the Hive type name of a list of t.
func ListType(t string) string {
	return ListTypeName + "<" + t + ">"
}

// MapType returns the Hive type name of a map from k to v.
func MapType(k, v string) string {
	return MapTypeName + "<" + k + "," + v + ">"
}
