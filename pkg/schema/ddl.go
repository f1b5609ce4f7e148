package schema

import "strings"

// StructDDL renders columns as a Thrift struct definition, for example
//
//	struct result { string a, map<i32,string> b}
func StructDDL(structName string, cols Columns) string {
	var sb strings.Builder
	sb.WriteString("struct ")
	sb.WriteString(structName)
	sb.WriteString(" { ")
	for i, col := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(ThriftType(col.Type))
		sb.WriteByte(' ')
		sb.WriteString(col.Name)
	}
	sb.WriteString("}")
	return sb.String()
}

// FullDDL renders the struct DDL followed by the column names and the column
// types, separated by '#':
//
//	struct result { string a, map<i32,string> b}#a,b#string:map<int,string>
func FullDDL(structName string, cols Columns) string {
	var sb strings.Builder
	sb.WriteString(StructDDL(structName, cols))
	sb.WriteByte('#')
	sb.WriteString(strings.Join(cols.Names(), ","))
	sb.WriteByte('#')
	sb.WriteString(strings.Join(cols.Types(), ":"))
	return sb.String()
}
