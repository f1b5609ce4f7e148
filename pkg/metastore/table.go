package metastore

import (
	"fmt"
	"strings"

	"github.com/block/hivemeta/pkg/schema"
)

// IsExternal reports whether the table parameters mark t as external.
func IsExternal(t *Table) bool {
	if t == nil || t.Parameters == nil {
		return false
	}
	return strings.EqualFold(t.Parameters[ExternalKey], "TRUE")
}

// IsView reports whether t is a view.
func IsView(t *Table) bool {
	return t != nil && t.TableType == VirtualView
}

// IsViewLink reports whether t is a table link to a view.
func IsViewLink(t *Table) bool {
	if t == nil || t.LinkTarget == nil {
		return false
	}
	return t.LinkTarget.TableType == VirtualView
}

// IsNonNative reports whether t is backed by a storage handler.
func IsNonNative(t *Table) bool {
	if t == nil {
		return false
	}
	_, ok := t.Parameters[MetaTableStorage]
	return ok
}

// IsIndexTable reports whether t is an index table.
func IsIndexTable(t *Table) bool {
	return t != nil && t.TableType == IndexTable
}

// IsArchived reports whether the partition has been archived.
func IsArchived(p *Partition) bool {
	return strings.EqualFold(p.Parameters[IsArchivedKey], "true")
}

// OriginalLocation returns the location an archived partition had before it
// was archived.
func OriginalLocation(p *Partition) (string, error) {
	if !IsArchived(p) {
		return "", &MetaError{Message: "partition is not archived"}
	}
	loc, ok := p.Parameters[OriginalLocationKey]
	if !ok {
		return "", &MetaError{Message: "archived partition has no original location"}
	}
	return loc, nil
}

// IndexTableName returns the name of the table backing an index.
func IndexTableName(dbName, baseTableName, indexName string) string {
	return dbName + "__" + baseTableName + "_" + indexName + "__"
}

// TableLinkName returns the name of a link to targetDB.targetTable.
func TableLinkName(targetDB, targetTable string) string {
	return targetTable + TableLinkSymbol + targetDB
}

// IsTableLinkName reports whether name is a table link name.
func IsTableLinkName(name string) bool {
	return strings.Contains(name, TableLinkSymbol)
}

// ValidateTableName validates the name of t. Table links are named
// "table@db" and both parts must be valid names.
func ValidateTableName(t *Table) bool {
	if t.TableType.IsTableLink() {
		parts := strings.Split(t.TableName, TableLinkSymbol)
		return len(parts) == 2 && schema.ValidateName(parts[0]) && schema.ValidateName(parts[1])
	}
	return schema.ValidateName(t.TableName)
}

// ValidateTable checks the rules that depend on the table type. Tables
// without a type are not checked.
func ValidateTable(t *Table) error {
	if t.TableType == "" {
		return nil
	}
	tableType, err := ParseTableType(string(t.TableType))
	if err != nil {
		return &InvalidObjectError{Message: fmt.Sprintf("Table %s has an unknown table type.", t.TableName)}
	}
	switch tableType {
	case StaticTableLink, DynamicTableLink:
		if t.LinkTarget == nil {
			return &InvalidObjectError{Message: fmt.Sprintf("Table link %s does not have its link target set", t.TableName)}
		}
		if len(t.LinkTables) > 0 {
			return &InvalidObjectError{Message: fmt.Sprintf("Table link %s itself has links pointing to it. That is not allowed", t.TableName)}
		}
	case ManagedTable, ExternalTable, IndexTable:
		if t.ViewExpandedText != "" || t.ViewOriginalText != "" {
			return &InvalidObjectError{Message: fmt.Sprintf("Table %s is not a View but has original or expanded view text set for it.", t.TableName)}
		}
		fallthrough
	case VirtualView:
		if t.LinkTarget != nil {
			return &InvalidObjectError{Message: fmt.Sprintf("%s is not a Table Link but has its link target set.", t.TableName)}
		}
	}
	return nil
}

// CheckAlterColumns checks that the columns of an existing table may be
// replaced by newCols: columns may only be added or removed at the end, and
// the types at every common position must be compatible.
func CheckAlterColumns(oldCols, newCols schema.Columns) error {
	if err := schema.CheckNoMiddleInsertOrDelete(oldCols, newCols); err != nil {
		return &InvalidOperationError{Message: err.Error(), Err: err}
	}
	if err := schema.CheckCompatibleTypes(oldCols, newCols); err != nil {
		return &InvalidOperationError{Message: err.Error(), Err: err}
	}
	return nil
}

// ValidateColumns validates the names and types of cols and the partition
// keys of t, returning an InvalidObjectError naming the first offender.
func ValidateColumns(t *Table) error {
	if t.Sd != nil {
		if bad := schema.ValidateColumns(t.Sd.Cols); bad != "" {
			return &InvalidObjectError{Message: "invalid column " + bad}
		}
		if t.Sd.SkewedInfo != nil {
			if bad := schema.ValidateSkewedColNames(t.Sd.SkewedInfo.SkewedColNames); bad != "" {
				return &InvalidObjectError{Message: "invalid skewed column name: " + bad}
			}
			if missing := schema.SkewedColNamesNotInColumns(t.Sd.SkewedInfo.SkewedColNames, t.Sd.Cols); len(missing) > 0 {
				return &InvalidObjectError{Message: "skewed column names not in table columns: " + strings.Join(missing, ",")}
			}
		}
	}
	if bad := schema.ValidateColumns(t.PartitionKeys); bad != "" {
		return &InvalidObjectError{Message: "invalid partition key " + bad}
	}
	return nil
}

// ColumnsetSchema builds a table whose columns and partition keys are all
// strings, serialized with LazySimpleSerDe.
func ColumnsetSchema(name string, columns, partCols []string) (*Table, error) {
	if columns == nil {
		return nil, &MetaError{Message: "columns not specified for table " + name}
	}
	t := &Table{
		TableName: name,
		Sd: &StorageDescriptor{
			SerdeInfo: &SerDeInfo{
				SerializationLib: LazySimpleSerDe,
				Parameters:       map[string]string{SerializationFormat: "1"},
			},
			NumBuckets: -1,
		},
		PartitionKeys: schema.Columns{},
	}
	for _, col := range columns {
		t.Sd.Cols = append(t.Sd.Cols, schema.Column{Name: col, Type: schema.StringTypeName, Comment: "'default'"})
	}
	for _, col := range partCols {
		t.PartitionKeys = append(t.PartitionKeys, schema.Column{Name: col, Type: schema.StringTypeName})
	}
	return t, nil
}
