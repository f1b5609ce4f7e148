package schema

import (
	"fmt"
	"strings"
)

// EvolutionError is returned when columns were added or removed somewhere
// other than the end of the column list.
type EvolutionError struct {
	OldName string
	NewName string
}

func (e *EvolutionError) Error() string {
	return fmt.Sprintf("columns can only be added or removed at the end of a table; "+
		"if that is what is happening here, a column is also being renamed and the rename "+
		"must be done in a separate operation (old column: %s, new column: %s)", e.OldName, e.NewName)
}

// IncompatibleTypesError lists the new columns whose types cannot be cast
// from the type previously stored at the same position.
type IncompatibleTypesError struct {
	Columns []string
}

func (e *IncompatibleTypesError) Error() string {
	return "the following columns have types incompatible with the existing columns in their respective positions: " +
		strings.Join(e.Columns, ",")
}

// Compatible reports whether a column of type oldType can be read as newType.
// Types are compatible when they are identical or when both are primitive.
func Compatible(oldType, newType string) bool {
	if oldType == newType {
		return true
	}
	return IsPrimitive(oldType) && IsPrimitive(newType)
}

// IncompatibleColumns compares types position by position up to the length
// of the shorter list and returns the names of the new columns whose type
// changed incompatibly. Columns past that length are not checked.
func IncompatibleColumns(oldCols, newCols Columns) []string {
	var names []string
	n := min(len(oldCols), len(newCols))
	for i := 0; i < n; i++ {
		if !Compatible(oldCols[i].Type, newCols[i].Type) {
			names = append(names, newCols[i].Name)
		}
	}
	return names
}

// CheckCompatibleTypes returns an *IncompatibleTypesError when
// IncompatibleColumns finds anything.
func CheckCompatibleTypes(oldCols, newCols Columns) error {
	if names := IncompatibleColumns(oldCols, newCols); len(names) > 0 {
		return &IncompatibleTypesError{Columns: names}
	}
	return nil
}

// CheckNoMiddleInsertOrDelete returns an *EvolutionError when the column
// count changed and the names of the common prefix do not line up.
//
// Lists of equal length always pass, even when names differ: a same-length
// change is not an insert or delete.
func CheckNoMiddleInsertOrDelete(oldCols, newCols Columns) error {
	if len(oldCols) == len(newCols) {
		return nil
	}
	n := min(len(oldCols), len(newCols))
	for i := 0; i < n; i++ {
		if oldCols[i].Name != newCols[i].Name {
			return &EvolutionError{OldName: oldCols[i].Name, NewName: newCols[i].Name}
		}
	}
	return nil
}

// CheckColumnChange runs CheckNoMiddleInsertOrDelete followed by
// CheckCompatibleTypes, the order used when altering a table.
func CheckColumnChange(oldCols, newCols Columns) error {
	if err := CheckNoMiddleInsertOrDelete(oldCols, newCols); err != nil {
		return err
	}
	return CheckCompatibleTypes(oldCols, newCols)
}
