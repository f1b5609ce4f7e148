package lint

import (
	"fmt"
	"slices"

	"github.com/block/hivemeta/pkg/schema"
)

// ColumnTypeLinter checks that column and partition key types start with a
// known Hive type name. Only the leading type name is checked, so the
// parameters of array, map, struct and uniontype are not.
type ColumnTypeLinter struct{}

func init() {
	Register(&ColumnTypeLinter{})
}

func (l *ColumnTypeLinter) String() string {
	return Stringer(l)
}

func (l *ColumnTypeLinter) Name() string {
	return "column_type"
}

func (l *ColumnTypeLinter) Description() string {
	return "Checks that column types start with a known Hive type"
}

func (l *ColumnTypeLinter) Lint(changes []TableChange) (violations []Violation) {
	for _, change := range changes {
		if change.IsDrop() {
			continue
		}
		t := change.New
		for _, col := range slices.Concat(columns(t), t.PartitionKeys) {
			if schema.ValidateType(col.Type) {
				continue
			}
			violations = append(violations, Violation{
				Linter:   l,
				Severity: SeverityError,
				Message:  fmt.Sprintf("Invalid type %q for column %q in table %q", col.Type, col.Name, t.TableName),
				Location: locateColumn(t.DBName, t.TableName, col.Name),
			})
		}
	}
	return violations
}
