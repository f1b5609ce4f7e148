package lint

import (
	"fmt"

	"github.com/block/hivemeta/pkg/schema"
)

// SkewedColumnsLinter checks that skewed column names are valid and name
// columns of the table.
type SkewedColumnsLinter struct{}

func init() {
	Register(&SkewedColumnsLinter{})
}

func (l *SkewedColumnsLinter) String() string {
	return Stringer(l)
}

func (l *SkewedColumnsLinter) Name() string {
	return "skewed_columns"
}

func (l *SkewedColumnsLinter) Description() string {
	return "Checks that skewed column names refer to table columns"
}

func (l *SkewedColumnsLinter) Lint(changes []TableChange) (violations []Violation) {
	for _, change := range changes {
		if change.IsDrop() {
			continue
		}
		t := change.New
		if t.Sd == nil || t.Sd.SkewedInfo == nil {
			continue
		}
		names := t.Sd.SkewedInfo.SkewedColNames
		if bad := schema.ValidateSkewedColNames(names); bad != "" {
			violations = append(violations, Violation{
				Linter:   l,
				Severity: SeverityError,
				Message:  fmt.Sprintf("Invalid skewed column name %q in table %q", bad, t.TableName),
				Location: locateColumn(t.DBName, t.TableName, bad),
			})
			continue
		}
		for _, missing := range schema.SkewedColNamesNotInColumns(names, t.Sd.Cols) {
			violations = append(violations, Violation{
				Linter:   l,
				Severity: SeverityError,
				Message:  fmt.Sprintf("Skewed column %q is not a column of table %q", missing, t.TableName),
				Location: locateColumn(t.DBName, t.TableName, missing),
			})
		}
	}
	return violations
}
