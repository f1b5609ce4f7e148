package lint

import (
	"fmt"

	"github.com/block/hivemeta/pkg/metastore"
)

// TableNameLinter checks table names, and that a table satisfies the rules
// of its table type.
type TableNameLinter struct{}

func init() {
	Register(&TableNameLinter{})
}

func (l *TableNameLinter) String() string {
	return Stringer(l)
}

func (l *TableNameLinter) Name() string {
	return "table_name"
}

func (l *TableNameLinter) Description() string {
	return "Checks table names and table type rules"
}

func (l *TableNameLinter) Lint(changes []TableChange) (violations []Violation) {
	for _, change := range changes {
		if !change.IsCreate() {
			continue
		}
		t := change.New
		if !metastore.ValidateTableName(t) {
			violations = append(violations, Violation{
				Linter:   l,
				Severity: SeverityError,
				Message:  fmt.Sprintf("Invalid table name %q", t.TableName),
				Location: locate(t.DBName, t.TableName),
			})
		}
		if err := metastore.ValidateTable(t); err != nil {
			violations = append(violations, Violation{
				Linter:   l,
				Severity: SeverityError,
				Message:  err.Error(),
				Location: locate(t.DBName, t.TableName),
			})
		}
	}
	return violations
}
