package lint

import (
	"fmt"

	"github.com/block/hivemeta/pkg/schema"
)

// PositionalRenameLinter warns about columns whose name changes while they
// keep their position. The metastore accepts this, but since data is read
// by position the renamed column keeps returning the old column's values.
// Changes that insert or delete in the middle are left to
// MiddleInsertDeleteLinter.
type PositionalRenameLinter struct{}

func init() {
	Register(&PositionalRenameLinter{})
}

func (l *PositionalRenameLinter) String() string {
	return Stringer(l)
}

func (l *PositionalRenameLinter) Name() string {
	return "positional_rename"
}

func (l *PositionalRenameLinter) Description() string {
	return "Detects columns renamed in place"
}

func (l *PositionalRenameLinter) Lint(changes []TableChange) (violations []Violation) {
	for _, change := range changes {
		if !change.IsAlter() {
			continue
		}
		oldCols, newCols := columns(change.Old), columns(change.New)
		if schema.CheckNoMiddleInsertOrDelete(oldCols, newCols) != nil {
			continue
		}
		t := change.New
		for i := range min(len(oldCols), len(newCols)) {
			if oldCols[i].Name == newCols[i].Name {
				continue
			}
			violations = append(violations, Violation{
				Linter:     l,
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("Column %d of table %q renamed from %q to %q; existing data in that position is read as %q", i+1, t.TableName, oldCols[i].Name, newCols[i].Name, newCols[i].Name),
				Location:   locateColumn(t.DBName, t.TableName, oldCols[i].Name),
				Suggestion: strPtr("Add a new column at the end instead of renaming"),
			})
		}
	}
	return violations
}
