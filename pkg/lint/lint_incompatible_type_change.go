package lint

import (
	"fmt"

	"github.com/block/hivemeta/pkg/schema"
)

// IncompatibleTypeChangeLinter rejects changing the type of a column to one
// existing data cannot be read as. Primitive types may change into each
// other; any other change must keep the type string as it is.
type IncompatibleTypeChangeLinter struct{}

func init() {
	Register(&IncompatibleTypeChangeLinter{})
}

func (l *IncompatibleTypeChangeLinter) String() string {
	return Stringer(l)
}

func (l *IncompatibleTypeChangeLinter) Name() string {
	return "incompatible_type_change"
}

func (l *IncompatibleTypeChangeLinter) Description() string {
	return "Detects column type changes that existing data cannot be read as"
}

func (l *IncompatibleTypeChangeLinter) Lint(changes []TableChange) (violations []Violation) {
	for _, change := range changes {
		if !change.IsAlter() {
			continue
		}
		oldCols, newCols := columns(change.Old), columns(change.New)
		t := change.New
		for i := range min(len(oldCols), len(newCols)) {
			from, to := oldCols[i], newCols[i]
			if schema.Compatible(from.Type, to.Type) {
				continue
			}
			violations = append(violations, Violation{
				Linter:   l,
				Severity: SeverityError,
				Message:  fmt.Sprintf("Column %q in table %q cannot change type from %s to %s", to.Name, t.TableName, from.Type, to.Type),
				Location: locateColumn(t.DBName, t.TableName, to.Name),
			})
		}
	}
	return violations
}
