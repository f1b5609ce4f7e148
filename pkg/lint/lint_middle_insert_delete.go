package lint

import (
	"github.com/block/hivemeta/pkg/schema"
)

// MiddleInsertDeleteLinter rejects column changes that insert or remove a
// column anywhere but at the end. Data files are read by position, so such
// a change shifts every later column onto the wrong data.
type MiddleInsertDeleteLinter struct{}

func init() {
	Register(&MiddleInsertDeleteLinter{})
}

func (l *MiddleInsertDeleteLinter) String() string {
	return Stringer(l)
}

func (l *MiddleInsertDeleteLinter) Name() string {
	return "middle_insert_delete"
}

func (l *MiddleInsertDeleteLinter) Description() string {
	return "Detects columns inserted or deleted anywhere but at the end"
}

func (l *MiddleInsertDeleteLinter) Lint(changes []TableChange) (violations []Violation) {
	for _, change := range changes {
		if !change.IsAlter() {
			continue
		}
		err := schema.CheckNoMiddleInsertOrDelete(columns(change.Old), columns(change.New))
		if err == nil {
			continue
		}
		t := change.New
		violations = append(violations, Violation{
			Linter:     l,
			Severity:   SeverityError,
			Message:    err.Error(),
			Location:   locate(t.DBName, t.TableName),
			Suggestion: strPtr("Add new columns at the end, and drop columns only from the end"),
		})
	}
	return violations
}
