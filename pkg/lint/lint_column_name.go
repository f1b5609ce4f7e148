package lint

import (
	"fmt"
	"strconv"

	"github.com/block/hivemeta/pkg/schema"
)

const defaultMaxColumnNameLength = 128

// ColumnNameLinter checks that column and partition key names are made of
// letters, digits and underscores and are not too long.
type ColumnNameLinter struct {
	maxLength int
}

func init() {
	Register(&ColumnNameLinter{})
}

func (l *ColumnNameLinter) String() string {
	return Stringer(l)
}

func (l *ColumnNameLinter) Name() string {
	return "column_name"
}

func (l *ColumnNameLinter) Description() string {
	return "Checks that column and partition key names are valid identifiers"
}

func (l *ColumnNameLinter) DefaultConfig() map[string]string {
	return map[string]string{"max_length": strconv.Itoa(defaultMaxColumnNameLength)}
}

func (l *ColumnNameLinter) Configure(config map[string]string) error {
	n, err := strconv.Atoi(config["max_length"])
	if err != nil || n <= 0 {
		return fmt.Errorf("max_length must be a positive integer, got %q", config["max_length"])
	}
	l.maxLength = n
	return nil
}

func (l *ColumnNameLinter) Lint(changes []TableChange) (violations []Violation) {
	maxLength := l.maxLength
	if maxLength == 0 {
		maxLength = defaultMaxColumnNameLength
	}
	for _, change := range changes {
		if change.IsDrop() {
			continue
		}
		t := change.New
		check := func(kind string, cols schema.Columns) {
			for _, col := range cols {
				switch {
				case !schema.ValidateName(col.Name):
					violations = append(violations, Violation{
						Linter:     l,
						Severity:   SeverityError,
						Message:    fmt.Sprintf("Invalid %s name %q in table %q", kind, col.Name, t.TableName),
						Location:   locateColumn(t.DBName, t.TableName, col.Name),
						Suggestion: strPtr("Use only letters, digits and underscores"),
					})
				case len(col.Name) > maxLength:
					violations = append(violations, Violation{
						Linter:   l,
						Severity: SeverityError,
						Message:  fmt.Sprintf("%s name %q in table %q is longer than %d characters", kind, col.Name, t.TableName, maxLength),
						Location: locateColumn(t.DBName, t.TableName, col.Name),
					})
				}
			}
		}
		check("column", columns(t))
		check("partition key", t.PartitionKeys)
	}
	return violations
}
