package lint

import "fmt"

// Severity represents the severity level of a linting violation
type Severity int

const (
	// SeverityInfo indicates a suggestion or style preference
	// This is the default value if no explicit Severity is given
	SeverityInfo Severity = iota

	// SeverityWarning indicates a change that is allowed but will likely
	// surprise readers of existing data
	SeverityWarning

	// SeverityError indicates a change the metastore rejects
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Violation represents a linting violation found during analysis
type Violation struct {
	// Linter is the linter that produced this violation
	Linter Linter

	// Severity is the severity level of the violation
	Severity Severity

	// Message is a human-readable description of the violation
	Message string

	// Location provides information about where the violation occurred
	Location *Location

	// Suggestion is an optional suggestion for fixing the violation
	Suggestion *string
}

func (v Violation) String() string {
	msg := fmt.Sprintf("[%s] %s: %s", v.Severity, v.Linter.Name(), v.Message)
	if v.Location != nil {
		msg += fmt.Sprintf(" (%s)", v.Location)
	}

	if v.Suggestion != nil {
		msg += " Suggestion: " + *v.Suggestion
	}

	return msg
}

// Location provides information about where a violation occurred
type Location struct {
	Database string
	Table    string

	// Column is the name of the column or partition key (if applicable)
	Column *string
}

func locate(db, table string) *Location {
	return &Location{Database: db, Table: table}
}

func locateColumn(db, table, column string) *Location {
	return &Location{Database: db, Table: table, Column: strPtr(column)}
}

func (l *Location) String() string {
	msg := "Table: "
	if l.Database != "" {
		msg += l.Database + "."
	}
	msg += l.Table
	if l.Column != nil {
		msg += ", Column: " + *l.Column
	}
	return msg
}
