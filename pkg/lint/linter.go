package lint

import (
	"github.com/block/hivemeta/pkg/metastore"
	"github.com/block/hivemeta/pkg/schema"
)

// TableChange is one table before and after a proposed change. Old is nil
// for a new table and New is nil for a dropped one. When a whole schema is
// linted every table is a TableChange with only New set.
type TableChange struct {
	Old *metastore.Table
	New *metastore.Table
}

// Table returns the table as it will be after the change, or the dropped
// table.
func (c TableChange) Table() *metastore.Table {
	if c.New != nil {
		return c.New
	}
	return c.Old
}

func (c TableChange) IsCreate() bool { return c.Old == nil && c.New != nil }
func (c TableChange) IsDrop() bool   { return c.Old != nil && c.New == nil }
func (c TableChange) IsAlter() bool  { return c.Old != nil && c.New != nil }

func columns(t *metastore.Table) schema.Columns {
	if t == nil || t.Sd == nil {
		return nil
	}
	return t.Sd.Cols
}

// Linter is the interface that all linters must implement
type Linter interface {
	// Name returns the unique name of this linter
	Name() string

	// Description returns a human-readable description of what this linter checks
	Description() string

	// Lint checks the changes and returns any violations found.
	Lint(changes []TableChange) []Violation

	// String returns a string representation of the linter
	String() string
}

// ConfigurableLinter is an optional interface for linters that support configuration
type ConfigurableLinter interface {
	Linter

	// Configure applies configuration to the linter
	Configure(config map[string]string) error

	// DefaultConfig returns the default configuration for this linter
	DefaultConfig() map[string]string
}

// Stringer renders a linter as "name: description".
func Stringer(l Linter) string {
	return l.Name() + ": " + l.Description()
}

func strPtr(s string) *string {
	return &s
}
