package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionalRename_Rename(t *testing.T) {
	linter := &PositionalRenameLinter{}
	old := newTable("default", "t1", "a int", "b string")
	next := newTable("default", "t1", "a int", "c string")

	violations := linter.Lint([]TableChange{alter(old, next)})
	require.Len(t, violations, 1)
	assert.Equal(t, SeverityWarning, violations[0].Severity)
	assert.Contains(t, violations[0].Message, `Column 2 of table "t1" renamed from "b" to "c"`)
	assert.Equal(t, "b", *violations[0].Location.Column)
}

func TestPositionalRename_Append(t *testing.T) {
	linter := &PositionalRenameLinter{}
	old := newTable("default", "t1", "a int")
	next := newTable("default", "t1", "a int", "b int")

	assert.Empty(t, linter.Lint([]TableChange{alter(old, next)}))
}

func TestPositionalRename_LeavesMiddleInsertAlone(t *testing.T) {
	linter := &PositionalRenameLinter{}
	old := newTable("default", "t1", "a int", "b int")
	next := newTable("default", "t1", "a int", "x int", "b int")

	assert.Empty(t, linter.Lint([]TableChange{alter(old, next)}))
}

func TestPositionalRename_ThroughRunLinters(t *testing.T) {
	resetBuiltins(t)

	old := newTable("default", "t1", "a int", "b string")
	next := newTable("default", "t1", "a int", "c string")
	violations, err := RunLinters([]TableChange{alter(old, next)}, Config{})
	require.NoError(t, err)
	assert.False(t, HasErrors(violations))
	assert.True(t, HasWarnings(violations))

	violations, err = RunLinters([]TableChange{alter(old, next)}, Config{Enabled: map[string]bool{"positional_rename": false}})
	require.NoError(t, err)
	assert.Empty(t, violations)
}
