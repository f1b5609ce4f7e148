package lint

import (
	"strings"
	"testing"

	"github.com/block/hivemeta/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnName_Valid(t *testing.T) {
	linter := &ColumnNameLinter{}
	tbl := newTable("default", "t1", "id bigint", "user_name string", "Col2 int")
	tbl.PartitionKeys = schema.Columns{{Name: "ds", Type: "string"}}

	assert.Empty(t, linter.Lint([]TableChange{create(tbl)}))
}

func TestColumnName_Invalid(t *testing.T) {
	linter := &ColumnNameLinter{}
	tbl := newTable("sales", "orders", "id bigint", "user-name string", "total decimal(10,2)")
	tbl.PartitionKeys = schema.Columns{{Name: "day of week", Type: "string"}}

	violations := linter.Lint([]TableChange{create(tbl)})
	require.Len(t, violations, 2)

	assert.Equal(t, SeverityError, violations[0].Severity)
	assert.Contains(t, violations[0].Message, `column name "user-name"`)
	assert.Equal(t, "sales", violations[0].Location.Database)
	assert.Equal(t, "user-name", *violations[0].Location.Column)
	assert.NotNil(t, violations[0].Suggestion)

	assert.Contains(t, violations[1].Message, `partition key name "day of week"`)
}

func TestColumnName_TooLong(t *testing.T) {
	linter := &ColumnNameLinter{}
	long := strings.Repeat("a", 129)
	tbl := newTable("default", "t1", long+" int", strings.Repeat("b", 128)+" int")

	violations := linter.Lint([]TableChange{create(tbl)})
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, "longer than 128 characters")
}

func TestColumnName_Configure(t *testing.T) {
	linter := &ColumnNameLinter{}
	assert.Equal(t, map[string]string{"max_length": "128"}, linter.DefaultConfig())

	require.NoError(t, linter.Configure(map[string]string{"max_length": "4"}))
	violations := linter.Lint([]TableChange{create(newTable("default", "t1", "abcd int", "abcde int"))})
	require.Len(t, violations, 1)
	assert.Equal(t, "abcde", *violations[0].Location.Column)

	assert.Error(t, linter.Configure(map[string]string{"max_length": "zero"}))
	assert.Error(t, linter.Configure(map[string]string{"max_length": "0"}))
}

func TestColumnName_ConfiguredThroughRunLinters(t *testing.T) {
	resetBuiltins(t)

	changes := []TableChange{create(newTable("default", "t1", "abcdefgh int"))}
	violations, err := RunLinters(changes, Config{
		Settings: map[string]map[string]string{"column_name": {"max_length": "5"}},
	})
	require.NoError(t, err)
	assert.Len(t, FilterByLinter(violations, "column_name"), 1)
}

func TestColumnName_IgnoresDrops(t *testing.T) {
	linter := &ColumnNameLinter{}
	drop := TableChange{Old: newTable("default", "t1", "bad-name int")}
	assert.Empty(t, linter.Lint([]TableChange{drop}))
}
