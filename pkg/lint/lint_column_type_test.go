package lint

import (
	"testing"

	"github.com/block/hivemeta/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnType_Valid(t *testing.T) {
	linter := &ColumnTypeLinter{}
	tbl := newTable("default", "t1",
		"a int",
		"b decimal(10,2)",
		"c array<string>",
		"d map<string,struct<x:int>>",
		"e uniontype<int,string>",
		"f timestamp",
	)
	tbl.PartitionKeys = schema.Columns{{Name: "ds", Type: "string"}}

	assert.Empty(t, linter.Lint([]TableChange{create(tbl)}))
}

func TestColumnType_LeadingTokenOnly(t *testing.T) {
	linter := &ColumnTypeLinter{}
	// only the leading type name is checked
	tbl := newTable("default", "t1", "a array<bogus>", "b map<nope,nope>")

	assert.Empty(t, linter.Lint([]TableChange{create(tbl)}))
}

func TestColumnType_Invalid(t *testing.T) {
	linter := &ColumnTypeLinter{}
	tbl := newTable("default", "t1", "a varchar2", "b <int>", "c ")
	tbl.PartitionKeys = schema.Columns{{Name: "ds", Type: "interval"}}

	violations := linter.Lint([]TableChange{create(tbl)})
	require.Len(t, violations, 4)
	assert.Contains(t, violations[0].Message, `"varchar2"`)
	assert.Equal(t, "b", *violations[1].Location.Column)
	assert.Equal(t, "c", *violations[2].Location.Column)
	assert.Equal(t, "ds", *violations[3].Location.Column)
	for _, v := range violations {
		assert.Equal(t, SeverityError, v.Severity)
	}
}

func TestColumnType_DoesNotModifyColumns(t *testing.T) {
	linter := &ColumnTypeLinter{}
	tbl := newTable("default", "t1", "a int")
	tbl.Sd.Cols = append(make(schema.Columns, 0, 4), tbl.Sd.Cols...)
	tbl.PartitionKeys = schema.Columns{{Name: "ds", Type: "string"}}

	linter.Lint([]TableChange{create(tbl)})
	assert.Len(t, tbl.Sd.Cols, 1)
	assert.Empty(t, tbl.Sd.Cols[:2][1].Name)
}
