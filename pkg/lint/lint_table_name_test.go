package lint

import (
	"testing"

	"github.com/block/hivemeta/pkg/metastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableName_Valid(t *testing.T) {
	linter := &TableNameLinter{}
	assert.Empty(t, linter.Lint([]TableChange{create(newTable("default", "orders_2024", "a int"))}))
}

func TestTableName_Invalid(t *testing.T) {
	linter := &TableNameLinter{}
	violations := linter.Lint([]TableChange{create(newTable("default", "order-items", "a int"))})
	require.Len(t, violations, 1)
	assert.Equal(t, `Invalid table name "order-items"`, violations[0].Message)
	assert.Nil(t, violations[0].Location.Column)
}

func TestTableName_TableLink(t *testing.T) {
	linter := &TableNameLinter{}
	target := newTable("sales", "orders", "a int")

	link := newTable("default", metastore.TableLinkName("sales", "orders"), "a int")
	link.TableType = metastore.StaticTableLink
	link.LinkTarget = target
	assert.Empty(t, linter.Lint([]TableChange{create(link)}))

	// a link without its target breaks the table type rules
	link.LinkTarget = nil
	violations := linter.Lint([]TableChange{create(link)})
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, "does not have its link target set")
}

func TestTableName_ViewTextOnTable(t *testing.T) {
	linter := &TableNameLinter{}
	tbl := newTable("default", "t1", "a int")
	tbl.ViewOriginalText = "select 1"

	violations := linter.Lint([]TableChange{create(tbl)})
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, "is not a View")
}

func TestTableName_OnlyCreates(t *testing.T) {
	linter := &TableNameLinter{}
	old := newTable("default", "bad-name", "a int")
	next := newTable("default", "bad-name", "a int", "b int")
	assert.Empty(t, linter.Lint([]TableChange{alter(old, next), {Old: old}}))
}
