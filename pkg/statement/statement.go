// Package statement imports MySQL CREATE TABLE statements as Hive column
// definitions, so that an existing MySQL table can be registered with the
// metastore or compared against a table it already knows.
package statement

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/block/hivemeta/pkg/metastore"
	"github.com/block/hivemeta/pkg/schema"
	"github.com/block/hivemeta/pkg/typeconv"
	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"
	"github.com/pingcap/tidb/pkg/parser/mysql"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"
)

var ErrNotCreateTable = errors.New("not a CREATE TABLE statement")

// CreateTable is a parsed CREATE TABLE statement with its columns converted
// to Hive types.
type CreateTable struct {
	Raw       *ast.CreateTableStmt `json:"-"`
	Schema    string               `json:"schema,omitempty"`
	TableName string               `json:"table_name"`
	Columns   schema.Columns       `json:"columns"`
	// MySQLTypes holds the original column types, in column order.
	MySQLTypes []string `json:"mysql_types"`
}

// ParseCreateTable parses a single CREATE TABLE statement.
func ParseCreateTable(sql string) (*CreateTable, error) {
	tables, err := ParseCreateTables(sql)
	if err != nil {
		return nil, err
	}
	if len(tables) != 1 {
		return nil, fmt.Errorf("expected exactly one statement, got %d", len(tables))
	}
	return tables[0], nil
}

// ParseCreateTables parses one or more CREATE TABLE statements. Any other
// statement type is an error.
func ParseCreateTables(sql string) ([]*CreateTable, error) {
	p := parser.New()
	stmts, _, err := p.Parse(sql, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to parse SQL: %w", err)
	}

	tables := make([]*CreateTable, 0, len(stmts))
	for _, stmt := range stmts {
		createStmt, ok := stmt.(*ast.CreateTableStmt)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrNotCreateTable, stmt)
		}
		tables = append(tables, newCreateTable(createStmt, typeconv.GetTypeMapper(typeconv.TargetTypeHive)))
	}
	return tables, nil
}

func newCreateTable(stmt *ast.CreateTableStmt, mapper typeconv.Mapper) *CreateTable {
	ct := &CreateTable{
		Raw:        stmt,
		Schema:     stmt.Table.Schema.String(),
		TableName:  stmt.Table.Name.String(),
		Columns:    make(schema.Columns, 0, len(stmt.Cols)),
		MySQLTypes: make([]string, 0, len(stmt.Cols)),
	}
	for _, col := range stmt.Cols {
		mysqlType := columnType(col)
		ct.MySQLTypes = append(ct.MySQLTypes, mysqlType)
		ct.Columns = append(ct.Columns, schema.Column{
			Name:    col.Name.Name.String(),
			Type:    mapper.MapType(mysqlType),
			Comment: columnComment(col),
		})
	}
	return ct
}

// Table returns the statement as a managed metastore table. A statement
// without a schema qualifier belongs to the default database.
func (ct *CreateTable) Table() *metastore.Table {
	db := ct.Schema
	if db == "" {
		db = metastore.DefaultDatabase
	}
	return &metastore.Table{
		TableName: ct.TableName,
		DBName:    db,
		TableType: metastore.ManagedTable,
		Sd:        &metastore.StorageDescriptor{Cols: slices.Clone(ct.Columns)},
	}
}

// columnType returns the MySQL type without charset or collation, for
// example "varchar(255)" or "int unsigned".
func columnType(col *ast.ColumnDef) string {
	typ := col.Tp.CompactStr()
	if mysql.HasUnsignedFlag(col.Tp.GetFlag()) {
		typ += " unsigned"
	}
	return typ
}

func columnComment(col *ast.ColumnDef) string {
	for _, opt := range col.Options {
		if opt.Tp != ast.ColumnOptionComment || opt.Expr == nil {
			continue
		}
		var sb strings.Builder
		rCtx := format.NewRestoreCtx(format.DefaultRestoreFlags|format.RestoreStringWithoutCharset, &sb)
		if err := opt.Expr.Restore(rCtx); err != nil {
			return ""
		}
		str := sb.String()
		if len(str) >= 2 && strings.HasPrefix(str, "'") && strings.HasSuffix(str, "'") {
			str = str[1 : len(str)-1]
		}
		return str
	}
	return ""
}
