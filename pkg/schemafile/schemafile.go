// Package schemafile reads and writes table definitions kept as HCL:
//
//	table "orders" {
//	  database = "sales"
//	  column "id" {
//	    type    = "bigint"
//	    comment = "order id"
//	  }
//	  partition "ds" {
//	    type = "string"
//	  }
//	  skewed = ["id"]
//	}
//
// Column order in the file is the column order of the table.
package schemafile

import (
	"fmt"
	"os"

	"github.com/block/hivemeta/pkg/metastore"
	"github.com/block/hivemeta/pkg/schema"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

type fileHCL struct {
	Tables []*tableHCL `hcl:"table,block"`
}

type tableHCL struct {
	Name       string       `hcl:",label"`
	Database   string       `hcl:"database,optional"`
	Columns    []*columnHCL `hcl:"column,block"`
	Partitions []*columnHCL `hcl:"partition,block"`
	Skewed     []string     `hcl:"skewed,optional"`
}

type columnHCL struct {
	Name    string `hcl:",label"`
	Type    string `hcl:"type"`
	Comment string `hcl:"comment,optional"`
}

// Parse decodes the tables in body. Tables without a database are placed in
// the default database.
func Parse(body []byte, filename string) ([]*metastore.Table, error) {
	parser := hclparse.NewParser()
	srcHCL, diag := parser.ParseHCL(body, filename)
	if diag.HasErrors() {
		return nil, diag
	}
	if srcHCL == nil {
		return nil, fmt.Errorf("schemafile: file %q contents is nil", filename)
	}
	f := &fileHCL{}
	if diag := gohcl.DecodeBody(srcHCL.Body, nil, f); diag.HasErrors() {
		return nil, diag
	}

	seen := make(map[string]struct{}, len(f.Tables))
	out := make([]*metastore.Table, 0, len(f.Tables))
	for _, t := range f.Tables {
		db := t.Database
		if db == "" {
			db = metastore.DefaultDatabase
		}
		key := db + "." + t.Name
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("schemafile: table %s defined twice in %s", key, filename)
		}
		seen[key] = struct{}{}

		table := &metastore.Table{
			TableName:     t.Name,
			DBName:        db,
			Sd:            &metastore.StorageDescriptor{Cols: toColumns(t.Columns)},
			PartitionKeys: toColumns(t.Partitions),
		}
		if len(t.Skewed) > 0 {
			table.Sd.SkewedInfo = &metastore.SkewedInfo{SkewedColNames: t.Skewed}
		}
		out = append(out, table)
	}
	return out, nil
}

// ParseFile reads and decodes the file at path.
func ParseFile(path string) ([]*metastore.Table, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(body, path)
}

func toColumns(cols []*columnHCL) schema.Columns {
	out := make(schema.Columns, 0, len(cols))
	for _, c := range cols {
		out = append(out, schema.Column{Name: c.Name, Type: c.Type, Comment: c.Comment})
	}
	return out
}

// Encode writes tables in the format Parse reads.
func Encode(tables []*metastore.Table) []byte {
	f := hclwrite.NewFile()
	for i, t := range tables {
		if i > 0 {
			f.Body().AppendNewline()
		}
		blk := f.Body().AppendNewBlock("table", []string{t.TableName})
		body := blk.Body()
		if t.DBName != "" && t.DBName != metastore.DefaultDatabase {
			body.SetAttributeValue("database", cty.StringVal(t.DBName))
		}
		if t.Sd != nil {
			writeColumns(body, "column", t.Sd.Cols)
		}
		writeColumns(body, "partition", t.PartitionKeys)
		if t.Sd != nil && t.Sd.SkewedInfo != nil && len(t.Sd.SkewedInfo.SkewedColNames) > 0 {
			vals := make([]cty.Value, 0, len(t.Sd.SkewedInfo.SkewedColNames))
			for _, name := range t.Sd.SkewedInfo.SkewedColNames {
				vals = append(vals, cty.StringVal(name))
			}
			body.SetAttributeValue("skewed", cty.ListVal(vals))
		}
	}
	return f.Bytes()
}

func writeColumns(body *hclwrite.Body, blockType string, cols schema.Columns) {
	for _, c := range cols {
		nb := body.AppendNewBlock(blockType, []string{c.Name}).Body()
		nb.SetAttributeValue("type", cty.StringVal(c.Type))
		if c.Comment != "" {
			nb.SetAttributeValue("comment", cty.StringVal(c.Comment))
		}
	}
}
