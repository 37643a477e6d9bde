package engine

import (
	"fmt"
	"strings"

	"minidb/internal/core"
	"minidb/internal/storage"
)

// createTable validates a CREATE TABLE statement and, on success, registers
// the schema and persists it together with an empty row list. Validation is
// side-effect free: the first failure wins and nothing is written.
func (e *Engine) createTable(q core.CreateTableQuery) error {
	if e.cat.Has(q.Name) {
		return faultTableExists
	}

	names := make(map[string]bool, len(q.Columns))
	for _, col := range q.Columns {
		if names[col.Name] {
			return faultDuplicateColumnDef
		}
		names[col.Name] = true
	}

	schema := &core.TableSchema{ForeignKeys: map[string]core.ForeignKey{}}
	for _, col := range q.Columns {
		if col.Type.Base == core.TypeChar && col.Type.CharLen <= 0 {
			return faultCharLength
		}
		schema.Columns = append(schema.Columns, core.Column{
			Name:    col.Name,
			Type:    col.Type,
			NotNull: col.NotNull,
		})
	}

	if len(q.PrimaryKeys) > 1 {
		return faultDuplicatePKDef
	}
	if len(q.PrimaryKeys) == 1 {
		members := dedup(q.PrimaryKeys[0].Columns)
		for _, m := range members {
			if !names[m] {
				return faultNonExistingColumnDef(m)
			}
			schema.FindColumn(m).NotNull = true
		}
		schema.PrimaryKey = members
	}

	for _, fk := range q.ForeignKeys {
		ref := e.cat.Schema(fk.RefTable)
		if ref == nil {
			return faultReferenceTable
		}
		for _, col := range fk.Columns {
			if !names[col] {
				return faultNonExistingColumnDef(col)
			}
		}
		for _, col := range fk.RefColumns {
			if ref.FindColumn(col) == nil {
				return faultReferenceColumn
			}
		}
		if !sameSet(fk.RefColumns, ref.PrimaryKey) {
			return faultReferenceNonPK
		}
		if len(fk.Columns) != len(fk.RefColumns) {
			return faultReferenceType
		}
		for i, col := range fk.Columns {
			if schema.FindColumn(col).Type != ref.FindColumn(fk.RefColumns[i]).Type {
				return faultReferenceType
			}
		}
		// Composite keys decompose into per-column arrows, zipped by index.
		for i, col := range fk.Columns {
			schema.ForeignKeys[col] = core.ForeignKey{Table: fk.RefTable, Column: fk.RefColumns[i]}
		}
	}

	encSchema, err := storage.EncodeSchema(schema)
	if err != nil {
		return err
	}
	encRows, err := storage.EncodeRows(schema, nil)
	if err != nil {
		return err
	}
	if err := e.store.Put(storage.SchemaKey(q.Name), encSchema); err != nil {
		return err
	}
	if err := e.store.Put(storage.DataKey(q.Name), encRows); err != nil {
		return err
	}
	e.cat.Create(q.Name, schema)
	e.out.Msg(msgCreated(q.Name))
	return nil
}

// dropTable removes a table unless a foreign key of any table still points
// at it.
func (e *Engine) dropTable(q core.DropTableQuery) error {
	if !e.cat.Has(q.Name) {
		return faultNoSuchTable
	}
	for _, other := range e.cat.Tables() {
		for _, fk := range e.cat.Schema(other).ForeignKeys {
			if fk.Table == q.Name {
				return faultDropReferenced(q.Name)
			}
		}
	}
	if err := e.store.Delete(storage.SchemaKey(q.Name)); err != nil {
		return err
	}
	if err := e.store.Delete(storage.DataKey(q.Name)); err != nil {
		return err
	}
	e.cat.Drop(q.Name)
	e.out.Msg(msgDropped(q.Name))
	return nil
}

const descRule = "-------------------------------------------------"

// descTable prints a table's schema, columns in declaration order.
func (e *Engine) descTable(q core.DescTableQuery) error {
	schema := e.cat.Schema(q.Name)
	if schema == nil {
		return faultNoSuchTable
	}
	e.out.Line(descRule)
	e.out.Line(fmt.Sprintf("table_name [%s]", q.Name))
	e.out.Line(fmt.Sprintf("%-20s  %-10s  %-10s  %-10s", "column_name", "type", "null", "key"))
	for _, col := range schema.Columns {
		null := "Y"
		if col.NotNull {
			null = "N"
		}
		_, isFK := schema.ForeignKeys[col.Name]
		key := ""
		switch {
		case schema.IsPrimaryKey(col.Name) && isFK:
			key = "PRI/FOR"
		case schema.IsPrimaryKey(col.Name):
			key = "PRI"
		case isFK:
			key = "FOR"
		}
		e.out.Line(fmt.Sprintf("%-20s  %-10s  %-10s  %-10s", col.Name, col.Type.String(), null, key))
	}
	e.out.Line(descRule)
	return nil
}

// showTables prints every table name in listing order.
func (e *Engine) showTables() {
	rule := strings.Repeat("-", 16)
	e.out.Line(rule)
	for _, name := range e.cat.Tables() {
		e.out.Line(name)
	}
	e.out.Line(rule)
}

func dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}

func sameSet(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, x := range a {
		as[x] = true
	}
	bs := make(map[string]bool, len(b))
	for _, x := range b {
		bs[x] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for x := range as {
		if !bs[x] {
			return false
		}
	}
	return true
}
