package engine

import "minidb/internal/core"

// insert validates and appends one row. All checks run before the append, so
// a fault leaves both the catalog and the store untouched.
func (e *Engine) insert(q core.InsertQuery) error {
	schema := e.cat.Schema(q.Table)
	if schema == nil {
		return faultNoSuchTable
	}

	columns := q.Columns
	if columns == nil {
		columns = schema.ColumnNames()
	}
	// Both lists must cover the whole schema; a partial column list is
	// rejected by the same arity rule.
	if len(columns) != len(schema.Columns) || len(q.Values) != len(schema.Columns) {
		return faultInsertTypeMismatch
	}

	row := make(core.Row, len(columns))
	for i, name := range columns {
		value := q.Values[i]

		col := schema.FindColumn(name)
		if col == nil {
			return faultInsertColumnExistence(name)
		}
		if col.NotNull && value.IsNull() {
			return faultInsertNotNullable(name)
		}
		if !col.Type.Check(value) {
			return faultInsertTypeMismatch
		}
		value = col.Type.Coerce(value)

		if fk, ok := schema.ForeignKeys[name]; ok && !value.IsNull() {
			if !e.refValueExists(fk, value) {
				return faultInsertRefIntegrity
			}
		}
		row[name] = value
	}
	// A duplicated column in the list leaves some schema column unassigned.
	if len(row) != len(schema.Columns) {
		return faultInsertTypeMismatch
	}

	if len(schema.PrimaryKey) > 0 {
		key := schema.PKKey(row)
		for _, existing := range e.cat.Rows(q.Table) {
			if schema.PKKey(existing) == key {
				return faultInsertDuplicatePK
			}
		}
	}

	e.cat.SetRows(q.Table, append(e.cat.Rows(q.Table), row))
	if err := e.persistRows(q.Table); err != nil {
		return err
	}
	e.out.Msg(msgInserted)
	return nil
}

// refValueExists reports whether value occurs in the referenced column of
// any row of the referenced table.
func (e *Engine) refValueExists(fk core.ForeignKey, value core.Value) bool {
	for _, row := range e.cat.Rows(fk.Table) {
		if row[fk.Column].Equal(value) {
			return true
		}
	}
	return false
}
