package engine

import "minidb/internal/core"

// update writes a new value into one column of every row matching WHERE.
// Validation that does not depend on a row runs once up front; the row loop
// mutates in place over a snapshot, and any fault restores the snapshot
// before surfacing, so neither the catalog nor the store ever hold a
// half-applied statement.
func (e *Engine) update(q core.UpdateQuery) error {
	schema := e.cat.Schema(q.Table)
	if schema == nil {
		return faultNoSuchTable
	}
	col := schema.FindColumn(q.Column)
	if col == nil {
		return faultUpdateColumnExistence(q.Column)
	}
	if !col.Type.Check(q.Value) {
		return faultUpdateTypeMismatch
	}
	if q.Value.IsNull() && col.NotNull {
		return faultUpdateNotNullable(q.Column)
	}
	value := col.Type.Coerce(q.Value)

	// For a foreign-key column the membership test depends only on the new
	// value, so it is decided once. A NULL new value is always acceptable;
	// nullability was already checked above.
	fk, isFK := schema.ForeignKeys[q.Column]
	fkOK := true
	if isFK && !value.IsNull() {
		fkOK = e.refValueExists(fk, value)
	}

	// A primary-key member may be pointed at by other tables; collect the
	// incoming arrows once.
	isPK := schema.IsPrimaryKey(q.Column)
	var incoming []arrow
	if isPK {
		for _, other := range e.cat.Tables() {
			for otherCol, otherFK := range e.cat.Schema(other).ForeignKeys {
				if otherFK.Table == q.Table && otherFK.Column == q.Column {
					incoming = append(incoming, arrow{table: other, column: otherCol})
				}
			}
		}
	}

	rows := e.cat.Rows(q.Table)
	snapshot := core.CloneRows(rows)
	rollback := func(f Fault) error {
		e.cat.SetRows(q.Table, snapshot)
		return f
	}

	updated := 0
	for _, row := range rows {
		if row[q.Column].Equal(value) {
			continue
		}
		if q.Where != nil {
			t, err := evalExpr(q.Where, env{q.Table: row})
			if err != nil {
				e.cat.SetRows(q.Table, snapshot)
				return err
			}
			if t != core.TriTrue {
				continue
			}
		}
		if isFK && !fkOK {
			return rollback(faultUpdateRefIntegrity)
		}
		if isPK {
			// A referenced key value must not change while referencing rows
			// still hold it.
			for _, a := range incoming {
				for _, refRow := range e.cat.Rows(a.table) {
					if refRow[a.column].Equal(row[q.Column]) {
						return rollback(faultUpdateRefIntegrity)
					}
				}
			}
		}
		row[q.Column] = value
		updated++
	}

	if isPK && !schema.UniquePK(rows) {
		return rollback(faultUpdateDuplicatePK)
	}
	if err := e.persistRows(q.Table); err != nil {
		return err
	}
	e.out.Msg(msgUpdated(updated))
	return nil
}
