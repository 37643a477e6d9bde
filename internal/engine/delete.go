package engine

import "minidb/internal/core"

// arrow is one incoming foreign-key reference: table and column pointing at
// the target.
type arrow struct {
	table  string
	column string
}

// delete removes the rows matching WHERE, applying ON DELETE SET NULL to
// nullable referencing columns. A row referenced through a NOT NULL column
// cannot be deleted and is counted as skipped instead. Each row is first
// classified as deletable or kept, then its set-null effects are applied;
// all mutations are buffered on working copies and committed only when the
// whole statement succeeds, so a WHERE fault changes nothing.
func (e *Engine) delete(q core.DeleteQuery) error {
	schema := e.cat.Schema(q.Table)
	if schema == nil {
		return faultNoSuchTable
	}

	// Reverse reference map: referenced column -> incoming arrows.
	referencedBy := make(map[string][]arrow)
	for _, other := range e.cat.Tables() {
		for col, fk := range e.cat.Schema(other).ForeignKeys {
			if fk.Table == q.Table {
				referencedBy[fk.Column] = append(referencedBy[fk.Column], arrow{table: other, column: col})
			}
		}
	}

	// Working copies of referencing tables, created on first touch. Scans
	// read these so set-null effects within the statement are visible, and
	// nothing reaches the catalog until commit.
	working := make(map[string][]core.Row)
	rowsOf := func(table string) []core.Row {
		if rows, ok := working[table]; ok {
			return rows
		}
		return e.cat.Rows(table)
	}
	touch := func(table string) []core.Row {
		if rows, ok := working[table]; ok {
			return rows
		}
		rows := core.CloneRows(e.cat.Rows(table))
		working[table] = rows
		return rows
	}

	deleted, skipped := 0, 0
	var kept []core.Row
	for _, row := range e.cat.Rows(q.Table) {
		if q.Where != nil {
			t, err := evalExpr(q.Where, env{q.Table: row})
			if err != nil {
				return err
			}
			if t != core.TriTrue {
				kept = append(kept, row)
				continue
			}
		}

		// Classification pass: a single NOT NULL referrer blocks the delete.
		blocked := false
		for refCol, arrows := range referencedBy {
			for _, a := range arrows {
				notNull := e.cat.Schema(a.table).FindColumn(a.column).NotNull
				for _, refRow := range rowsOf(a.table) {
					if refRow[a.column].Equal(row[refCol]) && notNull {
						blocked = true
					}
				}
			}
		}
		if blocked {
			skipped++
			kept = append(kept, row)
			continue
		}

		// Apply pass: null out every remaining referrer, then drop the row.
		for refCol, arrows := range referencedBy {
			for _, a := range arrows {
				for _, refRow := range touch(a.table) {
					if refRow[a.column].Equal(row[refCol]) {
						refRow[a.column] = core.Null()
					}
				}
			}
		}
		deleted++
	}

	if kept == nil {
		kept = []core.Row{}
	}
	for table, rows := range working {
		e.cat.SetRows(table, rows)
	}
	e.cat.SetRows(q.Table, kept)
	if err := e.persistRows(q.Table); err != nil {
		return err
	}
	for table := range working {
		if table == q.Table {
			continue
		}
		if err := e.persistRows(table); err != nil {
			return err
		}
	}

	e.out.Msg(msgDeleted(deleted))
	if skipped > 0 {
		e.out.Msg(msgDeleteSkipped(skipped))
	}
	return nil
}
