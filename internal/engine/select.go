package engine

import (
	"minidb/internal/core"
	"minidb/internal/output"
)

// binding is one bound FROM entry: the effective name (alias or table name)
// and the table it stands for.
type binding struct {
	name   string
	table  string
	schema *core.TableSchema
	rows   []core.Row
}

// selectRows binds the FROM list, resolves the select list, enumerates the
// cartesian product in odometer order (first FROM entry fastest), filters
// with WHERE, and renders the projection as a bordered grid.
func (e *Engine) selectRows(q core.SelectQuery) error {
	bindings := make([]binding, 0, len(q.From))
	byName := make(map[string]int, len(q.From))
	for _, ref := range q.From {
		schema := e.cat.Schema(ref.Table)
		if schema == nil {
			return faultSelectTableExistence(ref.Table)
		}
		name := ref.Alias
		if name == "" {
			name = ref.Table
		}
		if _, dup := byName[name]; dup {
			return faultNotUniqueAlias(name)
		}
		byName[name] = len(bindings)
		bindings = append(bindings, binding{
			name:   name,
			table:  ref.Table,
			schema: schema,
			rows:   e.cat.Rows(ref.Table),
		})
	}

	fields := q.Fields
	if len(fields) == 0 {
		// SELECT *: every column of every FROM entry in declaration order.
		for _, b := range bindings {
			for _, col := range b.schema.Columns {
				fields = append(fields, core.SelectField{Table: b.name, Column: col.Name})
			}
		}
	}
	for i, f := range fields {
		if f.Table == "" {
			found := ""
			for _, b := range bindings {
				if b.schema.FindColumn(f.Column) != nil {
					if found != "" {
						return faultSelectColumnResolve(f.Column)
					}
					found = b.name
				}
			}
			if found == "" {
				return faultSelectColumnResolve(f.Column)
			}
			fields[i].Table = found
		} else {
			idx, ok := byName[f.Table]
			if !ok || bindings[idx].schema.FindColumn(f.Column) == nil {
				return faultSelectColumnResolve(f.Table + "." + f.Column)
			}
		}
		if f.Alias == "" {
			fields[i].Alias = f.Column
		}
	}

	var results [][]string
	empty := false
	for _, b := range bindings {
		if len(b.rows) == 0 {
			empty = true
		}
	}
	if !empty {
		idx := make([]int, len(bindings))
		for {
			current := make(env, len(bindings))
			for i, b := range bindings {
				current[b.name] = b.rows[idx[i]]
			}
			pass := core.TriTrue
			if q.Where != nil {
				var err error
				pass, err = evalExpr(q.Where, current)
				if err != nil {
					return err
				}
			}
			if pass == core.TriTrue {
				projected := make([]string, len(fields))
				for i, f := range fields {
					projected[i] = current[f.Table][f.Column].String()
				}
				results = append(results, projected)
			}

			// Odometer step: the first FROM entry advances fastest.
			done := true
			for i := range idx {
				idx[i]++
				if idx[i] < len(bindings[i].rows) {
					done = false
					break
				}
				idx[i] = 0
			}
			if done {
				break
			}
		}
	}

	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = f.Alias
	}
	e.out.Lines(output.Grid(headers, results))
	return nil
}
