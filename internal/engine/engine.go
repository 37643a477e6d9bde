// Package engine executes parsed statements against the catalog and the
// store. Every mutating executor validates first, applies changes to the
// in-memory state, then writes each affected table back with a single put;
// read-only executors never touch the store.
package engine

import (
	"minidb/internal/catalog"
	"minidb/internal/core"
	"minidb/internal/output"
	"minidb/internal/storage"
)

// Engine owns the mutable session state: the catalog, the store handle, and
// the printer. It executes one statement to completion at a time.
type Engine struct {
	cat   *catalog.Catalog
	store *storage.Store
	out   *output.Printer
}

// New wires an engine over a loaded catalog.
func New(cat *catalog.Catalog, store *storage.Store, out *output.Printer) *Engine {
	return &Engine{cat: cat, store: store, out: out}
}

// Execute runs one statement, printing its result or fault message. Store
// failures (not statement faults) are returned to the caller.
func (e *Engine) Execute(q core.Query) error {
	var err error
	switch q := q.(type) {
	case core.CreateTableQuery:
		err = e.createTable(q)
	case core.DropTableQuery:
		err = e.dropTable(q)
	case core.DescTableQuery:
		err = e.descTable(q)
	case core.ShowTablesQuery:
		e.showTables()
	case core.InsertQuery:
		err = e.insert(q)
	case core.DeleteQuery:
		err = e.delete(q)
	case core.UpdateQuery:
		err = e.update(q)
	case core.SelectQuery:
		err = e.selectRows(q)
	}
	if fault, ok := err.(Fault); ok {
		e.out.Msg(fault.Error())
		return nil
	}
	return err
}

// persistRows writes a table's full row list back to the store.
func (e *Engine) persistRows(table string) error {
	enc, err := storage.EncodeRows(e.cat.Schema(table), e.cat.Rows(table))
	if err != nil {
		return err
	}
	return e.store.Put(storage.DataKey(table), enc)
}
