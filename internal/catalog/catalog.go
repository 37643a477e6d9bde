// Package catalog holds the engine's in-memory state: every table's schema
// and row data, loaded from the store at startup and kept in sync by the
// executors after each successful mutation.
package catalog

import (
	"fmt"
	"sort"

	"minidb/internal/core"
	"minidb/internal/storage"
)

// Catalog maps table names (lowercase) to schemas and row lists. Row order
// is insertion order and is observable through SELECT and DELETE. Table
// listing order is load order (key order of the store) followed by creation
// order within the session.
type Catalog struct {
	schemas map[string]*core.TableSchema
	data    map[string][]core.Row
	names   []string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		schemas: make(map[string]*core.TableSchema),
		data:    make(map[string][]core.Row),
	}
}

// Load scans the store and rebuilds the catalog: every "<table>.schema" key
// contributes a schema, every "<table>.data" key a row list. Tables are
// listed in store key order.
func Load(store *storage.Store) (*Catalog, error) {
	c := New()
	err := store.ForEach(func(key string, value []byte) error {
		table, isSchema, ok := storage.SplitKey(key)
		if !ok {
			return nil
		}
		if isSchema {
			schema, err := storage.DecodeSchema(value)
			if err != nil {
				return fmt.Errorf("table %q: %w", table, err)
			}
			c.schemas[table] = schema
			return nil
		}
		rows, err := storage.DecodeRows(value)
		if err != nil {
			return fmt.Errorf("table %q: %w", table, err)
		}
		c.data[table] = rows
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: load: %w", err)
	}
	for name := range c.schemas {
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c, nil
}

// Has reports whether a table exists.
func (c *Catalog) Has(name string) bool {
	_, ok := c.schemas[name]
	return ok
}

// Schema returns the schema of name, or nil when the table does not exist.
func (c *Catalog) Schema(name string) *core.TableSchema {
	return c.schemas[name]
}

// Rows returns the live row list of name in insertion order.
func (c *Catalog) Rows(name string) []core.Row {
	return c.data[name]
}

// SetRows replaces the row list of name.
func (c *Catalog) SetRows(name string, rows []core.Row) {
	c.data[name] = rows
}

// Create registers a new table with an empty row list.
func (c *Catalog) Create(name string, schema *core.TableSchema) {
	c.schemas[name] = schema
	c.data[name] = []core.Row{}
	c.names = append(c.names, name)
}

// Drop removes a table's schema and data.
func (c *Catalog) Drop(name string) {
	delete(c.schemas, name)
	delete(c.data, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
}

// Tables returns the table names in listing order.
func (c *Catalog) Tables() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}
