package core

// Column holds the metadata of one table column. Primary-key membership
// forces NotNull at creation time.
type Column struct {
	Name    string
	Type    DataType
	NotNull bool
}

// ForeignKey is a single referencing-column arrow: the referenced table and
// the referenced column inside it. Composite foreign keys are decomposed into
// one arrow per column when the table is created.
type ForeignKey struct {
	Table  string
	Column string
}

// TableSchema describes one table: columns in declaration order (the order
// DESC and SELECT * observe), the primary-key column set, and the per-column
// foreign-key arrows. Names are stored lowercase.
type TableSchema struct {
	Columns     []Column
	PrimaryKey  []string
	ForeignKeys map[string]ForeignKey
}

// FindColumn returns the column with the given name, or nil.
func (s *TableSchema) FindColumn(name string) *Column {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i]
		}
	}
	return nil
}

// ColumnNames returns the column names in declaration order.
func (s *TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// IsPrimaryKey reports whether name is part of the primary key.
func (s *TableSchema) IsPrimaryKey(name string) bool {
	for _, c := range s.PrimaryKey {
		if c == name {
			return true
		}
	}
	return false
}

// PKKey projects the primary-key columns of row into a canonical string, so
// projections can be compared and used as map keys. Only meaningful when the
// primary key is non-empty.
func (s *TableSchema) PKKey(row Row) string {
	key := ""
	for i, c := range s.PrimaryKey {
		if i > 0 {
			key += "\x1f"
		}
		key += row[c].Key()
	}
	return key
}

// UniquePK reports whether the primary-key projections of rows are pairwise
// distinct. A table without a primary key is trivially unique.
func (s *TableSchema) UniquePK(rows []Row) bool {
	if len(s.PrimaryKey) == 0 {
		return true
	}
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		k := s.PKKey(r)
		if seen[k] {
			return false
		}
		seen[k] = true
	}
	return true
}

// Row maps column name to value. Every row of a table holds a value
// (possibly NULL) for every schema column.
type Row map[string]Value

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// CloneRows deep-copies a row list; the UPDATE executor snapshots with this
// before mutating in place.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
