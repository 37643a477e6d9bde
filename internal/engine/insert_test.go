package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minidb/internal/core"
)

func TestInsert(t *testing.T) {
	e := newTestEngine(t)
	e.exec(t, "CREATE TABLE t (a INT, b CHAR(3), PRIMARY KEY(a));")

	e.exec(t, "INSERT INTO t VALUES (1, 'abcdef');")
	assert.Equal(t, msg("The row is inserted"), e.lastLine())

	rows := e.cat.Rows("t")
	require.Len(t, rows, 1)
	assert.Equal(t, core.Int(1), rows[0]["a"])
	assert.Equal(t, core.Text("abc"), rows[0]["b"], "char(3) truncates to three code points")
}

func TestInsertWithColumnList(t *testing.T) {
	e := newTestEngine(t)
	e.exec(t, "CREATE TABLE t (a INT, b CHAR(3));")
	e.exec(t, "INSERT INTO t (b, a) VALUES ('xy', 7);")
	assert.Equal(t, msg("The row is inserted"), e.lastLine())

	rows := e.cat.Rows("t")
	require.Len(t, rows, 1)
	assert.Equal(t, core.Int(7), rows[0]["a"])
	assert.Equal(t, core.Text("xy"), rows[0]["b"])
}

func TestInsertNullAndDate(t *testing.T) {
	e := newTestEngine(t)
	e.exec(t, "CREATE TABLE t (a INT, d DATE);")
	e.exec(t, "INSERT INTO t VALUES (NULL, '2022-11-05');")
	assert.Equal(t, msg("The row is inserted"), e.lastLine())

	rows := e.cat.Rows("t")
	require.Len(t, rows, 1)
	assert.True(t, rows[0]["a"].IsNull())
	assert.Equal(t, core.KindDate, rows[0]["d"].Kind())
	assert.Equal(t, "2022-11-05", rows[0]["d"].String())
}

func TestInsertFaults(t *testing.T) {
	e := newTestEngine(t)
	e.exec(t, "CREATE TABLE t (a INT, b CHAR(3), PRIMARY KEY(a));")
	e.exec(t, "INSERT INTO t VALUES (1, 'abc');")

	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "unknown table",
			sql:  "INSERT INTO nope VALUES (1);",
			want: "No such table",
		},
		{
			name: "arity too short",
			sql:  "INSERT INTO t VALUES (2);",
			want: "Insertion has failed: Types are not matched",
		},
		{
			name: "arity too long",
			sql:  "INSERT INTO t VALUES (2, 'x', 3);",
			want: "Insertion has failed: Types are not matched",
		},
		{
			name: "partial column list",
			sql:  "INSERT INTO t (a) VALUES (2);",
			want: "Insertion has failed: Types are not matched",
		},
		{
			name: "unknown column",
			sql:  "INSERT INTO t (a, zz) VALUES (2, 'x');",
			want: "Insertion has failed: 'zz' does not exist",
		},
		{
			name: "null into not nullable",
			sql:  "INSERT INTO t VALUES (NULL, 'x');",
			want: "Insertion has failed: 'a' is not nullable",
		},
		{
			name: "type mismatch",
			sql:  "INSERT INTO t VALUES ('one', 'x');",
			want: "Insertion has failed: Types are not matched",
		},
		{
			name: "duplicate primary key",
			sql:  "INSERT INTO t VALUES (1, 'xyz');",
			want: "Insertion has failed: Primary key duplication",
		},
		{
			name: "duplicated column in list",
			sql:  "INSERT INTO t (a, a) VALUES (2, 3);",
			want: "Insertion has failed: Types are not matched",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.exec(t, tt.sql)
			assert.Equal(t, msg(tt.want), e.lastLine())
		})
	}

	t.Run("faulted inserts leave the table unchanged", func(t *testing.T) {
		assert.Len(t, e.cat.Rows("t"), 1)
	})
}

func TestInsertReferentialIntegrity(t *testing.T) {
	e := newTestEngine(t)
	e.exec(t, "CREATE TABLE t (a INT, PRIMARY KEY(a));")
	e.exec(t, "CREATE TABLE u (c INT, FOREIGN KEY(c) REFERENCES t(a));")
	e.exec(t, "INSERT INTO t VALUES (1);")

	t.Run("missing referenced value", func(t *testing.T) {
		e.exec(t, "INSERT INTO u VALUES (2);")
		assert.Equal(t, msg("Insertion has failed: Referential integrity violation"), e.lastLine())
	})

	t.Run("present referenced value", func(t *testing.T) {
		e.exec(t, "INSERT INTO u VALUES (1);")
		assert.Equal(t, msg("The row is inserted"), e.lastLine())
	})

	t.Run("null skips the membership check", func(t *testing.T) {
		e.exec(t, "INSERT INTO u VALUES (NULL);")
		assert.Equal(t, msg("The row is inserted"), e.lastLine())
	})
}

func TestInsertPrimaryKeyCaseSensitivity(t *testing.T) {
	e := newTestEngine(t)
	e.exec(t, "CREATE TABLE t (b CHAR(5), PRIMARY KEY(b));")
	e.exec(t, "INSERT INTO t VALUES ('abc');")
	e.exec(t, "INSERT INTO t VALUES ('ABC');")
	assert.Equal(t, msg("The row is inserted"), e.lastLine(),
		"primary-key projection compares case-sensitively")
}
