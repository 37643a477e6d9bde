package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minidb/internal/core"
)

func parse(t *testing.T, sql string) core.Query {
	t.Helper()
	q, err := New().ParseStatement(sql)
	require.NoError(t, err, "statement %q", sql)
	return q
}

func TestParseCreateTable(t *testing.T) {
	q := parse(t, "CREATE TABLE Account (ID INT NOT NULL, Name CHAR(10), Born DATE, PRIMARY KEY(ID), FOREIGN KEY(Name) REFERENCES Other(Code));")
	create, ok := q.(core.CreateTableQuery)
	require.True(t, ok)

	assert.Equal(t, "account", create.Name, "identifiers fold to lowercase")
	require.Len(t, create.Columns, 3)
	assert.Equal(t, core.ColumnDef{Name: "id", Type: core.IntType(), NotNull: true}, create.Columns[0])
	assert.Equal(t, core.ColumnDef{Name: "name", Type: core.CharType(10)}, create.Columns[1])
	assert.Equal(t, core.ColumnDef{Name: "born", Type: core.DateType()}, create.Columns[2])

	require.Len(t, create.PrimaryKeys, 1)
	assert.Equal(t, []string{"id"}, create.PrimaryKeys[0].Columns)

	require.Len(t, create.ForeignKeys, 1)
	assert.Equal(t, core.ForeignKeyDef{
		Columns:    []string{"name"},
		RefTable:   "other",
		RefColumns: []string{"code"},
	}, create.ForeignKeys[0])
}

func TestParseCreateTableKeepsDuplicateClauses(t *testing.T) {
	// The executor owns duplicate detection; the parser must not collapse
	// repeated clauses.
	q := parse(t, "CREATE TABLE t (a INT, b INT, PRIMARY KEY(a), PRIMARY KEY(b));")
	create := q.(core.CreateTableQuery)
	assert.Len(t, create.PrimaryKeys, 2)

	q = parse(t, "CREATE TABLE t (a INT, a CHAR(2));")
	create = q.(core.CreateTableQuery)
	assert.Len(t, create.Columns, 2)
}

func TestParseDropDescShow(t *testing.T) {
	assert.Equal(t, core.DropTableQuery{Name: "t"}, parse(t, "DROP TABLE T;"))
	assert.Equal(t, core.DescTableQuery{Name: "t"}, parse(t, "DESC t;"))
	assert.Equal(t, core.DescTableQuery{Name: "t"}, parse(t, "DESCRIBE t;"))
	assert.Equal(t, core.DescTableQuery{Name: "t"}, parse(t, "EXPLAIN t;"))
	assert.Equal(t, core.ShowTablesQuery{}, parse(t, "SHOW TABLES;"))
}

func TestParseInsert(t *testing.T) {
	t.Run("without column list", func(t *testing.T) {
		q := parse(t, "INSERT INTO t VALUES (1, 'text', '2021-05-06', NULL, -3);")
		insert := q.(core.InsertQuery)
		assert.Equal(t, "t", insert.Table)
		assert.Nil(t, insert.Columns)
		require.Len(t, insert.Values, 5)
		assert.Equal(t, core.Int(1), insert.Values[0])
		assert.Equal(t, core.Text("text"), insert.Values[1])
		assert.Equal(t, core.Date(time.Date(2021, time.May, 6, 0, 0, 0, 0, time.UTC)), insert.Values[2])
		assert.True(t, insert.Values[3].IsNull())
		assert.Equal(t, core.Int(-3), insert.Values[4])
	})

	t.Run("with column list", func(t *testing.T) {
		q := parse(t, "INSERT INTO t (B, A) VALUES ('x', 1);")
		insert := q.(core.InsertQuery)
		assert.Equal(t, []string{"b", "a"}, insert.Columns)
	})
}

func TestParseDelete(t *testing.T) {
	t.Run("without where", func(t *testing.T) {
		q := parse(t, "DELETE FROM t;")
		del := q.(core.DeleteQuery)
		assert.Equal(t, "t", del.Table)
		assert.Nil(t, del.Where)
	})

	t.Run("with where", func(t *testing.T) {
		q := parse(t, "DELETE FROM t WHERE a = 1;")
		del := q.(core.DeleteQuery)
		require.NotNil(t, del.Where)
		compare, ok := del.Where.(core.CompareExpr)
		require.True(t, ok)
		assert.Equal(t, core.OpEQ, compare.Op)
		assert.Equal(t, &core.ColumnRef{Column: "a"}, compare.Left.Column)
		assert.Equal(t, core.Int(1), compare.Right.Value)
	})
}

func TestParseUpdate(t *testing.T) {
	q := parse(t, "UPDATE t SET a = 'new' WHERE b > 3;")
	update := q.(core.UpdateQuery)
	assert.Equal(t, "t", update.Table)
	assert.Equal(t, "a", update.Column)
	assert.Equal(t, core.Text("new"), update.Value)
	require.NotNil(t, update.Where)
}

func TestParseSelect(t *testing.T) {
	t.Run("star", func(t *testing.T) {
		q := parse(t, "SELECT * FROM t;")
		sel := q.(core.SelectQuery)
		assert.Empty(t, sel.Fields)
		assert.Equal(t, []core.TableRef{{Table: "t"}}, sel.From)
	})

	t.Run("qualified fields, aliases, several tables", func(t *testing.T) {
		q := parse(t, "SELECT a.X, Y AS label FROM T1 a, T2;")
		sel := q.(core.SelectQuery)
		assert.Equal(t, []core.SelectField{
			{Table: "a", Column: "x"},
			{Column: "y", Alias: "label"},
		}, sel.Fields)
		assert.Equal(t, []core.TableRef{
			{Table: "t1", Alias: "a"},
			{Table: "t2"},
		}, sel.From)
	})
}

func TestParseWherePredicates(t *testing.T) {
	q := parse(t, "SELECT * FROM t WHERE NOT (a = 1 AND b IS NOT NULL) OR t.c <= '2020-01-01';")
	sel := q.(core.SelectQuery)

	or, ok := sel.Where.(core.OrExpr)
	require.True(t, ok)
	require.Len(t, or.Terms, 2)

	not, ok := or.Terms[0].(core.NotExpr)
	require.True(t, ok)
	and, ok := not.Term.(core.AndExpr)
	require.True(t, ok)
	require.Len(t, and.Terms, 2)

	nullTest, ok := and.Terms[1].(core.NullTestExpr)
	require.True(t, ok)
	assert.Equal(t, "b", nullTest.Column)
	assert.True(t, nullTest.Negate)

	compare, ok := or.Terms[1].(core.CompareExpr)
	require.True(t, ok)
	assert.Equal(t, core.OpLE, compare.Op)
	assert.Equal(t, &core.ColumnRef{Table: "t", Column: "c"}, compare.Left.Column)
	assert.Equal(t, core.KindDate, compare.Right.Value.Kind())
}

func TestParseComparisonOperators(t *testing.T) {
	ops := map[string]core.CompareOp{
		"=":  core.OpEQ,
		"!=": core.OpNE,
		"<>": core.OpNE,
		"<":  core.OpLT,
		">":  core.OpGT,
		"<=": core.OpLE,
		">=": core.OpGE,
	}
	for text, want := range ops {
		t.Run(text, func(t *testing.T) {
			q := parse(t, "SELECT * FROM t WHERE a "+text+" 1;")
			compare := q.(core.SelectQuery).Where.(core.CompareExpr)
			assert.Equal(t, want, compare.Op)
		})
	}
}

func TestParseDateShapedStringMustBeValid(t *testing.T) {
	_, err := New().ParseStatement("INSERT INTO t VALUES ('2021-02-30');")
	assert.Error(t, err, "an impossible calendar day is a grammar error")
}

func TestParseErrors(t *testing.T) {
	statements := []string{
		"CREATE TABLE;",
		"SELEC * FROM t;",
		"INSERT INTO t VALUES (1), (2);",
		"UPDATE t SET a = 1, b = 2;",
		"SELECT * FROM t ORDER BY a;",
		"SELECT count(a) FROM t;",
		"SELECT * FROM t JOIN u ON t.a = u.a;",
		"CREATE TABLE t (a FLOAT);",
		"DROP TABLE a, b;",
	}
	p := New()
	for _, stmt := range statements {
		t.Run(stmt, func(t *testing.T) {
			_, err := p.ParseStatement(stmt)
			assert.Error(t, err)
		})
	}
}
