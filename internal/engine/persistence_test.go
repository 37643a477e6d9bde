package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minidb/internal/catalog"
)

// The store must agree with the in-memory state after every successful
// mutation: a fresh load rebuilds exactly the same catalog and data.
func TestReloadMatchesInMemoryState(t *testing.T) {
	e := newTestEngine(t)
	statements := []string{
		"CREATE TABLE dept (id INT, name CHAR(16), PRIMARY KEY(id));",
		"CREATE TABLE emp (id INT, dept INT, hired DATE, PRIMARY KEY(id), FOREIGN KEY(dept) REFERENCES dept(id));",
		"INSERT INTO dept VALUES (1, 'engineering');",
		"INSERT INTO dept VALUES (2, 'sales');",
		"INSERT INTO emp VALUES (10, 1, '2020-02-02');",
		"INSERT INTO emp VALUES (11, NULL, NULL);",
		"UPDATE emp SET dept = 2 WHERE id = 10;",
		"DELETE FROM dept WHERE id = 1;",
	}
	for _, stmt := range statements {
		e.exec(t, stmt)
	}

	reloaded, err := catalog.Load(e.store)
	require.NoError(t, err)

	assert.ElementsMatch(t, e.cat.Tables(), reloaded.Tables())
	for _, table := range e.cat.Tables() {
		assert.Equal(t, e.cat.Schema(table), reloaded.Schema(table), "schema of %s", table)
		assert.Equal(t, e.cat.Rows(table), reloaded.Rows(table), "rows of %s", table)
	}
}
