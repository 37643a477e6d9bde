package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"minidb/internal/catalog"
	"minidb/internal/output"
	"minidb/internal/parser"
	"minidb/internal/storage"
)

const testPrompt = "minidb>"

// testEngine bundles an engine over a temporary store with a captured
// output buffer; tests drive it with SQL text.
type testEngine struct {
	*Engine
	store *storage.Store
	buf   *bytes.Buffer
	p     *parser.Parser
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	store, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cat, err := catalog.Load(store)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	return &testEngine{
		Engine: New(cat, store, output.New(buf, testPrompt)),
		store:  store,
		buf:    buf,
		p:      parser.New(),
	}
}

// exec parses and executes one statement; the statement itself must be
// well-formed even when it faults.
func (e *testEngine) exec(t *testing.T, sql string) {
	t.Helper()
	q, err := e.p.ParseStatement(sql)
	require.NoError(t, err, "statement %q", sql)
	require.NoError(t, e.Execute(q))
}

// lines returns everything printed so far, split into lines.
func (e *testEngine) lines() []string {
	out := strings.TrimRight(e.buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// lastLine returns the most recent output line.
func (e *testEngine) lastLine() string {
	lines := e.lines()
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

// reset discards captured output.
func (e *testEngine) reset() {
	e.buf.Reset()
}

func msg(s string) string {
	return testPrompt + " " + s
}
