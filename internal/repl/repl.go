// Package repl reads SQL statements from the terminal. Statements are
// terminated by ';', may span several lines, and several may share one
// input buffer; each is parsed and executed in order. A statement that does
// not parse prints a single "Syntax error" line and the session continues.
package repl

import (
	"bufio"
	"io"
	"strings"

	"minidb/internal/engine"
	"minidb/internal/output"
	"minidb/internal/parser"
)

const syntaxError = "Syntax error"

// REPL drives one interactive session.
type REPL struct {
	in     *bufio.Scanner
	out    *output.Printer
	parser *parser.Parser
	eng    *engine.Engine
}

// New builds a session over the given input stream.
func New(in io.Reader, out *output.Printer, p *parser.Parser, eng *engine.Engine) *REPL {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &REPL{in: sc, out: out, parser: p, eng: eng}
}

// Run processes buffers until `exit;` or end of input. Statement faults are
// printed and recovered; only infrastructure failures (store writes) abort
// the session.
func (r *REPL) Run() error {
	for {
		r.out.Prompt()
		buf, ok := r.readBuffer()
		if !ok {
			return nil
		}
		for _, stmt := range SplitStatements(buf) {
			if isExit(stmt) {
				return nil
			}
			q, err := r.parser.ParseStatement(stmt)
			if err != nil {
				r.out.Msg(syntaxError)
				continue
			}
			if err := r.eng.Execute(q); err != nil {
				return err
			}
		}
	}
}

// readBuffer accumulates input lines until the buffer ends with a statement
// terminator. Lines join with a single space. ok is false at end of input
// with no pending statement.
func (r *REPL) readBuffer() (string, bool) {
	buf := ""
	for {
		if !r.in.Scan() {
			return "", false
		}
		if buf != "" {
			buf += " "
		}
		buf += r.in.Text()
		buf = strings.TrimRight(buf, " \t")
		if strings.HasSuffix(buf, ";") && !insideQuote(buf) {
			return buf, true
		}
	}
}

// SplitStatements cuts a buffer into ';'-terminated statements, ignoring
// semicolons inside quoted strings. The terminator stays attached.
func SplitStatements(buf string) []string {
	var stmts []string
	start := 0
	quoted := false
	for i := 0; i < len(buf); i++ {
		switch buf[i] {
		case '\'':
			quoted = !quoted
		case ';':
			if !quoted {
				stmt := strings.TrimSpace(buf[start : i+1])
				if stmt != ";" {
					stmts = append(stmts, stmt)
				}
				start = i + 1
			}
		}
	}
	return stmts
}

// insideQuote reports whether the end of buf is inside an unterminated
// string literal.
func insideQuote(buf string) bool {
	quoted := false
	for i := 0; i < len(buf); i++ {
		if buf[i] == '\'' {
			quoted = !quoted
		}
	}
	return quoted
}

func isExit(stmt string) bool {
	stmt = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(stmt), ";"))
	return strings.EqualFold(stmt, "exit")
}
