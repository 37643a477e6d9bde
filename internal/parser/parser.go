// Package parser lowers SQL text into the engine's query tree. It uses
// TiDB's parser for the grammar and converts the AST into core types,
// rejecting everything outside the engine's statement surface. Identifiers
// fold to lowercase here, so the rest of the engine compares names
// byte-equal.
package parser

import (
	"fmt"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/mysql"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"minidb/internal/core"
)

// Parser converts SQL statements into core queries.
type Parser struct {
	p *parser.Parser
}

// New creates a parser.
func New() *Parser {
	return &Parser{p: parser.New()}
}

// ParseStatement lowers a single statement. Any grammar failure or construct
// outside the engine's surface is an error; the REPL renders every such
// error as one "Syntax error" line.
func (p *Parser) ParseStatement(sql string) (core.Query, error) {
	stmts, _, err := p.p.Parse(sql, "", "")
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if len(stmts) != 1 {
		return nil, fmt.Errorf("expected one statement, got %d", len(stmts))
	}
	return p.lower(stmts[0])
}

func (p *Parser) lower(stmt ast.StmtNode) (core.Query, error) {
	switch stmt := stmt.(type) {
	case *ast.CreateTableStmt:
		return p.lowerCreateTable(stmt)
	case *ast.DropTableStmt:
		return p.lowerDropTable(stmt)
	case *ast.ExplainStmt:
		return p.lowerExplain(stmt)
	case *ast.ShowStmt:
		return p.lowerShow(stmt)
	case *ast.InsertStmt:
		return p.lowerInsert(stmt)
	case *ast.DeleteStmt:
		return p.lowerDelete(stmt)
	case *ast.UpdateStmt:
		return p.lowerUpdate(stmt)
	case *ast.SelectStmt:
		return p.lowerSelect(stmt)
	}
	return nil, fmt.Errorf("unsupported statement %T", stmt)
}

func (p *Parser) lowerCreateTable(stmt *ast.CreateTableStmt) (core.Query, error) {
	q := core.CreateTableQuery{Name: stmt.Table.Name.L}

	for _, colDef := range stmt.Cols {
		dt, err := lowerDataType(colDef)
		if err != nil {
			return nil, err
		}
		def := core.ColumnDef{Name: colDef.Name.Name.L, Type: dt}
		for _, opt := range colDef.Options {
			switch opt.Tp {
			case ast.ColumnOptionNotNull:
				def.NotNull = true
			case ast.ColumnOptionNull:
			default:
				return nil, fmt.Errorf("unsupported column option %v", opt.Tp)
			}
		}
		q.Columns = append(q.Columns, def)
	}

	for _, cons := range stmt.Constraints {
		switch cons.Tp {
		case ast.ConstraintPrimaryKey:
			q.PrimaryKeys = append(q.PrimaryKeys, core.PrimaryKeyDef{Columns: keyColumns(cons.Keys)})
		case ast.ConstraintForeignKey:
			if cons.Refer == nil || cons.Refer.Table == nil {
				return nil, fmt.Errorf("incomplete foreign key")
			}
			fk := core.ForeignKeyDef{
				Columns:  keyColumns(cons.Keys),
				RefTable: cons.Refer.Table.Name.L,
			}
			for _, spec := range cons.Refer.IndexPartSpecifications {
				if spec.Column == nil {
					return nil, fmt.Errorf("incomplete foreign key reference")
				}
				fk.RefColumns = append(fk.RefColumns, spec.Column.Name.L)
			}
			q.ForeignKeys = append(q.ForeignKeys, fk)
		default:
			return nil, fmt.Errorf("unsupported constraint %v", cons.Tp)
		}
	}
	return q, nil
}

// lowerDataType accepts the engine's three column types: INT, CHAR(N), DATE.
func lowerDataType(colDef *ast.ColumnDef) (core.DataType, error) {
	switch colDef.Tp.GetType() {
	case mysql.TypeLong:
		return core.IntType(), nil
	case mysql.TypeString:
		n := colDef.Tp.GetFlen()
		if n < 0 {
			n = 1 // bare CHAR defaults to length 1
		}
		return core.CharType(n), nil
	case mysql.TypeDate:
		return core.DateType(), nil
	}
	return core.DataType{}, fmt.Errorf("unsupported column type %s", colDef.Tp.String())
}

func keyColumns(keys []*ast.IndexPartSpecification) []string {
	cols := make([]string, 0, len(keys))
	for _, k := range keys {
		if k.Column != nil {
			cols = append(cols, k.Column.Name.L)
		}
	}
	return cols
}

func (p *Parser) lowerDropTable(stmt *ast.DropTableStmt) (core.Query, error) {
	if len(stmt.Tables) != 1 {
		return nil, fmt.Errorf("expected one table, got %d", len(stmt.Tables))
	}
	return core.DropTableQuery{Name: stmt.Tables[0].Name.L}, nil
}

// lowerExplain handles DESC, DESCRIBE, and EXPLAIN on a table name, which
// the grammar turns into an EXPLAIN of a SHOW COLUMNS statement.
func (p *Parser) lowerExplain(stmt *ast.ExplainStmt) (core.Query, error) {
	show, ok := stmt.Stmt.(*ast.ShowStmt)
	if !ok || show.Tp != ast.ShowColumns || show.Table == nil {
		return nil, fmt.Errorf("unsupported explain target")
	}
	return core.DescTableQuery{Name: show.Table.Name.L}, nil
}

func (p *Parser) lowerShow(stmt *ast.ShowStmt) (core.Query, error) {
	if stmt.Tp != ast.ShowTables {
		return nil, fmt.Errorf("unsupported show statement")
	}
	return core.ShowTablesQuery{}, nil
}
