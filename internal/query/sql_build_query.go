package query

import (
	"path"
	"path/filepath"

	"github.com/aidanlsb/tagr/internal/sqlutil"
)

// Statement is a compiled SQL statement and its bound parameters.
type Statement struct {
	SQL    string
	Params []any
}

// FileColumns is the column list shared by every file row query.
const FileColumns = "id, directory, name, fingerprint, mod_time, size, is_dir"

// CompileFiles lowers e into a statement returning matching file rows. A nil
// expression matches every file.
func CompileFiles(e Expr, opts Options) Statement {
	c := newCompiler(opts)
	c.b.PushSQL("SELECT " + FileColumns + "\nFROM file\nWHERE")
	c.filters(e)
	c.sort()
	return c.statement()
}

// CompileCount lowers e into a statement returning the number of matching
// files. It applies the same filters as CompileFiles.
func CompileCount(e Expr, opts Options) Statement {
	c := newCompiler(opts)
	c.b.PushSQL("SELECT count(1)\nFROM file\nWHERE")
	c.filters(e)
	return c.statement()
}

type compiler struct {
	b    *sqlutil.Builder
	opts Options
}

func newCompiler(opts Options) *compiler {
	return &compiler{b: sqlutil.NewBuilder(), opts: opts}
}

func (c *compiler) statement() Statement {
	return Statement{SQL: c.b.SQL(), Params: c.b.Params()}
}

func (c *compiler) filters(e Expr) {
	switch e.(type) {
	case nil:
		c.b.PushSQL("1 = 1")
	case *Or:
		// The file type and path conditions are ANDed on below.
		c.b.PushSQL("(")
		c.expr(e)
		c.b.PushSQL(")")
	default:
		c.expr(e)
	}
	c.fileType()
	c.path()
}

func (c *compiler) expr(e Expr) {
	switch n := e.(type) {
	case *And:
		c.run(n, "AND")
	case *Or:
		c.run(n, "OR")
	case *Not:
		c.b.PushSQL("NOT (")
		c.expr(n.Operand)
		c.b.PushSQL(")")
	case *Tagged:
		c.tag(n)
	case *Comparison:
		c.comparison(n)
	}
}

// run emits a chain of one binary operator without nesting, so long chains
// stay flat in the SQL. Operands using the other operator are parenthesized.
func (c *compiler) run(root Expr, operator string) {
	for i, operand := range operands(root) {
		if i > 0 {
			c.b.PushSQL(operator)
		}
		switch operand.(type) {
		case *And, *Or:
			c.b.PushSQL("(")
			c.expr(operand)
			c.b.PushSQL(")")
		default:
			c.expr(operand)
		}
	}
}

// operands lists, left to right, the terms of the run of root's operator.
func operands(root Expr) []Expr {
	_, rootIsAnd := root.(*And)

	var terms []Expr
	stack := []Expr{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch m := n.(type) {
		case *And:
			if rootIsAnd {
				stack = append(stack, m.Right, m.Left)
				continue
			}
		case *Or:
			if !rootIsAnd {
				stack = append(stack, m.Right, m.Left)
				continue
			}
		}
		terms = append(terms, n)
	}
	return terms
}

func (c *compiler) fileType() {
	switch c.opts.FileType {
	case FileTypeFileOnly:
		c.b.PushSQL("AND NOT is_dir")
	case FileTypeDirectoryOnly:
		c.b.PushSQL("AND is_dir")
	}
}

// path restricts results to the scope directory itself, the single file the
// scope names, or anything beneath the scope.
func (c *compiler) path() {
	scope, ok := normalizeScope(c.opts.Path)
	if !ok {
		return
	}

	c.b.PushSQL("AND (")
	c.b.PushSQL("directory = ").PushParameter(scope)
	c.b.PushSQL("OR (directory = ").PushParameter(path.Dir(scope))
	c.b.PushSQL(" AND name = ").PushParameter(path.Base(scope))
	c.b.PushSQL(")")
	c.b.PushSQL("OR directory GLOB ").PushParameter(escapeGlobPattern(scope) + "/*")
	c.b.PushSQL(")")
}

func (c *compiler) sort() {
	switch c.opts.Sort {
	case SortNone:
	case SortID:
		c.b.PushSQL("ORDER BY id")
	case SortTime:
		c.b.PushSQL("ORDER BY mod_time, directory, name")
	case SortSize:
		c.b.PushSQL("ORDER BY size, directory, name")
	default:
		c.b.PushSQL("ORDER BY directory, name")
	}
}

// normalizeScope cleans a path scope. It reports false for empty and root
// scopes, which restrict nothing.
func normalizeScope(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	p = path.Clean(filepath.ToSlash(p))
	if p == "." || p == "/" {
		return "", false
	}
	return p, true
}
