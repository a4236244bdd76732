// Package query implements the tag query language: parsing, validation
// against the stored vocabulary, and compilation to SQL.
package query

// Expr is a node of a parsed query expression.
type Expr interface {
	exprNode()
}

// Tagged matches files carrying Tag with any value.
type Tagged struct {
	Tag string
}

// Comparison matches files whose value for Tag compares against Value.
type Comparison struct {
	Tag   string
	Op    CompareOp
	Value string
}

// And matches files matching both operands.
type And struct {
	Left  Expr
	Right Expr
}

// Or matches files matching either operand.
type Or struct {
	Left  Expr
	Right Expr
}

// Not matches files not matching Operand.
type Not struct {
	Operand Expr
}

func (*Tagged) exprNode()     {}
func (*Comparison) exprNode() {}
func (*And) exprNode()        {}
func (*Or) exprNode()         {}
func (*Not) exprNode()        {}

// CompareOp represents a comparison operator.
type CompareOp int

const (
	CompareEq  CompareOp = iota // == (equals)
	CompareNeq                  // != (not equals)
	CompareLt                   // <
	CompareGt                   // >
	CompareLte                  // <=
	CompareGte                  // >=
)

func (op CompareOp) String() string {
	switch op {
	case CompareEq:
		return "=="
	case CompareNeq:
		return "!="
	case CompareLt:
		return "<"
	case CompareGt:
		return ">"
	case CompareLte:
		return "<="
	case CompareGte:
		return ">="
	default:
		return "?"
	}
}

// sqlOperator is the operator used inside the value subquery. Inequality is
// expressed as equality with the enclosing membership test negated, so a file
// carrying several values for one tag is excluded when any of them matches.
func (op CompareOp) sqlOperator() (operator string, negate bool) {
	switch op {
	case CompareNeq:
		return "=", true
	case CompareLt:
		return "<", false
	case CompareGt:
		return ">", false
	case CompareLte:
		return "<=", false
	case CompareGte:
		return ">=", false
	default:
		return "=", false
	}
}

// Tags returns every tag name referenced by e in document order, duplicates
// included. Comparisons contribute their tag.
func Tags(e Expr) []string {
	var names []string
	walk(e, func(n Expr) {
		switch n := n.(type) {
		case *Tagged:
			names = append(names, n.Tag)
		case *Comparison:
			names = append(names, n.Tag)
		}
	})
	return names
}

// Values returns every value literal referenced by comparisons in e, in
// document order, duplicates included.
func Values(e Expr) []string {
	var values []string
	walk(e, func(n Expr) {
		if c, ok := n.(*Comparison); ok {
			values = append(values, c.Value)
		}
	})
	return values
}

// walk visits the nodes of e in pre-order, left before right, using an
// explicit stack.
func walk(e Expr, visit func(Expr)) {
	if e == nil {
		return
	}
	stack := []Expr{e}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(n)

		switch n := n.(type) {
		case *And:
			stack = append(stack, n.Right, n.Left)
		case *Or:
			stack = append(stack, n.Right, n.Left)
		case *Not:
			stack = append(stack, n.Operand)
		}
	}
}

// Nesting returns how many parenthesized levels the compiled form of e
// needs. A run of one binary operator shares its level; each 'not' and each
// switch between 'and' and 'or' opens a new one.
func Nesting(e Expr) int {
	if e == nil {
		return 0
	}
	type frame struct {
		node   Expr
		parent Expr
		level  int
	}
	deepest := 0
	stack := []frame{{node: e}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		level := f.level
		switch n := f.node.(type) {
		case *And:
			if _, ok := f.parent.(*Or); ok {
				level++
			}
			stack = append(stack, frame{n.Right, n, level}, frame{n.Left, n, level})
		case *Or:
			if _, ok := f.parent.(*And); ok {
				level++
			}
			stack = append(stack, frame{n.Right, n, level}, frame{n.Left, n, level})
		case *Not:
			level++
			stack = append(stack, frame{n.Operand, n, level})
		}
		if level > deepest {
			deepest = level
		}
	}
	return deepest
}
