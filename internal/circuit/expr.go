// Package circuit provides the Boolean expressions that wire a level's switches
// to its bulb. Expressions are pure: the same input vector always yields the
// same output and evaluation never mutates anything.
package circuit

import "fmt"

// Expression maps a vector of switch values to a single bulb output.
type Expression interface {
	Evaluate(values []bool) bool
}

// Func adapts an arbitrary predicate to the Expression interface.
type Func func(values []bool) bool

// Evaluate calls f.
func (f Func) Evaluate(values []bool) bool {
	return f(values)
}

// Op identifies a binary gate.
type Op uint8

const (
	OpAnd Op = iota
	OpOr
	OpXor
	OpXnor
	OpNand
	OpNor
)

// String returns the gate name.
func (o Op) String() string {
	switch o {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpXor:
		return "XOR"
	case OpXnor:
		return "XNOR"
	case OpNand:
		return "NAND"
	case OpNor:
		return "NOR"
	default:
		return "Unknown"
	}
}

// apply computes the gate output for two inputs.
func (o Op) apply(l, r bool) bool {
	switch o {
	case OpAnd:
		return l && r
	case OpOr:
		return l || r
	case OpXor:
		return l != r
	case OpXnor:
		return l == r
	case OpNand:
		return !(l && r)
	case OpNor:
		return !(l || r)
	default:
		return false
	}
}

// Var reads one switch by index. Indexes outside the vector read as false.
type Var int

// Evaluate returns values[v].
func (v Var) Evaluate(values []bool) bool {
	if int(v) < 0 || int(v) >= len(values) {
		return false
	}
	return values[v]
}

// String returns the letter name of the switch (a, b, c...).
func (v Var) String() string {
	if v >= 0 && v < 26 {
		return string(rune('a' + v))
	}
	return fmt.Sprintf("x%d", int(v))
}

// Const is a fixed input.
type Const bool

// Evaluate returns the constant.
func (c Const) Evaluate([]bool) bool {
	return bool(c)
}

// String returns "1" or "0".
func (c Const) String() string {
	if c {
		return "1"
	}
	return "0"
}

// Not inverts its operand.
type Not struct {
	X Expression
}

// Evaluate returns !X.
func (n Not) Evaluate(values []bool) bool {
	return !n.X.Evaluate(values)
}

// String renders the negation.
func (n Not) String() string {
	return "!" + operandString(n.X)
}

// Binary combines two operands through a gate.
type Binary struct {
	Op   Op
	L, R Expression
}

// Evaluate applies the gate to both operands.
func (b Binary) Evaluate(values []bool) bool {
	return b.Op.apply(b.L.Evaluate(values), b.R.Evaluate(values))
}

// String renders the expression in the parser's syntax.
func (b Binary) String() string {
	return operandString(b.L) + " " + opSymbol(b.Op) + " " + operandString(b.R)
}

func opSymbol(o Op) string {
	switch o {
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpXor:
		return "^"
	case OpXnor:
		return "=="
	default:
		return o.String()
	}
}

// operandString parenthesizes compound operands.
func operandString(e Expression) string {
	switch x := e.(type) {
	case Binary:
		return "(" + x.String() + ")"
	case fmt.Stringer:
		return x.String()
	default:
		return "<func>"
	}
}

// Helpers for building expression trees in code.

func And(l, r Expression) Expression  { return Binary{Op: OpAnd, L: l, R: r} }
func Or(l, r Expression) Expression   { return Binary{Op: OpOr, L: l, R: r} }
func Xor(l, r Expression) Expression  { return Binary{Op: OpXor, L: l, R: r} }
func Xnor(l, r Expression) Expression { return Binary{Op: OpXnor, L: l, R: r} }
func Nand(l, r Expression) Expression { return Binary{Op: OpNand, L: l, R: r} }
func Nor(l, r Expression) Expression  { return Binary{Op: OpNor, L: l, R: r} }

// Arity returns the highest switch index referenced by the tree plus one.
// Func expressions are opaque and report -1.
func Arity(e Expression) int {
	switch x := e.(type) {
	case Var:
		return int(x) + 1
	case Const:
		return 0
	case Not:
		return Arity(x.X)
	case Binary:
		l, r := Arity(x.L), Arity(x.R)
		if l < 0 || r < 0 {
			return -1
		}
		return max(l, r)
	default:
		return -1
	}
}

// Gates counts the gates in a tree. Func expressions count as one.
func Gates(e Expression) int {
	switch x := e.(type) {
	case Var, Const:
		return 0
	case Not:
		return 1 + Gates(x.X)
	case Binary:
		return 1 + Gates(x.L) + Gates(x.R)
	default:
		return 1
	}
}
