// SPDX-License-Identifier: Apache-2.0
package ast

import (
	"fmt"
	"strings"
)

// AExpr is an arithmetic expression: integer literals, target references,
// binary operations, unary minus, and named functions (§3).
type AExpr interface {
	Node
	aexpr()
}

// BExpr is a boolean expression: literals, relations, short-circuit and
// full-evaluation logic, negation, and bounded quantification (§3).
type BExpr interface {
	Node
	bexpr()
}

// AOp is an arithmetic binary operator.
type AOp int

const (
	OpPlus AOp = iota
	OpMinus
	OpTimes
	OpDivide
	OpPow
)

func (op AOp) String() string {
	switch op {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpTimes:
		return "*"
	case OpDivide:
		return "/"
	case OpPow:
		return "^"
	default:
		return "?"
	}
}

// RelOp is a relational operator over two arithmetic expressions.
type RelOp int

const (
	RelEq RelOp = iota
	RelNe
	RelGt
	RelGe
	RelLt
	RelLe
)

func (op RelOp) String() string {
	switch op {
	case RelEq:
		return "="
	case RelNe:
		return "!="
	case RelGt:
		return ">"
	case RelGe:
		return ">="
	case RelLt:
		return "<"
	case RelLe:
		return "<="
	default:
		return "?"
	}
}

// LogicOp is a boolean connective. The short-circuit variants (Land `&`,
// Lor `|`) skip the right side when the left side decides the result;
// the full-evaluation variants (And `&&`, Or `||`) always evaluate both
// sides. Both the concrete interpreter and the sign abstraction make
// this distinction (see IsShortCircuit).
type LogicOp int

const (
	LogicAnd LogicOp = iota
	LogicLand
	LogicOr
	LogicLor
)

func (op LogicOp) String() string {
	switch op {
	case LogicAnd:
		return "&&"
	case LogicLand:
		return "&"
	case LogicOr:
		return "||"
	case LogicLor:
		return "|"
	default:
		return "?"
	}
}

func (op LogicOp) IsOr() bool { return op == LogicOr || op == LogicLor }

// IsShortCircuit reports whether op is one of the short-circuit variants
// (`&`, `|`) rather than the full-evaluation ones (`&&`, `||`).
func (op LogicOp) IsShortCircuit() bool {
	return op == LogicLand || op == LogicLor
}

// Function names the built-in named arithmetic functions of §3.
type Function string

const (
	FuncDivision Function = "division"
	FuncMin      Function = "min"
	FuncMax      Function = "max"
	FuncFac      Function = "fac"
	FuncFib      Function = "fib"
	FuncExp      Function = "exp"
	FuncCount    Function = "count"
	FuncLength   Function = "length"
)

// ---- AExpr variants ----

type Number struct {
	Pos, EndPos Position
	Value       int64
}

func (*Number) aexpr()                 {}
func (n *Number) NodePos() Position    { return n.Pos }
func (n *Number) NodeEndPos() Position { return n.EndPos }
func (n *Number) String() string       { return fmt.Sprintf("%d", n.Value) }

type VarRef struct {
	Pos, EndPos Position
	Name        string
}

func (*VarRef) aexpr()                 {}
func (v *VarRef) NodePos() Position    { return v.Pos }
func (v *VarRef) NodeEndPos() Position { return v.EndPos }
func (v *VarRef) String() string       { return v.Name }

type ArrayRef struct {
	Pos, EndPos Position
	Name        string
	Index       AExpr
}

func (*ArrayRef) aexpr()                 {}
func (a *ArrayRef) NodePos() Position    { return a.Pos }
func (a *ArrayRef) NodeEndPos() Position { return a.EndPos }
func (a *ArrayRef) String() string       { return fmt.Sprintf("%s[%s]", a.Name, a.Index) }

type BinaryA struct {
	Pos, EndPos Position
	Left        AExpr
	Op          AOp
	Right       AExpr
}

func (*BinaryA) aexpr()                 {}
func (b *BinaryA) NodePos() Position    { return b.Pos }
func (b *BinaryA) NodeEndPos() Position { return b.EndPos }
func (b *BinaryA) String() string       { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }

type UnaryMinus struct {
	Pos, EndPos Position
	Operand     AExpr
}

func (*UnaryMinus) aexpr()                 {}
func (u *UnaryMinus) NodePos() Position    { return u.Pos }
func (u *UnaryMinus) NodeEndPos() Position { return u.EndPos }
func (u *UnaryMinus) String() string       { return fmt.Sprintf("-%s", u.Operand) }

type FuncCall struct {
	Pos, EndPos Position
	Name        Function
	Args        []AExpr
}

func (*FuncCall) aexpr()                 {}
func (f *FuncCall) NodePos() Position    { return f.Pos }
func (f *FuncCall) NodeEndPos() Position { return f.EndPos }
func (f *FuncCall) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(parts, ", "))
}

// ---- BExpr variants ----

type BoolLit struct {
	Pos, EndPos Position
	Value       bool
}

func (*BoolLit) bexpr()                 {}
func (b *BoolLit) NodePos() Position    { return b.Pos }
func (b *BoolLit) NodeEndPos() Position { return b.EndPos }
func (b *BoolLit) String() string       { return fmt.Sprintf("%t", b.Value) }

type Rel struct {
	Pos, EndPos Position
	Left        AExpr
	Op          RelOp
	Right       AExpr
}

func (*Rel) bexpr()                 {}
func (r *Rel) NodePos() Position    { return r.Pos }
func (r *Rel) NodeEndPos() Position { return r.EndPos }
func (r *Rel) String() string       { return fmt.Sprintf("%s %s %s", r.Left, r.Op, r.Right) }

type Logic struct {
	Pos, EndPos Position
	Left        BExpr
	Op          LogicOp
	Right       BExpr
}

func (*Logic) bexpr()                 {}
func (l *Logic) NodePos() Position    { return l.Pos }
func (l *Logic) NodeEndPos() Position { return l.EndPos }
func (l *Logic) String() string       { return fmt.Sprintf("(%s %s %s)", l.Left, l.Op, l.Right) }

// Implies is p => q. The interpreter and the sign analysis evaluate it
// as !p || q, and the VC generator renders it as SMT-LIB `=>`.
type Implies struct {
	Pos, EndPos Position
	Left, Right BExpr
}

func (*Implies) bexpr()                 {}
func (i *Implies) NodePos() Position    { return i.Pos }
func (i *Implies) NodeEndPos() Position { return i.EndPos }
func (i *Implies) String() string       { return fmt.Sprintf("(%s => %s)", i.Left, i.Right) }

type Not struct {
	Pos, EndPos Position
	Operand     BExpr
}

func (*Not) bexpr()                 {}
func (n *Not) NodePos() Position    { return n.Pos }
func (n *Not) NodeEndPos() Position { return n.EndPos }
func (n *Not) String() string       { return fmt.Sprintf("!%s", n.Operand) }

// Quantifier is first-order quantification over an integer-typed bound
// variable ("forall x. b" / "exists x. b").
type Quantifier struct {
	Pos, EndPos Position
	Universal   bool
	Bound       string
	Body        BExpr
}

func (*Quantifier) bexpr()                 {}
func (q *Quantifier) NodePos() Position    { return q.Pos }
func (q *Quantifier) NodeEndPos() Position { return q.EndPos }
func (q *Quantifier) String() string {
	kw := "exists"
	if q.Universal {
		kw = "forall"
	}
	return fmt.Sprintf("(%s %s. %s)", kw, q.Bound, q.Body)
}
