// SPDX-License-Identifier: Apache-2.0
package ast

// SubstAExpr replaces free occurrences of variable `name` with `repl` in
// an arithmetic expression.
func SubstAExpr(e AExpr, name string, repl AExpr) AExpr {
	switch v := e.(type) {
	case *Number:
		return v
	case *VarRef:
		if v.Name == name {
			return repl
		}
		return v
	case *ArrayRef:
		return &ArrayRef{Pos: v.Pos, EndPos: v.EndPos, Name: v.Name, Index: SubstAExpr(v.Index, name, repl)}
	case *BinaryA:
		return &BinaryA{Pos: v.Pos, EndPos: v.EndPos, Left: SubstAExpr(v.Left, name, repl), Op: v.Op, Right: SubstAExpr(v.Right, name, repl)}
	case *UnaryMinus:
		return &UnaryMinus{Pos: v.Pos, EndPos: v.EndPos, Operand: SubstAExpr(v.Operand, name, repl)}
	case *FuncCall:
		args := make([]AExpr, len(v.Args))
		for i, a := range v.Args {
			args[i] = SubstAExpr(a, name, repl)
		}
		return &FuncCall{Pos: v.Pos, EndPos: v.EndPos, Name: v.Name, Args: args}
	default:
		return e
	}
}

// SubstBExpr is capture-avoiding substitution on boolean expressions
// (§4.1): it stops descending at a quantifier whose bound name equals the
// substitution target, since below that point `name` no longer refers to
// the outer binding.
func SubstBExpr(b BExpr, name string, repl AExpr) BExpr {
	switch v := b.(type) {
	case *BoolLit:
		return v
	case *Rel:
		return &Rel{Pos: v.Pos, EndPos: v.EndPos, Left: SubstAExpr(v.Left, name, repl), Op: v.Op, Right: SubstAExpr(v.Right, name, repl)}
	case *Logic:
		return &Logic{Pos: v.Pos, EndPos: v.EndPos, Left: SubstBExpr(v.Left, name, repl), Op: v.Op, Right: SubstBExpr(v.Right, name, repl)}
	case *Implies:
		return &Implies{Pos: v.Pos, EndPos: v.EndPos, Left: SubstBExpr(v.Left, name, repl), Right: SubstBExpr(v.Right, name, repl)}
	case *Not:
		return &Not{Pos: v.Pos, EndPos: v.EndPos, Operand: SubstBExpr(v.Operand, name, repl)}
	case *Quantifier:
		if v.Bound == name {
			return v
		}
		return &Quantifier{Pos: v.Pos, EndPos: v.EndPos, Universal: v.Universal, Bound: v.Bound, Body: SubstBExpr(v.Body, name, repl)}
	default:
		return b
	}
}
