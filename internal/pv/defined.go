// SPDX-License-Identifier: Apache-2.0
package pv

import "kansogcl/internal/ast"

// DefinedA collects the well-definedness obligations of an arithmetic
// expression (§4.7): every divisor must be nonzero, every exponent
// nonnegative, every array index in bounds. Obligations compose by
// conjunction and recurse into subexpressions, since a malformed inner
// term makes the whole expression undefined regardless of the outer
// operator.
func DefinedA(e ast.AExpr) Term {
	switch v := e.(type) {
	case *ast.Number:
		return BoolLit(true)
	case *ast.VarRef:
		return BoolLit(true)
	case *ast.UnaryMinus:
		return DefinedA(v.Operand)
	case *ast.ArrayRef:
		idx := TranslateA(v.Index)
		inBounds := And(
			BinOp("<=", IntLit(0), idx),
			BinOp("<", idx, Call("length", ArrayVar(v.Name))),
		)
		return And(DefinedA(v.Index), inBounds)
	case *ast.BinaryA:
		base := And(DefinedA(v.Left), DefinedA(v.Right))
		switch v.Op {
		case ast.OpDivide:
			return And(base, Not(BinOp("=", TranslateA(v.Right), IntLit(0))))
		case ast.OpPow:
			return And(base, BinOp(">=", TranslateA(v.Right), IntLit(0)))
		default:
			return base
		}
	case *ast.FuncCall:
		out := BoolLit(true)
		for _, a := range v.Args {
			out = And(out, DefinedA(a))
		}
		if v.Name == ast.FuncFac || v.Name == ast.FuncFib {
			out = And(out, BinOp(">=", TranslateA(v.Args[0]), IntLit(0)))
		}
		return out
	default:
		panic("pv: unsupported arithmetic expression")
	}
}

// DefinedB collects the well-definedness obligations of a boolean
// expression: quantifiers and logic connectives just propagate their
// operands' obligations, since GCL's own evaluation order never makes a
// boolean connective itself ill-defined.
func DefinedB(b ast.BExpr) Term {
	switch v := b.(type) {
	case *ast.BoolLit:
		return BoolLit(true)
	case *ast.Rel:
		return And(DefinedA(v.Left), DefinedA(v.Right))
	case *ast.Not:
		return DefinedB(v.Operand)
	case *ast.Logic:
		return And(DefinedB(v.Left), DefinedB(v.Right))
	case *ast.Implies:
		return And(DefinedB(v.Left), DefinedB(v.Right))
	case *ast.Quantifier:
		return DefinedB(v.Body)
	default:
		panic("pv: unsupported boolean expression")
	}
}
