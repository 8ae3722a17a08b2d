// SPDX-License-Identifier: Apache-2.0
package pv

import "kansogcl/internal/ast"

// TranslateA lowers a GCL arithmetic expression into the term language.
func TranslateA(e ast.AExpr) Term {
	switch v := e.(type) {
	case *ast.Number:
		return IntLit(v.Value)
	case *ast.VarRef:
		return Var(v.Name)
	case *ast.UnaryMinus:
		return Neg(TranslateA(v.Operand))
	case *ast.ArrayRef:
		return Select(ArrayVar(v.Name), TranslateA(v.Index))
	case *ast.BinaryA:
		return BinOp(aOpSymbol(v.Op), TranslateA(v.Left), TranslateA(v.Right))
	case *ast.FuncCall:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = TranslateA(a)
		}
		return Call(string(v.Name), args...)
	default:
		panic("pv: unsupported arithmetic expression")
	}
}

func aOpSymbol(op ast.AOp) string {
	switch op {
	case ast.OpPlus:
		return "+"
	case ast.OpMinus:
		return "-"
	case ast.OpTimes:
		return "*"
	case ast.OpDivide:
		return "div"
	case ast.OpPow:
		return "^"
	default:
		panic("pv: unsupported arithmetic operator")
	}
}

// TranslateB lowers a GCL boolean expression into the term language.
func TranslateB(b ast.BExpr) Term {
	switch v := b.(type) {
	case *ast.BoolLit:
		return BoolLit(v.Value)
	case *ast.Rel:
		return BinOp(relOpSymbol(v.Op), TranslateA(v.Left), TranslateA(v.Right))
	case *ast.Not:
		return Not(TranslateB(v.Operand))
	case *ast.Logic:
		if v.Op.IsOr() {
			return Or(TranslateB(v.Left), TranslateB(v.Right))
		}
		return And(TranslateB(v.Left), TranslateB(v.Right))
	case *ast.Implies:
		return Implies(TranslateB(v.Left), TranslateB(v.Right))
	case *ast.Quantifier:
		if v.Universal {
			return Forall(v.Bound, TranslateB(v.Body))
		}
		return Exists(v.Bound, TranslateB(v.Body))
	default:
		panic("pv: unsupported boolean expression")
	}
}

func relOpSymbol(op ast.RelOp) string {
	switch op {
	case ast.RelEq:
		return "="
	case ast.RelNe:
		return "distinct"
	case ast.RelGt:
		return ">"
	case ast.RelGe:
		return ">="
	case ast.RelLt:
		return "<"
	case ast.RelLe:
		return "<="
	default:
		panic("pv: unsupported relational operator")
	}
}
