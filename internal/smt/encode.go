// SPDX-License-Identifier: Apache-2.0
package smt

import (
	"fmt"
	"sort"
	"strings"

	"kansogcl/internal/ast"
)

// namedFunctionArity lists the uninterpreted functions the prelude must
// declare (§4.7, "Named functions in VC"): the SMT discharge is
// intentionally incomplete for these, they are never axiomatised.
var namedFunctionArity = map[ast.Function]int{
	ast.FuncDivision: 2,
	ast.FuncMin:      2,
	ast.FuncMax:      2,
	ast.FuncFac:      1,
	ast.FuncFib:      1,
	ast.FuncExp:      2,
}

// Prelude builds the SMT-LIB declarations for a formula's free
// variables, free arrays, and any named functions it mentions: an Int
// constant per variable, an (Array Int Int) constant per array, and an
// uninterpreted Int^n -> Int function per named function actually used.
func Prelude(vars []string, arrays []string, funcs map[ast.Function]bool) string {
	var b strings.Builder
	b.WriteString("(set-logic ALL)\n")

	sortedVars := append([]string(nil), vars...)
	sort.Strings(sortedVars)
	for _, v := range sortedVars {
		fmt.Fprintf(&b, "(declare-const %s Int)\n", v)
	}

	sortedArrays := append([]string(nil), arrays...)
	sort.Strings(sortedArrays)
	for _, a := range sortedArrays {
		fmt.Fprintf(&b, "(declare-const %s (Array Int Int))\n", a)
	}

	names := make([]string, 0, len(funcs))
	for f, used := range funcs {
		if used {
			names = append(names, string(f))
		}
	}
	sort.Strings(names)
	for _, n := range names {
		arity := namedFunctionArity[ast.Function(n)]
		args := strings.Repeat("Int ", arity)
		fmt.Fprintf(&b, "(declare-fun %s (%s) Int)\n", n, strings.TrimSpace(args))
	}
	return b.String()
}

// EncodeA renders an arithmetic expression as an SMT-LIB Int term.
func EncodeA(e ast.AExpr) string {
	switch v := e.(type) {
	case *ast.Number:
		if v.Value < 0 {
			return fmt.Sprintf("(- %d)", -v.Value)
		}
		return fmt.Sprintf("%d", v.Value)
	case *ast.VarRef:
		return v.Name
	case *ast.UnaryMinus:
		return fmt.Sprintf("(- %s)", EncodeA(v.Operand))
	case *ast.ArrayRef:
		return fmt.Sprintf("(select %s %s)", v.Name, EncodeA(v.Index))
	case *ast.BinaryA:
		return fmt.Sprintf("(%s %s %s)", smtAOp(v.Op), EncodeA(v.Left), EncodeA(v.Right))
	case *ast.FuncCall:
		if len(v.Args) == 0 {
			return string(v.Name)
		}
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = EncodeA(a)
		}
		return fmt.Sprintf("(%s %s)", v.Name, strings.Join(args, " "))
	default:
		panic(fmt.Sprintf("smt: unsupported arithmetic expression %T", e))
	}
}

func smtAOp(op ast.AOp) string {
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
		return "^" // uninterpreted in practice; exponent VCs stay incomplete per §4.7
	default:
		panic(fmt.Sprintf("smt: unsupported operator %v", op))
	}
}

// EncodeB renders a boolean expression as an SMT-LIB Bool term.
func EncodeB(b ast.BExpr) string {
	switch v := b.(type) {
	case *ast.BoolLit:
		if v.Value {
			return "true"
		}
		return "false"
	case *ast.Rel:
		return fmt.Sprintf("(%s %s %s)", smtRelOp(v.Op), EncodeA(v.Left), EncodeA(v.Right))
	case *ast.Not:
		return fmt.Sprintf("(not %s)", EncodeB(v.Operand))
	case *ast.Logic:
		op := "and"
		if v.Op.IsOr() {
			op = "or"
		}
		return fmt.Sprintf("(%s %s %s)", op, EncodeB(v.Left), EncodeB(v.Right))
	case *ast.Implies:
		return fmt.Sprintf("(=> %s %s)", EncodeB(v.Left), EncodeB(v.Right))
	case *ast.Quantifier:
		quant := "exists"
		if v.Universal {
			quant = "forall"
		}
		return fmt.Sprintf("(%s ((%s Int)) %s)", quant, v.Bound, EncodeB(v.Body))
	default:
		panic(fmt.Sprintf("smt: unsupported boolean expression %T", b))
	}
}

func smtRelOp(op ast.RelOp) string {
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
		panic(fmt.Sprintf("smt: unsupported relational operator %v", op))
	}
}
