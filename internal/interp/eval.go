// SPDX-License-Identifier: Apache-2.0
package interp

import (
	"errors"
	"fmt"
	"math"

	"kansogcl/internal/ast"
)

// RuntimeError is the closed set of evaluation errors the spec lists in
// §7: they abort the offending transition rather than propagating.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

type RuntimeErrorKind int

const (
	DivisionByZero RuntimeErrorKind = iota
	NegativeExponent
	VariableNotFound
	ArrayNotFound
	IndexOutOfBound
	ArithmeticOverflow
	QuantifierUnsupported
)

func rtErr(kind RuntimeErrorKind, format string, args ...any) error {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsRuntimeError reports whether err is one of the RuntimeError kinds,
// unwrapping as needed.
func IsRuntimeError(err error) (*RuntimeError, bool) {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// EvalA evaluates an arithmetic expression concretely. A non-nil error
// means the edge carrying this expression cannot progress (§4.5, §7).
func EvalA(e ast.AExpr, m Memory) (int64, error) {
	switch v := e.(type) {
	case *ast.Number:
		return v.Value, nil
	case *ast.VarRef:
		val, ok := m.Var(v.Name)
		if !ok {
			return 0, rtErr(VariableNotFound, "variable %q not in memory", v.Name)
		}
		return val, nil
	case *ast.UnaryMinus:
		x, err := EvalA(v.Operand, m)
		if err != nil {
			return 0, err
		}
		return -x, nil
	case *ast.ArrayRef:
		idx, err := EvalA(v.Index, m)
		if err != nil {
			return 0, err
		}
		arr, ok := m.Array(v.Name)
		if !ok {
			return 0, rtErr(ArrayNotFound, "array %q not in memory", v.Name)
		}
		val, ok := arr[idx]
		if !ok {
			return 0, rtErr(IndexOutOfBound, "index %d out of bounds for array %q", idx, v.Name)
		}
		return val, nil
	case *ast.BinaryA:
		l, err := EvalA(v.Left, m)
		if err != nil {
			return 0, err
		}
		r, err := EvalA(v.Right, m)
		if err != nil {
			return 0, err
		}
		return evalBinary(v.Op, l, r)
	case *ast.FuncCall:
		return evalFunc(v, m)
	default:
		return 0, fmt.Errorf("interp: unsupported arithmetic expression %T", e)
	}
}

func evalBinary(op ast.AOp, l, r int64) (int64, error) {
	switch op {
	case ast.OpPlus:
		res := l + r
		if overflowsAdd(l, r, res) {
			return 0, rtErr(ArithmeticOverflow, "overflow computing %d + %d", l, r)
		}
		return res, nil
	case ast.OpMinus:
		res := l - r
		if overflowsAdd(res, r, l) {
			return 0, rtErr(ArithmeticOverflow, "overflow computing %d - %d", l, r)
		}
		return res, nil
	case ast.OpTimes:
		res := l * r
		if l != 0 && res/l != r {
			return 0, rtErr(ArithmeticOverflow, "overflow computing %d * %d", l, r)
		}
		return res, nil
	case ast.OpDivide:
		if r == 0 {
			return 0, rtErr(DivisionByZero, "division by zero")
		}
		return l / r, nil
	case ast.OpPow:
		if r < 0 {
			return 0, rtErr(NegativeExponent, "negative exponent %d", r)
		}
		res := int64(1)
		for i := int64(0); i < r; i++ {
			next := res * l
			if l != 0 && next/l != res {
				return 0, rtErr(ArithmeticOverflow, "overflow computing %d ^ %d", l, r)
			}
			res = next
		}
		return res, nil
	default:
		return 0, fmt.Errorf("interp: unsupported operator %v", op)
	}
}

func overflowsAdd(l, r, res int64) bool {
	return ((l > 0 && r > 0 && res < 0) || (l < 0 && r < 0 && res > 0)) && res != math.MaxInt64
}

func evalFunc(f *ast.FuncCall, m Memory) (int64, error) {
	args := make([]int64, 0, len(f.Args))
	var arrName string
	for _, a := range f.Args {
		if ar, ok := a.(*ast.ArrayRef); ok && (f.Name == ast.FuncLength || f.Name == ast.FuncCount) {
			arrName = ar.Name
			continue
		}
		v, err := EvalA(a, m)
		if err != nil {
			return 0, err
		}
		args = append(args, v)
	}
	switch f.Name {
	case ast.FuncDivision:
		if len(args) != 2 {
			return 0, fmt.Errorf("division expects 2 arguments")
		}
		return evalBinary(ast.OpDivide, args[0], args[1])
	case ast.FuncExp:
		if len(args) != 2 {
			return 0, fmt.Errorf("exp expects 2 arguments")
		}
		return evalBinary(ast.OpPow, args[0], args[1])
	case ast.FuncMin:
		if len(args) != 2 {
			return 0, fmt.Errorf("min expects 2 arguments")
		}
		if args[0] < args[1] {
			return args[0], nil
		}
		return args[1], nil
	case ast.FuncMax:
		if len(args) != 2 {
			return 0, fmt.Errorf("max expects 2 arguments")
		}
		if args[0] > args[1] {
			return args[0], nil
		}
		return args[1], nil
	case ast.FuncFac:
		if len(args) != 1 {
			return 0, fmt.Errorf("fac expects 1 argument")
		}
		if args[0] < 0 {
			return 0, rtErr(NegativeExponent, "factorial of negative number %d", args[0])
		}
		res := int64(1)
		for i := int64(2); i <= args[0]; i++ {
			res *= i
		}
		return res, nil
	case ast.FuncFib:
		if len(args) != 1 {
			return 0, fmt.Errorf("fib expects 1 argument")
		}
		if args[0] < 0 {
			return 0, rtErr(NegativeExponent, "fibonacci of negative number %d", args[0])
		}
		a, b := int64(0), int64(1)
		for i := int64(0); i < args[0]; i++ {
			a, b = b, a+b
		}
		return a, nil
	case ast.FuncLength, ast.FuncCount:
		if arrName == "" {
			return 0, fmt.Errorf("%s expects an array argument", f.Name)
		}
		arr, ok := m.Array(arrName)
		if !ok {
			return 0, rtErr(ArrayNotFound, "array %q not in memory", arrName)
		}
		return int64(len(arr)), nil
	default:
		return 0, fmt.Errorf("interp: unknown function %q", f.Name)
	}
}

// EvalB evaluates a boolean expression concretely. A quantifier is
// evaluated over a bounded integer range, per SPEC_FULL's supplement to
// §3 ("first-order quantification over an integer-typed bound variable"
// has no finite concrete semantics otherwise).
const quantifierBound = 64

func EvalB(b ast.BExpr, m Memory) (bool, error) {
	switch v := b.(type) {
	case *ast.BoolLit:
		return v.Value, nil
	case *ast.Rel:
		l, err := EvalA(v.Left, m)
		if err != nil {
			return false, err
		}
		r, err := EvalA(v.Right, m)
		if err != nil {
			return false, err
		}
		return evalRel(v.Op, l, r), nil
	case *ast.Not:
		x, err := EvalB(v.Operand, m)
		if err != nil {
			return false, err
		}
		return !x, nil
	case *ast.Implies:
		l, err := EvalB(v.Left, m)
		if err != nil {
			return false, err
		}
		if !l {
			return true, nil
		}
		return EvalB(v.Right, m)
	case *ast.Logic:
		return evalLogic(v, m)
	case *ast.Quantifier:
		for i := int64(-quantifierBound); i <= quantifierBound; i++ {
			bound := m.WithVar(v.Bound, i)
			res, err := EvalB(v.Body, bound)
			if err != nil {
				continue
			}
			if res && !v.Universal {
				return true, nil // exists: found a witness
			}
			if v.Universal && !res {
				return false, nil // forall: found a counterexample
			}
		}
		return v.Universal, nil
	default:
		return false, fmt.Errorf("interp: unsupported boolean expression %T", b)
	}
}

func evalRel(op ast.RelOp, l, r int64) bool {
	switch op {
	case ast.RelEq:
		return l == r
	case ast.RelNe:
		return l != r
	case ast.RelGt:
		return l > r
	case ast.RelGe:
		return l >= r
	case ast.RelLt:
		return l < r
	case ast.RelLe:
		return l <= r
	default:
		return false
	}
}

func evalLogic(v *ast.Logic, m Memory) (bool, error) {
	l, err := EvalB(v.Left, m)
	if err != nil {
		return false, err
	}
	if v.Op.IsShortCircuit() {
		shortCircuit := v.Op.IsOr()
		if l == shortCircuit {
			return shortCircuit, nil
		}
		return EvalB(v.Right, m)
	}
	r, err := EvalB(v.Right, m)
	if err != nil {
		return false, err
	}
	if v.Op.IsOr() {
		return l || r, nil
	}
	return l && r, nil
}
