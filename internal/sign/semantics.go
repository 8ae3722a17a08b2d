// SPDX-License-Identifier: Apache-2.0
package sign

import (
	"kansogcl/internal/ast"
	"kansogcl/internal/memory"
)

// Memory is the abstract store for a single sign analysis state: each
// variable maps to a Sign, each array to a Signs (the array abstracts
// all of its elements at once, per §3).
type Memory = memory.Memory[Sign, Signs]

func NewMemory() Memory { return memory.New[Sign, Signs]() }

// BoolSigns is the set of possible results of evaluating a boolean
// expression abstractly: it may be able to yield true, false, both, or (if a
// variable is undefined along every representative) neither.
type BoolSigns uint8

const (
	boolTrue  BoolSigns = 1 << 0
	boolFalse BoolSigns = 1 << 1
)

func (b BoolSigns) Has(v bool) bool {
	if v {
		return b&boolTrue != 0
	}
	return b&boolFalse != 0
}
func (b BoolSigns) Insert(v bool) BoolSigns {
	if v {
		return b | boolTrue
	}
	return b | boolFalse
}
func (b BoolSigns) Union(o BoolSigns) BoolSigns { return b | o }
func (b BoolSigns) Not() BoolSigns {
	var out BoolSigns
	if b.Has(true) {
		out = out.Insert(false)
	}
	if b.Has(false) {
		out = out.Insert(true)
	}
	return out
}

// EvalA computes ⟦aexpr⟧(m): the set of signs the expression might carry
// in abstract memory m (§4.4).
func EvalA(e ast.AExpr, m Memory) Signs {
	switch v := e.(type) {
	case *ast.Number:
		return SignsOf(signOf(v.Value))
	case *ast.VarRef:
		s, ok := m.Var(v.Name)
		if !ok {
			panic("sign: variable '" + v.Name + "' not in memory")
		}
		return SignsOf(s)
	case *ast.UnaryMinus:
		in := EvalA(v.Operand, m)
		var out Signs
		for _, s := range in.Iter() {
			out = out.Insert(negate(s))
		}
		return out
	case *ast.ArrayRef:
		idx := EvalA(v.Index, m)
		if !idx.Has(Zero) && !idx.Has(Positive) {
			return None
		}
		arr, ok := m.Array(v.Name)
		if !ok {
			panic("sign: array '" + v.Name + "' not in memory")
		}
		return arr
	case *ast.BinaryA:
		l := EvalA(v.Left, m)
		r := EvalA(v.Right, m)
		var out Signs
		for _, ls := range l.Iter() {
			for _, rs := range r.Iter() {
				for _, lrep := range ls.representative() {
					for _, rrep := range rs.representative() {
						res, ok := applyAOp(v.Op, lrep, rrep)
						if ok {
							out = out.Insert(signOf(res))
						}
					}
				}
			}
		}
		return out
	case *ast.FuncCall:
		// Named functions are outside the sign domain's abstraction
		// (the VC generator treats them as uninterpreted); here they
		// conservatively yield every sign.
		return All
	default:
		return All
	}
}

func negate(s Sign) Sign {
	switch s {
	case Positive:
		return Negative
	case Negative:
		return Positive
	default:
		return Zero
	}
}

func applyAOp(op ast.AOp, l, r int64) (int64, bool) {
	switch op {
	case ast.OpPlus:
		return l + r, true
	case ast.OpMinus:
		return l - r, true
	case ast.OpTimes:
		return l * r, true
	case ast.OpDivide:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case ast.OpPow:
		if r < 0 {
			return 0, false
		}
		res := int64(1)
		for i := int64(0); i < r; i++ {
			res *= l
		}
		return res, true
	default:
		return 0, false
	}
}

func applyRelOp(op ast.RelOp, l, r int64) bool {
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

// EvalB computes ⟦bexpr⟧(m): the set of booleans (as BoolSigns) the
// expression might evaluate to (§4.4).
func EvalB(b ast.BExpr, m Memory) BoolSigns {
	switch v := b.(type) {
	case *ast.BoolLit:
		return BoolSigns(0).Insert(v.Value)
	case *ast.Rel:
		l := EvalA(v.Left, m)
		r := EvalA(v.Right, m)
		var out BoolSigns
		for _, ls := range l.Iter() {
			for _, rs := range r.Iter() {
				for _, lrep := range ls.representative() {
					for _, rrep := range rs.representative() {
						out = out.Insert(applyRelOp(v.Op, lrep, rrep))
					}
				}
			}
		}
		return out
	case *ast.Not:
		return EvalB(v.Operand, m).Not()
	case *ast.Logic:
		return evalLogic(v, m)
	case *ast.Implies:
		// p => q, evaluated pointwise as (not p) or q.
		l := EvalB(v.Left, m).Not()
		r := EvalB(v.Right, m)
		return pointwiseOr(l, r)
	case *ast.Quantifier:
		// Quantification has no finite abstract semantics over the
		// sign domain; conservatively both outcomes are possible.
		return boolTrue | boolFalse
	default:
		return boolTrue | boolFalse
	}
}

func pointwiseOr(l, r BoolSigns) BoolSigns {
	var out BoolSigns
	for _, lv := range []bool{true, false} {
		if !l.Has(lv) {
			continue
		}
		for _, rv := range []bool{true, false} {
			if !r.Has(rv) {
				continue
			}
			out = out.Insert(lv || rv)
		}
	}
	return out
}

func pointwiseAnd(l, r BoolSigns) BoolSigns {
	var out BoolSigns
	for _, lv := range []bool{true, false} {
		if !l.Has(lv) {
			continue
		}
		for _, rv := range []bool{true, false} {
			if !r.Has(rv) {
				continue
			}
			out = out.Insert(lv && rv)
		}
	}
	return out
}

// evalLogic implements the four logic operators. `&&`/`||` (LogicAnd /
// LogicOr) are full pointwise evaluation of both sides; `&`/`|`
// (LogicLand / LogicLor) are short-circuit: when the left side can be
// false (for `&`) or true (for `|`), that alone determines the result
// without needing the right side's sign to be defined, which is the
// "no progression" case the spec calls out for an undefined
// short-circuited operand.
func evalLogic(v *ast.Logic, m Memory) BoolSigns {
	l := EvalB(v.Left, m)
	if !v.Op.IsShortCircuit() {
		r := EvalB(v.Right, m)
		if v.Op.IsOr() {
			return pointwiseOr(l, r)
		}
		return pointwiseAnd(l, r)
	}

	// Short-circuit `&` / `|`: shortCircuit is the left value that alone
	// decides the result (true for `|`, false for `&`); when the left
	// side can take that value, the right side's definedness is
	// irrelevant. Otherwise the result is exactly the right side's
	// value.
	shortCircuit := v.Op.IsOr()
	var out BoolSigns
	if l.Has(shortCircuit) {
		out = out.Insert(shortCircuit)
	}
	if l.Has(!shortCircuit) {
		r := EvalB(v.Right, m)
		for _, rv := range []bool{true, false} {
			if r.Has(rv) {
				out = out.Insert(rv)
			}
		}
	}
	return out
}
