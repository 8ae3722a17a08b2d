// SPDX-License-Identifier: Apache-2.0
package gclparse

import "kansogcl/internal/ltl"

func buildLTLFormula(f *RawLTLFormula) ltl.Formula {
	left := buildLTLDisjunction(f.Left)
	if f.Right == nil {
		return left
	}
	return &ltl.Impl{Left: left, Right: buildLTLDisjunction(f.Right)}
}

func buildLTLDisjunction(d *RawLTLDisjunction) ltl.Formula {
	acc := buildLTLConjunction(d.Left)
	for _, op := range d.Ops {
		acc = &ltl.Disj{Left: acc, Right: buildLTLConjunction(op)}
	}
	return acc
}

func buildLTLConjunction(c *RawLTLConjunction) ltl.Formula {
	acc := buildLTLUntil(c.Left)
	for _, op := range c.Ops {
		acc = &ltl.Conj{Left: acc, Right: buildLTLUntil(op)}
	}
	return acc
}

func buildLTLUntil(u *RawLTLUntil) ltl.Formula {
	left := buildLTLUnary(u.Left)
	if u.Tail == nil {
		return left
	}
	right := buildLTLUnary(u.Tail.Right)
	if u.Tail.Op == "R" {
		return &ltl.Release{Left: left, Right: right}
	}
	return &ltl.Until{Left: left, Right: right}
}

func buildLTLUnary(u *RawLTLUnary) ltl.Formula {
	switch {
	case u.Bang != nil:
		return &ltl.Neg{Operand: buildLTLUnary(u.Bang)}
	case u.Next != nil:
		return &ltl.Next{Operand: buildLTLUnary(u.Next)}
	case u.Glob != nil:
		return &ltl.Globally{Operand: buildLTLUnary(u.Glob)}
	case u.Fin != nil:
		return &ltl.Finally{Operand: buildLTLUnary(u.Fin)}
	default:
		return buildLTLAtom(u.Atom)
	}
}

func buildLTLAtom(a *RawLTLAtom) ltl.Formula {
	switch {
	case a.True_:
		return &ltl.BoolConst{Value: true}
	case a.False_:
		return &ltl.BoolConst{Value: false}
	case a.Loc != nil:
		return &ltl.Atom{Prop: ltl.LocAtom{Name: *a.Loc}}
	case a.Paren != nil:
		return buildLTLFormula(a.Paren)
	case a.Rel != nil:
		r := a.Rel
		return &ltl.Atom{Prop: ltl.RelAtom{Left: buildAExpr(r.Left), Op: relOp(r.Op), Right: buildAExpr(r.Right)}}
	default:
		panic("gclparse: empty LTL atom")
	}
}
