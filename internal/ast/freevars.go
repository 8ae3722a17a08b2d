// SPDX-License-Identifier: Apache-2.0
package ast

import "kansogcl/internal/ordered"

// FreeVars computes the free targets of an expression, command, or
// command sequence (§4.1). Iteration order of the returned set matches
// insertion order, which in turn matches left-to-right, pre-order
// traversal of the syntax — this is what makes the analysis outputs and
// generated SMT declarations deterministic across runs.
func FreeVars(n Node) *ordered.Set[Target] {
	switch v := n.(type) {
	case *Number:
		return ordered.NewSet[Target]()
	case *VarRef:
		return ordered.NewSet(NewVar(v.Name))
	case *ArrayRef:
		out := ordered.NewSet(BareArray(v.Name))
		return out.Union(FreeVars(v.Index))
	case *BinaryA:
		return FreeVars(v.Left).Union(FreeVars(v.Right))
	case *UnaryMinus:
		return FreeVars(v.Operand)
	case *FuncCall:
		out := ordered.NewSet[Target]()
		for _, a := range v.Args {
			out = out.Union(FreeVars(a))
		}
		return out
	case *BoolLit:
		return ordered.NewSet[Target]()
	case *Rel:
		return FreeVars(v.Left).Union(FreeVars(v.Right))
	case *Logic:
		return FreeVars(v.Left).Union(FreeVars(v.Right))
	case *Implies:
		return FreeVars(v.Left).Union(FreeVars(v.Right))
	case *Not:
		return FreeVars(v.Operand)
	case *Quantifier:
		fv := FreeVars(v.Body)
		out := ordered.NewSet[Target]()
		for _, t := range fv.Items() {
			if t.Kind == VarTarget && t.Name == v.Bound {
				continue
			}
			out.Add(t)
		}
		return out
	case *Assignment:
		out := ordered.NewSet(NewVar(v.Var))
		return out.Union(FreeVars(v.Value))
	case *ArrayAssignment:
		out := ordered.NewSet(BareArray(v.Array))
		out = out.Union(FreeVars(v.Index))
		return out.Union(FreeVars(v.Value))
	case *Skip:
		return ordered.NewSet[Target]()
	case *Break:
		return ordered.NewSet[Target]()
	case *Continue:
		return ordered.NewSet[Target]()
	case *If:
		return guardsFreeVars(v.Guards)
	case *Do:
		fv := guardsFreeVars(v.Guards)
		if v.Invariant != nil {
			fv = fv.Union(FreeVars(v.Invariant))
		}
		return fv
	case *Guard:
		return FreeVars(v.Cond).Union(FreeVars(v.Body))
	case *Commands:
		out := ordered.NewSet[Target]()
		for _, c := range v.Items {
			out = out.Union(FreeVars(c))
		}
		return out
	default:
		return ordered.NewSet[Target]()
	}
}

func guardsFreeVars(guards []*Guard) *ordered.Set[Target] {
	out := ordered.NewSet[Target]()
	for _, g := range guards {
		out = out.Union(FreeVars(g))
	}
	return out
}
