// SPDX-License-Identifier: Apache-2.0
package pv

import "kansogcl/internal/ast"

// WP computes wp(cmds, Q) by folding the table right-to-left over a
// command sequence (§4.7): wp(c1 ; c2, Q) = wp(c1, wp(c2, Q)).
func WP(cmds *ast.Commands, q Term) Term {
	out := q
	for i := len(cmds.Items) - 1; i >= 0; i-- {
		out = wpCommand(cmds.Items[i], out)
	}
	return out
}

func wpCommand(cmd ast.Command, q Term) Term {
	switch c := cmd.(type) {
	case *ast.Skip:
		return q
	case *ast.Assignment:
		return And(Substitute(q, c.Var, TranslateA(c.Value)), DefinedA(c.Value))
	case *ast.ArrayAssignment:
		idx := TranslateA(c.Index)
		val := TranslateA(c.Value)
		substituted := Substitute(q, c.Array, Store(ArrayVar(c.Array), idx, val))
		inBounds := And(BinOp("<=", IntLit(0), idx), BinOp("<", idx, Call("length", ArrayVar(c.Array))))
		return And(substituted, DefinedA(c.Index), DefinedA(c.Value), inBounds)
	case *ast.If:
		return wpIf(c.Guards, q)
	case *ast.Do:
		return wpDo(c, q)
	default:
		panic("pv: unsupported command in wp")
	}
}

func wpIf(guards []*ast.Guard, q Term) Term {
	var conj, disj Term
	conj = BoolLit(true)
	disj = BoolLit(false)
	for _, g := range guards {
		b := TranslateB(g.Cond)
		conj = And(conj, Implies(b, WP(g.Body, q)))
		disj = Or(disj, b)
	}
	return And(conj, disj)
}

func wpDo(d *ast.Do, q Term) Term {
	if d.Invariant == nil {
		panic("pv: loop has no invariant annotation; wp is undefined without one")
	}
	inv := TranslateB(d.Invariant)
	done := TranslateB(negatedDisjunction(d.Guards))

	var perGuard Term = BoolLit(true)
	for _, g := range d.Guards {
		b := TranslateB(g.Cond)
		perGuard = And(perGuard, Implies(b, WP(g.Body, inv)))
	}

	preserves := Implies(And(inv, Not(done)), perGuard)
	establishes := Implies(And(inv, done), q)
	body := And(preserves, establishes)

	vars := assignedTargets(d.Guards)
	return And(inv, ForallVars(vars, body))
}

// negatedDisjunction is the "done" condition: not(b1 or ... or bn).
func negatedDisjunction(guards []*ast.Guard) ast.BExpr {
	var disj ast.BExpr
	for _, g := range guards {
		if disj == nil {
			disj = g.Cond
		} else {
			disj = &ast.Logic{Left: disj, Op: ast.LogicOr, Right: g.Cond}
		}
	}
	if disj == nil {
		return &ast.BoolLit{Value: true}
	}
	return &ast.Not{Operand: disj}
}

// assignedTargets collects the names of every variable or array written
// anywhere under guards, in first-seen order: the loop's wp rule
// universally quantifies over exactly these, since they are the only
// names the loop body can change.
func assignedTargets(guards []*ast.Guard) []string {
	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	var walkCommands func(cmds *ast.Commands)
	var walkCommand func(cmd ast.Command)
	walkCommand = func(cmd ast.Command) {
		switch c := cmd.(type) {
		case *ast.Assignment:
			add(c.Var)
		case *ast.ArrayAssignment:
			add(c.Array)
		case *ast.If:
			for _, g := range c.Guards {
				walkCommands(g.Body)
			}
		case *ast.Do:
			for _, g := range c.Guards {
				walkCommands(g.Body)
			}
		}
	}
	walkCommands = func(cmds *ast.Commands) {
		for _, cmd := range cmds.Items {
			walkCommand(cmd)
		}
	}
	for _, g := range guards {
		walkCommands(g.Body)
	}
	return out
}
