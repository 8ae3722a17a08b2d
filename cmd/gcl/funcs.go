// SPDX-License-Identifier: Apache-2.0
package main

import "kansogcl/internal/ast"

// collectFunctions walks a command sequence (and any postcondition) to
// find every builtin function name used, the set smt.Prelude needs to
// know which uninterpreted function declarations to emit.
func collectFunctions(cmds *ast.Commands, extra ...ast.BExpr) map[ast.Function]bool {
	out := map[ast.Function]bool{}
	walkCommands(cmds, out)
	for _, b := range extra {
		walkB(b, out)
	}
	return out
}

func walkCommands(cmds *ast.Commands, out map[ast.Function]bool) {
	if cmds == nil {
		return
	}
	for _, c := range cmds.Items {
		walkCommand(c, out)
	}
}

func walkCommand(c ast.Command, out map[ast.Function]bool) {
	switch v := c.(type) {
	case *ast.Assignment:
		walkA(v.Value, out)
		walkAnn(v.Ann, out)
	case *ast.ArrayAssignment:
		walkA(v.Index, out)
		walkA(v.Value, out)
		walkAnn(v.Ann, out)
	case *ast.Skip:
		walkAnn(v.Ann, out)
	case *ast.If:
		walkGuards(v.Guards, out)
		walkAnn(v.Ann, out)
	case *ast.Do:
		if v.Invariant != nil {
			walkB(v.Invariant, out)
		}
		walkGuards(v.Guards, out)
		walkAnn(v.Ann, out)
	}
}

func walkGuards(guards []*ast.Guard, out map[ast.Function]bool) {
	for _, g := range guards {
		walkB(g.Cond, out)
		walkCommands(g.Body, out)
	}
}

func walkAnn(ann *ast.Annotation, out map[ast.Function]bool) {
	if ann == nil {
		return
	}
	if ann.Pre != nil {
		walkB(ann.Pre, out)
	}
	if ann.Post != nil {
		walkB(ann.Post, out)
	}
}

func walkA(e ast.AExpr, out map[ast.Function]bool) {
	switch v := e.(type) {
	case *ast.ArrayRef:
		walkA(v.Index, out)
	case *ast.BinaryA:
		walkA(v.Left, out)
		walkA(v.Right, out)
	case *ast.UnaryMinus:
		walkA(v.Operand, out)
	case *ast.FuncCall:
		out[v.Name] = true
		for _, a := range v.Args {
			walkA(a, out)
		}
	}
}

func walkB(b ast.BExpr, out map[ast.Function]bool) {
	switch v := b.(type) {
	case *ast.Rel:
		walkA(v.Left, out)
		walkA(v.Right, out)
	case *ast.Logic:
		walkB(v.Left, out)
		walkB(v.Right, out)
	case *ast.Implies:
		walkB(v.Left, out)
		walkB(v.Right, out)
	case *ast.Not:
		walkB(v.Operand, out)
	case *ast.Quantifier:
		walkB(v.Body, out)
	}
}
