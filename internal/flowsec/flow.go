// SPDX-License-Identifier: Apache-2.0
// Package flowsec implements the information-flow analyser of §4.6: a
// syntactic walk over the command tree that extracts target-to-target
// dependency flows under an accumulating "implicit context", and the
// security-lattice classification that partitions those flows into
// allowed and violating.
package flowsec

import (
	"fmt"

	"kansogcl/internal/ast"
	"kansogcl/internal/ordered"
)

// Flow is a single `from -> into` dependency: the value of From may have
// influenced the value written to Into, either directly (it appears in
// the assigned expression) or through control flow (it appeared in a
// guard that determined whether this assignment ran).
type Flow struct {
	From ast.Target
	Into ast.Target
}

func (f Flow) String() string { return fmt.Sprintf("%s -> %s", f.From, f.Into) }

// ComputeFlows extracts every flow in cmds under the given starting
// implicit context (the empty set for a top-level program), in the
// order the rules of §4.6 produce them.
func ComputeFlows(cmds *ast.Commands, initial *ordered.Set[ast.Target]) []Flow {
	ctx := initial
	if ctx == nil {
		ctx = ordered.NewSet[ast.Target]()
	}
	var flows []Flow
	computeCommands(cmds.Items, ctx, &flows)
	return flows
}

// computeCommands threads the implicit context through a sequence of
// commands in order, returning the context in effect after the last one.
func computeCommands(items []ast.Command, ctx *ordered.Set[ast.Target], flows *[]Flow) *ordered.Set[ast.Target] {
	cur := ctx
	for _, cmd := range items {
		cur = computeCommand(cmd, cur, flows)
	}
	return cur
}

func computeCommand(cmd ast.Command, ctx *ordered.Set[ast.Target], flows *[]Flow) *ordered.Set[ast.Target] {
	switch c := cmd.(type) {
	case *ast.Assignment:
		sources := ctx.Union(ast.FreeVars(c.Value))
		emitInto(flows, sources, ast.NewVar(c.Var))
		return ctx
	case *ast.ArrayAssignment:
		sources := ctx.Union(ast.FreeVars(c.Index)).Union(ast.FreeVars(c.Value))
		emitInto(flows, sources, ast.BareArray(c.Array))
		return ctx
	case *ast.Skip:
		return ctx
	case *ast.If:
		return computeGuards(c.Guards, ctx, flows)
	case *ast.Do:
		return computeGuards(c.Guards, ctx, flows)
	case *ast.Break, *ast.Continue:
		return ctx
	default:
		return ctx
	}
}

// computeGuards folds left over a guard list (§4.6): each guard's
// condition enlarges the context for its own body and for every guard
// that follows it in the same block, since reaching a later guard means
// every earlier one evaluated false.
func computeGuards(guards []*ast.Guard, ctx *ordered.Set[ast.Target], flows *[]Flow) *ordered.Set[ast.Target] {
	cur := ctx
	for _, g := range guards {
		enlarged := cur.Union(ast.FreeVars(g.Cond))
		computeCommands(g.Body.Items, enlarged, flows)
		cur = enlarged
	}
	return cur
}

func emitInto(flows *[]Flow, sources *ordered.Set[ast.Target], into ast.Target) {
	for _, v := range sources.Items() {
		*flows = append(*flows, Flow{From: v, Into: into})
	}
}
