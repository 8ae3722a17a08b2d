// SPDX-License-Identifier: Apache-2.0
package pv

import (
	"context"
	"fmt"

	"kansogcl/internal/ast"
	"kansogcl/internal/smt"
)

// Obligation is one proof goal: a formula that must be valid (its
// negation unsat) for the program to be verified.
type Obligation struct {
	Name    string
	Formula Term
}

// Generate builds the top-level obligation `wp(cmds, post) ` plus one
// additional obligation `pre => wp(cmd, post)` for every command in the
// tree carrying its own Annotation (§4.7: "Annotated pre/post chains on
// commands become additional assertions").
func Generate(cmds *ast.Commands, post ast.BExpr) []Obligation {
	obligations := []Obligation{
		{Name: "postcondition", Formula: WP(cmds, TranslateB(post))},
	}
	collectAnnotations(cmds, &obligations)
	return obligations
}

func collectAnnotations(cmds *ast.Commands, out *[]Obligation) {
	for i, cmd := range cmds.Items {
		switch c := cmd.(type) {
		case *ast.Assignment:
			if c.Ann != nil {
				addChainObligation(out, fmt.Sprintf("assignment@%d", i), c.Ann, singleton(cmd))
			}
		case *ast.ArrayAssignment:
			if c.Ann != nil {
				addChainObligation(out, fmt.Sprintf("array-assignment@%d", i), c.Ann, singleton(cmd))
			}
		case *ast.Skip:
			if c.Ann != nil {
				addChainObligation(out, fmt.Sprintf("skip@%d", i), c.Ann, singleton(cmd))
			}
		case *ast.If:
			if c.Ann != nil {
				addChainObligation(out, fmt.Sprintf("if@%d", i), c.Ann, singleton(cmd))
			}
			for _, g := range c.Guards {
				collectAnnotations(g.Body, out)
			}
		case *ast.Do:
			if c.Ann != nil {
				addChainObligation(out, fmt.Sprintf("do@%d", i), c.Ann, singleton(cmd))
			}
			for _, g := range c.Guards {
				collectAnnotations(g.Body, out)
			}
		}
	}
}

func singleton(cmd ast.Command) *ast.Commands {
	return &ast.Commands{Items: []ast.Command{cmd}}
}

func addChainObligation(out *[]Obligation, name string, ann *ast.Annotation, cmds *ast.Commands) {
	formula := Implies(TranslateB(ann.Pre), WP(cmds, TranslateB(ann.Post)))
	*out = append(*out, Obligation{Name: name, Formula: formula})
}

// Verdict is the discharge result for a single obligation.
type Verdict struct {
	Obligation Obligation
	Result     smt.Result
	Detail     string
	Err        error
}

// Discharge runs every obligation against driver, declaring vars,
// arrays, and named functions gathered from across the whole program
// plus the obligations themselves.
func Discharge(ctx context.Context, driver *smt.Driver, obligations []Obligation, vars, arrays []string, funcs map[ast.Function]bool) []Verdict {
	prelude := smt.Prelude(vars, arrays, funcs)
	out := make([]Verdict, 0, len(obligations))
	for _, ob := range obligations {
		res, detail, err := driver.Check(ctx, prelude, ob.Formula.Render())
		out = append(out, Verdict{Obligation: ob, Result: res, Detail: detail, Err: err})
	}
	return out
}
