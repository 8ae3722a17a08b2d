// SPDX-License-Identifier: Apache-2.0
package buchi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kansogcl/internal/ast"
	"kansogcl/internal/interp"
	"kansogcl/internal/ltl"
	"kansogcl/internal/pg"
	"kansogcl/internal/tableau"
)

func countUpProgram() *ast.Commands {
	return &ast.Commands{Items: []ast.Command{
		&ast.Assignment{Var: "x", Value: &ast.Number{Value: 0}},
		&ast.Do{Guards: []*ast.Guard{{
			Cond: &ast.Rel{Left: &ast.VarRef{Name: "x"}, Op: ast.RelLt, Right: &ast.Number{Value: 3}},
			Body: &ast.Commands{Items: []ast.Command{
				&ast.Assignment{Var: "x", Value: &ast.BinaryA{
					Left: &ast.VarRef{Name: "x"}, Op: ast.OpPlus, Right: &ast.Number{Value: 1},
				}},
			}},
		}}},
	}}
}

func spinProgram() *ast.Commands {
	return &ast.Commands{Items: []ast.Command{
		&ast.Assignment{Var: "x", Value: &ast.Number{Value: 0}},
		&ast.Do{Guards: []*ast.Guard{{
			Cond: &ast.BoolLit{Value: true},
			Body: &ast.Commands{Items: []ast.Command{
				&ast.Assignment{Var: "x", Value: &ast.VarRef{Name: "x"}},
			}},
		}}},
	}}
}

func explore(t *testing.T, cmds *ast.Commands) *interp.ReachableGraph {
	t.Helper()
	g, err := pg.Build(pg.NonDeterministic, cmds)
	require.NoError(t, err)
	return interp.Explore(g, interp.ZeroMemory(g), interp.DefaultStateFuel)
}

func geZero(name string) ltl.Formula {
	return &ltl.Atom{Prop: ltl.RelAtom{Left: &ast.VarRef{Name: name}, Op: ast.RelGe, Right: &ast.Number{Value: 0}}}
}

func geOne(name string) ltl.Formula {
	return &ltl.Atom{Prop: ltl.RelAtom{Left: &ast.VarRef{Name: name}, Op: ast.RelGe, Right: &ast.Number{Value: 1}}}
}

// TestCheckSafetyHolds mirrors the "x := 0 ; do x < 3 -> x := x+1 od,
// G(x >= 0)" scenario: every reachable state keeps x in {0,1,2,3}, so
// the formula's negation automaton can never complete an accepting
// cycle against the program's Kripke structure.
func TestCheckSafetyHolds(t *testing.T) {
	rg := explore(t, countUpProgram())
	verdict := Check(&ltl.Globally{Operand: geZero("x")}, rg)
	assert.True(t, verdict.Holds)
	assert.Nil(t, verdict.Lasso)
}

// TestCheckLivenessViolated mirrors "x := 0 ; do true -> x := x od,
// F(x >= 1)": the single non-terminating state has x = 0 forever, so
// the formula is violated and a one-state lasso decodes to x = 0.
func TestCheckLivenessViolated(t *testing.T) {
	rg := explore(t, spinProgram())
	verdict := Check(&ltl.Finally{Operand: geOne("x")}, rg)
	require.False(t, verdict.Holds)
	require.NotEmpty(t, verdict.Lasso)
	for _, step := range verdict.Lasso {
		v, ok := step.Mem.Var("x")
		require.True(t, ok)
		assert.Equal(t, int64(0), v)
	}
}

func TestIntersectAnyAlwaysMatches(t *testing.T) {
	any := tableau.Label{Any: true}
	concrete := concreteLabel(map[string]bool{"p0": true})
	assert.True(t, Intersect(any, concrete))
	assert.True(t, Intersect(concrete, any))
}

func TestIntersectContradictionRejected(t *testing.T) {
	a := concreteLabel(map[string]bool{"p0": true})
	b := concreteLabel(map[string]bool{"p0": false})
	assert.False(t, Intersect(a, b))
}
