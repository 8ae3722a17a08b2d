// SPDX-License-Identifier: Apache-2.0
package gclparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kansogcl/internal/ast"
)

func TestParseProgramCountUp(t *testing.T) {
	src := `free x ;
x := 0 ;
do x < 3 -> x := x + 1 od`

	prog, err := ParseProgram("test.gcl", src)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, prog.FreeVars)
	require.Nil(t, prog.FreeArrays)
	require.Len(t, prog.Commands.Items, 2)

	assign, ok := prog.Commands.Items[0].(*ast.Assignment)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Var)

	do, ok := prog.Commands.Items[1].(*ast.Do)
	require.True(t, ok)
	require.Len(t, do.Guards, 1)
	rel, ok := do.Guards[0].Cond.(*ast.Rel)
	require.True(t, ok)
	assert.Equal(t, ast.RelLt, rel.Op)
}

func TestParseProgramArrayAndIf(t *testing.T) {
	src := `free A[], i ;
if i < 0 -> skip
[] i >= 0 -> A[i] := A[i] + 1
fi`

	prog, err := ParseProgram("test.gcl", src)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, prog.FreeArrays)
	assert.Equal(t, []string{"i"}, prog.FreeVars)

	ifCmd, ok := prog.Commands.Items[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, ifCmd.Guards, 2)

	arrAssign, ok := ifCmd.Guards[1].Body.Items[0].(*ast.ArrayAssignment)
	require.True(t, ok)
	assert.Equal(t, "A", arrAssign.Array)
}

func TestParseProgramInvariantAndAnnotation(t *testing.T) {
	src := `free x ;
do inv x >= 0 ;
   x > 0 -> { x > 0 } x := x - 1 { x >= 0 }
od`

	prog, err := ParseProgram("test.gcl", src)
	require.NoError(t, err)

	do, ok := prog.Commands.Items[0].(*ast.Do)
	require.True(t, ok)
	require.NotNil(t, do.Invariant)

	assign, ok := do.Guards[0].Body.Items[0].(*ast.Assignment)
	require.True(t, ok)
	require.NotNil(t, assign.Ann)
	assert.NotNil(t, assign.Ann.Pre)
	assert.NotNil(t, assign.Ann.Post)
}

func TestParseProgramQuantifierAndLogic(t *testing.T) {
	src := `free x, y ;
x := 0 { forall z . (z < 0 || z >= 0) }`

	prog, err := ParseProgram("test.gcl", src)
	require.NoError(t, err)
	assign := prog.Commands.Items[0].(*ast.Assignment)
	require.NotNil(t, assign.Ann)
	_, ok := assign.Ann.Post.(*ast.Quantifier)
	require.True(t, ok)
}

func TestParseProgramRejectsGarbage(t *testing.T) {
	_, err := ParseProgram("test.gcl", `do x <`)
	assert.Error(t, err)
}

func TestParseLTLSafetyAndLiveness(t *testing.T) {
	f, err := ParseLTL("test.ltl", `G (x >= 0)`)
	require.NoError(t, err)
	assert.Equal(t, "G x >= 0", f.String())

	f, err = ParseLTL("test.ltl", `F terminated`)
	require.NoError(t, err)
	assert.Equal(t, "F terminated", f.String())
}

func TestParseLTLUntilAndNegation(t *testing.T) {
	f, err := ParseLTL("test.ltl", `!stuck U terminated`)
	require.NoError(t, err)
	assert.Contains(t, f.String(), "U")
}

func TestParseLattice(t *testing.T) {
	edges, err := ParseLattice("test.lat", "Low < High ;\nMid < High ;")
	require.NoError(t, err)
	require.Len(t, edges, 2)
	assert.Equal(t, "Low", edges[0].From)
	assert.Equal(t, "High", edges[0].Into)
}

func TestParseClassification(t *testing.T) {
	cls, err := ParseClassification("test.cls", "secret : High ;\nA[] : Low ;")
	require.NoError(t, err)
	assert.Equal(t, "High", cls[ast.NewVar("secret")])
	assert.Equal(t, "Low", cls[ast.BareArray("A")])
}
