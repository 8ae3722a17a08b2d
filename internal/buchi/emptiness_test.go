// SPDX-License-Identifier: Apache-2.0
package buchi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kansogcl/internal/tableau"
)

func anyLabel() tableau.Label { return tableau.Label{Any: true} }

// twoStateBA is a trivial BA 0 -> 1 -> 0 with only state 1 accepting,
// so its language is non-empty.
func twoStateBA() *BA {
	return &BA{
		NumStates: 2,
		Initial:   []int{0},
		Accepting: map[int]bool{1: true},
		Trans: map[int][]Edge{
			0: {{To: 1, Label: anyLabel()}},
			1: {{To: 0, Label: anyLabel()}},
		},
	}
}

// deadEndBA never revisits its only accepting state, so its language is
// empty despite reaching the accepting state once.
func deadEndBA() *BA {
	return &BA{
		NumStates: 2,
		Initial:   []int{0},
		Accepting: map[int]bool{1: true},
		Trans: map[int][]Edge{
			0: {{To: 1, Label: anyLabel()}},
			1: {},
		},
	}
}

func TestFindAcceptingCycleFindsCycle(t *testing.T) {
	p := NewProduct(twoStateBA(), twoStateBA())
	lasso := FindAcceptingCycle(p)
	require.NotNil(t, lasso)
	assert.NotEmpty(t, lasso.Cycle)
}

func TestFindAcceptingCycleEmptyWhenNoCycle(t *testing.T) {
	p := NewProduct(deadEndBA(), deadEndBA())
	lasso := FindAcceptingCycle(p)
	assert.Nil(t, lasso)
}

func TestProductSuccCachesResult(t *testing.T) {
	p := NewProduct(twoStateBA(), twoStateBA())
	s := State{P: 0, Q: 0}
	first := p.Succ(s)
	second := p.Succ(s)
	assert.Equal(t, first, second)
}
