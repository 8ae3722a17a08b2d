// SPDX-License-Identifier: Apache-2.0
package buchi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kansogcl/internal/arena"
	"kansogcl/internal/pg"
	"kansogcl/internal/tableau"
)

// TestFromGBANoAcceptingSetsTreatedAsSingle covers the k=0 case: all
// states together form one accepting set, so the counting construction builds
// exactly one copy of the GBA (k=1) and every state is accepting.
func TestFromGBANoAcceptingSetsTreatedAsSingle(t *testing.T) {
	var q0, q1 arena.ID = 0, 1
	g := &tableau.GBA{
		States:  []arena.ID{q0, q1},
		Initial: []arena.ID{q0},
		Transitions: map[arena.ID][]tableau.Transition{
			q0: {{To: q1, Label: tableau.Label{Any: true}}},
			q1: {{To: q0, Label: tableau.Label{Any: true}}},
		},
		Accepting: nil,
	}
	ba := FromGBA(g)
	assert.Equal(t, 2, ba.NumStates)
	assert.Len(t, ba.Accepting, 2)
}

// TestFromGBACountingConstructionAdvances covers k=2: the counter only
// advances out of a state belonging to the accepting set matching its
// current index, and the overall accepting set is F0 x {0}.
func TestFromGBACountingConstructionAdvances(t *testing.T) {
	var q0, q1 arena.ID = 0, 1
	g := &tableau.GBA{
		States:  []arena.ID{q0, q1},
		Initial: []arena.ID{q0},
		Transitions: map[arena.ID][]tableau.Transition{
			q0: {{To: q1, Label: tableau.Label{Any: true}}},
			q1: {{To: q0, Label: tableau.Label{Any: true}}},
		},
		Accepting: [][]arena.ID{{q0}, {q1}},
	}
	ba := FromGBA(g)
	require.Equal(t, 4, ba.NumStates) // 2 states x k=2
	// (q0,0) is the lone accepting state: q0 belongs to F0.
	assert.Len(t, ba.Accepting, 1)
	for s := range ba.Accepting {
		assert.Equal(t, 0, s%2) // idOf(qi,0) is even under idOf(qi,i)=qi*k+i, k=2
	}
}

// TestFromReachableDeadEndGetsSelfLoop covers countUpProgram's End
// state: it has no enabled outgoing edge (doneCondition never fires
// again once taken), so FromReachable must add a self-loop rather than
// leaving it with no transitions at all.
func TestFromReachableDeadEndGetsSelfLoop(t *testing.T) {
	rg := explore(t, countUpProgram())
	var endIdx = -1
	for i, cfg := range rg.Configs {
		if cfg.Node == pg.End {
			endIdx = i
			break
		}
	}
	require.GreaterOrEqual(t, endIdx, 0, "End must be reachable")

	ba := FromReachable(rg, nil)
	edges := ba.Trans[endIdx]
	require.Len(t, edges, 1)
	assert.Equal(t, endIdx, edges[0].To)
}
