// SPDX-License-Identifier: Apache-2.0
package sign

import (
	"fmt"
	"sort"
	"strings"

	"kansogcl/internal/lattice"
	"kansogcl/internal/pg"
)

// MemSet is the sign analysis's domain: a set of possible memories, not
// a single memory. This disjunctive completion is required because the
// concrete semantics branches on sign (§4.4): keyed by a structural hash
// of each memory so that the set dedups and supports a subset-inclusion
// Contains check (§9, "Disjunctive-completion sets").
type MemSet map[string]Memory

func NewMemSet(mems ...Memory) MemSet {
	s := MemSet{}
	for _, m := range mems {
		s[canonicalKey(m)] = m
	}
	return s
}

func canonicalKey(m Memory) string {
	varNames := make([]string, 0, len(m.Variables))
	for k := range m.Variables {
		varNames = append(varNames, k)
	}
	sort.Strings(varNames)
	arrNames := make([]string, 0, len(m.Arrays))
	for k := range m.Arrays {
		arrNames = append(arrNames, k)
	}
	sort.Strings(arrNames)

	var b strings.Builder
	for _, n := range varNames {
		fmt.Fprintf(&b, "v:%s=%d;", n, m.Variables[n])
	}
	for _, n := range arrNames {
		fmt.Fprintf(&b, "a:%s=%d;", n, m.Arrays[n])
	}
	return b.String()
}

// memLattice implements lattice.Lattice[MemSet].
type memLattice struct{}

func (memLattice) Bottom() MemSet { return MemSet{} }

func (memLattice) Join(a, b MemSet) MemSet {
	out := make(MemSet, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func (memLattice) Contains(a, b MemSet) bool {
	for k := range b {
		if _, ok := a[k]; !ok {
			return false
		}
	}
	return true
}

// Analysis is the sign MonotoneFramework instance (§4.4, §4.5
// "Sign loop" example): forward dataflow seeded with a single concrete
// initial memory at Start.
type Analysis struct {
	memLattice
	Initial0 Memory
}

func (a Analysis) Direction() lattice.Direction { return lattice.Forward }

func (a Analysis) Initial(_ *pg.Graph) MemSet { return NewMemSet(a.Initial0) }

func (a Analysis) Semantic(_ *pg.Graph, e pg.Edge, in MemSet) MemSet {
	out := MemSet{}
	add := func(m Memory) {
		out[canonicalKey(m)] = m
	}

	switch e.Act.Kind {
	case pg.ActionSkip:
		for k, m := range in {
			out[k] = m
		}
	case pg.ActionAssign:
		for _, m := range in {
			for _, s := range EvalA(e.Act.Value, m).Iter() {
				add(m.WithVar(e.Act.Var, s))
			}
		}
	case pg.ActionArrayAssign:
		for _, m := range in {
			idxSigns := EvalA(e.Act.Index, m)
			if !idxSigns.Has(Zero) && !idxSigns.Has(Positive) {
				continue
			}
			s, ok := m.Array(e.Act.Var)
			if !ok {
				panic("sign: array '" + e.Act.Var + "' not in memory")
			}
			removalCandidates := append([]Sign{}, s.Iter()...)
			tryRemoval := func(removed *Sign) {
				residual := s
				if removed != nil {
					residual = residual.Remove(*removed)
				}
				for _, t := range EvalA(e.Act.Value, m).Iter() {
					add(m.WithArray(e.Act.Var, residual.Insert(t)))
				}
			}
			tryRemoval(nil)
			for i := range removalCandidates {
				r := removalCandidates[i]
				tryRemoval(&r)
			}
		}
	case pg.ActionCondition:
		for k, m := range in {
			if EvalB(e.Act.Cond, m).Has(true) {
				out[k] = m
			}
		}
	}
	return out
}
