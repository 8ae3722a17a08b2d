// SPDX-License-Identifier: Apache-2.0
// Package buchi reduces a tableau-built GBA to an ordinary Büchi
// automaton, derives a second Büchi automaton from a program's
// reachable-state graph, and decides emptiness of their lazy product
// (§4.8.3-4.8.5).
package buchi

import (
	"sort"

	"kansogcl/internal/arena"
	"kansogcl/internal/interp"
	"kansogcl/internal/ltl"
	"kansogcl/internal/tableau"
)

// Edge is one transition of a BA. Label is the tableau's intensional
// Required/Disallowed/Any constraint for a formula-derived automaton,
// or a fully concrete assignment (every known proposition pinned true
// or false) for a Kripke-derived one; Intersect treats both uniformly.
type Edge struct {
	To    int
	Label tableau.Label
}

// BA is a Büchi automaton with a single accepting set. States are small
// integers local to this automaton, a different id space than
// arena.ID (tableau nodes) or reachable-state indices (interp.Config);
// the two constructors below are what bridges those spaces into one.
type BA struct {
	NumStates int
	Initial   []int
	Accepting map[int]bool
	Trans     map[int][]Edge
}

// Intersect reports whether two labels can be satisfied by a common
// proposition assignment: no proposition required by one side may be
// disallowed by the other. Any accepts unconditionally. This is the
// general test, so it works whether both labels are intensional
// (formula-side) or one is a fully pinned concrete assignment
// (Kripke-side) — a concrete label's Required/Disallowed sets simply
// cover the whole alphabet, forcing an exact match on every
// proposition the other side constrains.
func Intersect(a, b tableau.Label) bool {
	if a.Any || b.Any {
		return true
	}
	for k := range a.Required {
		if b.Disallowed[k] {
			return false
		}
	}
	for k := range a.Disallowed {
		if b.Required[k] {
			return false
		}
	}
	return true
}

func concreteLabel(props map[string]bool) tableau.Label {
	required := map[string]bool{}
	disallowed := map[string]bool{}
	for k, v := range props {
		if v {
			required[k] = true
		} else {
			disallowed[k] = true
		}
	}
	return tableau.Label{Required: required, Disallowed: disallowed}
}

// FromGBA implements the counting construction of §4.8.3: a BA on
// states Q x {0,...,k-1}, advancing the counter out of (q,i) whenever q
// belongs to the i-th accepting set, with k=0 (no U-subformula, so the
// tableau already marked every state accepting as one set) treated as
// k=1.
func FromGBA(g *tableau.GBA) *BA {
	k := len(g.Accepting)
	if k == 0 {
		k = 1
	}
	qIndex := make(map[arena.ID]int, len(g.States))
	for i, id := range g.States {
		qIndex[id] = i
	}

	inAccepting := make([][]bool, k)
	for i := range inAccepting {
		inAccepting[i] = make([]bool, len(g.States))
	}
	if len(g.Accepting) == 0 {
		for i := range g.States {
			inAccepting[0][i] = true
		}
	} else {
		for fi, set := range g.Accepting {
			for _, id := range set {
				inAccepting[fi][qIndex[id]] = true
			}
		}
	}

	n := len(g.States)
	idOf := func(qi, i int) int { return qi*k + i }

	ba := &BA{NumStates: n * k, Accepting: map[int]bool{}, Trans: map[int][]Edge{}}
	for _, q0 := range g.Initial {
		ba.Initial = append(ba.Initial, idOf(qIndex[q0], 0))
	}
	sort.Ints(ba.Initial)

	for qi, id := range g.States {
		for i := 0; i < k; i++ {
			s := idOf(qi, i)
			next := i
			if inAccepting[i][qi] {
				next = (i + 1) % k
			}
			for _, tr := range g.Transitions[id] {
				toQi := qIndex[tr.To]
				ba.Trans[s] = append(ba.Trans[s], Edge{To: idOf(toQi, next), Label: tr.Label})
			}
		}
		if inAccepting[0][qi] {
			ba.Accepting[idOf(qi, 0)] = true
		}
	}
	return ba
}

// FromReachable builds the Kripke-derived BA of §4.8.4 from a program's
// reachable-state graph: every transition (s, t) is labelled by t's
// concrete proposition assignment, matching "outgoing edges labelled by
// each initial-state's label" for the edges out of the fresh initial
// state, and uniformly for every other edge too. Because every edge
// entering a state s therefore already carries label(s), the "self-loop
// carrying the union of labels actually entering that state" dead-end
// fix-up reduces to a self-loop labelled label(s).
//
// props must be the sorted, index-aligned proposition list returned by
// ltl.CanonicalizeProps for the formula under check, so labels here use
// the same "p<N>" keys as the formula-side BA's Required/Disallowed
// sets.
func FromReachable(rg *interp.ReachableGraph, props []ltl.Prop) *BA {
	n := len(rg.Configs)
	labels := make([]map[string]bool, n)
	for i := range rg.Configs {
		labels[i] = evalProps(props, rg, i)
	}

	freshInit := n
	ba := &BA{NumStates: n + 1, Accepting: map[int]bool{}, Trans: map[int][]Edge{}}
	ba.Initial = []int{freshInit}
	ba.Accepting[freshInit] = true
	ba.Trans[freshInit] = []Edge{{To: rg.Initial, Label: concreteLabel(labels[rg.Initial])}}

	for s := 0; s < n; s++ {
		ba.Accepting[s] = true
		if len(rg.Succ[s]) == 0 {
			ba.Trans[s] = append(ba.Trans[s], Edge{To: s, Label: concreteLabel(labels[s])})
			continue
		}
		for _, t := range rg.Succ[s] {
			ba.Trans[s] = append(ba.Trans[s], Edge{To: t, Label: concreteLabel(labels[t])})
		}
	}
	return ba
}
