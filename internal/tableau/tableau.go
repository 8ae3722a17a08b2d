// SPDX-License-Identifier: Apache-2.0
// Package tableau builds a generalised Büchi automaton from an LTL
// formula in negation normal form via the on-the-fly tableau expansion
// of §4.8.2 (Gerth et al., "Simple On-the-Fly Automatic Verification of
// Linear Temporal Logic").
package tableau

import (
	"sort"

	"kansogcl/internal/arena"
	"kansogcl/internal/ltl"
)

// Label constrains which atomic-proposition assignments a transition
// accepts: every proposition in Required must hold, every proposition
// in Disallowed must not, and Any overrides both to mean "every
// assignment", used for a state whose old-set holds nothing but boolean
// constants (a label with empty Required and Disallowed sets also
// accepts every assignment). Representing a label intensionally like this
// (rather than enumerating the satisfying power-set, as a literal
// reading of the tableau paper's table would) avoids a combinatorial
// blow-up in the alphabet size while deciding exactly the same set of
// assignments.
type Label struct {
	Any        bool
	Required   map[string]bool
	Disallowed map[string]bool
}

// Matches reports whether the given true-proposition set satisfies this
// label: props maps a proposition key to whether it holds.
func (l Label) Matches(props map[string]bool) bool {
	if l.Any {
		return true
	}
	for k := range l.Required {
		if !props[k] {
			return false
		}
	}
	for k := range l.Disallowed {
		if props[k] {
			return false
		}
	}
	return true
}

// Transition is one labelled edge of the tableau-derived GBA.
type Transition struct {
	To    arena.ID
	Label Label
}

// GBA is a generalised Büchi automaton: several acceptance sets, a word
// is accepted if some run visits every set infinitely often.
type GBA struct {
	States      []arena.ID
	Initial     []arena.ID
	Transitions map[arena.ID][]Transition
	Accepting   [][]arena.ID // one slice per acceptance set F_0 .. F_{k-1}
}

// node is a tableau node under construction: incoming predecessor ids,
// and the new/old/next formula sets keyed by Nnf.Key() for set
// semantics without requiring Nnf to be a comparable Go type.
type node struct {
	id       arena.ID
	incoming []arena.ID
	old      map[string]ltl.Nnf
	new      map[string]ltl.Nnf
	next     map[string]ltl.Nnf
}

// initSentinel stands for the tableau's conceptual "init" predecessor,
// distinguishing an automaton's initial states from ordinary
// successors without colliding with any real allocated node id.
const initSentinel arena.ID = 0xFFFFFFFF

type builder struct {
	nextID arena.ID
}

func (b *builder) fresh() arena.ID {
	id := b.nextID
	b.nextID++
	return id
}

// Build runs the tableau expansion to completion and extracts a GBA.
func Build(formula ltl.Nnf) *GBA {
	b := &builder{}
	var sealed []*node
	init := &node{
		id:       b.fresh(),
		incoming: []arena.ID{initSentinel},
		new:      map[string]ltl.Nnf{formula.Key(): formula},
		old:      map[string]ltl.Nnf{},
		next:     map[string]ltl.Nnf{},
	}
	expand(b, init, &sealed)
	return extractGBA(sealed, formula)
}

func expand(b *builder, n *node, sealed *[]*node) {
	if len(n.new) == 0 {
		for _, nd := range *sealed {
			if sameKeys(nd.old, n.old) && sameKeys(nd.next, n.next) {
				nd.incoming = append(nd.incoming, n.incoming...)
				return
			}
		}
		*sealed = append(*sealed, n)
		succ := &node{
			id:       b.fresh(),
			incoming: []arena.ID{n.id},
			new:      n.next,
			old:      map[string]ltl.Nnf{},
			next:     map[string]ltl.Nnf{},
		}
		expand(b, succ, sealed)
		return
	}

	key := minKey(n.new)
	f := n.new[key]
	delete(n.new, key)

	switch v := f.(type) {
	case *ltl.NnfBool:
		if !v.Value {
			return // false: contradiction, discard this branch
		}
		n.old[f.Key()] = f
		expand(b, n, sealed)
	case *ltl.NnfLit:
		if _, dual := n.old[dualKey(v)]; dual {
			return // literal and its negation both present: discard
		}
		n.old[f.Key()] = f
		expand(b, n, sealed)
	case *ltl.NnfAnd:
		addUnlessOld(n.new, n.old, v.L)
		addUnlessOld(n.new, n.old, v.R)
		n.old[v.L.Key()] = v.L
		n.old[v.R.Key()] = v.R
		expand(b, n, sealed)
	case *ltl.NnfNext:
		n.old[f.Key()] = f
		n.next[v.Operand.Key()] = v.Operand
		expand(b, n, sealed)
	case *ltl.NnfUntil, *ltl.NnfRelease, *ltl.NnfOr:
		new1, next1, new2 := split(f)
		n1 := &node{
			id:       b.fresh(),
			incoming: append([]arena.ID(nil), n.incoming...),
			old:      unionSingle(n.old, f),
			new:      unionDiff(n.new, new1, n.old),
			next:     unionMap(n.next, next1),
		}
		n2 := &node{
			id:       b.fresh(),
			incoming: append([]arena.ID(nil), n.incoming...),
			old:      unionSingle(n.old, f),
			new:      unionDiff(n.new, new2, n.old),
			next:     cloneMap(n.next),
		}
		expand(b, n1, sealed)
		expand(b, n2, sealed)
	}
}

// split implements the α/β decomposition table (Gerth et al. p.9) for
// the three binary formulas whose expansion branches into two
// successors.
func split(f ltl.Nnf) (new1, next1, new2 map[string]ltl.Nnf) {
	switch v := f.(type) {
	case *ltl.NnfUntil:
		return single(v.L), map[string]ltl.Nnf{f.Key(): f}, single(v.R)
	case *ltl.NnfRelease:
		return single(v.R), map[string]ltl.Nnf{f.Key(): f}, unionTwo(v.L, v.R)
	case *ltl.NnfOr:
		return single(v.L), map[string]ltl.Nnf{}, single(v.R)
	default:
		panic("tableau: split called on non-branching formula")
	}
}

func single(f ltl.Nnf) map[string]ltl.Nnf { return map[string]ltl.Nnf{f.Key(): f} }

func unionTwo(a, b ltl.Nnf) map[string]ltl.Nnf {
	return map[string]ltl.Nnf{a.Key(): a, b.Key(): b}
}

func addUnlessOld(newSet, old map[string]ltl.Nnf, f ltl.Nnf) {
	if _, ok := old[f.Key()]; ok {
		return
	}
	newSet[f.Key()] = f
}

func sameKeys(a, b map[string]ltl.Nnf) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func cloneMap(m map[string]ltl.Nnf) map[string]ltl.Nnf {
	out := make(map[string]ltl.Nnf, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func unionMap(a, b map[string]ltl.Nnf) map[string]ltl.Nnf {
	out := cloneMap(a)
	for k, v := range b {
		out[k] = v
	}
	return out
}

func unionSingle(old map[string]ltl.Nnf, f ltl.Nnf) map[string]ltl.Nnf {
	out := cloneMap(old)
	out[f.Key()] = f
	return out
}

func unionDiff(base, add, exclude map[string]ltl.Nnf) map[string]ltl.Nnf {
	out := cloneMap(base)
	for k, v := range add {
		if _, ok := exclude[k]; ok {
			continue
		}
		out[k] = v
	}
	return out
}

// dualKey returns the key of lit's negation, so membership of that key
// in a node's old-set detects `p` and `¬p` both being asserted.
func dualKey(lit *ltl.NnfLit) string {
	dual := &ltl.NnfLit{Prop: lit.Prop, Negated: !lit.Negated}
	return dual.Key()
}

// minKey picks a formula from a set deterministically (the tableau
// algorithm permits any choice; a fixed one makes two runs over the
// same formula reproducible).
func minKey(m map[string]ltl.Nnf) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0]
}

func extractGBA(sealed []*node, formula ltl.Nnf) *GBA {
	g := &GBA{Transitions: map[arena.ID][]Transition{}}
	byID := map[arena.ID]*node{}
	for _, n := range sealed {
		g.States = append(g.States, n.id)
		byID[n.id] = n
	}
	sort.Slice(g.States, func(i, j int) bool { return g.States[i] < g.States[j] })

	for _, n := range sealed {
		for _, predID := range n.incoming {
			if predID == initSentinel {
				g.Initial = append(g.Initial, n.id)
				continue
			}
			pred, ok := byID[predID]
			if !ok {
				continue
			}
			g.Transitions[predID] = append(g.Transitions[predID], Transition{To: n.id, Label: labelFromOld(pred.old)})
		}
	}

	untilSubformulas := collectUntil(formula)
	if len(untilSubformulas) == 0 {
		g.Accepting = [][]arena.ID{append([]arena.ID(nil), g.States...)}
		return g
	}
	for _, u := range untilSubformulas {
		var fset []arena.ID
		for _, n := range sealed {
			if _, has := n.old[u.Key()]; !has {
				fset = append(fset, n.id)
				continue
			}
			if _, hasRight := n.old[u.R.Key()]; hasRight {
				fset = append(fset, n.id)
			}
		}
		g.Accepting = append(g.Accepting, fset)
	}
	return g
}

func labelFromOld(old map[string]ltl.Nnf) Label {
	required := map[string]bool{}
	disallowed := map[string]bool{}
	onlyTrivial := true
	for _, f := range old {
		switch v := f.(type) {
		case *ltl.NnfLit:
			onlyTrivial = false
			if v.Negated {
				disallowed[v.Prop.PropKey()] = true
			} else {
				required[v.Prop.PropKey()] = true
			}
		case *ltl.NnfBool:
			if !v.Value {
				return Label{Required: required, Disallowed: map[string]bool{"": true}} // unreachable in practice: contradictions are discarded earlier
			}
		default:
			onlyTrivial = false
		}
	}
	if onlyTrivial {
		return Label{Any: true}
	}
	return Label{Required: required, Disallowed: disallowed}
}

func collectUntil(f ltl.Nnf) []*ltl.NnfUntil {
	var out []*ltl.NnfUntil
	seen := map[string]bool{}
	var walk func(n ltl.Nnf)
	walk = func(n ltl.Nnf) {
		switch v := n.(type) {
		case *ltl.NnfUntil:
			if !seen[v.Key()] {
				seen[v.Key()] = true
				out = append(out, v)
			}
			walk(v.L)
			walk(v.R)
		case *ltl.NnfAnd:
			walk(v.L)
			walk(v.R)
		case *ltl.NnfOr:
			walk(v.L)
			walk(v.R)
		case *ltl.NnfRelease:
			walk(v.L)
			walk(v.R)
		case *ltl.NnfNext:
			walk(v.Operand)
		}
	}
	walk(f)
	return out
}
