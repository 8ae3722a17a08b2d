// SPDX-License-Identifier: Apache-2.0
package buchi

// State is one state of the synchronous product of two BAs, identified
// by the pair of component state ids.
type State struct {
	P, Q int
}

// Product is the lazy synchronous product of two Büchi automata
// (§4.8.5): successors are computed and cached on first request rather
// than materialising the full O(|A| x |B|) state space up front.
type Product struct {
	a, b  *BA
	cache map[State][]State
}

func NewProduct(a, b *BA) *Product {
	return &Product{a: a, b: b, cache: map[State][]State{}}
}

// Initial returns every pair of initial states whose labels are
// irrelevant to membership (a product state is initial iff both
// components are), per the standard synchronous-product construction.
func (p *Product) Initial() []State {
	out := make([]State, 0, len(p.a.Initial)*len(p.b.Initial))
	for _, pi := range p.a.Initial {
		for _, qi := range p.b.Initial {
			out = append(out, State{P: pi, Q: qi})
		}
	}
	return out
}

// Accepting reports whether s is accepting in the product: both
// components must be accepting simultaneously.
func (p *Product) Accepting(s State) bool {
	return p.a.Accepting[s.P] && p.b.Accepting[s.Q]
}

// Succ returns the product successors of s, computing and caching them
// on first call: (p,q) -> (p',q') exists iff p -a-> p', q -b-> q', and
// the two edge labels share a satisfying assignment.
func (p *Product) Succ(s State) []State {
	if cached, ok := p.cache[s]; ok {
		return cached
	}
	var out []State
	for _, ea := range p.a.Trans[s.P] {
		for _, eb := range p.b.Trans[s.Q] {
			if Intersect(ea.Label, eb.Label) {
				out = append(out, State{P: ea.To, Q: eb.To})
			}
		}
	}
	p.cache[s] = out
	return out
}
