// SPDX-License-Identifier: Apache-2.0
// Package lattice implements the generic monotone-framework worklist
// fixed-point engine (§4.3): a domain satisfying Lattice, a direction,
// and a monotone transfer function are enough to drive forward or
// backward dataflow over a program graph.
package lattice

import "kansogcl/internal/pg"

// Direction selects whether facts flow from Start (Forward) or from End
// (Backward).
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Lattice describes the algebraic operations a domain must support:
// Bottom is the least element, Join is the least-upper-bound operator,
// and Contains(a, b) holds iff a ⊒ b (a "is at least as big as" b).
type Lattice[D any] interface {
	Bottom() D
	Join(a, b D) D
	Contains(a, b D) bool
}

// Framework declares a complete monotone-framework instance: a lattice,
// a transfer function that must be monotone in its `in` argument, a
// direction, and the value injected at the directional entry node.
type Framework[D any] interface {
	Lattice[D]
	Semantic(g *pg.Graph, e pg.Edge, in D) D
	Direction() Direction
	Initial(g *pg.Graph) D
}

// WorklistPolicy selects the order in which the engine revisits nodes.
// Both must terminate for a finite-height lattice; they can differ in
// call count but never in the resulting fixed point (§4.3, §5).
type WorklistPolicy int

const (
	FIFO WorklistPolicy = iota
	LIFO
)

// Result is the output of Analyse: the least fixed point together with
// the number of times Semantic was invoked (policy-dependent, result is
// not).
type Result[D any] struct {
	Facts            map[pg.NodeID]D
	SemanticCallCount int
}

type worklist struct {
	items  []pg.NodeID
	policy WorklistPolicy
}

func (w *worklist) push(n pg.NodeID) { w.items = append(w.items, n) }

func (w *worklist) pop() (pg.NodeID, bool) {
	if len(w.items) == 0 {
		var zero pg.NodeID
		return zero, false
	}
	switch w.policy {
	case LIFO:
		n := w.items[len(w.items)-1]
		w.items = w.items[:len(w.items)-1]
		return n, true
	default: // FIFO
		n := w.items[0]
		w.items = w.items[1:]
		return n, true
	}
}

// Analyse runs the worklist fixed-point algorithm of §4.3 to completion
// and returns the least fixed point of the constraint system induced by
// fw, provided fw's domain has finite height and Semantic is monotone.
func Analyse[D any](fw Framework[D], g *pg.Graph, policy WorklistPolicy) Result[D] {
	nodes := g.Nodes()
	facts := make(map[pg.NodeID]D, len(nodes))
	for _, n := range nodes {
		facts[n] = fw.Bottom()
	}

	entry := pg.Start
	if fw.Direction() == Backward {
		entry = pg.End
	}
	if _, ok := facts[entry]; ok {
		facts[entry] = fw.Join(facts[entry], fw.Initial(g))
	} else {
		facts[entry] = fw.Initial(g)
	}

	incoming := buildIncoming(g)

	wl := &worklist{policy: policy}
	for _, n := range nodes {
		wl.push(n)
	}

	callCount := 0
	for {
		node, ok := wl.pop()
		if !ok {
			break
		}
		var edges []pg.Edge
		if fw.Direction() == Forward {
			edges = g.Outgoing(node)
		} else {
			edges = incoming[node]
		}
		for _, e := range edges {
			src := e.From
			dst := e.To
			if fw.Direction() == Backward {
				src, dst = e.To, e.From
			}
			newVal := fw.Semantic(g, e, facts[src])
			callCount++
			if !fw.Contains(facts[dst], newVal) {
				facts[dst] = fw.Join(facts[dst], newVal)
				wl.push(dst)
			}
		}
	}

	return Result[D]{Facts: facts, SemanticCallCount: callCount}
}

func buildIncoming(g *pg.Graph) map[pg.NodeID][]pg.Edge {
	in := map[pg.NodeID][]pg.Edge{}
	for _, e := range g.Edges() {
		in[e.To] = append(in[e.To], e)
	}
	return in
}
