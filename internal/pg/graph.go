// SPDX-License-Identifier: Apache-2.0
// Package pg lowers a GCL command sequence into the labelled transition
// system used by every downstream analysis (§4.2).
package pg

import (
	"fmt"
	"sort"
	"strings"

	"kansogcl/internal/ast"
)

// Determinism selects how guard edges are strengthened when building a
// program graph (§4.2).
type Determinism int

const (
	NonDeterministic Determinism = iota
	Deterministic
)

// NodeID is the opaque identity of a program-graph node before or after
// renumbering. Start and End are sentinels; all other nodes are
// identified by a nonnegative integer.
type NodeID struct {
	kind int // 0 = Start, 1 = interior, 2 = End
	n    int
}

var Start = NodeID{kind: 0}
var End = NodeID{kind: 2}

func interior(n int) NodeID { return NodeID{kind: 1, n: n} }

func (id NodeID) IsStart() bool    { return id.kind == 0 }
func (id NodeID) IsEnd() bool      { return id.kind == 2 }
func (id NodeID) IsInterior() bool { return id.kind == 1 }
func (id NodeID) Num() int         { return id.n }

func (id NodeID) String() string {
	switch id.kind {
	case 0:
		return "qStart"
	case 2:
		return "qFinal"
	default:
		return fmt.Sprintf("q%d", id.n)
	}
}

// ActionKind distinguishes the four shapes an edge's action may take.
type ActionKind int

const (
	ActionAssign ActionKind = iota
	ActionArrayAssign
	ActionSkip
	ActionCondition
)

// Action is the label carried by a program-graph edge (§3).
type Action struct {
	Kind  ActionKind
	Var   string  // ActionAssign, ActionArrayAssign (array name)
	Index ast.AExpr // ActionArrayAssign
	Value ast.AExpr // ActionAssign, ActionArrayAssign
	Cond  ast.BExpr // ActionCondition
}

func AssignAction(v string, val ast.AExpr) Action {
	return Action{Kind: ActionAssign, Var: v, Value: val}
}
func ArrayAssignAction(arr string, idx, val ast.AExpr) Action {
	return Action{Kind: ActionArrayAssign, Var: arr, Index: idx, Value: val}
}
func SkipAction() Action { return Action{Kind: ActionSkip} }
func CondAction(b ast.BExpr) Action {
	return Action{Kind: ActionCondition, Cond: b}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionAssign:
		return fmt.Sprintf("%s := %s", a.Var, a.Value)
	case ActionArrayAssign:
		return fmt.Sprintf("%s[%s] := %s", a.Var, a.Index, a.Value)
	case ActionSkip:
		return "skip"
	case ActionCondition:
		return a.Cond.String()
	default:
		return "?"
	}
}

// Edge is a labelled transition (from, action, to).
type Edge struct {
	From, To NodeID
	Act      Action
}

// Graph is the finite directed multigraph described in §3: distinguished
// Start/End nodes, opaque-then-renumbered node identity, and an
// outgoing-edge index for O(1) successor iteration.
type Graph struct {
	edges    []Edge
	nodes    map[NodeID]struct{}
	outgoing map[NodeID][]Edge
}

func (g *Graph) Edges() []Edge { return g.edges }

func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return nodeLess(out[i], out[j]) })
	return out
}

func nodeLess(a, b NodeID) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	return a.n < b.n
}

// Outgoing returns node's outgoing edges in the order they were added
// (guard edges within a block in source order, per §5).
func (g *Graph) Outgoing(node NodeID) []Edge {
	return g.outgoing[node]
}

// Build lowers cmds into a program graph under the given determinism
// policy, then renumbers nodes into reverse-post-order (§4.2).
func Build(det Determinism, cmds *ast.Commands) (*Graph, error) {
	b := &builder{det: det}
	if err := b.commandsEdges(cmds, Start, End); err != nil {
		return nil, err
	}
	g := assemble(b.edges)
	return renumber(g), nil
}

type builder struct {
	det      Determinism
	edges    []Edge
	nextNode int
}

func (b *builder) fresh() NodeID {
	id := interior(b.nextNode)
	b.nextNode++
	return id
}

func (b *builder) commandsEdges(cmds *ast.Commands, s, t NodeID) error {
	prev := s
	for i, cmd := range cmds.Items {
		isLast := i == len(cmds.Items)-1
		next := t
		if !isLast {
			next = b.fresh()
		}
		if err := b.commandEdges(cmd, prev, next); err != nil {
			return err
		}
		prev = next
	}
	if len(cmds.Items) == 0 {
		b.edges = append(b.edges, Edge{From: s, To: t, Act: SkipAction()})
	}
	return nil
}

func (b *builder) commandEdges(cmd ast.Command, s, t NodeID) error {
	switch c := cmd.(type) {
	case *ast.Assignment:
		b.edges = append(b.edges, Edge{From: s, To: t, Act: AssignAction(c.Var, c.Value)})
		return nil
	case *ast.ArrayAssignment:
		b.edges = append(b.edges, Edge{From: s, To: t, Act: ArrayAssignAction(c.Array, c.Index, c.Value)})
		return nil
	case *ast.Skip:
		b.edges = append(b.edges, Edge{From: s, To: t, Act: SkipAction()})
		return nil
	case *ast.If:
		return b.guardEdges(c.Guards, s, t)
	case *ast.Do:
		done := doneCondition(c.Guards)
		if err := b.guardEdges(c.Guards, s, s); err != nil {
			return err
		}
		b.edges = append(b.edges, Edge{From: s, To: t, Act: CondAction(done)})
		return nil
	case *ast.Break, *ast.Continue:
		return fmt.Errorf("pg: %s is not supported by the program-graph builder", cmd)
	default:
		return fmt.Errorf("pg: unsupported command %T", cmd)
	}
}

// guardEdges wires an if/do's guards per the determinism policy (§4.2).
// Deterministic mode strengthens guard i with the negation of the
// disjunction of all earlier guards, in source order; nondeterministic
// mode leaves each guard condition untouched.
func (b *builder) guardEdges(guards []*ast.Guard, s, t NodeID) error {
	var priorDisjunction ast.BExpr
	for _, g := range guards {
		q := b.fresh()
		if err := b.commandsEdges(g.Body, q, t); err != nil {
			return err
		}
		cond := g.Cond
		if b.det == Deterministic {
			if priorDisjunction == nil {
				priorDisjunction = g.Cond
			} else {
				cond = &ast.Logic{Left: &ast.Not{Operand: priorDisjunction}, Op: ast.LogicAnd, Right: g.Cond}
				priorDisjunction = &ast.Logic{Left: priorDisjunction, Op: ast.LogicOr, Right: g.Cond}
			}
		}
		b.edges = append(b.edges, Edge{From: s, To: q, Act: CondAction(cond)})
	}
	return nil
}

// doneCondition is the negation of the disjunction of all guards' boolean
// parts; in deterministic mode this is the same formula regardless of
// policy because De Morgan's law makes "not(b1 or ... or bn)" the guard
// strengthening's natural complement.
func doneCondition(guards []*ast.Guard) ast.BExpr {
	var conj ast.BExpr
	for _, g := range guards {
		neg := &ast.Not{Operand: g.Cond}
		if conj == nil {
			conj = neg
		} else {
			conj = &ast.Logic{Left: conj, Op: ast.LogicAnd, Right: neg}
		}
	}
	if conj == nil {
		return &ast.BoolLit{Value: true}
	}
	return conj
}

func assemble(edges []Edge) *Graph {
	g := &Graph{
		nodes:    make(map[NodeID]struct{}),
		outgoing: make(map[NodeID][]Edge),
	}
	g.edges = edges
	for _, e := range edges {
		g.nodes[e.From] = struct{}{}
		g.nodes[e.To] = struct{}{}
		g.outgoing[e.From] = append(g.outgoing[e.From], e)
	}
	g.nodes[Start] = struct{}{}
	g.nodes[End] = struct{}{}
	return g
}

// FreeVars returns every variable or array target named by some edge's
// action, in first-seen order across the edge list.
func FreeVars(g *Graph) []ast.Target {
	seen := map[ast.Target]struct{}{}
	var out []ast.Target
	add := func(t ast.Target) {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	for _, e := range g.edges {
		switch e.Act.Kind {
		case ActionAssign:
			add(ast.NewVar(e.Act.Var))
			for _, t := range ast.FreeVars(e.Act.Value).Items() {
				add(t)
			}
		case ActionArrayAssign:
			add(ast.BareArray(e.Act.Var))
			for _, t := range ast.FreeVars(e.Act.Index).Items() {
				add(t)
			}
			for _, t := range ast.FreeVars(e.Act.Value).Items() {
				add(t)
			}
		case ActionCondition:
			for _, t := range ast.FreeVars(e.Act.Cond).Items() {
				add(t)
			}
		}
	}
	return out
}

// DOT renders the program graph as Graphviz source (§6): one line per
// edge plus a declaration line for the source node.
func (g *Graph) DOT() string {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	for _, e := range g.edges {
		fmt.Fprintf(&b, "  %s; %s -> %s[label=%q];\n", e.From, e.From, e.To, e.Act.String())
	}
	b.WriteString("}")
	return b.String()
}
