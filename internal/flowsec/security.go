// SPDX-License-Identifier: Apache-2.0
package flowsec

import "kansogcl/internal/ast"

// ClassEdge is one declared `from -> into` security-class edge, the raw
// input to a SecurityLattice before closure.
type ClassEdge struct {
	From string
	Into string
}

// SecurityLattice is the reflexive-transitive closure of a declared set
// of class edges (§4.6): class u may flow into class v iff u == v or
// (u, v) is in the closure.
type SecurityLattice struct {
	reaches map[string]map[string]bool
}

// NewSecurityLattice computes the closure of edges via repeated
// transitive saturation; the class-name universe is exactly the classes
// mentioned by some edge.
func NewSecurityLattice(edges []ClassEdge) *SecurityLattice {
	reaches := map[string]map[string]bool{}
	ensure := func(c string) map[string]bool {
		if reaches[c] == nil {
			reaches[c] = map[string]bool{}
		}
		return reaches[c]
	}
	for _, e := range edges {
		ensure(e.From)
		ensure(e.Into)
		reaches[e.From][e.Into] = true
	}

	// Floyd-Warshall-style saturation: iterate until no edge is added.
	changed := true
	for changed {
		changed = false
		for u := range reaches {
			for v := range reaches[u] {
				for w := range reaches[v] {
					if !reaches[u][w] {
						reaches[u][w] = true
						changed = true
					}
				}
			}
		}
	}
	return &SecurityLattice{reaches: reaches}
}

// Allows reports whether class u may flow into class v: reflexively (u
// == v) or because (u, v) lies in the declared edges' transitive
// closure.
func (l *SecurityLattice) Allows(u, v string) bool {
	if u == v {
		return true
	}
	return l.reaches[u][v]
}

// Classification maps a program's variable and array targets to their
// declared security class.
type Classification map[ast.Target]string

// Verdict is the §4.6 partition of a flow set against a classification
// and lattice: every actual flow, split into the subset that is allowed
// and the subset that violates the lattice.
type Verdict struct {
	Actual     []Flow
	Allowed    []Flow
	Violations []Flow
}

// Classify partitions flows into allowed and violating, per class(v) ==
// class(u) or class(u) -> class(v) in the lattice's closure. A flow
// whose endpoints have no declared class is conservatively treated as a
// violation, since an unclassified target cannot be shown safe.
func Classify(flows []Flow, classes Classification, lattice *SecurityLattice) Verdict {
	v := Verdict{Actual: flows}
	for _, f := range flows {
		uc, uok := classes[f.From]
		vc, vok := classes[f.Into]
		if uok && vok && lattice.Allows(uc, vc) {
			v.Allowed = append(v.Allowed, f)
		} else {
			v.Violations = append(v.Violations, f)
		}
	}
	return v
}
