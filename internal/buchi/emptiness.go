// SPDX-License-Identifier: Apache-2.0
package buchi

// Lasso is an accepting cycle witness, concatenated S1 ++ S2 per
// §4.8.5: Stem is the DFS path from the initial state up to (not
// including) an accepting state x, and Cycle starts at x and ends at a
// state that has x as a successor. A non-nil Lasso from FindAcceptingCycle means the product
// language is non-empty.
type Lasso struct {
	Stem  []State
	Cycle []State
}

// FindAcceptingCycle runs the nested-DFS emptiness check (Vardi-Wolper-
// Yannakakis, Algorithm B) over p, returning the lexicographically-first
// accepting cycle under p's own successor ordering, or nil if the
// product's language is empty.
func FindAcceptingCycle(p *Product) *Lasso {
	for _, s0 := range p.Initial() {
		if lasso := searchFrom(p, s0); lasso != nil {
			return lasso
		}
	}
	return nil
}

func searchFrom(p *Product, s0 State) *Lasso {
	S1 := []State{s0}
	M1 := map[State]bool{s0: true}
	M2 := map[State]bool{}
	var S2 []State

	for len(S1) > 0 {
		x := S1[len(S1)-1]
		if y, ok := firstUnvisited(p.Succ(x), M1); ok {
			M1[y] = true
			S1 = append(S1, y)
			continue
		}
		S1 = S1[:len(S1)-1]
		if !p.Accepting(x) {
			continue
		}

		S2 = []State{x}
		for len(S2) > 0 {
			v := S2[len(S2)-1]
			if containsState(p.Succ(v), x) {
				return &Lasso{
					Stem:  append([]State(nil), S1...),
					Cycle: append([]State(nil), S2...),
				}
			}
			if w, ok := firstUnvisited(p.Succ(v), M2); ok {
				M2[w] = true
				S2 = append(S2, w)
			} else {
				S2 = S2[:len(S2)-1]
			}
		}
	}
	return nil
}

func firstUnvisited(succ []State, visited map[State]bool) (State, bool) {
	for _, s := range succ {
		if !visited[s] {
			return s, true
		}
	}
	return State{}, false
}

func containsState(succ []State, target State) bool {
	for _, s := range succ {
		if s == target {
			return true
		}
	}
	return false
}
