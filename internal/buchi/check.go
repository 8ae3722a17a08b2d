// SPDX-License-Identifier: Apache-2.0
package buchi

import (
	"kansogcl/internal/interp"
	"kansogcl/internal/ltl"
	"kansogcl/internal/pg"
	"kansogcl/internal/tableau"
)

// Verdict is the LTL model-checking result for one formula (§6:
// "LTL: per-formula, one of {holds, violated(lasso, variable-snapshot-
// table)}").
type Verdict struct {
	Holds bool
	Lasso []DecodedState // nil when Holds
}

// DecodedState is one step of a counterexample, the product state's
// Kripke half mapped back through the reachable-state table to a
// concrete (node, memory) pair (§4.8.5, "the grader decodes it back to
// memory snapshots").
type DecodedState struct {
	Node pg.NodeID
	Mem  interp.Memory
}

// Check runs the full pipeline of §4.8 for one formula against a
// program's reachable-state graph. A model checker proves the absence
// of counterexamples to formula by searching for an accepting run of
// its *negation*'s automaton in the product with the program's Kripke
// structure (§4.8 soundness: "if emptiness returns no cycle, no
// execution of the program violates the formula"); an accepting cycle
// found there is exactly a run that falsifies formula.
func Check(formula ltl.Formula, rg *interp.ReachableGraph) Verdict {
	negated := ltl.ToNNF(&ltl.Neg{Operand: formula})
	canon, props := ltl.CanonicalizeProps(negated)

	gba := tableau.Build(canon)
	formulaBA := FromGBA(gba)
	kripkeBA := FromReachable(rg, props)

	lasso := FindAcceptingCycle(NewProduct(formulaBA, kripkeBA))
	if lasso == nil {
		return Verdict{Holds: true}
	}
	return Verdict{Holds: false, Lasso: decodeLasso(lasso, rg)}
}

func decodeLasso(lasso *Lasso, rg *interp.ReachableGraph) []DecodedState {
	var out []DecodedState
	decodeOne := func(s State) {
		if s.Q >= len(rg.Configs) {
			return // synthetic pre-initial Kripke state: no memory to decode
		}
		cfg := rg.Configs[s.Q]
		out = append(out, DecodedState{Node: cfg.Node, Mem: cfg.Mem})
	}
	for _, s := range lasso.Stem {
		decodeOne(s)
	}
	for _, s := range lasso.Cycle {
		decodeOne(s)
	}
	return out
}
