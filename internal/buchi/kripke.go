// SPDX-License-Identifier: Apache-2.0
package buchi

import (
	"fmt"

	"kansogcl/internal/ast"
	"kansogcl/internal/interp"
	"kansogcl/internal/ltl"
	"kansogcl/internal/pg"
)

// evalProps evaluates every proposition in props (the canonical,
// index-aligned alphabet) against the configuration at rg.Configs[idx],
// keying the result by the same "p<N>" label the tableau assigns that
// position, so the returned map is directly usable as a concrete
// Required/Disallowed source for concreteLabel.
func evalProps(props []ltl.Prop, rg *interp.ReachableGraph, idx int) map[string]bool {
	cfg := rg.Configs[idx]
	out := make(map[string]bool, len(props))
	for i, p := range props {
		key := fmt.Sprintf("p%d", i)
		switch v := p.(type) {
		case ltl.RelAtom:
			ok, err := interp.EvalB(&ast.Rel{Left: v.Left, Op: v.Op, Right: v.Right}, cfg.Mem)
			out[key] = err == nil && ok
		case ltl.LocAtom:
			out[key] = evalLoc(v, rg, idx)
		default:
			out[key] = false
		}
	}
	return out
}

func evalLoc(loc ltl.LocAtom, rg *interp.ReachableGraph, idx int) bool {
	cfg := rg.Configs[idx]
	switch loc.Name {
	case "init":
		return idx == rg.Initial
	case "terminated":
		return cfg.Node == pg.End
	case "stuck":
		return cfg.Node != pg.End && len(rg.Succ[idx]) == 0
	default:
		return false
	}
}
