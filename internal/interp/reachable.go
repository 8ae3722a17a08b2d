// SPDX-License-Identifier: Apache-2.0
package interp

import (
	"fmt"
	"sort"
	"strings"

	"kansogcl/internal/pg"
)

// ConfigKey canonically identifies a (node, memory) configuration so the
// reachable-state search can dedup states and build a finite Kripke
// structure, per §4.5's reachable-state mode and the LTL pipeline's need
// for a finite-state model (§4.8).
type ConfigKey string

func configKey(node pg.NodeID, m Memory) ConfigKey {
	return ConfigKey(node.String() + "|" + memoryKey(m))
}

func memoryKey(m Memory) string {
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
		arr := m.Arrays[n]
		idxs := make([]int64, 0, len(arr))
		for i := range arr {
			idxs = append(idxs, i)
		}
		sort.Slice(idxs, func(i, j int) bool { return idxs[i] < idxs[j] })
		b.WriteString("a:")
		b.WriteString(n)
		b.WriteByte('[')
		for _, i := range idxs {
			fmt.Fprintf(&b, "%d:%d,", i, arr[i])
		}
		b.WriteString("];")
	}
	return b.String()
}

// Config is one reachable (node, memory) pair.
type Config struct {
	Node pg.NodeID
	Mem  Memory
}

// ReachableGraph is the finite-state transition system explored from a
// single initial configuration: the input to the Kripke-structure
// construction of the LTL pipeline (§4.8).
type ReachableGraph struct {
	Configs   []Config
	index     map[ConfigKey]int
	Succ      map[int][]int
	Initial   int
	Truncated bool // true if the fuel limit was hit before the frontier closed
}

// DefaultStateFuel bounds how many distinct configurations the reachable
// search will expand before giving up and reporting a "state-space
// explosion" outcome (SPEC_FULL's supplement to §4.5/§4.8) rather than
// looping forever on an infinite-state program.
const DefaultStateFuel = 50_000

// Explore performs a breadth-first enumeration of every configuration
// reachable from (Start, initial), following every enabled outgoing edge
// at each step (not just the first, unlike trace mode: model checking
// needs every nondeterministic successor).
func Explore(g *pg.Graph, initial Memory, fuel int) *ReachableGraph {
	rg := &ReachableGraph{index: map[ConfigKey]int{}, Succ: map[int][]int{}}
	start := Config{Node: pg.Start, Mem: initial}
	rg.Initial = rg.intern(start)

	queue := []int{rg.Initial}
	for len(queue) > 0 {
		if len(rg.Configs) > fuel {
			rg.Truncated = true
			return rg
		}
		cur := queue[0]
		queue = queue[1:]
		cfg := rg.Configs[cur]

		if cfg.Node == pg.End {
			continue
		}
		for _, e := range g.Outgoing(cfg.Node) {
			nextMem, enabled, err := step(e, cfg.Mem)
			if err != nil || !enabled {
				continue
			}
			next := Config{Node: e.To, Mem: nextMem}
			idx, isNew := rg.internNew(next)
			rg.Succ[cur] = append(rg.Succ[cur], idx)
			if isNew {
				queue = append(queue, idx)
			}
		}
	}
	return rg
}

func (rg *ReachableGraph) intern(c Config) int {
	idx, _ := rg.internNew(c)
	return idx
}

func (rg *ReachableGraph) internNew(c Config) (int, bool) {
	k := configKey(c.Node, c.Mem)
	if idx, ok := rg.index[k]; ok {
		return idx, false
	}
	idx := len(rg.Configs)
	rg.Configs = append(rg.Configs, c)
	rg.index[k] = idx
	return idx, true
}
