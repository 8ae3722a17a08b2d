// SPDX-License-Identifier: Apache-2.0
// Package interp implements the concrete small-step execution of §4.5:
// trace mode for student-visible step-by-step execution, and
// reachable-state mode for the LTL pipeline's Kripke structure.
package interp

import (
	"kansogcl/internal/memory"
	"kansogcl/internal/pg"
)

// Array is a sparse concrete array: reading an index that is not present
// is "out of bounds", and writing any index stores it, matching a
// student program that only initialises the indices it uses.
type Array map[int64]int64

func (a Array) clone() Array {
	out := make(Array, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Memory is the concrete store: variables map to an int64, arrays map to
// a sparse Array.
type Memory = memory.Memory[int64, Array]

func NewMemory() Memory { return memory.New[int64, Array]() }

// ZeroMemory initialises every free variable of g to 0, matching the
// "zero" memory the original interpreter seeds an unconfigured run with.
func ZeroMemory(g *pg.Graph) Memory {
	m := NewMemory()
	for _, t := range pg.FreeVars(g) {
		if t.IsArray() {
			if _, ok := m.Arrays[t.Name]; !ok {
				m.Arrays[t.Name] = Array{}
			}
		} else {
			m.Variables[t.Name] = 0
		}
	}
	return m
}

// withArrayElem returns a memory with array[idx] = val, cloning only
// that one array so memories produced along different branches never
// alias each other's storage.
func withArrayElem(m Memory, arr string, idx, val int64) Memory {
	cur, ok := m.Array(arr)
	if !ok {
		cur = Array{}
	}
	next := cur.clone()
	next[idx] = val
	return m.WithArray(arr, next)
}
