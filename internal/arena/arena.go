// SPDX-License-Identifier: Apache-2.0
// Package arena provides the append-only node storage and dense/small
// map containers described in §4.9. The tableau and the Büchi automata
// identify their states by ID; they keep their own per-state data in
// plain Go maps rather than in these containers.
package arena

// ID is a 32-bit, densely-assigned node identity.
type ID uint32

// Arena is an append-only store of values of type T, indexed by ID.
type Arena[T any] struct {
	items []T
}

func New[T any]() *Arena[T] { return &Arena[T]{} }

// Alloc appends v and returns its freshly assigned ID.
func (a *Arena[T]) Alloc(v T) ID {
	id := ID(len(a.items))
	a.items = append(a.items, v)
	return id
}

func (a *Arena[T]) Get(id ID) T       { return a.items[id] }
func (a *Arena[T]) Set(id ID, v T)    { a.items[id] = v }
func (a *Arena[T]) Len() int          { return len(a.items) }
func (a *Arena[T]) All() []T          { return a.items }

// NodeMap is a dense vector indexed by ID, with present/absent slots
// tracked alongside the values; O(1) lookup, and iteration that skips
// absent entries.
type NodeMap[V any] struct {
	present []bool
	values  []V
}

func NewNodeMap[V any]() *NodeMap[V] { return &NodeMap[V]{} }

func (m *NodeMap[V]) ensure(id ID) {
	for ID(len(m.present)) <= id {
		var zero V
		m.present = append(m.present, false)
		m.values = append(m.values, zero)
	}
}

func (m *NodeMap[V]) Set(id ID, v V) {
	m.ensure(id)
	m.present[id] = true
	m.values[id] = v
}

func (m *NodeMap[V]) Get(id ID) (V, bool) {
	if int(id) >= len(m.present) || !m.present[id] {
		var zero V
		return zero, false
	}
	return m.values[id], true
}

func (m *NodeMap[V]) Delete(id ID) {
	if int(id) < len(m.present) {
		m.present[id] = false
		var zero V
		m.values[id] = zero
	}
}

// Each calls fn for every present (id, value) pair in id order.
func (m *NodeMap[V]) Each(fn func(id ID, v V)) {
	for i, ok := range m.present {
		if ok {
			fn(ID(i), m.values[i])
		}
	}
}

// smallVecThreshold is the inline capacity of a SmartNodeMap before it
// promotes to a dense NodeMap (§4.9).
const smallVecThreshold = 16

// SmartNodeMap starts as a small insertion-ordered slice of (id, value)
// pairs and promotes itself to a dense NodeMap once it grows past
// smallVecThreshold entries, trading the linear scan of a tiny map for
// the allocation cost of a dense one only when it starts to matter.
type SmartNodeMap[V any] struct {
	smallIDs  []ID
	smallVals []V
	dense     *NodeMap[V]
}

func NewSmartNodeMap[V any]() *SmartNodeMap[V] { return &SmartNodeMap[V]{} }

func (m *SmartNodeMap[V]) Set(id ID, v V) {
	if m.dense != nil {
		m.dense.Set(id, v)
		return
	}
	for i, existing := range m.smallIDs {
		if existing == id {
			m.smallVals[i] = v
			return
		}
	}
	if len(m.smallIDs) >= smallVecThreshold {
		m.promote()
		m.dense.Set(id, v)
		return
	}
	m.smallIDs = append(m.smallIDs, id)
	m.smallVals = append(m.smallVals, v)
}

func (m *SmartNodeMap[V]) promote() {
	dense := NewNodeMap[V]()
	for i, id := range m.smallIDs {
		dense.Set(id, m.smallVals[i])
	}
	m.dense = dense
	m.smallIDs = nil
	m.smallVals = nil
}

func (m *SmartNodeMap[V]) Get(id ID) (V, bool) {
	if m.dense != nil {
		return m.dense.Get(id)
	}
	for i, existing := range m.smallIDs {
		if existing == id {
			return m.smallVals[i], true
		}
	}
	var zero V
	return zero, false
}

// Each calls fn for every (id, value) pair in insertion order while
// small, or id order once promoted.
func (m *SmartNodeMap[V]) Each(fn func(id ID, v V)) {
	if m.dense != nil {
		m.dense.Each(fn)
		return
	}
	for i, id := range m.smallIDs {
		fn(id, m.smallVals[i])
	}
}
