// Package slots implements the bounded, handle-indexed slot table shared by
// the memory, segment and scheduler packages.
//
// Each table hands out Handles from a monotonically increasing per-table
// counter starting at 1 (0 is the invalid sentinel, per the data model's
// Handle definition). Slot positions are recycled when an entry is removed
// so that iteration order ("slot order") is stable for round-robin
// scanning, but handle values themselves are never reused within a table's
// lifetime, which is the property the scheduler's priority pass and the
// memory manager's handle allocation both rely on to avoid ABA confusion.
//
// This is grounded on the teacher pack's generic-over-constraints.Ordered
// ring buffer (catrate/ring.go) for the "bounded collection with a stable
// element order" shape, adapted here to a capacity-bounded, handle-indexed
// table rather than a growable ring.
package slots

import (
	"golang.org/x/exp/constraints"
)

// Handle identifies one entry in a Table. The zero value is invalid.
type Handle = uint16

// Invalid is the sentinel handle value meaning "none".
const Invalid Handle = 0

// Table is a capacity-bounded, handle-indexed slot array.
//
// H is the handle's underlying integer type (always uint16 in this module,
// but kept generic over constraints.Integer so the table isn't wedded to a
// specific width).
type Table[H constraints.Integer, T any] struct {
	capacity int
	next     H
	order    []H // order[i] == zero value means slot i is free
	values   map[H]T
}

// New creates a table bounded to capacity entries.
func New[H constraints.Integer, T any](capacity int) *Table[H, T] {
	return &Table[H, T]{
		capacity: capacity,
		values:   make(map[H]T, capacity),
	}
}

// Capacity returns the table's maximum entry count.
func (t *Table[H, T]) Capacity() int { return t.capacity }

// Len returns the current entry count.
func (t *Table[H, T]) Len() int { return len(t.values) }

// Full reports whether the table is at capacity.
func (t *Table[H, T]) Full() bool { return len(t.values) >= t.capacity }

// Insert assigns a fresh handle to value and stores it in the first free
// slot position, returning the new handle. ok is false (handle is the zero
// value) if the table is already at capacity or every handle value has
// already been handed out.
func (t *Table[H, T]) Insert(value T) (handle H, ok bool) {
	if t.Full() {
		var zero H
		return zero, false
	}
	if t.next+1 == 0 {
		var zero H
		return zero, false
	}
	t.next++
	h := t.next
	for i, occupant := range t.order {
		var zero H
		if occupant == zero {
			t.order[i] = h
			t.values[h] = value
			return h, true
		}
	}
	t.order = append(t.order, h)
	t.values[h] = value
	return h, true
}

// Get returns the value stored for handle, and whether it was found.
func (t *Table[H, T]) Get(handle H) (T, bool) {
	v, ok := t.values[handle]
	return v, ok
}

// Set overwrites the value stored for an existing handle. It reports false
// (and does nothing) if the handle is not present.
func (t *Table[H, T]) Set(handle H, value T) bool {
	if _, ok := t.values[handle]; !ok {
		return false
	}
	t.values[handle] = value
	return true
}

// Delete removes handle's entry, freeing its slot position for reuse by a
// future Insert (the position, not the handle value). Returns the removed
// value and whether it was present.
func (t *Table[H, T]) Delete(handle H) (T, bool) {
	v, ok := t.values[handle]
	if !ok {
		var zero T
		return zero, false
	}
	delete(t.values, handle)
	for i, occupant := range t.order {
		if occupant == handle {
			var zero H
			t.order[i] = zero
			break
		}
	}
	return v, true
}

// Handles returns the occupied handles in stable slot order, the order
// round-robin scans (e.g. the scheduler's run_pass) must use.
func (t *Table[H, T]) Handles() []H {
	out := make([]H, 0, len(t.values))
	for _, h := range t.order {
		var zero H
		if h != zero {
			out = append(out, h)
		}
	}
	return out
}

// Each calls fn for every occupied handle in slot order, stopping early if
// fn returns false.
func (t *Table[H, T]) Each(fn func(handle H, value T) bool) {
	for _, h := range t.order {
		var zero H
		if h == zero {
			continue
		}
		v, ok := t.values[h]
		if !ok {
			continue
		}
		if !fn(h, v) {
			return
		}
	}
}
