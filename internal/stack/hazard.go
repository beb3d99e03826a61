package stack

import (
	"sync/atomic"
	"unsafe"

	"github.com/randomizedcoder/some-container-benchmarks/internal/hazard"
)

type hazardNode[T any] struct {
	value T
	next  *hazardNode[T]
}

// HazardStack is a lock-free LIFO stack protected by hazard pointers.
//
// Push is plain optimistic list insertion. Pop publishes the head address
// through a hazard slot before dereferencing it, so a concurrent freer can
// see the watch and postpone reclamation. A reclaimed node is poisoned
// (payload and link zeroed) so that a read-after-free surfaces as corrupted
// data instead of going unnoticed.
//
// The capacity argument documents the intended working-set size; it is not
// enforced, and Push never fails.
type HazardStack[T any] struct {
	head      atomic.Pointer[hazardNode[T]]
	reg       *hazard.Registry
	capacity  int
	allocated atomic.Uint64
	reclaimed atomic.Uint64
}

// NewHazardStack creates a HazardStack backed by the default registry.
func NewHazardStack[T any](capacity int) *HazardStack[T] {
	return NewHazardStackWith[T](capacity, hazard.Default)
}

// NewHazardStackWith creates a HazardStack backed by reg.
func NewHazardStackWith[T any](capacity int, reg *hazard.Registry) *HazardStack[T] {
	return &HazardStack[T]{reg: reg, capacity: capacity}
}

// Push adds a value to the top of the stack. Always succeeds.
func (s *HazardStack[T]) Push(v T) bool {
	n := &hazardNode[T]{value: v}
	s.allocated.Add(1)
	for {
		old := s.head.Load()
		n.next = old
		if s.head.CompareAndSwap(old, n) {
			return true
		}
	}
}

// Pop removes and returns the top value. Returns false if the stack was
// observed empty at the moment ownership was secured.
//
// A hazard slot is claimed for the duration of the call; the registry
// panics if more concurrent poppers exist than it has slots.
func (s *HazardStack[T]) Pop() (T, bool) {
	slot := s.reg.Acquire()
	defer slot.Release()

	var old *hazardNode[T]
	for {
		old = s.head.Load()
		// Publish the watch and re-read until the two reads agree. If the
		// head changed between the read and the watch becoming visible, the
		// snapshot may already be freed and must be refreshed.
		for {
			tmp := old
			slot.Watch(unsafe.Pointer(old))
			old = s.head.Load()
			if old == tmp {
				break
			}
		}
		if old == nil {
			break
		}
		if s.head.CompareAndSwap(old, old.next) {
			break
		}
	}
	slot.Clear()

	if old == nil {
		var zero T
		return zero, false
	}

	v := old.value
	if s.reg.Watched(unsafe.Pointer(old)) {
		s.reg.Defer(unsafe.Pointer(old), func() { s.reclaim(old) })
	} else {
		s.reclaim(old)
	}
	s.reg.Sweep()
	return v, true
}

// reclaim poisons the node and drops its references.
func (s *HazardStack[T]) reclaim(n *hazardNode[T]) {
	var zero T
	n.value = zero
	n.next = nil
	s.reclaimed.Add(1)
}

// Reinit drains the stack and flushes the deferred-reclamation list.
// Single-writer only: all workers must have joined.
func (s *HazardStack[T]) Reinit() {
	for {
		if _, ok := s.Pop(); !ok {
			break
		}
	}
	// No watchers remain, so everything still deferred reclaims now.
	s.reg.Sweep()
}

// Cap returns the documented capacity.
func (s *HazardStack[T]) Cap() int {
	return s.capacity
}

// Allocated returns the total number of nodes created by Push.
func (s *HazardStack[T]) Allocated() uint64 {
	return s.allocated.Load()
}

// Reclaimed returns the total number of nodes reclaimed. After a full drain
// with no concurrent poppers it equals Allocated; a shortfall is a leak and
// an excess is a double free.
func (s *HazardStack[T]) Reclaimed() uint64 {
	return s.reclaimed.Load()
}
