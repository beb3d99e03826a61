// Package hazard provides a process-scoped hazard-pointer registry.
//
// The registry is the memory-reclamation backend for lock-free structures
// that unlink nodes while other goroutines may still be dereferencing them.
// A popping goroutine claims a Slot, publishes the address it is about to
// read through Watch(), and a freeing goroutine consults Watched() before
// reclaiming. Nodes that are still watched are parked on a global deferred
// list via Defer() and retried by Sweep().
//
// Correctness does not depend on counting readers, only on a conservative
// over-approximation of "is anyone possibly looking at this address".
package hazard

import (
	"sync/atomic"
	"unsafe"
)

// DefaultSlots is the size of the slot table used by the Default registry.
//
// Exceeding it means more concurrent claimants than the platform was sized
// for, which is a resource-exhaustion condition, not a retryable failure.
const DefaultSlots = 100

// Default is the process-wide registry, sized like a fixed global table.
var Default = NewRegistry(DefaultSlots)

// Slot is a (claimant, watched-address) pair inside a Registry.
//
// A slot is bound to one goroutine between Acquire and Release. The watched
// address may never be reclaimed while it is published here.
type Slot struct {
	claimed atomic.Bool
	ptr     unsafe.Pointer // watched address, accessed atomically
}

// Watch publishes the address the holder is about to dereference.
func (s *Slot) Watch(p unsafe.Pointer) {
	atomic.StorePointer(&s.ptr, p)
}

// Clear retracts the published address.
func (s *Slot) Clear() {
	atomic.StorePointer(&s.ptr, nil)
}

// Release clears the watch and returns the slot to the registry.
// The slot must not be used after Release.
func (s *Slot) Release() {
	s.Clear()
	s.claimed.Store(false)
}

// record wraps a deferred node pointer with its type-erased destructor.
// Records form a global lock-free singly-linked list.
type record struct {
	ptr  unsafe.Pointer
	free func()
	next atomic.Pointer[record]
}

// Registry is a fixed table of hazard slots plus a deferred-reclamation list.
type Registry struct {
	slots   []Slot
	pending atomic.Pointer[record]
}

// NewRegistry creates a registry with n slots.
// n <= 0 falls back to DefaultSlots.
func NewRegistry(n int) *Registry {
	if n <= 0 {
		n = DefaultSlots
	}
	return &Registry{slots: make([]Slot, n)}
}

// Acquire claims the first unclaimed slot (CAS on the claimed flag wins).
//
// Panics when every slot is claimed: the fixed table is undersized for the
// number of concurrent claimants, and there is no way to recover by retrying.
func (r *Registry) Acquire() *Slot {
	for i := range r.slots {
		s := &r.slots[i]
		if s.claimed.CompareAndSwap(false, true) {
			return s
		}
	}
	panic("hazard: no free hazard slots")
}

// Watched reports whether any slot currently watches p.
//
// This is the reclamation gate: a true result means some goroutine may be
// about to dereference p, so p must not be reclaimed yet.
func (r *Registry) Watched(p unsafe.Pointer) bool {
	for i := range r.slots {
		if atomic.LoadPointer(&r.slots[i].ptr) == p {
			return true
		}
	}
	return false
}

// Defer parks p on the global reclamation list with its destructor.
// Called when a removed node turned out to still be watched.
func (r *Registry) Defer(p unsafe.Pointer, free func()) {
	r.push(&record{ptr: p, free: free})
}

func (r *Registry) push(rec *record) {
	for {
		head := r.pending.Load()
		rec.next.Store(head)
		if r.pending.CompareAndSwap(head, rec) {
			return
		}
	}
}

// Sweep detaches the entire deferred list and retries reclamation.
//
// The exchange gives the sweeping goroutine exclusive ownership of its
// sublist, so concurrent sweeps never race over the same record. Records
// that are no longer watched are freed; the rest are re-deferred. A record
// can stay deferred indefinitely if some goroutine stalls while watching it;
// that delays reclamation but never threatens safety.
func (r *Registry) Sweep() {
	cur := r.pending.Swap(nil)
	for cur != nil {
		next := cur.next.Load()
		if r.Watched(cur.ptr) {
			r.push(cur)
		} else {
			cur.free()
		}
		cur = next
	}
}

// Pending returns the number of records currently awaiting reclamation.
// Best-effort: the list may change while it is being counted.
func (r *Registry) Pending() int {
	n := 0
	for rec := r.pending.Load(); rec != nil; rec = rec.next.Load() {
		n++
	}
	return n
}

// Slots returns the size of the slot table.
func (r *Registry) Slots() int {
	return len(r.slots)
}
