package stack

import (
	"sync/atomic"
)

// nilIdx is the arena index used as the null node pointer.
const nilIdx = ^uint32(0)

// packed combines a 32-bit counter with a 32-bit arena index in one word,
// so the pair can be swapped as a single atomic unit. For the head word the
// counter is the external count; for the free-list head it is an ABA
// version that changes on every pop.
func packed(count, idx uint32) uint64 {
	return uint64(count)<<32 | uint64(idx)
}

func packedIdx(w uint64) uint32 { return uint32(w) }

func packedCount(w uint64) uint32 { return uint32(w >> 32) }

// extOne adds one to the external-count half of a packed word.
const extOne = uint64(1) << 32

type refNode[T any] struct {
	value    T
	internal atomic.Int64
	// next holds the packed successor word. Written before the node is
	// published, re-read only by goroutines holding a checked-out reference.
	next atomic.Uint64
}

// RefCountStack is a lock-free LIFO stack reclaimed by split reference
// counting.
//
// The head is a {external count, node index} pair updated as one atomic
// word. A popper first "checks out" a reference by bumping the external
// count of whatever node is currently head, so no global registry is needed:
// the is-anyone-reading tally rides on the pointer itself. Departing readers
// fold their references into the node's internal count, and whoever brings
// that count to exactly zero frees the node.
//
// Nodes live in a fixed arena of capacity entries addressed by stable index,
// which is what lets the pointer half of the head fit in 32 bits. Freed
// indexes return to a version-counted free list, so the capacity passed at
// construction is exact: Push fails once the arena is exhausted.
type RefCountStack[T any] struct {
	head      atomic.Uint64 // {external count | node index}
	freeHead  atomic.Uint64 // {version | node index}
	cursor    atomic.Uint64 // arena bump allocator
	nodes     []refNode[T]
	length    atomic.Int64
	allocated atomic.Uint64
	reclaimed atomic.Uint64
}

// NewRefCountStack creates a RefCountStack holding at most capacity values.
func NewRefCountStack[T any](capacity int) *RefCountStack[T] {
	if capacity < 1 {
		capacity = 1
	}
	s := &RefCountStack[T]{nodes: make([]refNode[T], capacity)}
	s.head.Store(packed(0, nilIdx))
	s.freeHead.Store(packed(0, nilIdx))
	return s
}

// alloc takes a node index from the free list, falling back to the arena
// bump cursor. Returns false when the arena is exhausted.
func (s *RefCountStack[T]) alloc() (uint32, bool) {
	for {
		old := s.freeHead.Load()
		idx := packedIdx(old)
		if idx == nilIdx {
			break
		}
		next := s.nodes[idx].next.Load()
		// Bumping the version half defeats ABA on reused indexes.
		if s.freeHead.CompareAndSwap(old, packed(packedCount(old)+1, packedIdx(next))) {
			return idx, true
		}
	}
	for {
		cur := s.cursor.Load()
		if cur >= uint64(len(s.nodes)) {
			return 0, false
		}
		if s.cursor.CompareAndSwap(cur, cur+1) {
			return uint32(cur), true
		}
	}
}

// free poisons the node and returns its index to the free list.
func (s *RefCountStack[T]) free(idx uint32) {
	n := &s.nodes[idx]
	var zero T
	n.value = zero
	n.internal.Store(0)
	for {
		old := s.freeHead.Load()
		n.next.Store(packed(0, packedIdx(old)))
		if s.freeHead.CompareAndSwap(old, packed(packedCount(old)+1, idx)) {
			break
		}
	}
	s.reclaimed.Add(1)
}

// Push adds a value to the top of the stack.
// Returns false when the node arena is exhausted.
func (s *RefCountStack[T]) Push(v T) bool {
	idx, ok := s.alloc()
	if !ok {
		return false
	}
	n := &s.nodes[idx]
	n.value = v
	n.internal.Store(0)
	// One external reference exists for the new node: the head word itself.
	newHead := packed(1, idx)
	for {
		old := s.head.Load()
		n.next.Store(old)
		if s.head.CompareAndSwap(old, newHead) {
			break
		}
	}
	s.allocated.Add(1)
	s.length.Add(1)
	return true
}

// increaseHeadCount checks out a reference to the current head by bumping
// its external count, whatever node that happens to be by the time the CAS
// lands. Returns the checked-out word.
func (s *RefCountStack[T]) increaseHeadCount(old uint64) uint64 {
	for {
		nw := old + extOne
		if s.head.CompareAndSwap(old, nw) {
			return nw
		}
		old = s.head.Load()
	}
}

// Pop removes and returns the top value.
// Returns false if the stack is empty.
func (s *RefCountStack[T]) Pop() (T, bool) {
	var zero T
	old := s.head.Load()
	for {
		old = s.increaseHeadCount(old)
		idx := packedIdx(old)
		if idx == nilIdx {
			return zero, false
		}
		n := &s.nodes[idx]

		if s.head.CompareAndSwap(old, n.next.Load()) {
			v := n.value
			n.value = zero

			// One decrement for unlinking the node from head, one for the
			// reference this goroutine is about to drop. Whoever folds the
			// count to exactly zero owns the free.
			delta := int64(packedCount(old)) - 2
			if n.internal.Add(delta) == 0 {
				s.free(idx)
			}
			s.length.Add(-1)
			return v, true
		}

		// Lost the race: another popper advanced head. Drop our checked-out
		// reference; if that was the last one, the node is ours to free.
		if n.internal.Add(-1) == 0 {
			s.free(idx)
		}
		old = s.head.Load()
	}
}

// Reinit drains the stack back to empty. Single-writer only.
func (s *RefCountStack[T]) Reinit() {
	for {
		if _, ok := s.Pop(); !ok {
			break
		}
	}
}

// Len returns the current number of values. Best-effort under concurrency.
func (s *RefCountStack[T]) Len() int {
	return int(s.length.Load())
}

// Cap returns the arena capacity.
func (s *RefCountStack[T]) Cap() int {
	return len(s.nodes)
}

// Allocated returns the total number of nodes taken by Push.
func (s *RefCountStack[T]) Allocated() uint64 {
	return s.allocated.Load()
}

// Reclaimed returns the total number of nodes freed. After a full drain it
// equals Allocated: less is a leak, more is a double free.
func (s *RefCountStack[T]) Reclaimed() uint64 {
	return s.reclaimed.Load()
}
