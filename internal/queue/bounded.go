package queue

import "sync/atomic"

// cell is one slot of the bounded queue's backing array. The sequence
// number encodes which logical generation of push/pop currently owns the
// slot; producers and consumers arbitrate ownership purely by comparing it
// against their candidate cursor position.
type cell[T any] struct {
	seq atomic.Uint64
	val T
}

// BoundedQueue is a lock-free MPMC queue over a fixed power-of-two array
// of sequence-numbered cells.
//
// Enqueue and dequeue are pure compare-and-swap loops over the two cursors;
// nothing is allocated after construction. Unlike TwoLockQueue's advisory
// counter, the capacity here is a hard invariant: slot ownership is
// arbitrated by the same sequence mechanism that publishes the data.
type BoundedQueue[T any] struct {
	buf  []cell[T]
	mask uint64

	// Cache line padding to prevent false sharing between the cursors
	_pad0 [56]byte //nolint:unused

	enqueuePos atomic.Uint64

	_pad1 [56]byte //nolint:unused

	dequeuePos atomic.Uint64

	_pad2 [56]byte //nolint:unused
}

// NewBounded creates a BoundedQueue with the specified capacity.
// Capacity will be rounded up to the next power of 2, minimum 2.
func NewBounded[T any](capacity int) *BoundedQueue[T] {
	n := uint64(2)
	for n < uint64(capacity) {
		n <<= 1
	}

	q := &BoundedQueue[T]{
		buf:  make([]cell[T], n),
		mask: n - 1,
	}
	for i := range q.buf {
		q.buf[i].seq.Store(uint64(i))
	}
	return q
}

// Push adds an item to the queue.
// Returns false if the queue is observed full; it never blocks or retries
// past a full condition.
func (q *BoundedQueue[T]) Push(v T) bool {
	for {
		pos := q.enqueuePos.Load()
		c := &q.buf[pos&q.mask]
		seq := c.seq.Load()
		diff := int64(seq) - int64(pos)

		// The cell still belongs to an earlier generation that no consumer
		// has released: the queue is full.
		if diff < 0 {
			return false
		}

		if diff == 0 && q.enqueuePos.CompareAndSwap(pos, pos+1) {
			c.val = v
			// Publishing pos+1 is the exact signal a consumer waits for.
			c.seq.Store(pos + 1)
			return true
		}
		// Another producer claimed this slot; re-read and retry.
	}
}

// Pop removes and returns an item from the queue.
// Returns false if the queue is observed empty.
func (q *BoundedQueue[T]) Pop() (T, bool) {
	for {
		pos := q.dequeuePos.Load()
		c := &q.buf[pos&q.mask]
		seq := c.seq.Load()
		diff := int64(seq) - int64(pos+1)

		if diff < 0 {
			var zero T
			return zero, false
		}

		if diff == 0 && q.dequeuePos.CompareAndSwap(pos, pos+1) {
			v := c.val
			var zero T
			c.val = zero
			// Mark the slot free for the next wraparound generation, not
			// the current one.
			c.seq.Store(pos + q.mask + 1)
			return v, true
		}
	}
}

// Reinit restores the freshly constructed state: generation-zero sequence
// numbers, zeroed cursors and payloads. Single-writer only.
func (q *BoundedQueue[T]) Reinit() {
	var zero T
	for i := range q.buf {
		q.buf[i].val = zero
		q.buf[i].seq.Store(uint64(i))
	}
	q.enqueuePos.Store(0)
	q.dequeuePos.Store(0)
}

// Len returns the current number of items in the queue.
// This is an approximation and may be slightly stale.
func (q *BoundedQueue[T]) Len() int {
	return int(int64(q.enqueuePos.Load()) - int64(q.dequeuePos.Load()))
}

// Cap returns the capacity of the queue.
func (q *BoundedQueue[T]) Cap() int {
	return len(q.buf)
}
