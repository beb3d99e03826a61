package queue

import "sync/atomic"

// spinLock is a test-and-set busy-wait lock. Acquisition never deschedules;
// the critical sections it guards are a handful of instructions.
type spinLock struct {
	held atomic.Bool
}

func (l *spinLock) lock() {
	for l.held.Swap(true) {
	}
}

func (l *spinLock) unlock() {
	l.held.Store(false)
}

type twoLockNode[T any] struct {
	value T
	next  atomic.Pointer[twoLockNode[T]]
}

// TwoLockQueue is a linked FIFO queue with separate producer and consumer
// spin locks.
//
// A standing divider sentinel separates consumed from unconsumed nodes:
// first == divider == last when the queue is empty. The producer side owns
// first and last, and opportunistically unlinks everything strictly before
// the divider while it holds the producer lock; the consumer side owns
// advancing the divider. The divider is the only pointer shared between the
// two roles: the consumer advances it, the producer only reads it to learn
// how far back it may reclaim.
//
// Capacity is advisory: the pre-check reads the counter outside any lock,
// so concurrent producers can overshoot it. See the package comment.
type TwoLockQueue[T any] struct {
	first        *twoLockNode[T] // producer-owned
	last         *twoLockNode[T] // producer-owned
	divider      atomic.Pointer[twoLockNode[T]]
	producerLock spinLock
	consumerLock spinLock
	count        atomic.Int64
	capacity     int64
}

// NewTwoLock creates a TwoLockQueue with the specified advisory capacity.
// capacity <= 0 means unbounded.
func NewTwoLock[T any](capacity int) *TwoLockQueue[T] {
	q := &TwoLockQueue[T]{capacity: int64(capacity)}
	sentinel := &twoLockNode[T]{}
	q.first = sentinel
	q.last = sentinel
	q.divider.Store(sentinel)
	return q
}

// Push adds an item at the tail.
// Returns false if the advisory counter has reached capacity.
func (q *TwoLockQueue[T]) Push(v T) bool {
	// Soft limit: checked outside the critical section.
	if q.capacity > 0 && q.count.Load() >= q.capacity {
		return false
	}
	n := &twoLockNode[T]{value: v}

	q.producerLock.lock()
	q.last.next.Store(n)
	q.last = n

	// Reclaim consumed nodes strictly before the divider. Safe here: the
	// consumer never reads before the divider, and the producer lock keeps
	// other producers out.
	div := q.divider.Load()
	for q.first != div {
		consumed := q.first
		q.first = consumed.next.Load()
		var zero T
		consumed.value = zero
		consumed.next.Store(nil)
	}
	q.producerLock.unlock()

	q.count.Add(1)
	return true
}

// Pop removes and returns the item after the divider.
// Returns false if the queue is empty from the consumer's view.
func (q *TwoLockQueue[T]) Pop() (T, bool) {
	var zero T

	q.consumerLock.lock()
	n := q.divider.Load().next.Load()
	if n == nil {
		q.consumerLock.unlock()
		return zero, false
	}
	v := n.value
	q.divider.Store(n)
	q.consumerLock.unlock()

	q.count.Add(-1)
	return v, true
}

// Reinit unlinks every node and restores the empty single-sentinel state.
// Single-writer only.
func (q *TwoLockQueue[T]) Reinit() {
	for n := q.first; n != nil; {
		next := n.next.Load()
		n.next.Store(nil)
		n = next
	}
	sentinel := &twoLockNode[T]{}
	q.first = sentinel
	q.last = sentinel
	q.divider.Store(sentinel)
	q.count.Store(0)
	q.producerLock.held.Store(false)
	q.consumerLock.held.Store(false)
}

// Len returns the advisory counter value. Best-effort under concurrency.
func (q *TwoLockQueue[T]) Len() int {
	return int(q.count.Load())
}

// Cap returns the advisory capacity, or 0 if unbounded.
func (q *TwoLockQueue[T]) Cap() int {
	return int(q.capacity)
}
