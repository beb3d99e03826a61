// Package queue provides MPMC queue implementations for benchmarking.
//
// This package offers three implementations of the Queue interface:
//   - ChannelQueue: Standard library approach using buffered channels
//   - TwoLockQueue: Linked queue with separate producer and consumer
//     spin locks, so enqueue and dequeue never contend with each other
//   - BoundedQueue: Lock-free bounded queue over a fixed array of
//     sequence-numbered cells, with no allocation on the hot path
//
// All three are safe for any number of concurrent producers and consumers.
// TwoLockQueue serializes producers against producers and consumers against
// consumers on their role lock; the other two are lock-free.
//
// # Capacity semantics (IMPORTANT)
//
// BoundedQueue and ChannelQueue enforce their capacity exactly.
// TwoLockQueue checks an advisory counter outside its locks: concurrent
// producers can overshoot the advertised capacity, and a producer near the
// boundary can be spuriously rejected. This race is kept deliberately so the
// synchronization strategies can be compared on equal terms; treat the
// two-lock capacity as a soft limit.
package queue

// Queue is a multi-producer multi-consumer FIFO queue.
//
// Implementations are non-blocking: Push returns false if full,
// Pop returns false if empty.
type Queue[T any] interface {
	// Push adds an item to the queue.
	// Returns false if the queue is full.
	Push(T) bool

	// Pop removes and returns an item from the queue.
	// Returns false if the queue is empty.
	Pop() (T, bool)

	// Reinit drains the queue back to its freshly constructed state.
	// Not safe to call concurrently with Push or Pop.
	Reinit()
}
