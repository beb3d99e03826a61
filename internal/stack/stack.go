// Package stack provides MPMC LIFO container implementations for benchmarking.
//
// This package offers two implementations of the Stack interface:
//   - HazardStack: lock-free Treiber stack with hazard-pointer reclamation
//   - RefCountStack: lock-free stack with split (external/internal)
//     reference counting over a fixed node arena
//
// Both solve the same problem, safe concurrent push/pop, with different
// answers to the central question of lock-free programming: when is it safe
// to reclaim a node that another goroutine might still be dereferencing?
//
// All operations are safe for any number of concurrent producers and
// consumers. Reinit is the one exception: it is a single-writer maintenance
// operation and must only be called after all workers have joined.
package stack

// Stack is a multi-producer multi-consumer LIFO container.
//
// Implementations are non-blocking: Push returns false if the container
// rejects the value, Pop returns false if the stack was observed empty at
// the moment ownership could not be secured.
type Stack[T any] interface {
	// Push adds a value to the top of the stack.
	Push(T) bool

	// Pop removes and returns the most recently pushed value.
	// Returns false if the stack is empty.
	Pop() (T, bool)

	// Reinit drains the stack back to its freshly constructed state.
	// Not safe to call concurrently with Push or Pop.
	Reinit()
}
