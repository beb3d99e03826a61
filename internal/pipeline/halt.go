package pipeline

import (
	"context"
	"sync/atomic"
)

// Halter stops retry loops. The containers themselves never cancel: a
// caller that wants to stop retrying a failed bounded push has to do so
// itself, and Halter is that mechanism.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Halted() concurrently
//   - Trigger() may be called concurrently with Halted()
type Halter interface {
	// Halted returns true once a halt has been triggered.
	Halted() bool

	// Trigger requests a halt. Safe to call multiple times.
	Trigger()
}

// Halt signals a halt through an atomic.Bool.
//
// This is the polling-hot-loop implementation: Halted() is a single atomic
// load, cheap enough to check on every failed push or pop retry.
type Halt struct {
	halted atomic.Bool
}

// NewHalt creates a new Halt.
func NewHalt() *Halt {
	return &Halt{}
}

// Halted returns true once a halt has been triggered.
func (h *Halt) Halted() bool {
	return h.halted.Load()
}

// Trigger requests a halt. Subsequent calls are no-ops.
func (h *Halt) Trigger() {
	h.halted.Store(true)
}

// Reset clears the halt flag so the Halt can be reused between trials.
// Not safe to call concurrently with Halted or Trigger.
func (h *Halt) Reset() {
	h.halted.Store(false)
}

// ContextHalt adapts a context.Context to the Halter interface, so a trial
// can be halted by signal delivery or a deadline on the surrounding context.
type ContextHalt struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContextHalt derives a ContextHalt from a parent context.
func NewContextHalt(parent context.Context) *ContextHalt {
	ctx, cancel := context.WithCancel(parent)
	return &ContextHalt{ctx: ctx, cancel: cancel}
}

// Halted returns true once the context is done.
func (h *ContextHalt) Halted() bool {
	select {
	case <-h.ctx.Done():
		return true
	default:
		return false
	}
}

// Trigger cancels the underlying context.
func (h *ContextHalt) Trigger() {
	h.cancel()
}

// Context returns the underlying context.Context.
func (h *ContextHalt) Context() context.Context {
	return h.ctx
}
