package stack_test

import (
	"testing"

	"github.com/randomizedcoder/some-container-benchmarks/internal/hazard"
	"github.com/randomizedcoder/some-container-benchmarks/internal/stack"
)

func testStack[T comparable](t *testing.T, s stack.Stack[T], val T, name string) {
	t.Helper()

	// Empty stack returns false
	if _, ok := s.Pop(); ok {
		t.Errorf("%s: expected Pop() = false on empty stack", name)
	}

	// Push succeeds
	if !s.Push(val) {
		t.Errorf("%s: expected Push() = true", name)
	}

	// Pop returns pushed value
	got, ok := s.Pop()
	if !ok {
		t.Errorf("%s: expected Pop() = true after Push()", name)
	}
	if got != val {
		t.Errorf("%s: expected %v, got %v", name, val, got)
	}

	// Stack is empty again
	if _, ok := s.Pop(); ok {
		t.Errorf("%s: expected Pop() = false after draining", name)
	}
}

func TestHazardStack(t *testing.T) {
	s := stack.NewHazardStack[int](128)
	testStack[int](t, s, 42, "HazardStack")
}

func TestRefCountStack(t *testing.T) {
	s := stack.NewRefCountStack[int](128)
	testStack[int](t, s, 42, "RefCountStack")
}

func TestHazardStack_LIFO(t *testing.T) {
	s := stack.NewHazardStack[int](128)

	for i := 1; i <= 5; i++ {
		if !s.Push(i) {
			t.Fatalf("expected Push(%d) = true", i)
		}
	}

	for i := 5; i >= 1; i-- {
		got, ok := s.Pop()
		if !ok {
			t.Fatalf("expected Pop() = true for item %d", i)
		}
		if got != i {
			t.Errorf("LIFO violation: expected %d, got %d", i, got)
		}
	}
}

func TestRefCountStack_LIFO(t *testing.T) {
	s := stack.NewRefCountStack[int](128)

	for i := 1; i <= 5; i++ {
		if !s.Push(i) {
			t.Fatalf("expected Push(%d) = true", i)
		}
	}

	for i := 5; i >= 1; i-- {
		got, ok := s.Pop()
		if !ok {
			t.Fatalf("expected Pop() = true for item %d", i)
		}
		if got != i {
			t.Errorf("LIFO violation: expected %d, got %d", i, got)
		}
	}
}

func TestRefCountStack_ArenaExhaustion(t *testing.T) {
	s := stack.NewRefCountStack[int](4)

	for i := 1; i <= 4; i++ {
		if !s.Push(i) {
			t.Fatalf("expected Push(%d) = true", i)
		}
	}
	if s.Push(5) {
		t.Error("expected Push(5) = false on full arena")
	}

	// Freeing one node permits exactly one further push.
	if _, ok := s.Pop(); !ok {
		t.Fatal("expected Pop() = true")
	}
	if !s.Push(5) {
		t.Error("expected Push(5) = true after one Pop()")
	}
	if s.Push(6) {
		t.Error("expected Push(6) = false on full arena")
	}
}

func TestHazardStack_Reinit(t *testing.T) {
	reg := hazard.NewRegistry(8)
	s := stack.NewHazardStackWith[int](128, reg)

	for i := 1; i <= 10; i++ {
		s.Push(i)
	}
	s.Reinit()

	if _, ok := s.Pop(); ok {
		t.Error("expected empty stack after Reinit()")
	}
	if s.Allocated() != s.Reclaimed() {
		t.Errorf("leak after Reinit(): allocated %d, reclaimed %d",
			s.Allocated(), s.Reclaimed())
	}
	if reg.Pending() != 0 {
		t.Errorf("expected empty deferred list after Reinit(), got %d", reg.Pending())
	}

	// Reusable after Reinit
	testStack[int](t, s, 7, "HazardStack")
}

func TestRefCountStack_Reinit(t *testing.T) {
	s := stack.NewRefCountStack[int](16)

	for i := 1; i <= 10; i++ {
		s.Push(i)
	}
	s.Reinit()

	if _, ok := s.Pop(); ok {
		t.Error("expected empty stack after Reinit()")
	}
	if s.Len() != 0 {
		t.Errorf("expected Len() = 0 after Reinit(), got %d", s.Len())
	}
	if s.Allocated() != s.Reclaimed() {
		t.Errorf("leak after Reinit(): allocated %d, reclaimed %d",
			s.Allocated(), s.Reclaimed())
	}

	// The whole arena must be reusable again.
	for i := 1; i <= 16; i++ {
		if !s.Push(i) {
			t.Fatalf("expected Push(%d) = true after Reinit()", i)
		}
	}
}

func TestRefCountStack_LenCap(t *testing.T) {
	s := stack.NewRefCountStack[int](8)

	if s.Len() != 0 {
		t.Errorf("expected Len() = 0, got %d", s.Len())
	}
	if s.Cap() != 8 {
		t.Errorf("expected Cap() = 8, got %d", s.Cap())
	}

	s.Push(1)
	s.Push(2)

	if s.Len() != 2 {
		t.Errorf("expected Len() = 2, got %d", s.Len())
	}
}

// Test that both implementations satisfy the interface
func TestStackInterface(t *testing.T) {
	testCases := []struct {
		name string
		s    stack.Stack[int]
	}{
		{"Hazard", stack.NewHazardStack[int](8)},
		{"RefCount", stack.NewRefCountStack[int](8)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testStack(t, tc.s, 42, tc.name)
		})
	}
}
