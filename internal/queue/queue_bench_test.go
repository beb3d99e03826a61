package queue_test

import (
	"testing"

	"github.com/randomizedcoder/some-container-benchmarks/internal/queue"
)

// Sink variables to prevent compiler from eliminating benchmark loops
var sinkInt int
var sinkBool bool

// Direct type benchmarks (true performance floor)

func BenchmarkQueue_Channel_PushPop_Direct(b *testing.B) {
	q := queue.NewChannel[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_TwoLock_PushPop_Direct(b *testing.B) {
	q := queue.NewTwoLock[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_Bounded_PushPop_Direct(b *testing.B) {
	q := queue.NewBounded[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

// Interface benchmarks (with dynamic dispatch overhead)

func BenchmarkQueue_Channel_PushPop_Interface(b *testing.B) {
	var q queue.Queue[int] = queue.NewChannel[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_TwoLock_PushPop_Interface(b *testing.B) {
	var q queue.Queue[int] = queue.NewTwoLock[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_Bounded_PushPop_Interface(b *testing.B) {
	var q queue.Queue[int] = queue.NewBounded[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

// Contended benchmarks: all parallel workers push then pop.

func BenchmarkQueue_Channel_PushPop_Parallel(b *testing.B) {
	q := queue.NewChannel[int](1024)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			q.Push(i)
			q.Pop()
			i++
		}
	})
}

func BenchmarkQueue_TwoLock_PushPop_Parallel(b *testing.B) {
	q := queue.NewTwoLock[int](0)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			q.Push(i)
			q.Pop()
			i++
		}
	})
}

func BenchmarkQueue_Bounded_PushPop_Parallel(b *testing.B) {
	q := queue.NewBounded[int](1024)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			q.Push(i)
			q.Pop()
			i++
		}
	})
}

// Different queue sizes

func BenchmarkQueue_Bounded_PushPop_Size64(b *testing.B) {
	q := queue.NewBounded[int](64)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, _ = q.Pop()
	}
	sinkInt = val
}

func BenchmarkQueue_TwoLock_PushPop_Size64(b *testing.B) {
	q := queue.NewTwoLock[int](64)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, _ = q.Pop()
	}
	sinkInt = val
}
