package pipeline_test

import (
	"sync/atomic"
	"testing"

	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/randomizedcoder/some-container-benchmarks/internal/queue"
)

// ============================================================================
// Comparison Benchmarks: Our MPMC structures vs go-lock-free-ring (MPSC)
// ============================================================================
//
// KEY DIFFERENCE:
// - BoundedQueue / TwoLockQueue: MPMC (any producers, any consumers)
// - go-lock-free-ring: MPSC (Multi-Producer, Single-Consumer) with sharding
//
// The sharded ring avoids producer contention by giving each producer its
// own shard; our structures pay for full MPMC generality on one array.

// MPSC: 4 producers → 1 consumer

func BenchmarkRing_MPSC_Bounded_4P(b *testing.B) {
	q := queue.NewBounded[int](1024)
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			default:
				q.Pop()
			}
		}
	}()

	b.SetParallelism(4)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			for !q.Push(i) {
			}
			i++
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}

func BenchmarkRing_MPSC_TwoLock_4P(b *testing.B) {
	q := queue.NewTwoLock[int](0)
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			default:
				q.Pop()
			}
		}
	}()

	b.SetParallelism(4)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			for !q.Push(i) {
			}
			i++
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}

func BenchmarkRing_MPSC_ShardedRing_4P_4S(b *testing.B) {
	r, _ := ring.NewShardedRing(1024, 4)
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			default:
				r.TryRead()
			}
		}
	}()

	var producerID atomic.Uint64
	b.SetParallelism(4)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		pid := producerID.Add(1) - 1
		i := 0
		for pb.Next() {
			for !r.Write(pid, i) {
			}
			i++
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}
