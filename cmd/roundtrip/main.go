// Command roundtrip benchmarks single-threaded push+pop round trips across
// every container implementation.
//
// Usage:
//
//	go run ./cmd/roundtrip -n 10000000 -capacity 1024
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/randomizedcoder/some-container-benchmarks/internal/queue"
	"github.com/randomizedcoder/some-container-benchmarks/internal/stack"
)

type container interface {
	Push(int) bool
	Pop() (int, bool)
	Reinit()
}

type containerInfo struct {
	name   string
	create func(capacity int) container
}

func main() {
	iterations := flag.Int("n", 10_000_000, "number of iterations")
	capacity := flag.Int("capacity", 1024, "container capacity")
	flag.Parse()

	fmt.Printf("Benchmarking push+pop round trip (%d iterations, capacity=%d)\n",
		*iterations, *capacity)
	fmt.Println("─────────────────────────────────────────────────")

	infos := []containerInfo{
		{"HazardStack", func(c int) container { return stack.NewHazardStack[int](c) }},
		{"RefCountStack", func(c int) container { return stack.NewRefCountStack[int](c) }},
		{"TwoLockQueue", func(c int) container { return queue.NewTwoLock[int](c) }},
		{"BoundedQueue", func(c int) container { return queue.NewBounded[int](c) }},
		{"ChannelQueue", func(c int) container { return queue.NewChannel[int](c) }},
	}

	results := make([]time.Duration, len(infos))
	for i, info := range infos {
		c := info.create(*capacity)
		start := time.Now()
		for j := 0; j < *iterations; j++ {
			c.Push(j)
			c.Pop()
		}
		results[i] = time.Since(start)
	}

	fmt.Printf("\nResults (push + pop per iteration):\n")
	fastest := 0
	for i, info := range infos {
		perOp := float64(results[i].Nanoseconds()) / float64(*iterations)
		fmt.Printf("  %-14s %v (%.2f ns/op)\n", info.name+":", results[i], perOp)
		if results[i] < results[fastest] {
			fastest = i
		}
	}

	fmt.Printf("\nFastest: %s\n", infos[fastest].name)

	fmt.Printf("\nThroughput (theoretical max):\n")
	for i, info := range infos {
		perOp := float64(results[i].Nanoseconds()) / float64(*iterations)
		fmt.Printf("  %-14s %.2f M ops/sec\n", info.name+":", 1000/perOp)
	}
}
