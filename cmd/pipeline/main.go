// Command pipeline runs the multi-producer/multi-consumer task pipeline
// over one container implementation, sweeping the consumer count and
// printing wall-clock duration per trial.
//
// Output format is one row per trial: "<consumers> <milliseconds>".
//
// Usage:
//
//	go run ./cmd/pipeline -structure bounded -tasks 100 -consumers-start 10 -consumers-end 25
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/randomizedcoder/some-container-benchmarks/internal/hazard"
	"github.com/randomizedcoder/some-container-benchmarks/internal/pipeline"
	"github.com/randomizedcoder/some-container-benchmarks/internal/queue"
	"github.com/randomizedcoder/some-container-benchmarks/internal/stack"
)

func newContainer(structure string, capacity int) (pipeline.Container[int], error) {
	switch structure {
	case "hazard":
		return stack.NewHazardStackWith[int](capacity, hazard.Default), nil
	case "refcount":
		return stack.NewRefCountStack[int](capacity), nil
	case "twolock":
		return queue.NewTwoLock[int](capacity), nil
	case "bounded":
		return queue.NewBounded[int](capacity), nil
	case "channel":
		return queue.NewChannel[int](capacity), nil
	default:
		return nil, fmt.Errorf("unknown structure %q (want hazard|refcount|twolock|bounded|channel)", structure)
	}
}

func main() {
	structure := flag.String("structure", "bounded", "container: hazard|refcount|twolock|bounded|channel")
	capacity := flag.Int("capacity", 128, "container capacity")
	tasks := flag.Int("tasks", 100, "tasks per producer")
	producers := flag.Int("producers", 1, "producer goroutines")
	consStart := flag.Int("consumers-start", 10, "first consumer count in the sweep")
	consEnd := flag.Int("consumers-end", 25, "consumer count the sweep stops before")
	produceMS := flag.Int("produce-ms", 10, "milliseconds to produce one task")
	consumeMS := flag.Int("consume-ms", 100, "milliseconds to consume one task")
	niceness := flag.Int("nice", 0, "priority adjustment for the whole process (no-op where unsupported)")
	flag.Parse()

	if *niceness != 0 {
		setNice(*niceness)
	}

	c, err := newContainer(*structure, *capacity)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Ctrl-C aborts the retry loops instead of leaving workers spinning.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	halt := pipeline.NewContextHalt(ctx)

	fmt.Printf("Pipeline over %s (capacity=%d, %d producers x %d tasks, produce=%dms consume=%dms)\n",
		*structure, *capacity, *producers, *tasks, *produceMS, *consumeMS)
	fmt.Println("─────────────────────────────────────────────────")

	for nthr := *consStart; nthr < *consEnd; nthr++ {
		res, err := pipeline.Run(pipeline.Config{
			Producers:    *producers,
			Consumers:    nthr,
			Tasks:        *tasks,
			ProduceDelay: time.Duration(*produceMS) * time.Millisecond,
			ConsumeDelay: time.Duration(*consumeMS) * time.Millisecond,
			Halt:         halt,
		}, c)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Workers have joined; safe to reset for the next trial.
		c.Reinit()

		fmt.Printf("%d %d\n", nthr, res.Duration.Milliseconds())
	}
}
