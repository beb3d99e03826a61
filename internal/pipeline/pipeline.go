// Package pipeline runs multi-producer/multi-consumer task pipelines over
// interchangeable containers and measures their throughput.
//
// The containers speak a four-operation contract (construct, Push, Pop,
// Reinit) and nothing more. Everything else in the benchmark protocol lives
// here: producers push disjoint ranges of task values with
// retry-until-success, a single out-of-band sentinel value is pushed after
// every producer has finished, and each consumer that dequeues the sentinel
// drains any task still stored beneath it before relaying it, so no value is
// stranded on a LIFO container and every other consumer eventually observes
// the sentinel too. The relay can only be relied on if the container has
// spare capacity at shutdown time; Run arranges that by pushing the sentinel
// only after the producers have stopped.
package pipeline

import (
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/some-container-benchmarks/internal/monotime"
)

// Container is the contract the pipeline consumes. Both the stack and the
// queue implementations in this module satisfy it.
type Container[T any] interface {
	Push(T) bool
	Pop() (T, bool)
	Reinit()
}

// ErrHalted is returned when a trial was stopped by its Halter before the
// shutdown protocol completed.
var ErrHalted = errors.New("pipeline: halted")

// DefaultSentinel is the out-of-band value that marks end-of-stream.
const DefaultSentinel = -1

// Config describes one pipeline trial.
type Config struct {
	// Producers is the number of producer goroutines. Default 1.
	Producers int

	// Consumers is the number of consumer goroutines. Default 1.
	Consumers int

	// Tasks is the number of values each producer pushes. Producer p pushes
	// the range [p*Tasks, (p+1)*Tasks).
	Tasks int

	// ProduceDelay is slept after each successful push, simulating the cost
	// of producing a task. Zero means no delay.
	ProduceDelay time.Duration

	// ConsumeDelay is slept after each consumed task. Zero means no delay.
	ConsumeDelay time.Duration

	// Sentinel is the end-of-stream value. It must be outside every
	// producer's task range. Zero value selects DefaultSentinel.
	Sentinel int

	// Halt aborts retry loops when triggered. Optional.
	Halt Halter
}

func (c Config) withDefaults() Config {
	if c.Producers < 1 {
		c.Producers = 1
	}
	if c.Consumers < 1 {
		c.Consumers = 1
	}
	if c.Sentinel == 0 {
		c.Sentinel = DefaultSentinel
	}
	if c.Halt == nil {
		c.Halt = NewHalt()
	}
	return c
}

// Result reports what one trial did.
type Result struct {
	// Duration is the wall-clock time from the first push attempt until the
	// last consumer terminated.
	Duration time.Duration

	// Produced and Consumed count non-sentinel values.
	Produced int64
	Consumed int64

	// Sum is the sum of all consumed values, for loss/duplication checks
	// against the known sum of the produced ranges.
	Sum int64

	// PushRetries counts failed pushes (full container); PopMisses counts
	// failed pops (empty container).
	PushRetries int64
	PopMisses   int64
}

// ExpectedSum returns the sum of every value the configured producers push,
// for verifying Result.Sum.
func (c Config) ExpectedSum() int64 {
	cfg := c.withDefaults()
	total := int64(cfg.Producers * cfg.Tasks)
	// Producer ranges are contiguous: 0..Producers*Tasks-1.
	return total * (total - 1) / 2
}

// Run executes one trial of the task pipeline over c.
//
// Run returns ErrHalted if the Halter fired before shutdown completed. The
// container is left holding only the sentinel; call Reinit before reusing
// it for another trial.
func Run(cfg Config, c Container[int]) (Result, error) {
	cfg = cfg.withDefaults()
	halt := cfg.Halt

	var produced, consumed, sum, pushRetries, popMisses atomic.Int64

	sw := monotime.Start()

	var producers errgroup.Group
	for p := 0; p < cfg.Producers; p++ {
		base := p * cfg.Tasks
		producers.Go(func() error {
			for i := 0; i < cfg.Tasks; i++ {
				v := base + i
				for !c.Push(v) {
					if halt.Halted() {
						return ErrHalted
					}
					pushRetries.Add(1)
					runtime.Gosched()
				}
				produced.Add(1)
				if cfg.ProduceDelay > 0 {
					time.Sleep(cfg.ProduceDelay)
				}
			}
			return nil
		})
	}

	var consumers errgroup.Group
	for i := 0; i < cfg.Consumers; i++ {
		consumers.Go(func() error {
			for {
				v, ok := c.Pop()
				if !ok {
					if halt.Halted() {
						return ErrHalted
					}
					popMisses.Add(1)
					runtime.Gosched()
					continue
				}
				if v == cfg.Sentinel {
					// Producers are finished once the sentinel exists, so
					// anything still stored is a stranded task. On a LIFO
					// the sentinel surfaces above undrained tasks; take one
					// of them before relaying, and only terminate once the
					// container is empty under the sentinel.
					w, ok := c.Pop()
					for !c.Push(cfg.Sentinel) {
						if halt.Halted() {
							return ErrHalted
						}
						runtime.Gosched()
					}
					if !ok {
						return nil
					}
					consumed.Add(1)
					sum.Add(int64(w))
					if cfg.ConsumeDelay > 0 {
						time.Sleep(cfg.ConsumeDelay)
					}
					continue
				}
				consumed.Add(1)
				sum.Add(int64(v))
				if cfg.ConsumeDelay > 0 {
					time.Sleep(cfg.ConsumeDelay)
				}
			}
		})
	}

	err := producers.Wait()
	if err == nil {
		for !c.Push(cfg.Sentinel) {
			if halt.Halted() {
				err = ErrHalted
				break
			}
			runtime.Gosched()
		}
	}
	if err != nil {
		// Release consumers spinning on an empty container.
		halt.Trigger()
	}

	cerr := consumers.Wait()

	res := Result{
		Duration:    sw.Elapsed(),
		Produced:    produced.Load(),
		Consumed:    consumed.Load(),
		Sum:         sum.Load(),
		PushRetries: pushRetries.Load(),
		PopMisses:   popMisses.Load(),
	}
	return res, errors.Join(err, cerr)
}
