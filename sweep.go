package qreg

import (
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// minChunk keeps per-goroutine work large enough to pay for scheduling.
const minChunk = 1 << 12

/*
sweeper splits a gate's representative index range [0, size) into contiguous,
disjoint chunks and hands each to a worker. Every representative lands in
exactly one chunk, so each amplitude pair is still visited once.

Registers narrower than the parallel threshold run the whole range inline on
the calling goroutine.
*/
type sweeper struct {
	workers   int
	threshold int
}

func newSweeper(config *Config) *sweeper {
	return &sweeper{
		workers:   config.Workers,
		threshold: config.ParallelThreshold,
	}
}

type span struct {
	lo, hi int
}

// partition returns the chunks for a sweep over size representatives.
func (s *sweeper) partition(qubits, size int) []span {
	if size == 0 {
		return nil
	}

	if qubits < s.threshold || s.workers <= 1 || size <= minChunk {
		return []span{{0, size}}
	}

	chunk := (size + s.workers - 1) / s.workers
	if chunk < minChunk {
		chunk = minChunk
	}

	spans := make([]span, 0, (size+chunk-1)/chunk)
	for lo := 0; lo < size; lo += chunk {
		spans = append(spans, span{lo, min(lo+chunk, size)})
	}

	return spans
}

/*
run applies fn to every chunk and returns once all have finished.
It reports whether the sweep was split across goroutines.
*/
func (s *sweeper) run(qubits, size int, fn func(lo, hi int)) bool {
	return s.each(s.partition(qubits, size), func(_ int, sp span) {
		fn(sp.lo, sp.hi)
	})
}

/*
reduce sums fn over every chunk. Partials are kept per chunk and added in
chunk order, so the result does not depend on goroutine scheduling.
*/
func (s *sweeper) reduce(qubits, size int, fn func(lo, hi int) float64) (float64, bool) {
	spans := s.partition(qubits, size)
	partials := make([]float64, len(spans))

	parallel := s.each(spans, func(i int, sp span) {
		partials[i] = fn(sp.lo, sp.hi)
	})

	var total float64
	for _, p := range partials {
		total += p
	}

	return total, parallel
}

func (s *sweeper) each(spans []span, fn func(i int, sp span)) bool {
	if len(spans) <= 1 {
		for i, sp := range spans {
			fn(i, sp)
		}
		return false
	}

	log.Debug("sweep partitioned", "chunks", len(spans), "workers", s.workers)

	var group errgroup.Group
	group.SetLimit(s.workers)

	for i, sp := range spans {
		group.Go(func() error {
			fn(i, sp)
			return nil
		})
	}

	// fn never fails; Wait is only the barrier.
	_ = group.Wait()
	return true
}

// insertZero spreads k around a zero bit at position bit.
func insertZero(k, bit int) int {
	low := k & (1<<bit - 1)
	return (k>>bit)<<(bit+1) | low
}
