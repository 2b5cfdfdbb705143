package qreg

import (
	"sync"
	"time"
)

/*
Metrics tracks what a register has done. All counters sit behind mu and are
read through the getters, so a Metrics may be read while its register works.
*/
type Metrics struct {
	mu sync.RWMutex

	gateCounts        map[GateKind]int64
	rejections        int64
	probabilityReads  int64
	parallelSweeps    int64
	inlineSweeps      int64
	totalSweepTime    time.Duration
	sweepCount        int64
	averageSweepTime  time.Duration
	lastRejectedError error
}

func NewMetrics() *Metrics {
	return &Metrics{
		gateCounts: make(map[GateKind]int64),
	}
}

func (m *Metrics) recordGate(kind GateKind, startTime time.Time, parallel bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gateCounts[kind]++
	m.recordSweep(time.Since(startTime), parallel)
}

func (m *Metrics) recordProbability(startTime time.Time, parallel bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.probabilityReads++
	m.recordSweep(time.Since(startTime), parallel)
}

func (m *Metrics) recordRejection(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rejections++
	m.lastRejectedError = err
}

// recordSweep expects m.mu to be held.
func (m *Metrics) recordSweep(duration time.Duration, parallel bool) {
	if parallel {
		m.parallelSweeps++
	} else {
		m.inlineSweeps++
	}

	m.totalSweepTime += duration
	m.sweepCount++
	m.averageSweepTime = m.totalSweepTime / time.Duration(m.sweepCount)
}

// GateCount returns how many gates of kind were applied successfully.
func (m *Metrics) GateCount(kind GateKind) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gateCounts[kind]
}

// Rejections counts calls refused for invalid qubits or gate kinds.
func (m *Metrics) Rejections() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rejections
}

func (m *Metrics) LastRejectedError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRejectedError
}

func (m *Metrics) ProbabilityReads() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.probabilityReads
}

// SweepCount counts completed sweeps, gates and probability reads alike.
func (m *Metrics) SweepCount() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sweepCount
}

func (m *Metrics) ParallelSweeps() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parallelSweeps
}

func (m *Metrics) InlineSweeps() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.inlineSweeps
}

func (m *Metrics) AverageSweepTime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.averageSweepTime
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"bit_flips":         m.gateCounts[BitFlip],
		"hadamards":         m.gateCounts[Hadamard],
		"controlled_nots":   m.gateCounts[ControlledNot],
		"rejections":        m.rejections,
		"probability_reads": m.probabilityReads,
		"parallel_sweeps":   m.parallelSweeps,
		"inline_sweeps":     m.inlineSweeps,
		"avg_sweep_us":      m.averageSweepTime.Microseconds(),
	}
}
