package qreg

import (
	"fmt"
	"runtime"
	"sync"
)

/*
Governor guards register allocation against the configured resource limits.
Like a power governor on an engine, it refuses a workload up front rather than
letting the process fall over halfway through a 2^n allocation.

It checks two limits:
  - MaxQubits, which also bounds the index arithmetic
  - MaxMemoryBytes, the size of the amplitude vector in bytes (negative disables it)
*/
type Governor struct {
	mu sync.RWMutex

	maxQubits      int
	maxMemoryBytes int64

	// Last observed heap usage, refreshed by Observe.
	heapInUse uint64
}

func NewGovernor(config *Config) *Governor {
	config = configOrDefault(config)
	return &Governor{
		maxQubits:      config.MaxQubits,
		maxMemoryBytes: config.MaxMemoryBytes,
	}
}

// AmplitudeBytes is the size of the amplitude vector for qubits qubits.
func AmplitudeBytes(qubits int) int64 {
	return int64(amplitudeBytes) << uint(qubits)
}

/*
Admit reports whether a register of the given width may be allocated.
The returned error wraps ErrInvalidQubitCount, ErrTooManyQubits or ErrMemoryBudget.
*/
func (g *Governor) Admit(qubits int) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if qubits < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQubitCount, qubits)
	}

	if limit := min(g.maxQubits, hardQubitLimit); qubits > limit {
		return fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyQubits, qubits, limit)
	}

	if need := AmplitudeBytes(qubits); g.maxMemoryBytes > 0 && need > g.maxMemoryBytes {
		return fmt.Errorf(
			"%w: %d qubits need %d bytes, budget is %d",
			ErrMemoryBudget, qubits, need, g.maxMemoryBytes,
		)
	}

	return nil
}

// Observe refreshes the heap usage snapshot and returns it.
func (g *Governor) Observe() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	g.mu.Lock()
	defer g.mu.Unlock()

	g.heapInUse = stats.HeapInuse
	return g.heapInUse
}

// HeapInUse returns the heap usage recorded by the last Observe call.
func (g *Governor) HeapInUse() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.heapInUse
}
