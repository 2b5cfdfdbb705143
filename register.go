// Package qreg simulates a small quantum register as a dense vector of complex amplitudes.
package qreg

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/errnie"
)

/*
StateRegister holds the full state of an n-qubit register as a dense vector of
2^n complex amplitudes. Bit b of an index is the value of qubit b in that basis
state, so index 0 is |0...0⟩ and index 1 has only qubit 0 set.

Every gate is unitary, so the squared magnitudes keep summing to 1 after each
completed call. Calls that address an invalid qubit return an error and leave
the amplitudes exactly as they were.

A register serializes its own callers: gates take the write lock and
queries take the read lock.
*/
type StateRegister struct {
	mu sync.RWMutex

	qubits     int
	amplitudes []complex128

	sweep   *sweeper
	metrics *Metrics
}

/*
NewStateRegister allocates a register of qubits qubits in the all-zero basis
state. A nil config uses NewConfig. Widths beyond config.MaxQubits or whose
amplitude vector exceeds config.MaxMemoryBytes are rejected before allocating.
*/
func NewStateRegister(qubits int, config *Config) (*StateRegister, error) {
	config = configOrDefault(config)

	governor := NewGovernor(config)
	if err := governor.Admit(qubits); err != nil {
		return nil, fmt.Errorf("creating register: %w", err)
	}

	amplitudes := make([]complex128, 1<<uint(qubits))
	amplitudes[0] = complex(1, 0)

	errnie.Info(
		"NewStateRegister - qubits %d, amplitudes %d, bytes %d, heap %d",
		qubits,
		len(amplitudes),
		AmplitudeBytes(qubits),
		governor.Observe(),
	)

	return &StateRegister{
		qubits:     qubits,
		amplitudes: amplitudes,
		sweep:      newSweeper(config),
		metrics:    NewMetrics(),
	}, nil
}

// QubitCount returns the register width fixed at construction.
func (reg *StateRegister) QubitCount() int {
	return reg.qubits
}

// Size is the number of basis states, 2^QubitCount.
func (reg *StateRegister) Size() int {
	return len(reg.amplitudes)
}

// Metrics returns the live metrics of this register.
func (reg *StateRegister) Metrics() *Metrics {
	return reg.metrics
}

// Amplitudes returns a copy of the amplitude vector.
func (reg *StateRegister) Amplitudes() []complex128 {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]complex128, len(reg.amplitudes))
	copy(out, reg.amplitudes)
	return out
}

// Amplitude returns the amplitude of basis state index.
func (reg *StateRegister) Amplitude(index int) (complex128, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	if index < 0 || index >= len(reg.amplitudes) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrBasisOutOfRange, index, len(reg.amplitudes))
	}
	return reg.amplitudes[index], nil
}

// ApplyBitFlip applies the Pauli-X gate to target.
func (reg *StateRegister) ApplyBitFlip(target int) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if err := reg.checkQubit(target); err != nil {
		return reg.reject(err)
	}

	startTime := time.Now()
	bit := 1 << uint(target)
	amps := reg.amplitudes

	parallel := reg.sweep.run(reg.qubits, len(amps)/2, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			i := insertZero(k, target)
			j := i | bit
			amps[i], amps[j] = amps[j], amps[i]
		}
	})

	reg.metrics.recordGate(BitFlip, startTime, parallel)
	return nil
}

/*
ApplyHadamard applies H = [[1, 1], [1, -1]] / √2 to target. Each pair (a, b)
becomes ((a+b)/√2, (a-b)/√2), with the scale applied to both the real and
imaginary parts.
*/
func (reg *StateRegister) ApplyHadamard(target int) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if err := reg.checkQubit(target); err != nil {
		return reg.reject(err)
	}

	startTime := time.Now()
	bit := 1 << uint(target)
	amps := reg.amplitudes

	parallel := reg.sweep.run(reg.qubits, len(amps)/2, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			i := insertZero(k, target)
			j := i | bit
			a, b := amps[i], amps[j]
			amps[i] = scale(a+b, math.Sqrt2/2)
			amps[j] = scale(a-b, math.Sqrt2/2)
		}
	})

	reg.metrics.recordGate(Hadamard, startTime, parallel)
	return nil
}

/*
ApplyControlledNot flips target in every basis state where control is 1.
Only the quarter of the index space with control=1, target=0 is walked, and
each of those indices is swapped with its target=1 partner.
*/
func (reg *StateRegister) ApplyControlledNot(control, target int) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if err := reg.checkQubit(control); err != nil {
		return reg.reject(fmt.Errorf("control: %w", err))
	}
	if err := reg.checkQubit(target); err != nil {
		return reg.reject(fmt.Errorf("target: %w", err))
	}
	if control == target {
		return reg.reject(fmt.Errorf("%w: %d", ErrControlEqualsTarget, control))
	}

	startTime := time.Now()
	controlBit := 1 << uint(control)
	targetBit := 1 << uint(target)
	low, high := min(control, target), max(control, target)
	amps := reg.amplitudes

	parallel := reg.sweep.run(reg.qubits, len(amps)/4, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			i := insertZero(insertZero(k, low), high) | controlBit
			j := i | targetBit
			amps[i], amps[j] = amps[j], amps[i]
		}
	})

	reg.metrics.recordGate(ControlledNot, startTime, parallel)
	return nil
}

/*
MeasurementProbability returns the probability that measuring target yields 1:
the sum of |amplitude|^2 over every basis state with that bit set. It does not
change the state. The result is clamped to [0, 1] against rounding.
*/
func (reg *StateRegister) MeasurementProbability(target int) (float64, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	if err := reg.checkQubit(target); err != nil {
		return 0, reg.reject(err)
	}

	startTime := time.Now()
	bit := 1 << uint(target)
	amps := reg.amplitudes

	p, parallel := reg.sweep.reduce(reg.qubits, len(amps)/2, func(lo, hi int) float64 {
		var sum float64
		for k := lo; k < hi; k++ {
			sum += norm(amps[insertZero(k, target)|bit])
		}
		return sum
	})

	reg.metrics.recordProbability(startTime, parallel)
	return math.Min(1, math.Max(0, p)), nil
}

// TotalProbability sums |amplitude|^2 over the whole vector; 1 for a valid state.
func (reg *StateRegister) TotalProbability() float64 {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	amps := reg.amplitudes
	total, _ := reg.sweep.reduce(reg.qubits, len(amps), func(lo, hi int) float64 {
		var sum float64
		for _, a := range amps[lo:hi] {
			sum += norm(a)
		}
		return sum
	})

	return total
}

// Clone returns an independent register with the same state and settings.
func (reg *StateRegister) Clone() *StateRegister {
	return &StateRegister{
		qubits:     reg.qubits,
		amplitudes: reg.Amplitudes(),
		sweep:      reg.sweep,
		metrics:    NewMetrics(),
	}
}

// Equal reports whether both registers have the same width and identical amplitudes.
func (reg *StateRegister) Equal(other *StateRegister) bool {
	if reg == other {
		return true
	}
	if other == nil || reg.qubits != other.qubits {
		return false
	}

	theirs := other.Amplitudes()

	reg.mu.RLock()
	defer reg.mu.RUnlock()

	for i, a := range reg.amplitudes {
		if a != theirs[i] {
			return false
		}
	}
	return true
}

func (reg *StateRegister) String() string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "StateRegister{qubits: %d, amplitudes: [", reg.qubits)
	for i, a := range reg.amplitudes {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%g", a)
	}
	sb.WriteString("]}")
	return sb.String()
}

func (reg *StateRegister) checkQubit(qubit int) error {
	if qubit < 0 || qubit >= reg.qubits {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrQubitOutOfRange, qubit, reg.qubits)
	}
	return nil
}

func (reg *StateRegister) reject(err error) error {
	log.Warn("register call rejected", "qubits", reg.qubits, "err", err)
	reg.metrics.recordRejection(err)
	return err
}

func scale(c complex128, f float64) complex128 {
	return complex(real(c)*f, imag(c)*f)
}

// norm is |c|^2 without the square root cmplx.Abs would take.
func norm(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}
