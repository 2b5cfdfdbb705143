package qreg

import "errors"

var (
	// ErrInvalidQubitCount is returned when a register is requested with a negative qubit count.
	ErrInvalidQubitCount = errors.New("invalid qubit count")

	// ErrTooManyQubits is returned when the amplitude vector would not fit the index arithmetic
	// or exceeds Config.MaxQubits.
	ErrTooManyQubits = errors.New("too many qubits")

	// ErrMemoryBudget is returned when the amplitude vector would exceed Config.MaxMemoryBytes.
	ErrMemoryBudget = errors.New("amplitude vector exceeds memory budget")

	// ErrQubitOutOfRange is returned by gates and queries addressing a qubit outside [0, n).
	ErrQubitOutOfRange = errors.New("qubit out of range")

	// ErrBasisOutOfRange is returned when reading an amplitude index outside [0, 2^n).
	ErrBasisOutOfRange = errors.New("basis state out of range")

	// ErrControlEqualsTarget is returned by a controlled gate whose control and target coincide.
	ErrControlEqualsTarget = errors.New("control qubit equals target qubit")

	// ErrMalformedGate is returned by ParseGate for tokens it cannot read.
	ErrMalformedGate = errors.New("malformed gate")

	// ErrUnknownGate is returned when applying a Gate with an unrecognized kind.
	ErrUnknownGate = errors.New("unknown gate kind")
)
