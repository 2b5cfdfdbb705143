package qreg

import (
	"fmt"
	"strconv"
	"strings"
)

// GateKind names one of the primitive gates the register supports.
type GateKind int

const (
	BitFlip GateKind = iota
	Hadamard
	ControlledNot
)

func (kind GateKind) String() string {
	switch kind {
	case BitFlip:
		return "X"
	case Hadamard:
		return "H"
	case ControlledNot:
		return "CNOT"
	default:
		return fmt.Sprintf("GateKind(%d)", int(kind))
	}
}

/*
Gate is a primitive gate together with the qubits it acts on.
Control is only meaningful for ControlledNot.
*/
type Gate struct {
	Kind    GateKind
	Target  int
	Control int
}

// X returns a bit flip on target.
func X(target int) Gate {
	return Gate{Kind: BitFlip, Target: target}
}

// H returns a Hadamard on target.
func H(target int) Gate {
	return Gate{Kind: Hadamard, Target: target}
}

// CNOT returns a controlled-NOT flipping target when control is 1.
func CNOT(control, target int) Gate {
	return Gate{Kind: ControlledNot, Target: target, Control: control}
}

func (gate Gate) String() string {
	if gate.Kind == ControlledNot {
		return fmt.Sprintf("%s(%d,%d)", gate.Kind, gate.Control, gate.Target)
	}
	return fmt.Sprintf("%s(%d)", gate.Kind, gate.Target)
}

/*
ParseGate reads the short form used on the command line: "x:T", "h:T" or
"cx:C,T", case-insensitive. Indices are forwarded unchanged; range checks
happen when the gate is applied.
*/
func ParseGate(token string) (Gate, error) {
	name, args, ok := strings.Cut(strings.TrimSpace(token), ":")
	if !ok {
		return Gate{}, fmt.Errorf("%w: %q", ErrMalformedGate, token)
	}

	qubits, err := parseQubits(args)
	if err != nil {
		return Gate{}, fmt.Errorf("%w: %q: %v", ErrMalformedGate, token, err)
	}

	switch strings.ToLower(name) {
	case "x":
		if len(qubits) == 1 {
			return X(qubits[0]), nil
		}
	case "h":
		if len(qubits) == 1 {
			return H(qubits[0]), nil
		}
	case "cx", "cnot":
		if len(qubits) == 2 {
			return CNOT(qubits[0], qubits[1]), nil
		}
	default:
		return Gate{}, fmt.Errorf("%w: %q", ErrUnknownGate, name)
	}

	return Gate{}, fmt.Errorf("%w: %q has the wrong number of qubits", ErrMalformedGate, token)
}

func parseQubits(args string) ([]int, error) {
	fields := strings.Split(args, ",")
	qubits := make([]int, 0, len(fields))

	for _, field := range fields {
		q, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		qubits = append(qubits, q)
	}

	return qubits, nil
}

/*
Apply runs gates in order. It stops at the first gate the register rejects;
gates before it stay applied and the rejected gate leaves the state untouched.
*/
func (reg *StateRegister) Apply(gates ...Gate) error {
	for i, gate := range gates {
		var err error

		switch gate.Kind {
		case BitFlip:
			err = reg.ApplyBitFlip(gate.Target)
		case Hadamard:
			err = reg.ApplyHadamard(gate.Target)
		case ControlledNot:
			err = reg.ApplyControlledNot(gate.Control, gate.Target)
		default:
			err = reg.reject(fmt.Errorf("%w: %s", ErrUnknownGate, gate.Kind))
		}

		if err != nil {
			return fmt.Errorf("gate %d %s: %w", i, gate, err)
		}
	}

	return nil
}
