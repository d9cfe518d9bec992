// Package photon provides utilities for simulating polarization-encoded
// qubits: preparation in a chosen basis, projective measurement, and an
// optional intercept-resend eavesdropper.
package photon

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

// A Bit is a single logical bit value, 0 or 1.
type Bit uint8

// A Basis is one of the two polarization bases BB84 encodes bits in.
type Basis uint8

const (
	// Rectilinear is the horizontal/vertical polarization basis.
	Rectilinear Basis = iota
	// Diagonal is the 45-degree polarization basis.
	Diagonal
)

// String implements fmt.Stringer, using the conventional '+' and 'x'
// shorthands for the two bases.
func (b Basis) String() string {
	switch b {
	case Rectilinear:
		return "+"
	case Diagonal:
		return "x"
	}
	return fmt.Sprintf("Basis(%d)", uint8(b))
}

// A State is an in-flight qubit produced by a Backend's Prepare. States are
// opaque to callers, single-use, and may only be measured by the kind of
// backend that produced them.
type State interface {
	state()
}

// A Backend models the transmission medium: it prepares qubits from classical
// bits and measures them in a requested basis. Measuring in the preparation
// basis recovers the encoded bit with certainty; measuring in the other basis
// yields a uniformly random bit.
type Backend interface {
	// Prepare encodes bit in the given basis and returns the resulting
	// qubit state.
	Prepare(bit Bit, basis Basis) (State, error)

	// Measure performs a projective measurement of st in the given basis,
	// consuming the state. Passing a foreign or already-measured state is a
	// fatal usage error.
	Measure(st State, basis Basis) (Bit, error)
}

// A Kind selects one of the available Backend implementations.
type Kind int

const (
	// Exact simulates qubits as explicit two-amplitude state vectors and
	// derives measurement outcomes from the Born rule.
	Exact Kind = iota
	// Approx reproduces the same measurement law directly from the
	// preparation record, without representing quantum states.
	Approx
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Approx:
		return "approx"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ErrUnavailable indicates that the requested backend cannot be constructed
// in this environment. Callers are expected to recover by falling back to
// Approx, which is always available.
var ErrUnavailable = errors.New("photon: backend unavailable")

// Available reports whether New can construct a backend of the given kind. It
// is a variable so that tests can model hosts with a restricted simulation
// facility.
var Available = func(k Kind) bool {
	return k == Exact || k == Approx
}

// New returns a backend of the given kind drawing measurement outcomes from
// rand. Returns ErrUnavailable if the kind cannot be constructed in this
// environment.
func New(k Kind, rand *rand.Rand) (Backend, error) {
	if !Available(k) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, k)
	}
	switch k {
	case Exact:
		return &statevector{rand: rand}, nil
	case Approx:
		return &approx{rand: rand}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, k)
}

func checkBit(b Bit) error {
	if b > 1 {
		return fmt.Errorf("encoding non-binary value %d", b)
	}
	return nil
}
