package photon

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

var invSqrt2 = complex(1/math.Sqrt2, 0)

// A statevector backend tracks each qubit as an explicit two-amplitude vector
// in the rectilinear basis and implements Measure as a literal projection
// onto the requested basis.
type statevector struct {
	rand *rand.Rand
}

// A ket is a single-qubit state |psi> = a0|0> + a1|1>, expressed in the
// rectilinear basis.
type ket struct {
	a0, a1   complex128
	measured bool
}

func (*ket) state() {}

// Prepare implements the Backend interface. Rectilinear encodings are the
// computational basis states; diagonal encodings are their Hadamard images.
func (s *statevector) Prepare(bit Bit, basis Basis) (State, error) {
	if err := checkBit(bit); err != nil {
		return nil, err
	}
	switch basis {
	case Rectilinear:
		if bit == 0 {
			return &ket{a0: 1}, nil
		}
		return &ket{a1: 1}, nil
	case Diagonal:
		if bit == 0 {
			return &ket{a0: invSqrt2, a1: invSqrt2}, nil
		}
		return &ket{a0: invSqrt2, a1: -invSqrt2}, nil
	}
	return nil, fmt.Errorf("preparing in unknown basis %v", basis)
}

// Measure implements the Backend interface. The outcome is drawn from the
// Born probabilities of st's amplitudes along the requested basis, and st is
// consumed.
func (s *statevector) Measure(st State, basis Basis) (Bit, error) {
	k, ok := st.(*ket)
	if !ok {
		return 0, fmt.Errorf("measuring foreign state %T", st)
	}
	if k.measured {
		return 0, errors.New("state already measured")
	}
	k.measured = true

	// Amplitude of the outcome-1 eigenvector of the measurement basis.
	var a1 complex128
	switch basis {
	case Rectilinear:
		a1 = k.a1
	case Diagonal:
		a1 = (k.a0 - k.a1) * invSqrt2
	default:
		return 0, fmt.Errorf("measuring in unknown basis %v", basis)
	}
	p1 := real(a1)*real(a1) + imag(a1)*imag(a1)
	if s.rand.Float64() < p1 {
		return 1, nil
	}
	return 0, nil
}
