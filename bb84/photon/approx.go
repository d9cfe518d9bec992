package photon

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

// An approx backend implements the measurement law of the statevector
// backend without representing quantum states: matching bases return the
// encoded bit, mismatched bases flip a fair coin. Callers cannot distinguish
// the two backends statistically.
type approx struct {
	rand *rand.Rand
}

// A record remembers how a qubit was prepared.
type record struct {
	bit      Bit
	basis    Basis
	measured bool
}

func (*record) state() {}

// Prepare implements the Backend interface.
func (a *approx) Prepare(bit Bit, basis Basis) (State, error) {
	if err := checkBit(bit); err != nil {
		return nil, err
	}
	if basis != Rectilinear && basis != Diagonal {
		return nil, fmt.Errorf("preparing in unknown basis %v", basis)
	}
	return &record{bit: bit, basis: basis}, nil
}

// Measure implements the Backend interface. The coin flip is only consumed
// from rand when the bases mismatch.
func (a *approx) Measure(st State, basis Basis) (Bit, error) {
	r, ok := st.(*record)
	if !ok {
		return 0, fmt.Errorf("measuring foreign state %T", st)
	}
	if r.measured {
		return 0, errors.New("state already measured")
	}
	if basis != Rectilinear && basis != Diagonal {
		return 0, fmt.Errorf("measuring in unknown basis %v", basis)
	}
	r.measured = true
	if basis == r.basis {
		return r.bit, nil
	}
	return Bit(a.rand.Intn(2)), nil
}
