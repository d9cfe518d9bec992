package photon

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// An Eavesdropper mounts an intercept-resend attack: it measures every
// in-flight qubit in a uniformly random basis and forwards a fresh qubit
// prepared from the observed outcome. Whenever its basis differs from the
// sender's, the resent qubit is disturbed and the receiver's measurement in
// the sender's basis mismatches with probability one half.
type Eavesdropper struct {
	// Bases and Bits record the basis chosen and the bit observed for each
	// intercepted qubit, in transmission order.
	Bases []Basis
	Bits  []Bit

	backend Backend
	rand    *rand.Rand
}

// NewEavesdropper returns an Eavesdropper measuring and re-preparing qubits
// through backend, drawing its basis choices from rand.
func NewEavesdropper(backend Backend, rand *rand.Rand) *Eavesdropper {
	return &Eavesdropper{backend: backend, rand: rand}
}

// Intercept consumes st and returns the resent state to forward to the
// receiver.
func (e *Eavesdropper) Intercept(st State) (State, error) {
	basis := Basis(e.rand.Intn(2))
	bit, err := e.backend.Measure(st, basis)
	if err != nil {
		return nil, fmt.Errorf("intercepting qubit: %w", err)
	}
	e.Bases = append(e.Bases, basis)
	e.Bits = append(e.Bits, bit)
	resent, err := e.backend.Prepare(bit, basis)
	if err != nil {
		return nil, fmt.Errorf("resending qubit: %w", err)
	}
	return resent, nil
}
