// Package bb84 simulates single rounds of the BB84 quantum key distribution
// protocol: random bit and basis generation, transmission over a simulated
// quantum channel with an optional eavesdropper, basis sifting, sampled
// error-rate estimation, and final key extraction.
package bb84

import (
	"errors"
	"fmt"

	"github.com/qkdsim/bb84/bb84/photon"
)

// Aliases for the photon package's scalar types, so that callers consuming
// only simulation results need not import it.
type (
	Bit   = photon.Bit
	Basis = photon.Basis
)

// ErrInvalidNumBits is returned when a simulation is requested over a
// non-positive number of qubits.
var ErrInvalidNumBits = errors.New("bb84: number of qubits must be positive")

// Options packages together the arguments necessary to construct a
// Simulator.
type Options struct {
	// NumBits is the number of qubits Alice transmits. Must be positive.
	NumBits int

	// Eve, if true, places an intercept-resend eavesdropper on the channel.
	// Every transmitted qubit is intercepted.
	Eve bool

	// Seed makes runs reproducible: two simulators with equal options
	// produce bit-identical results. If nil, each run draws fresh seeds
	// from the operating system's entropy pool.
	Seed *int64

	// Backend selects the channel simulation model. If the requested kind
	// is unavailable in this environment, the simulator falls back to
	// photon.Approx and reports the substitution in RunResult.Backend.
	Backend photon.Kind
}

// A Simulator runs independent BB84 rounds for a fixed parameterization. It
// holds no mutable state between runs.
type Simulator struct {
	opts    Options
	backend photon.Kind
}

// NewSimulator validates opts and resolves the channel backend, or returns an
// error if the options are nonsensical.
func NewSimulator(opts Options) (*Simulator, error) {
	if opts.NumBits <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidNumBits, opts.NumBits)
	}
	backend := opts.Backend
	if !photon.Available(backend) {
		backend = photon.Approx
	}
	return &Simulator{opts: opts, backend: backend}, nil
}

// Simulate runs a single BB84 round with the given options. It is shorthand
// for NewSimulator followed by Run.
func Simulate(opts Options) (*RunResult, error) {
	s, err := NewSimulator(opts)
	if err != nil {
		return nil, err
	}
	return s.Run()
}
