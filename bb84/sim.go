package bb84

import (
	"fmt"

	"github.com/qkdsim/bb84/bb84/photon"
)

// Run executes one full protocol round and returns a fresh, immutable
// result. Qubits are processed strictly in transmission order, so that for a
// fixed seed the n-th protocol draw always belongs to the n-th qubit.
func (s *Simulator) Run() (*RunResult, error) {
	protocol, sampling := newSources(s.opts.Seed)

	n := s.opts.NumBits
	aliceBits := protocol.bits(n)
	aliceBases := protocol.bases(n)
	bobBases := protocol.bases(n)

	backend, err := photon.New(s.backend, protocol.Rand)
	if err != nil {
		return nil, fmt.Errorf("constructing %v backend: %w", s.backend, err)
	}
	var eve *photon.Eavesdropper
	if s.opts.Eve {
		eve = photon.NewEavesdropper(backend, protocol.Rand)
	}

	bobBits, err := transmit(backend, eve, aliceBits, aliceBases, bobBases)
	if err != nil {
		return nil, err
	}

	siftedAlice, siftedBob := sift(aliceBits, bobBits, aliceBases, bobBases)
	sample := sampleIndices(len(siftedAlice), sampling)

	return &RunResult{
		AliceBits:     aliceBits,
		AliceBases:    aliceBases,
		BobBits:       bobBits,
		BobBases:      bobBases,
		SiftedAlice:   siftedAlice,
		SiftedBob:     siftedBob,
		SampleIndices: sample,
		ErrorRate:     estimateQBER(siftedAlice, siftedBob, sample),
		FinalKey:      extractKey(siftedAlice, sample),
		Backend:       s.backend,
	}, nil
}

// transmit pushes each prepared qubit through the channel, optionally via an
// intercept-resend attacker, and measures it in Bob's basis.
func transmit(backend photon.Backend, eve *photon.Eavesdropper, aliceBits []photon.Bit, aliceBases, bobBases []photon.Basis) ([]photon.Bit, error) {
	bobBits := make([]photon.Bit, len(aliceBits))
	for i := range aliceBits {
		st, err := backend.Prepare(aliceBits[i], aliceBases[i])
		if err != nil {
			return nil, fmt.Errorf("preparing qubit %d: %w", i, err)
		}
		if eve != nil {
			if st, err = eve.Intercept(st); err != nil {
				return nil, fmt.Errorf("qubit %d: %w", i, err)
			}
		}
		if bobBits[i], err = backend.Measure(st, bobBases[i]); err != nil {
			return nil, fmt.Errorf("measuring qubit %d: %w", i, err)
		}
	}
	return bobBits, nil
}

// sift retains the positions where both parties chose the same measurement
// basis, preserving transmission order.
func sift(aliceBits, bobBits []photon.Bit, aliceBases, bobBases []photon.Basis) (siftedAlice, siftedBob []photon.Bit) {
	for i := range aliceBases {
		if aliceBases[i] == bobBases[i] {
			siftedAlice = append(siftedAlice, aliceBits[i])
			siftedBob = append(siftedBob, bobBits[i])
		}
	}
	return siftedAlice, siftedBob
}
