package bb84

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/qkdsim/bb84/bb84/photon"
	"golang.org/x/exp/rand"
)

// A source adapts a pRNG stream to the protocol's draw primitives.
type source struct {
	*rand.Rand
}

// newSources returns the two independent streams used by one run: a protocol
// stream for bits, bases, eavesdropper choices and measurement outcomes, and
// a sampling stream reserved for the error-estimation draw. Keeping the
// second draw off the protocol stream means the sampling step can never
// perturb protocol randomness.
//
// With a seed, the sampling stream is seeded at seed+1; without one, both
// streams get fresh entropy.
func newSources(seed *int64) (protocol, sampling source) {
	if seed == nil {
		return newSource(randomSeed()), newSource(randomSeed())
	}
	return newSource(uint64(*seed)), newSource(uint64(*seed + 1))
}

func newSource(seed uint64) source {
	return source{rand.New(rand.NewSource(seed))}
}

// randomSeed draws a seed from the operating system's entropy pool.
func randomSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("reading entropy pool: %v", err))
	}
	return binary.LittleEndian.Uint64(b[:])
}

func (s source) bit() photon.Bit {
	return photon.Bit(s.Intn(2))
}

// bits returns n independent fair bits.
func (s source) bits(n int) []photon.Bit {
	out := make([]photon.Bit, n)
	for i := range out {
		out[i] = s.bit()
	}
	return out
}

func (s source) basis() photon.Basis {
	return photon.Basis(s.Intn(2))
}

// bases returns n independent uniform basis choices.
func (s source) bases(n int) []photon.Basis {
	out := make([]photon.Basis, n)
	for i := range out {
		out[i] = s.basis()
	}
	return out
}
