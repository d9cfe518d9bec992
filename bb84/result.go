package bb84

import (
	"strings"

	"github.com/qkdsim/bb84/bb84/photon"
)

// DefaultQBERThreshold is the error rate above which a run should be treated
// as compromised. An ideal intercept-resend attacker induces ~25% QBER, while
// a clean simulated channel produces none.
const DefaultQBERThreshold = 0.10

// A RunResult captures everything observable from one protocol round. A
// result is immutable: the engine never retains or modifies a returned
// value, and each run produces a fresh one.
type RunResult struct {
	// Per-qubit records, all of length Options.NumBits.
	AliceBits  []Bit
	AliceBases []Basis
	BobBits    []Bit
	BobBases   []Basis

	// The basis-matched subsequences, in transmission order.
	SiftedAlice []Bit
	SiftedBob   []Bit

	// SampleIndices lists the sifted positions revealed for error
	// estimation, distinct and sorted ascending.
	SampleIndices []int

	// ErrorRate is the QBER observed over the revealed sample, in [0, 1].
	ErrorRate float64

	// FinalKey is the sifted key with the revealed positions removed.
	FinalKey []Bit

	// Backend is the channel model actually used, which differs from the
	// requested one only if the requested backend was unavailable.
	Backend photon.Kind
}

// KeyString renders the final key as a string of '0' and '1' digits with no
// delimiters, the format used for key export.
func (r *RunResult) KeyString() string {
	var sb strings.Builder
	sb.Grow(len(r.FinalKey))
	for _, b := range r.FinalKey {
		sb.WriteByte('0' + byte(b))
	}
	return sb.String()
}

// BasisMatches returns the number of positions where Alice and Bob chose the
// same basis.
func (r *RunResult) BasisMatches() int {
	return len(r.SiftedAlice)
}

// Suspicious reports whether the observed error rate exceeds threshold,
// indicating likely eavesdropping or channel noise. A non-positive threshold
// uses DefaultQBERThreshold.
func (r *RunResult) Suspicious(threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultQBERThreshold
	}
	return r.ErrorRate > threshold
}
