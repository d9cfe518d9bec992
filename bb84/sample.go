package bb84

import (
	"sort"

	"github.com/qkdsim/bb84/bb84/photon"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// maxSampleSize caps the number of sifted bits revealed for error
// estimation.
const maxSampleSize = 10

// sampleSize returns the number of sifted positions to reveal: a fifth of
// the sifted key, at least one bit, never more than maxSampleSize. Zero when
// there is nothing to sample.
func sampleSize(sifted int) int {
	if sifted == 0 {
		return 0
	}
	k := sifted / 5
	if k < 1 {
		k = 1
	}
	if k > maxSampleSize {
		k = maxSampleSize
	}
	return k
}

// sampleIndices draws the revealed positions uniformly without replacement
// from [0, sifted), consuming only the sampling stream. The returned indices
// are sorted ascending.
func sampleIndices(sifted int, sampling source) []int {
	k := sampleSize(sifted)
	if k == 0 {
		return nil
	}
	idxs := make([]int, k)
	sampleuv.WithoutReplacement(idxs, sifted, sampling.Rand)
	sort.Ints(idxs)
	return idxs
}

// estimateQBER compares the parties' bits at the revealed positions and
// returns the observed error fraction, or 0 for an empty sample.
func estimateQBER(siftedAlice, siftedBob []photon.Bit, sample []int) float64 {
	if len(sample) == 0 {
		return 0
	}
	mismatches := 0
	for _, i := range sample {
		if siftedAlice[i] != siftedBob[i] {
			mismatches++
		}
	}
	return float64(mismatches) / float64(len(sample))
}

// extractKey removes the revealed positions from the sifted key, preserving
// order. Revealed bits are public and contribute nothing to secrecy.
func extractKey(sifted []photon.Bit, sample []int) []photon.Bit {
	revealed := make(map[int]bool, len(sample))
	for _, i := range sample {
		revealed[i] = true
	}
	key := make([]photon.Bit, 0, len(sifted)-len(sample))
	for i, b := range sifted {
		if !revealed[i] {
			key = append(key, b)
		}
	}
	return key
}
