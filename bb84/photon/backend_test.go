package photon

import (
	"errors"
	"fmt"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats/scalar"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestMatchedBasisRecoversBit(t *testing.T) {
	for _, kind := range []Kind{Exact, Approx} {
		for _, basis := range []Basis{Rectilinear, Diagonal} {
			for _, bit := range []Bit{0, 1} {
				t.Run(fmt.Sprintf("%v/%v/%d", kind, basis, bit), func(t *testing.T) {
					b, err := New(kind, newRand(42))
					if err != nil {
						t.Fatalf("Building backend: %v", err)
					}
					for i := 0; i < 200; i++ {
						st, err := b.Prepare(bit, basis)
						if err != nil {
							t.Fatalf("Prepare(%d, %v): %v", bit, basis, err)
						}
						got, err := b.Measure(st, basis)
						if err != nil {
							t.Fatalf("Measure: %v", err)
						}
						if got != bit {
							t.Fatalf("measured %d in preparation basis, want %d", got, bit)
						}
					}
				})
			}
		}
	}
}

func TestMismatchedBasisIsUniform(t *testing.T) {
	const trials = 20000
	for _, kind := range []Kind{Exact, Approx} {
		for _, prep := range []Basis{Rectilinear, Diagonal} {
			for _, bit := range []Bit{0, 1} {
				t.Run(fmt.Sprintf("%v/%v/%d", kind, prep, bit), func(t *testing.T) {
					b, err := New(kind, newRand(1234))
					if err != nil {
						t.Fatalf("Building backend: %v", err)
					}
					meas := Diagonal
					if prep == Diagonal {
						meas = Rectilinear
					}
					ones := 0
					for i := 0; i < trials; i++ {
						st, err := b.Prepare(bit, prep)
						if err != nil {
							t.Fatalf("Prepare: %v", err)
						}
						got, err := b.Measure(st, meas)
						if err != nil {
							t.Fatalf("Measure: %v", err)
						}
						if got > 1 {
							t.Fatalf("measured non-binary value %d", got)
						}
						ones += int(got)
					}
					frac := float64(ones) / trials
					if !scalar.EqualWithinAbs(frac, 0.5, 0.02) {
						t.Errorf("got outcome-1 fraction %v in mismatched basis, want ~0.5", frac)
					}
				})
			}
		}
	}
}

func TestStatesAreSingleUse(t *testing.T) {
	for _, kind := range []Kind{Exact, Approx} {
		t.Run(kind.String(), func(t *testing.T) {
			b, err := New(kind, newRand(7))
			if err != nil {
				t.Fatalf("Building backend: %v", err)
			}
			st, err := b.Prepare(1, Rectilinear)
			if err != nil {
				t.Fatalf("Prepare: %v", err)
			}
			if _, err := b.Measure(st, Rectilinear); err != nil {
				t.Fatalf("first Measure: %v", err)
			}
			if _, err := b.Measure(st, Rectilinear); err == nil {
				t.Error("measuring a consumed state succeeded, want error")
			}
		})
	}
}

func TestForeignStatesRejected(t *testing.T) {
	exact, err := New(Exact, newRand(7))
	if err != nil {
		t.Fatalf("Building exact backend: %v", err)
	}
	approx, err := New(Approx, newRand(7))
	if err != nil {
		t.Fatalf("Building approx backend: %v", err)
	}
	st, err := exact.Prepare(0, Diagonal)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if _, err := approx.Measure(st, Diagonal); err == nil {
		t.Error("approx backend measured a statevector state, want error")
	}
	st, err = approx.Prepare(0, Diagonal)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if _, err := exact.Measure(st, Diagonal); err == nil {
		t.Error("exact backend measured an approx state, want error")
	}
}

func TestMalformedInputs(t *testing.T) {
	for _, kind := range []Kind{Exact, Approx} {
		t.Run(kind.String(), func(t *testing.T) {
			b, err := New(kind, newRand(7))
			if err != nil {
				t.Fatalf("Building backend: %v", err)
			}
			if _, err := b.Prepare(2, Rectilinear); err == nil {
				t.Error("prepared non-binary bit, want error")
			}
			if _, err := b.Prepare(0, Basis(9)); err == nil {
				t.Error("prepared in unknown basis, want error")
			}
			st, err := b.Prepare(0, Rectilinear)
			if err != nil {
				t.Fatalf("Prepare: %v", err)
			}
			if _, err := b.Measure(st, Basis(9)); err == nil {
				t.Error("measured in unknown basis, want error")
			}
		})
	}
}

func TestNewUnavailable(t *testing.T) {
	defer func(f func(Kind) bool) { Available = f }(Available)
	Available = func(k Kind) bool { return k == Approx }

	if _, err := New(Exact, newRand(1)); !errors.Is(err, ErrUnavailable) {
		t.Errorf("New(Exact) = %v, want ErrUnavailable", err)
	}
	if _, err := New(Approx, newRand(1)); err != nil {
		t.Errorf("New(Approx) = %v, want nil", err)
	}
}
