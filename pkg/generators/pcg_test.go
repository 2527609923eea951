package generators

import (
	"bytes"
	"errors"
	"testing"

	"pkg.jsn.cam/randtap/pkg/randtap"
)

func TestPCG_Deterministic(t *testing.T) {
	t.Parallel()

	seed := randtap.SeedFromUint64(42, 16)
	a, err := newPCG(seed)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	b, err := newPCG(seed)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	bufA := make([]byte, 8)
	bufB := make([]byte, 8)
	for i := 0; i < 1000; i++ {
		a.NextBlock(bufA)
		b.NextBlock(bufB)
		if !bytes.Equal(bufA, bufB) {
			t.Fatalf("sequences diverge at block %d", i)
		}
	}
}

func TestPCG_DistinctSeeds(t *testing.T) {
	t.Parallel()

	a, err := newPCG(randtap.SeedFromUint64(1, 16))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	b, err := newPCG(randtap.SeedFromUint64(2, 16))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	same := true
	bufA := make([]byte, 8)
	bufB := make([]byte, 8)
	for i := 0; i < 16; i++ {
		a.NextBlock(bufA)
		b.NextBlock(bufB)
		if !bytes.Equal(bufA, bufB) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced the same 128-byte prefix")
	}
}

func TestPCG_SeedWidth(t *testing.T) {
	t.Parallel()

	for _, width := range []int{0, 8, 15, 17, 32} {
		src, err := newPCG(make(randtap.Seed, width))
		if !errors.Is(err, randtap.ErrInvalidSeedLength) {
			t.Errorf("width %d: got err %v, want ErrInvalidSeedLength", width, err)
		}
		if src != nil {
			t.Errorf("width %d: got a generator despite seed error", width)
		}
	}
}
