package split

import (
	"bytes"
	"errors"
	"testing"

	"pkg.jsn.cam/randtap/pkg/generators"
	"pkg.jsn.cam/randtap/pkg/randtap"
)

func readN(t *testing.T, src randtap.ByteSource, n int) []byte {
	t.Helper()
	bs := src.BlockSize()
	out := make([]byte, 0, n)
	block := make([]byte, bs)
	for len(out) < n {
		src.NextBlock(block)
		out = append(out, block...)
	}
	return out[:n]
}

func TestDerive_Deterministic(t *testing.T) {
	t.Parallel()

	parent := randtap.SeedFromUint64(7, 32)
	a := Derive(parent, 5, 32)
	b := Derive(parent, 5, 32)
	if !bytes.Equal(a, b) {
		t.Errorf("same (seed, index) derived different children: %x vs %x", a, b)
	}
}

func TestDerive_OrderIndependent(t *testing.T) {
	t.Parallel()

	parent := randtap.SeedFromUint64(7, 32)

	// Derive in one order...
	first := map[uint64]randtap.Seed{}
	for _, i := range []uint64{9, 2, 5} {
		first[i] = Derive(parent, i, 32)
	}
	// ...and in another.
	for _, i := range []uint64{5, 9, 2} {
		if !bytes.Equal(first[i], Derive(parent, i, 32)) {
			t.Errorf("index %d depends on derivation order", i)
		}
	}
}

func TestDerive_ParentUntouched(t *testing.T) {
	t.Parallel()

	parent := randtap.SeedFromUint64(7, 32)
	before := parent.Clone()
	_ = Derive(parent, 0, 32)
	_ = Derive(parent, 1, 32)
	if !bytes.Equal(parent, before) {
		t.Error("Derive mutated the parent seed")
	}
}

func TestDerive_DistinctIndices(t *testing.T) {
	t.Parallel()

	parent := randtap.SeedFromUint64(7, 32)
	if bytes.Equal(Derive(parent, 0, 32), Derive(parent, 1, 32)) {
		t.Error("indices 0 and 1 derived the same child seed")
	}
}

// Children of every adapter must be reproducible and distinct per
// index, and distinct from the unsplit parent stream.
func TestChild_AllGenerators(t *testing.T) {
	t.Parallel()

	for name, f := range generators.Registry {
		parent := randtap.SeedFromUint64(12345, f.SeedWidth)

		c0, err := Child(name, parent, 0)
		if err != nil {
			t.Fatalf("%s: split 0: %v", name, err)
		}
		c0again, err := Child(name, parent, 0)
		if err != nil {
			t.Fatalf("%s: split 0 again: %v", name, err)
		}
		c1, err := Child(name, parent, 1)
		if err != nil {
			t.Fatalf("%s: split 1: %v", name, err)
		}
		root, err := f.New(parent)
		if err != nil {
			t.Fatalf("%s: seed parent: %v", name, err)
		}

		out0 := readN(t, c0, 64)
		if !bytes.Equal(out0, readN(t, c0again, 64)) {
			t.Errorf("%s: split 0 is not reproducible", name)
		}
		if bytes.Equal(out0, readN(t, c1, 64)) {
			t.Errorf("%s: splits 0 and 1 share an output prefix", name)
		}
		if bytes.Equal(out0, readN(t, root, 64)) {
			t.Errorf("%s: split 0 aliases the parent stream", name)
		}
	}
}

// Scenario: cipher generator, 32 zero bytes of seed, split 0 vs
// split 1 - the first 8 bytes of each child's output must differ.
func TestChild_CipherZeroSeedScenario(t *testing.T) {
	t.Parallel()

	parent := make(randtap.Seed, 32)
	c0, err := Child("cipher", parent, 0)
	if err != nil {
		t.Fatalf("split 0: %v", err)
	}
	c1, err := Child("cipher", parent, 1)
	if err != nil {
		t.Fatalf("split 1: %v", err)
	}
	if bytes.Equal(readN(t, c0, 8), readN(t, c1, 8)) {
		t.Error("first 8 bytes of splits 0 and 1 are identical")
	}
}

func TestChild_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Child("nonesuch", randtap.SeedFromUint64(1, 8), 0); !errors.Is(err, randtap.ErrUnknownGenerator) {
		t.Errorf("unknown generator: got %v", err)
	}
	if _, err := Child("cipher", randtap.SeedFromUint64(1, 8), 0); !errors.Is(err, randtap.ErrInvalidSeedLength) {
		t.Errorf("short parent seed: got %v", err)
	}
}
