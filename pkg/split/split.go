// Package split derives independent, reproducible child generators
// from a parent seed.
//
// The derivation is a pure function with no registry of used indices:
// the same (parent seed, index) pair always yields the same child, in
// any order, on any run. The mixing function is fixed and is part of
// the rig's compatibility contract - changing it would break
// reproducibility of every recorded stream.
package split

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"pkg.jsn.cam/randtap/pkg/generators"
	"pkg.jsn.cam/randtap/pkg/randtap"
)

// Derive computes the child seed for (parent, index) at the given
// width: BLAKE2b-512 over the parent seed followed by the index as a
// little-endian uint64, truncated to width bytes. BLAKE2b is one-way,
// so children at distinct indices are not computable from one another
// without the parent seed, and distinct (parent, index) pairs never
// alias the same generator state. The parent seed is never mutated.
//
// Supported widths are 1 through 64 bytes, which covers every adapter
// in the closed set.
func Derive(parent randtap.Seed, index uint64, width int) randtap.Seed {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], index)

	h, _ := blake2b.New512(nil)
	h.Write(parent)
	h.Write(buf[:])
	sum := h.Sum(nil)
	return randtap.Seed(sum[:width])
}

// Child derives the index'th child seed for the named generator and
// feeds it through the adapter's normal constructor. The parent seed
// itself is what is split; a live parent generator is never touched,
// so parent and children advance independently afterward.
func Child(name string, parent randtap.Seed, index uint64) (randtap.ByteSource, error) {
	f, err := generators.Get(name)
	if err != nil {
		return nil, err
	}
	if len(parent) != f.SeedWidth {
		return nil, fmt.Errorf("%w: split parent for %q requires %d bytes, got %d",
			randtap.ErrInvalidSeedLength, name, f.SeedWidth, len(parent))
	}
	return f.New(Derive(parent, index, f.SeedWidth))
}
