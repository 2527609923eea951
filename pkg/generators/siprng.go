package generators

import (
	"encoding/binary"
	"math/bits"

	"pkg.jsn.cam/randtap/pkg/randtap"
)

// sipRng is a pseudorandom generator built from SipHash-1-3 rounds,
// after the splittable construction of Claessen and Palka ("Splittable
// Pseudorandom Number Generators using Cryptographic Hashing",
// Haskell '13). The 16-byte seed supplies the two 64-bit key words
// little-endian. Output is successive finalized 64-bit values
// serialized little-endian.
//
// Not cryptographically secure; SipHash is a PRF for short inputs,
// and this uses a reduced round count besides.
type sipRng struct {
	v0, v1, v2, v3 uint64
	ctr            uint64
	depth          uint64
}

const (
	sipC0 = 0x736f6d6570736575
	sipC1 = 0x646f72616e646f6d
	sipC2 = 0x6c7967656e657261
	sipC3 = 0x7465646279746573
)

func newSipRng(seed randtap.Seed) (randtap.ByteSource, error) {
	if err := checkSeed("siphash", seed, 16); err != nil {
		return nil, err
	}
	k0 := binary.LittleEndian.Uint64(seed[0:8])
	k1 := binary.LittleEndian.Uint64(seed[8:16])
	return &sipRng{
		v0:    k0 ^ sipC0,
		v1:    k1 ^ sipC1,
		v2:    k0 ^ sipC2,
		v3:    k1 ^ sipC3,
		ctr:   0,
		depth: 1,
	}, nil
}

func sipRound(v0, v1, v2, v3 uint64) (uint64, uint64, uint64, uint64) {
	v0 += v1
	v2 += v3
	v1 = bits.RotateLeft64(v1, 13)
	v3 = bits.RotateLeft64(v3, 16)
	v1 ^= v0
	v3 ^= v2
	v0 = bits.RotateLeft64(v0, 32)

	v2 += v1
	v0 += v3
	v1 = bits.RotateLeft64(v1, 17)
	v3 = bits.RotateLeft64(v3, 21)
	v1 ^= v2
	v3 ^= v0
	v2 = bits.RotateLeft64(v0, 32)
	return v0, v1, v2, v3
}

// advance mixes the block counter into the state, one round per output.
func (g *sipRng) advance() {
	g.v3 ^= g.ctr
	g.v0, g.v1, g.v2, g.v3 = sipRound(g.v0, g.v1, g.v2, g.v3)
	g.v0 ^= g.ctr
	g.ctr++
}

// descend moves the state to child i of the current branch point.
// Part of the keyed construction; the splitter in pkg/split derives
// child seeds by hashing instead, so split semantics stay uniform
// across the adapter set.
func (g *sipRng) descend(i uint64) {
	g.v3 ^= i
	g.v0, g.v1, g.v2, g.v3 = sipRound(g.v0, g.v1, g.v2, g.v3)
	g.v0 ^= i
	g.depth++
	g.ctr = 0
}

func (g *sipRng) uint64() uint64 {
	g.advance()
	v0, v1, v2, v3 := g.v0, g.v1, g.v2, g.v3

	d := g.depth << 56
	v3 ^= d
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0 ^= d

	v2 ^= 0xff
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	return v0 ^ v1 ^ v2 ^ v3
}

func (g *sipRng) Name() string { return "siphash" }

func (g *sipRng) BlockSize() int { return 8 }

func (g *sipRng) NextBlock(dst []byte) {
	binary.LittleEndian.PutUint64(dst, g.uint64())
}
