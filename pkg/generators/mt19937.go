package generators

import (
	"encoding/binary"

	"pkg.jsn.cam/randtap/pkg/randtap"
)

// mt19937 implements the 64-bit Mersenne Twister (mt19937_64) per the
// reference implementation by Matsumoto and Nishimura at
// http://www.math.sci.hiroshima-u.ac.jp/~m-mat/MT/emt64.html
//
// Output blocks are successive 64-bit words serialized little-endian,
// so the byte stream matches the reference sequence exactly. Period is
// 2^19937-1; wraparound restarts the sequence and is not an error.
//
// MT is not cryptographically secure: a sufficiently long output
// prefix predicts the rest without the seed.
const (
	mtNN        = 312
	mtMM        = 156
	mtMatrixA   = 0xB5026F5AA96619E9
	mtUpperMask = 0xFFFFFFFF80000000 // most significant 33 bits
	mtLowerMask = 0x000000007FFFFFFF // least significant 31 bits
)

type mt19937 struct {
	mt  [mtNN]uint64
	mti int
}

func newMT19937(seed randtap.Seed) (randtap.ByteSource, error) {
	if err := checkSeed("lagged", seed, 8); err != nil {
		return nil, err
	}
	g := &mt19937{}
	g.seed(binary.LittleEndian.Uint64(seed))
	return g, nil
}

func (g *mt19937) seed(v uint64) {
	g.mt[0] = v
	for i := uint64(1); i < mtNN; i++ {
		g.mt[i] = 6364136223846793005*(g.mt[i-1]^(g.mt[i-1]>>62)) + i
	}
	g.mti = mtNN
}

// twist regenerates the full state array.
func (g *mt19937) twist() {
	var i int
	for ; i < mtNN-mtMM; i++ {
		x := (g.mt[i] & mtUpperMask) | (g.mt[i+1] & mtLowerMask)
		g.mt[i] = g.mt[i+mtMM] ^ (x >> 1) ^ ((x & 1) * mtMatrixA)
	}
	for ; i < mtNN-1; i++ {
		x := (g.mt[i] & mtUpperMask) | (g.mt[i+1] & mtLowerMask)
		g.mt[i] = g.mt[i+mtMM-mtNN] ^ (x >> 1) ^ ((x & 1) * mtMatrixA)
	}
	x := (g.mt[mtNN-1] & mtUpperMask) | (g.mt[0] & mtLowerMask)
	g.mt[mtNN-1] = g.mt[mtMM-1] ^ (x >> 1) ^ ((x & 1) * mtMatrixA)
	g.mti = 0
}

func (g *mt19937) uint64() uint64 {
	if g.mti >= mtNN {
		g.twist()
	}
	x := g.mt[g.mti]
	g.mti++

	x ^= (x >> 29) & 0x5555555555555555
	x ^= (x << 17) & 0x71D67FFFEDA60000
	x ^= (x << 37) & 0xFFF7EEE000000000
	x ^= x >> 43
	return x
}

func (g *mt19937) Name() string { return "lagged" }

func (g *mt19937) BlockSize() int { return 8 }

func (g *mt19937) NextBlock(dst []byte) {
	binary.LittleEndian.PutUint64(dst, g.uint64())
}
