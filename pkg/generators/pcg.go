package generators

import (
	"encoding/binary"
	"math/rand/v2"

	"pkg.jsn.cam/randtap/pkg/randtap"
)

// pcgSource wraps the Go standard library's default generator, the
// PCG from math/rand/v2. The 16-byte seed supplies the two 64-bit
// seed words little-endian; output is successive Uint64 values
// serialized little-endian.
type pcgSource struct {
	pcg *rand.PCG
}

func newPCG(seed randtap.Seed) (randtap.ByteSource, error) {
	if err := checkSeed("library", seed, 16); err != nil {
		return nil, err
	}
	s1 := binary.LittleEndian.Uint64(seed[0:8])
	s2 := binary.LittleEndian.Uint64(seed[8:16])
	return &pcgSource{pcg: rand.NewPCG(s1, s2)}, nil
}

func (g *pcgSource) Name() string { return "library" }

func (g *pcgSource) BlockSize() int { return 8 }

func (g *pcgSource) NextBlock(dst []byte) {
	binary.LittleEndian.PutUint64(dst, g.pcg.Uint64())
}
