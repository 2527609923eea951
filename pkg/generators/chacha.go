package generators

import (
	"fmt"

	"golang.org/x/crypto/chacha20"

	"pkg.jsn.cam/randtap/pkg/randtap"
)

// chachaStream exposes the raw ChaCha20 keystream (RFC 8439) as a byte
// source. The 32-byte seed is the cipher key; the nonce is all zeros
// and the block counter starts at 0, so the output is exactly the
// reference keystream for that key. Block size is the cipher's 64-byte
// block. The counter wraps after 2^32 blocks (256 GiB); past that the
// keystream repeats, which is documented behavior, not an error.
//
// Used as a deterministic generator, not for encryption: reusing a
// (key, nonce) pair is the entire point here.
type chachaStream struct {
	cipher *chacha20.Cipher
	zero   [64]byte
}

func newChaCha(seed randtap.Seed) (randtap.ByteSource, error) {
	if err := checkSeed("cipher", seed, chacha20.KeySize); err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(seed, nonce)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}
	return &chachaStream{cipher: c}, nil
}

func (g *chachaStream) Name() string { return "cipher" }

func (g *chachaStream) BlockSize() int { return 64 }

func (g *chachaStream) NextBlock(dst []byte) {
	// XOR of zeros yields the keystream itself.
	g.cipher.XORKeyStream(dst, g.zero[:])
}
