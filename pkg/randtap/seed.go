package randtap

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Seed is the raw seed material for a generator. It is set once at
// construction and never mutated afterward.
type Seed []byte

// SeedFromUint64 expands a 64-bit integer seed to the given width by
// little-endian encoding it into a zero-filled buffer. Widths shorter
// than 8 keep only the low-order bytes.
func SeedFromUint64(v uint64, width int) Seed {
	s := make(Seed, width)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	copy(s, buf[:])
	return s
}

// ParseSeed interprets a seed string: a decimal uint64 (expanded to
// width via SeedFromUint64) or "0x"-prefixed hex bytes (taken
// verbatim, so the adapter's width check applies unchanged). An empty
// string seeds with the integer 1.
func ParseSeed(s string, width int) (Seed, error) {
	if s == "" {
		return SeedFromUint64(1, width), nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		raw, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, fmt.Errorf("invalid hex seed %q: %w", s, err)
		}
		return Seed(raw), nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", s, err)
	}
	return SeedFromUint64(v, width), nil
}

// Hex returns the seed as lowercase hex, for logs and ledger keys.
func (s Seed) Hex() string {
	return hex.EncodeToString(s)
}

// Clone returns an independent copy of the seed.
func (s Seed) Clone() Seed {
	c := make(Seed, len(s))
	copy(c, s)
	return c
}
