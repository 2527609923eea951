package generators

import (
	"fmt"
	"sort"

	"pkg.jsn.cam/randtap/pkg/randtap"
)

// Factory describes one adapter in the closed generator set and knows
// how to construct a seeded instance of it.
type Factory struct {
	Name        string
	Description string

	// SeedWidth is the exact seed length in bytes the adapter accepts.
	SeedWidth int

	// BlockSize is the adapter's output block size in bytes.
	BlockSize int

	New func(seed randtap.Seed) (randtap.ByteSource, error)
}

// Registry maps generator names to their factories. The set is closed:
// adding an algorithm means adding an entry here, never modifying an
// existing adapter's state layout.
var Registry = map[string]Factory{
	"lagged": {
		Name:        "lagged",
		Description: "MT19937-64 Mersenne Twister (period 2^19937-1, 64-bit words, little-endian)",
		SeedWidth:   8,
		BlockSize:   8,
		New:         newMT19937,
	},
	"cipher": {
		Name:        "cipher",
		Description: "ChaCha20 keystream (RFC 8439, 32-byte key, zero nonce)",
		SeedWidth:   32,
		BlockSize:   64,
		New:         newChaCha,
	},
	"library": {
		Name:        "library",
		Description: "Go library default PCG (math/rand/v2, 128-bit seed, little-endian)",
		SeedWidth:   16,
		BlockSize:   8,
		New:         newPCG,
	},
	"siphash": {
		Name:        "siphash",
		Description: "SipHash-1-3 generator (Claessen-Palka construction, 128-bit key, little-endian)",
		SeedWidth:   16,
		BlockSize:   8,
		New:         newSipRng,
	},
}

// Get returns the factory for a generator by name.
func Get(name string) (Factory, error) {
	f, exists := Registry[name]
	if !exists {
		return Factory{}, fmt.Errorf("%w: %q", randtap.ErrUnknownGenerator, name)
	}
	return f, nil
}

// List returns all generator names, sorted for stable help output.
func List() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkSeed enforces an adapter's exact seed width. Seeds are never
// padded or truncated here; width expansion of integer seeds happens
// in the caller via randtap.SeedFromUint64.
func checkSeed(name string, seed randtap.Seed, width int) error {
	if len(seed) != width {
		return fmt.Errorf("%w: generator %q requires %d bytes, got %d",
			randtap.ErrInvalidSeedLength, name, width, len(seed))
	}
	return nil
}
