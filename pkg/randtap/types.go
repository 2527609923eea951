package randtap

// ByteSource is the capability every generator adapter implements:
// produce the next block of pseudorandom output. Implementations are
// deterministic - for a given seeded state, repeated NextBlock calls
// produce the algorithm's canonical output sequence with no hidden
// randomness (no wall clock, no OS entropy, no global counters).
//
// A ByteSource is not safe for concurrent use; each output block
// depends on the prior internal state. Independent streams need
// independent instances (distinct seeds or split children).
type ByteSource interface {
	// Name returns the adapter's registry name.
	Name() string

	// NextBlock fills dst with the next BlockSize bytes of output.
	// len(dst) must equal BlockSize. It never fails; period
	// wraparound is algorithm-defined and documented per adapter.
	NextBlock(dst []byte)

	// BlockSize returns the size in bytes of one output block.
	BlockSize() int
}
