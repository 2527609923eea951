package randtap

import "errors"

// Sentinel errors for common error conditions
var (
	// Seeding errors
	ErrInvalidSeedLength = errors.New("invalid seed length")
	ErrUnknownGenerator  = errors.New("unknown generator")

	// Splitting errors
	ErrSplitIndexExhausted = errors.New("split index exhausted")

	// Streaming errors
	ErrSinkWrite     = errors.New("sink write failed")
	ErrStreamClosed  = errors.New("stream already finished")
	ErrNotStreamable = errors.New("driver not in idle state")
)
