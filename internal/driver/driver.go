// Package driver pulls bytes from a seeded generator and writes them
// to an output sink in fixed-size chunks, honoring a byte budget or
// running until cancelled.
package driver

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"pkg.jsn.cam/randtap/pkg/randtap"
)

// State is the driver's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateStreaming
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DefaultChunkSize is used when the caller passes chunkSize <= 0.
const DefaultChunkSize = 4096

// Stats summarizes a finished run.
type Stats struct {
	RunID string
	Bytes int64
	State State
}

// Driver streams bytes from one ByteSource into one sink. A Driver
// runs exactly once; build a new one per stream.
type Driver struct {
	src    randtap.ByteSource
	sink   io.Writer
	budget int64 // remaining bytes; negative means unbounded
	chunk  int
	state  State
	runID  string
	bytes  int64
}

// New builds a driver in the Idle state. budget < 0 streams until the
// context is cancelled or the sink fails; budget >= 0 streams exactly
// that many bytes. chunkSize is rounded up to a multiple of the
// adapter's block size so every generator pull is a whole block.
func New(src randtap.ByteSource, sink io.Writer, budget int64, chunkSize int) *Driver {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	bs := src.BlockSize()
	if rem := chunkSize % bs; rem != 0 {
		chunkSize += bs - rem
	}
	return &Driver{
		src:    src,
		sink:   sink,
		budget: budget,
		chunk:  chunkSize,
		state:  StateIdle,
		runID:  uuid.New().String(),
	}
}

// State returns the driver's current state.
func (d *Driver) State() State { return d.state }

// Run executes the pull/write loop. Cancellation is cooperative and
// checked between chunk writes only, so the sink never receives a
// chunk cut short by cancellation; a final chunk is trimmed only by
// the byte budget. Sink writes may block (a full pipe is the natural
// backpressure throttling generation to the consumer's read rate).
//
// A cancelled run is a normal termination: the driver ends in Done
// and Run returns the context's error so the caller can tell the two
// apart. Sink failures end in Failed; the error is surfaced
// immediately and never retried, since a short write would corrupt
// the measured stream.
func (d *Driver) Run(ctx context.Context) (Stats, error) {
	if d.state != StateIdle {
		return d.stats(), fmt.Errorf("%w: run %s", randtap.ErrNotStreamable, d.runID)
	}
	d.state = StateStreaming

	log.Printf("[DRIVER:%s] streaming %s from generator %q (chunk %d)",
		d.runID, budgetString(d.budget), d.src.Name(), d.chunk)

	buf := make([]byte, d.chunk)
	bs := d.src.BlockSize()

	for d.budget != 0 {
		select {
		case <-ctx.Done():
			d.state = StateDone
			log.Printf("[DRIVER:%s] cancelled after %s", d.runID, humanize.Bytes(uint64(d.bytes)))
			return d.stats(), ctx.Err()
		default:
		}

		n := len(buf)
		if d.budget > 0 && d.budget < int64(n) {
			n = int(d.budget)
		}

		// Fill whole blocks, enough to cover n.
		filled := 0
		for filled < n {
			d.src.NextBlock(buf[filled : filled+bs])
			filled += bs
		}

		if _, err := d.sink.Write(buf[:n]); err != nil {
			d.state = StateFailed
			return d.stats(), fmt.Errorf("%w: generator %q, run %s, after %d bytes: %w",
				randtap.ErrSinkWrite, d.src.Name(), d.runID, d.bytes, err)
		}
		d.bytes += int64(n)
		if d.budget > 0 {
			d.budget -= int64(n)
		}
	}

	d.state = StateDone
	log.Printf("[DRIVER:%s] done, wrote %s", d.runID, humanize.Bytes(uint64(d.bytes)))
	return d.stats(), nil
}

func (d *Driver) stats() Stats {
	return Stats{RunID: d.runID, Bytes: d.bytes, State: d.state}
}

func budgetString(budget int64) string {
	if budget < 0 {
		return "unbounded"
	}
	return humanize.Bytes(uint64(budget))
}
