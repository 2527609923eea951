// randtap drives one of several interchangeable PRNG algorithms and
// emits its raw output as a byte stream, for feeding statistical
// randomness test suites (dieharder, PractRand, TestU01).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"

	"pkg.jsn.cam/randtap/internal/driver"
	"pkg.jsn.cam/randtap/internal/server"
	"pkg.jsn.cam/randtap/pkg/generators"
	"pkg.jsn.cam/randtap/pkg/randtap"
	"pkg.jsn.cam/randtap/pkg/split"
)

var (
	generator  = flag.String("generator", "library", "Generator to drive (see -list)")
	seedFlag   = flag.String("seed", "1", "Seed: decimal uint64 or 0x-prefixed hex bytes of the generator's exact width")
	splitIndex = flag.Int64("split", -1, "Derive the child stream at this split index (-1 = no split)")
	numBytes   = flag.Int64("n", -1, "Bytes to emit (-1 = unbounded)")
	chunkSize  = flag.Int("chunk", 0, "Chunk size in bytes (0 = default, rounded up to the generator's block size)")
	output     = flag.String("o", "", "Output file path (default stdout)")
	listGens   = flag.Bool("list", false, "List available generators and exit")
	serveAddr  = flag.String("serve", "", "Serve streams over HTTP on this address instead of writing a stream")
	ledgerPath = flag.String("ledger", "var/ledger.db", "Fingerprint ledger database path")
	record     = flag.Bool("record", false, "Record the stream's fingerprint in the ledger")
	verify     = flag.Bool("verify", false, "Verify the stream's fingerprint against the ledger")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	if *listGens {
		for _, name := range generators.List() {
			fmt.Printf("%-10s %s\n", name, generators.Registry[name].Description)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *serveAddr != "" {
		if err := server.New().ListenAndServe(ctx, *serveAddr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	f, err := generators.Get(*generator)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	seed, err := randtap.ParseSeed(*seedFlag, f.SeedWidth)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var src randtap.ByteSource
	if *splitIndex >= 0 {
		src, err = split.Child(*generator, seed, uint64(*splitIndex))
	} else {
		src, err = f.New(seed)
	}
	if err != nil {
		log.Fatalf("Failed to seed generator: %v", err)
	}

	if *record && *verify {
		log.Fatal("-record and -verify are mutually exclusive")
	}
	if (*record || *verify) && *numBytes < 0 {
		log.Fatal("-record/-verify require a finite -n")
	}

	sink, cleanup, err := openSink()
	if err != nil {
		log.Fatalf("Failed to open output: %v", err)
	}

	var fp *fingerprinter
	if *record || *verify {
		fp = newFingerprinter(seed)
		sink = io.MultiWriter(sink, fp)
	}

	stats, err := driver.New(src, sink, *numBytes, *chunkSize).Run(ctx)
	cleanup()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Stream failed: %v", err)
	}

	if fp != nil {
		if errors.Is(err, context.Canceled) {
			log.Fatal("Stream cancelled; fingerprint incomplete, not touching ledger")
		}
		if err := fp.apply(stats); err != nil {
			log.Fatalf("Ledger: %v", err)
		}
	}
}

// openSink picks the output target: a file when -o is set, discard
// when only fingerprinting, stdout otherwise. Finite runs to a file
// get a progress bar; raw streams to stdout never do.
func openSink() (io.Writer, func(), error) {
	if *output == "" {
		if *record || *verify {
			return io.Discard, func() {}, nil
		}
		return os.Stdout, func() {}, nil
	}

	file, err := os.Create(*output)
	if err != nil {
		return nil, nil, err
	}

	if *numBytes >= 0 {
		bar := progressbar.DefaultBytes(*numBytes, "streaming")
		return io.MultiWriter(file, bar), func() {
			bar.Close()
			file.Close()
		}, nil
	}
	return file, func() { file.Close() }, nil
}
