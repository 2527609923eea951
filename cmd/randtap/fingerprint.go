package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"log"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/randtap/internal/driver"
	"pkg.jsn.cam/randtap/internal/ledger"
	"pkg.jsn.cam/randtap/pkg/randtap"
)

// fingerprinter hashes the stream as it is written and then records
// or verifies the digest against the ledger.
type fingerprinter struct {
	digest hash.Hash
	seed   randtap.Seed
}

func newFingerprinter(seed randtap.Seed) *fingerprinter {
	return &fingerprinter{digest: sha256.New(), seed: seed}
}

func (fp *fingerprinter) Write(p []byte) (int, error) {
	return fp.digest.Write(p)
}

func (fp *fingerprinter) apply(stats driver.Stats) error {
	l, err := ledger.Open(*ledgerPath)
	if err != nil {
		return err
	}
	defer l.Close()

	entry := ledger.Entry{
		Generator:  *generator,
		SeedHex:    fp.seed.Hex(),
		SplitIndex: *splitIndex,
		Bytes:      stats.Bytes,
		Digest:     hex.EncodeToString(fp.digest.Sum(nil)),
	}

	if *record {
		if err := l.Record(entry); err != nil {
			return err
		}
		log.Printf("[LEDGER] recorded %s of %q seed %s split %d: %s",
			humanize.Bytes(uint64(entry.Bytes)), entry.Generator, entry.SeedHex,
			entry.SplitIndex, entry.Digest)
		return nil
	}

	res, err := l.Verify(entry)
	if err != nil {
		return err
	}
	switch {
	case res.FirstSeen:
		return fmt.Errorf("no recorded fingerprint for %q seed %s split %d over %s (run with -record first)",
			entry.Generator, entry.SeedHex, entry.SplitIndex, humanize.Bytes(uint64(entry.Bytes)))
	case !res.Match:
		return fmt.Errorf("fingerprint mismatch for %q seed %s split %d: got %s, recorded %s",
			entry.Generator, entry.SeedHex, entry.SplitIndex, entry.Digest, res.Want)
	}
	log.Printf("[LEDGER] fingerprint verified for %q seed %s split %d (%s)",
		entry.Generator, entry.SeedHex, entry.SplitIndex,
		humanize.Bytes(uint64(entry.Bytes)))
	return nil
}
