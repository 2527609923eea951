// Package ledger records stream fingerprints for regression checking.
//
// A fingerprint is the SHA-256 of the first N bytes a (generator,
// seed, split index) triple produces. Byte-for-byte reproducibility is
// the rig's entire compatibility contract, so a recorded fingerprint
// that stops matching means the contract broke. Only fingerprints are
// persisted, never generator state.
package ledger

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var bucketFingerprints = []byte("fingerprints")

// Entry is one recorded (or candidate) fingerprint.
type Entry struct {
	ID         string    `json:"id"`
	Generator  string    `json:"generator"`
	SeedHex    string    `json:"seed_hex"`
	SplitIndex int64     `json:"split_index"` // -1 when the stream was not split
	Bytes      int64     `json:"bytes"`
	Digest     string    `json:"digest"` // hex SHA-256 of the first Bytes bytes
	RecordedAt time.Time `json:"recorded_at"`
}

func (e Entry) key() []byte {
	return fmt.Appendf(nil, "%s/%s/%d/%d", e.Generator, e.SeedHex, e.SplitIndex, e.Bytes)
}

// Result reports the outcome of a Verify call.
type Result struct {
	FirstSeen bool   // no fingerprint was recorded for this key yet
	Match     bool   // meaningful only when !FirstSeen
	Want      string // the recorded digest, when one exists
}

// Ledger is a bbolt-backed fingerprint store.
type Ledger struct {
	db *bolt.DB
}

// Open opens (creating if needed) the ledger at path.
func Open(path string) (*Ledger, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFingerprints)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("[LEDGER] opened at %s", path)
	return &Ledger{db: db}, nil
}

// Record stores the entry's fingerprint, overwriting any previous
// recording for the same (generator, seed, split index, bytes) key.
func (l *Ledger) Record(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}
	value, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFingerprints).Put(e.key(), value)
	})
}

// Verify compares the entry's digest against the recorded one.
func (l *Ledger) Verify(e Entry) (Result, error) {
	var res Result
	err := l.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketFingerprints).Get(e.key())
		if v == nil {
			res.FirstSeen = true
			return nil
		}
		var recorded Entry
		if err := json.Unmarshal(v, &recorded); err != nil {
			return fmt.Errorf("corrupt ledger entry %q: %w", e.key(), err)
		}
		res.Want = recorded.Digest
		res.Match = recorded.Digest == e.Digest
		return nil
	})
	return res, err
}

// List returns all recorded entries.
func (l *Ledger) List() ([]Entry, error) {
	var entries []Entry
	err := l.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFingerprints).ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("corrupt ledger entry %q: %w", k, err)
			}
			entries = append(entries, e)
			return nil
		})
	})
	return entries, err
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}
