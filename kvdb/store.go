package kvdb

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"
)

// Backend names accepted by Open.
const (
	Bbolt  = "bbolt"
	Badger = "badger"
	Pebble = "pebble"
)

// Backends lists the supported backend names.
func Backends() []string { return []string{Bbolt, Badger, Pebble} }

// Store persists benchmark records.
type Store interface {
	// Put writes rec under (rec.RunID, rec.Seq), replacing any previous value.
	Put(rec Record) error

	// Scan calls fn for each record of runID in sequence order. An empty runID
	// scans every run. Scan stops at the first error fn returns.
	Scan(runID string, fn func(Record) error) error

	Close() error
}

// Open opens or creates a store of the given kind under dir.
func Open(kind, dir string, logger logr.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create store dir %s", dir)
	}
	switch kind {
	case Bbolt:
		return openBolt(filepath.Join(dir, "results.db"))
	case Badger:
		return openBadger(dir, logger)
	case Pebble:
		return openPebble(dir, logger)
	}
	return nil, errors.Newf("unknown store backend %q", kind)
}

// List collects every record of runID.
func List(s Store, runID string) ([]Record, error) {
	var out []Record
	err := s.Scan(runID, func(rec Record) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}

// DirSize reports the bytes used by the files under path.
func DirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}
