package kvdb

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/go-logr/logr"

	"github.com/rlaau/sortio/internal/logging"
)

type pebbleStore struct {
	db *pebble.DB
}

func openPebble(dir string, logger logr.Logger) (*pebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{Logger: pebbleLogger{logger.WithName("pebble")}})
	if err != nil {
		return nil, errors.Wrapf(err, "open pebble %s", dir)
	}
	return &pebbleStore{db: db}, nil
}

func (s *pebbleStore) Put(rec Record) error {
	val, err := encode(rec)
	if err != nil {
		return err
	}
	return s.db.Set(recordKey(rec.RunID, rec.Seq), val, pebble.Sync)
}

func (s *pebbleStore) Scan(runID string, fn func(Record) error) error {
	prefix := runPrefix(runID)
	it, err := s.db.NewIter(&pebble.IterOptions{LowerBound: prefix, UpperBound: upperBound(prefix)})
	if err != nil {
		return err
	}
	for it.First(); it.Valid(); it.Next() {
		rec, err := decode(it.Value())
		if err != nil {
			it.Close()
			return errors.Wrapf(err, "decode %q", it.Key())
		}
		if err := fn(rec); err != nil {
			it.Close()
			return err
		}
	}
	return it.Close()
}

func (s *pebbleStore) Close() error { return s.db.Close() }

// pebbleLogger routes pebble's logs into logr.
type pebbleLogger struct {
	logr.Logger
}

func (l pebbleLogger) Infof(format string, args ...interface{}) {
	l.V(logging.VERBOSE).Info(fmt.Sprintf(format, args...))
}

func (l pebbleLogger) Errorf(format string, args ...interface{}) {
	l.Error(nil, fmt.Sprintf(format, args...))
}

func (l pebbleLogger) Fatalf(format string, args ...interface{}) {
	logging.Fatal(l.Logger, nil, fmt.Sprintf(format, args...))
}
