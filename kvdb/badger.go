package kvdb

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v3"
	"github.com/go-logr/logr"

	"github.com/rlaau/sortio/internal/logging"
)

type badgerStore struct {
	db *badger.DB
}

func openBadger(dir string, logger logr.Logger) (*badgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger.WithName("badger")})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger %s", dir)
	}
	return &badgerStore{db: db}, nil
}

func (s *badgerStore) Put(rec Record) error {
	val, err := encode(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(rec.RunID, rec.Seq), val)
	})
}

func (s *badgerStore) Scan(runID string, fn func(Record) error) error {
	prefix := runPrefix(runID)
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		if prefix == nil {
			it.Rewind()
		} else {
			it.Seek(prefix)
		}
		for ; it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				var err error
				rec, err = decode(val)
				return err
			})
			if err != nil {
				return errors.Wrapf(err, "decode %q", it.Item().Key())
			}
			if err := fn(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *badgerStore) Close() error { return s.db.Close() }

// badgerLogger routes badger's logs into logr.
type badgerLogger struct {
	logr.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.Error(nil, fmt.Sprintf(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.V(logging.VERBOSE).Info(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.V(logging.DEBUG).Info(fmt.Sprintf(format, args...))
}
