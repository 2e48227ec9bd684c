// Package kvdb persists sort benchmark records in an embedded key-value
// store. bbolt, BadgerDB and PebbleDB backends share one key layout:
// run id, a '/' separator and a big-endian sequence number, so a prefix scan
// returns one run's records in the order they were written.
package kvdb

import (
	"encoding/binary"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is one benchmark measurement.
type Record struct {
	RunID        string        `json:"run_id"`
	Seq          uint64        `json:"seq"`
	Algorithm    string        `json:"algorithm"`
	Mode         string        `json:"mode"`
	Pattern      string        `json:"pattern"`
	DataSize     int           `json:"data_size"`
	StorageType  string        `json:"storage_type"`
	TestRun      int           `json:"test_run"`
	Duration     time.Duration `json:"duration"`
	Comparisons  int64         `json:"comparisons"`
	Swaps        int64         `json:"swaps"`
	MemoryUsage  uint64        `json:"memory_usage_bytes"`
	GoroutineNum int           `json:"goroutine_num"`
	Skipped      string        `json:"skipped,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}

const seqSize = 8

func recordKey(runID string, seq uint64) []byte {
	key := make([]byte, 0, len(runID)+1+seqSize)
	key = append(key, runID...)
	key = append(key, '/')
	return binary.BigEndian.AppendUint64(key, seq)
}

// runPrefix returns the key prefix of a run, or nil for every run.
func runPrefix(runID string) []byte {
	if runID == "" {
		return nil
	}
	return append([]byte(runID), '/')
}

// upperBound returns the smallest key greater than every key with prefix p.
func upperBound(p []byte) []byte {
	end := append([]byte(nil), p...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

func encode(rec Record) ([]byte, error) {
	return json.Marshal(rec)
}

func decode(val []byte) (Record, error) {
	var rec Record
	err := json.Unmarshal(val, &rec)
	return rec, err
}
