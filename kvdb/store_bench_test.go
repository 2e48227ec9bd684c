package kvdb

import (
	"testing"

	"github.com/go-logr/logr"
)

// BenchmarkPut compares write cost of the backends for one record.
func BenchmarkPut(b *testing.B) {
	for _, kind := range Backends() {
		b.Run(kind, func(b *testing.B) {
			s, err := Open(kind, b.TempDir(), logr.Discard())
			if err != nil {
				b.Fatal(err)
			}
			defer s.Close()
			rec := records("bench", 1)[0]

			b.ResetTimer()
			for i := range b.N {
				rec.Seq = uint64(i)
				if err := s.Put(rec); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkScan measures a prefix scan over one run of 1000 records.
func BenchmarkScan(b *testing.B) {
	for _, kind := range Backends() {
		b.Run(kind, func(b *testing.B) {
			s, err := Open(kind, b.TempDir(), logr.Discard())
			if err != nil {
				b.Fatal(err)
			}
			defer s.Close()
			for _, rec := range records("bench", 1000) {
				if err := s.Put(rec); err != nil {
					b.Fatal(err)
				}
			}

			b.ResetTimer()
			for range b.N {
				if err := s.Scan("bench", func(Record) error { return nil }); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
