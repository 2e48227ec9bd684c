package main

import (
	"bufio"
	"encoding/binary"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/rlaau/sortio/bloomfilter"
)

const (
	valueBound     = 1000000
	fewUniqueBound = 16
)

// SystemStats captures allocation counters around one measured sort.
type SystemStats struct {
	startTime time.Time
	startMem  runtime.MemStats
	endMem    runtime.MemStats
}

// generateData builds a reproducible input of the given pattern.
func generateData(pattern string, size int, seed int64) ([]int, error) {
	rng := rand.New(rand.NewSource(seed))
	data := make([]int, size)

	switch pattern {
	case patternRandom:
		for i := range size {
			data[i] = rng.Intn(valueBound)
		}
	case patternSorted:
		for i := range size {
			data[i] = i
		}
	case patternReversed:
		for i := range size {
			data[i] = size - i
		}
	case patternFewUnique:
		for i := range size {
			data[i] = rng.Intn(fewUniqueBound)
		}
	case patternDistinct:
		return distinctData(rng, size), nil
	default:
		return nil, errors.Newf("unknown pattern %q", pattern)
	}
	return data, nil
}

// distinctData draws values until size of them pass the bloom filter. A false
// positive only costs a redraw, so the result never holds a duplicate.
func distinctData(rng *rand.Rand, size int) []int {
	bound := max(size*4, valueBound)
	bf := bloomfilter.New(uint64(size), 0.001)
	data := make([]int, 0, size)
	var key [8]byte
	for len(data) < size {
		v := rng.Intn(bound)
		binary.BigEndian.PutUint64(key[:], uint64(v))
		if bf.AddIfAbsent(key[:]) {
			data = append(data, v)
		}
	}
	return data
}

func writeDataToFile(data []int, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "create data file")
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 64*1024)

	var builder strings.Builder
	builder.Grow(min(len(data), 10000) * 8)

	for i, num := range data {
		if i > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(strconv.Itoa(num))

		if i%10000 == 0 {
			if _, err := writer.WriteString(builder.String()); err != nil {
				return errors.Wrap(err, "write data file")
			}
			builder.Reset()
		}
	}

	if builder.Len() > 0 {
		if _, err := writer.WriteString(builder.String()); err != nil {
			return errors.Wrap(err, "write data file")
		}
	}

	if err := writer.Flush(); err != nil {
		return errors.Wrap(err, "flush data file")
	}
	return file.Close()
}

func readDataFromFile(filename string) ([]int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open data file")
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat data file")
	}

	// roughly six digits and a newline per value
	data := make([]int, 0, fileInfo.Size()/7)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), bufio.MaxScanTokenSize)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		num, err := strconv.Atoi(text)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", filename, line)
		}
		data = append(data, num)
	}

	return data, errors.Wrap(scanner.Err(), "scan data file")
}

func startStats() *SystemStats {
	// two cycles so finalizers from the previous run are gone
	runtime.GC()
	runtime.GC()

	s := &SystemStats{}
	runtime.ReadMemStats(&s.startMem)
	s.startTime = time.Now()
	return s
}

// endStats returns the wall time and the bytes allocated since startStats.
func (s *SystemStats) endStats() (time.Duration, uint64) {
	duration := time.Since(s.startTime)
	runtime.ReadMemStats(&s.endMem)
	return duration, s.endMem.TotalAlloc - s.startMem.TotalAlloc
}

// optimalThreshold is the auto quicksort threshold: inputs under 1000 never
// fork, larger ones fork more eagerly the smaller they are.
func optimalThreshold(size int) int {
	switch {
	case size < 1000:
		return size
	case size < 10000:
		return 300
	case size < 100000:
		return 800
	default:
		return 1500
	}
}
