// Package bloomfilter implements a fixed-size Bloom filter. The benchmark
// data generator uses it to reject repeated values: a filter has no false
// negatives, so nothing it lets through has been seen before.
package bloomfilter

import (
	"math"
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// maxHashes caps k regardless of the requested false positive rate.
const maxHashes = 15

type BloomFilter struct {
	bitArray []uint64
	size     uint64
	numHash  uint
	numItems uint64
}

// New sizes a filter for expectedItems at the given false positive rate.
func New(expectedItems uint64, falsePositiveRate float64) *BloomFilter {
	expectedItems = max(expectedItems, 1)
	size := uint64(-float64(expectedItems) * math.Log(falsePositiveRate) / (math.Ln2 * math.Ln2))
	size = max(size, 64)
	numHash := min(max(uint(float64(size)/float64(expectedItems)*math.Ln2), 1), maxHashes)

	return &BloomFilter{
		bitArray: make([]uint64, (size+63)/64),
		size:     size,
		numHash:  numHash,
	}
}

// location derives the i-th bit position by double hashing one xxhash sum.
func (bf *BloomFilter) location(h1 uint64, i uint) uint64 {
	h2 := h1>>17 ^ h1<<47 ^ uint64(i)*0x9e3779b97f4a7c15
	if h2%2 == 0 {
		h2++
	}
	return (h1 + uint64(i)*h2) % bf.size
}

func (bf *BloomFilter) Add(data []byte) {
	h := xxhash.Sum64(data)
	for i := uint(0); i < bf.numHash; i++ {
		pos := bf.location(h, i)
		bf.bitArray[pos/64] |= 1 << (pos % 64)
	}
	bf.numItems++
}

func (bf *BloomFilter) Contains(data []byte) bool {
	h := xxhash.Sum64(data)
	for i := uint(0); i < bf.numHash; i++ {
		pos := bf.location(h, i)
		if bf.bitArray[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}

// AddIfAbsent adds data and reports whether it was definitely new.
func (bf *BloomFilter) AddIfAbsent(data []byte) bool {
	if bf.Contains(data) {
		return false
	}
	bf.Add(data)
	return true
}

// Stats describes the filter's fill state.
type Stats struct {
	Items        uint64
	SetBits      uint64
	FillRatio    float64
	EstimatedFPR float64
}

func (bf *BloomFilter) Stats() Stats {
	setBits := uint64(0)
	for _, word := range bf.bitArray {
		setBits += uint64(bits.OnesCount64(word))
	}
	fill := float64(setBits) / float64(bf.size)
	return Stats{
		Items:        bf.numItems,
		SetBits:      setBits,
		FillRatio:    fill,
		EstimatedFPR: math.Pow(fill, float64(bf.numHash)),
	}
}
