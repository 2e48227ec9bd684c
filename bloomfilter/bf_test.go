package bloomfilter

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(i uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, i)
}

func TestNoFalseNegatives(t *testing.T) {
	bf := New(10000, 0.001)
	for i := range uint64(10000) {
		bf.Add(key(i))
	}
	for i := range uint64(10000) {
		require.True(t, bf.Contains(key(i)), "missing %d", i)
	}
	assert.Equal(t, uint64(10000), bf.Stats().Items)
}

func TestFalsePositiveRate(t *testing.T) {
	const n = 20000
	bf := New(n, 0.01)
	for i := range uint64(n) {
		bf.Add(key(i))
	}
	fp := 0
	for i := uint64(n); i < 2*n; i++ {
		if bf.Contains(key(i)) {
			fp++
		}
	}
	rate := float64(fp) / n
	assert.Less(t, rate, 0.03, "measured false positive rate %.4f", rate)

	st := bf.Stats()
	assert.Greater(t, st.FillRatio, 0.0)
	assert.Less(t, st.FillRatio, 1.0)
	assert.Less(t, st.EstimatedFPR, 0.05)
}

func TestAddIfAbsent(t *testing.T) {
	bf := New(100, 0.001)
	assert.True(t, bf.AddIfAbsent(key(7)))
	assert.False(t, bf.AddIfAbsent(key(7)))
	assert.True(t, bf.Contains(key(7)))
}

func TestTinyFilter(t *testing.T) {
	bf := New(0, 0.5)
	bf.Add([]byte("x"))
	assert.True(t, bf.Contains([]byte("x")))
}
