package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tserr "github.com/YuminosukeSato/tsgo/pkg/errors"
)

func TestParallelizeCoversAllItems(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{name: "zero items", items: 0},
		{name: "single item", items: 1},
		{name: "fewer items than cores", items: 3},
		{name: "many items", items: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make([]int32, tt.items)
			Parallelize(tt.items, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&seen[i], 1)
				}
			})
			for i, n := range seen {
				assert.Equal(t, int32(1), n, "item %d visited %d times", i, n)
			}
		})
	}
}

func TestParallelizeWithThresholdSequentialBelow(t *testing.T) {
	var calls int32
	ParallelizeWithThreshold(4, 10, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, 0, start)
		assert.Equal(t, 4, end)
	})
	assert.Equal(t, int32(1), calls)
}

func TestParallelizeErr(t *testing.T) {
	err := ParallelizeErr(100, func(i int) error { return nil })
	assert.NoError(t, err)

	err = ParallelizeErr(10, func(i int) error {
		if i == 3 || i == 7 {
			return tserr.Newf("item %d failed", i)
		}
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 3 failed")
	assert.Contains(t, err.Error(), "item 7 failed")
}

func TestParallelizeErrEmpty(t *testing.T) {
	assert.NoError(t, ParallelizeErr(0, func(i int) error {
		t.Error("fn must not be called for zero items")
		return nil
	}))
}
