package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/decora-erp/decora-erp/internal/testing/guard"
)

func TestBucketTableShapes(t *testing.T) {
	assert.Len(t, WidthBuckets, 29)
	assert.Len(t, LengthBuckets, 45)
	assert.Len(t, SpecialLengthBuckets, 6)
}

func TestBucketTablesAreOrderedAndDisjoint(t *testing.T) {
	for name, table := range map[string][]Range{
		"width":          WidthBuckets,
		"length":         LengthBuckets,
		"special length": SpecialLengthBuckets,
	} {
		for i, r := range table {
			require.LessOrEqual(t, r.Min, r.Max, "%s bucket %d inverted", name, i)
			if i > 0 {
				require.Greater(t, r.Min, table[i-1].Max, "%s bucket %d overlaps predecessor", name, i)
			}
		}
	}
}

func TestClassifyInclusiveBounds(t *testing.T) {
	// 1.59 is the top of bucket 1, 1.60 the bottom of bucket 2.
	assert.Equal(t, 1, Classify(1.59, WidthBuckets))
	assert.Equal(t, 2, Classify(1.60, WidthBuckets))
	assert.Equal(t, 0, Classify(0.0, WidthBuckets))
	assert.Equal(t, 0, Classify(1.39, WidthBuckets))
}

func TestClassifyClampsAboveLastBucket(t *testing.T) {
	assert.Equal(t, len(WidthBuckets)-1, Classify(25.0, WidthBuckets))
	assert.Equal(t, len(LengthBuckets)-1, Classify(12.0, LengthBuckets))
	assert.Equal(t, len(SpecialLengthBuckets)-1, Classify(3.10, SpecialLengthBuckets))
}

func TestClassifyClampsBelowFirstBucket(t *testing.T) {
	// LengthBuckets starts at 1.00; shorter drops use the first bucket.
	assert.Equal(t, 0, Classify(0.50, LengthBuckets))
	assert.Equal(t, 0, Classify(-1.0, WidthBuckets))
}

func TestClassifyGapFallsToLastBucket(t *testing.T) {
	// Measurements between neighbouring buckets (e.g. 1.395 between 1.39
	// and 1.40) never occur with two-decimal inputs, but centimeter inputs
	// are all covered.
	for v := 0.0; v <= 20.0; v += 0.01 {
		idx := Classify(v, WidthBuckets)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, len(WidthBuckets))
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Min: 1.40, Max: 1.59}
	assert.True(t, r.Contains(1.40))
	assert.True(t, r.Contains(1.59))
	assert.False(t, r.Contains(1.399))
	assert.False(t, r.Contains(1.60))
}
