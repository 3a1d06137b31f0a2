package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellPrice(t *testing.T) {
	// 100 * 2.8 * 1.60 * 1.16 = 519.68, rounded once at the end.
	assert.Equal(t, 519.68, cellPrice(100, 2.8, 60, 16))
	assert.Equal(t, 280.0, cellPrice(100, 2.8, 0, 0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, round2(1.234))
	assert.Equal(t, 1.24, round2(1.235))
	assert.Equal(t, -1.23, round2(-1.234))
}

func TestGenerateCurtainMatrixCoversFullGrid(t *testing.T) {
	cfg := CurtainPricingConfig{
		BasePrice:   100,
		TaxPercent:  10,
		PricingType: PricingTypeNormal,
		Margins:     map[int]float64{0: 50},
	}
	matrix := GenerateCurtainMatrix(cfg)
	assert.Len(t, matrix, len(LengthBuckets)*len(WidthBuckets))

	cfg.PricingType = PricingTypeSpecial
	matrix = GenerateCurtainMatrix(cfg)
	assert.Len(t, matrix, len(SpecialLengthBuckets)*len(WidthBuckets))
}

func TestGenerateCurtainMatrixIsDeterministic(t *testing.T) {
	cfg := CurtainPricingConfig{
		BasePrice:   125.5,
		TaxPercent:  16,
		PricingType: PricingTypeNormal,
		Margins:     map[int]float64{0: 60, 1: 55, 44: 40},
	}
	first := GenerateCurtainMatrix(cfg)
	second := GenerateCurtainMatrix(cfg)
	assert.Equal(t, first, second)
}

func TestGenerateCurtainMatrixAppliesPerHeightMargin(t *testing.T) {
	cfg := CurtainPricingConfig{
		BasePrice:   100,
		TaxPercent:  16,
		PricingType: PricingTypeNormal,
		Margins:     map[int]float64{0: 60},
	}
	matrix := GenerateCurtainMatrix(cfg)

	usage, ok := FabricUsage(PricingTypeNormal, 8, 0)
	require.True(t, ok)
	assert.Equal(t, cellPrice(100, usage, 60, 16), matrix[BucketKey{Width: 8, Height: 0}])

	// Height bucket 1 has no configured margin, so only usage and tax apply.
	usage, ok = FabricUsage(PricingTypeNormal, 8, 1)
	require.True(t, ok)
	assert.Equal(t, cellPrice(100, usage, 0, 16), matrix[BucketKey{Width: 8, Height: 1}])
}

func TestMatrixToRangesUsesBucketBounds(t *testing.T) {
	matrix := map[BucketKey]float64{
		{Width: 2, Height: 0}: 7500,
		{Width: 0, Height: 1}: 4200,
	}
	rows := MatrixToRanges(9, matrix, PricingTypeNormal)
	require.Len(t, rows, 2)

	byPrice := map[float64]RangeByDimensions{}
	for _, row := range rows {
		assert.Equal(t, int64(9), row.PriceListItemID)
		byPrice[row.Price] = row
	}

	row := byPrice[7500.0]
	assert.Equal(t, 1.60, row.MinWidth)
	assert.Equal(t, 1.79, row.MaxWidth)
	assert.Equal(t, 1.00, row.MinHeight)
	assert.Equal(t, 1.09, row.MaxHeight)

	row = byPrice[4200.0]
	assert.Equal(t, 0.00, row.MinWidth)
	assert.Equal(t, 1.39, row.MaxWidth)
	assert.Equal(t, 1.10, row.MinHeight)
	assert.Equal(t, 1.19, row.MaxHeight)
}

func TestMatrixToRangesSparse(t *testing.T) {
	rows := MatrixToRanges(1, map[BucketKey]float64{}, PricingTypeSpecial)
	assert.Empty(t, rows)
}
