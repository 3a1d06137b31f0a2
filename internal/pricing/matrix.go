package pricing

import "math"

// BucketKey addresses one cell of a generated price matrix.
type BucketKey struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GenerateCurtainMatrix derives the full price matrix for a curtain
// config. Per cell:
//
//	price = round2(basePrice * fabricUsage(w,h) * (1 + margin[h]/100) * (1 + taxPercent/100))
//
// The profit margin varies only by height bucket. Rounding is half-up to
// two decimals, applied once at the end. The same inputs always yield the
// same matrix.
func GenerateCurtainMatrix(cfg CurtainPricingConfig) map[BucketKey]float64 {
	heights := cfg.PricingType.HeightBuckets()
	matrix := make(map[BucketKey]float64, len(heights)*len(WidthBuckets))
	for h := range heights {
		margin := cfg.Margins[h]
		for w := range WidthBuckets {
			usage, ok := FabricUsage(cfg.PricingType, w, h)
			if !ok {
				continue
			}
			matrix[BucketKey{Width: w, Height: h}] = cellPrice(cfg.BasePrice, usage, margin, cfg.TaxPercent)
		}
	}
	return matrix
}

// MatrixToRanges converts matrix cells into RangeByDimensions rows for
// the given price list item, taking each row's bounds from the cell's
// bucket ranges. Saving the result replaces all existing rows of the item
// (full replace, not merge).
func MatrixToRanges(itemID int64, matrix map[BucketKey]float64, pricingType PricingType) []RangeByDimensions {
	heights := pricingType.HeightBuckets()
	rows := make([]RangeByDimensions, 0, len(matrix))
	for h := range heights {
		for w := range WidthBuckets {
			price, ok := matrix[BucketKey{Width: w, Height: h}]
			if !ok {
				continue
			}
			rows = append(rows, RangeByDimensions{
				PriceListItemID: itemID,
				MinWidth:        WidthBuckets[w].Min,
				MaxWidth:        WidthBuckets[w].Max,
				MinHeight:       heights[h].Min,
				MaxHeight:       heights[h].Max,
				Price:           price,
			})
		}
	}
	return rows
}

func cellPrice(basePrice, usage, marginPercent, taxPercent float64) float64 {
	return round2(basePrice * usage * (1 + marginPercent/100) * (1 + taxPercent/100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
