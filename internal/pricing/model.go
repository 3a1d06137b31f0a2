package pricing

import "time"

// PricingType selects the bucket grid used for generated curtain price
// matrices: Normal uses the 45 LengthBuckets, Special the 6
// SpecialLengthBuckets.
type PricingType string

const (
	PricingTypeNormal  PricingType = "NORMAL"
	PricingTypeSpecial PricingType = "SPECIAL"
)

// HeightBuckets returns the bucket table this pricing type classifies
// heights against.
func (t PricingType) HeightBuckets() []Range {
	if t == PricingTypeSpecial {
		return SpecialLengthBuckets
	}
	return LengthBuckets
}

// PriceList is a named table of prices, optionally scoped to one store
// (nil StoreID = global fallback for all stores) and optionally linked to
// one product type, which drives catalog sync of member items.
type PriceList struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	StoreID       *int64    `json:"store_id,omitempty"`
	ProductTypeID *int64    `json:"product_type_id,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PriceListItem is one row per (price list, product, variant). RowVersion
// is the optimistic concurrency token: updates carrying a stale token are
// rejected, never merged.
type PriceListItem struct {
	ID          int64     `json:"id"`
	PriceListID int64     `json:"price_list_id"`
	ProductID   int64     `json:"product_id"`
	VariantID   *int64    `json:"variant_id,omitempty"`
	Price       float64   `json:"price"`
	RowVersion  string    `json:"row_version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Discounts []Discount `json:"discounts,omitempty"`
}

// GetBasePrice returns the undiscounted unit price.
func (i PriceListItem) GetBasePrice() float64 {
	return i.Price
}

// GetFinalPrice returns the active discounted price as of the given
// instant, or the base price when no discount window contains it.
func (i PriceListItem) GetFinalPrice(asOf time.Time) float64 {
	if d, ok := ResolveDiscount(i.Discounts, asOf); ok {
		return d.Price
	}
	return i.Price
}

// Discount is a time-bounded discounted price on a price list item.
// Lower Priority wins (1 = highest precedence). The validity window is
// inclusive on both ends.
type Discount struct {
	ID              int64     `json:"id"`
	PriceListItemID int64     `json:"price_list_item_id"`
	Price           float64   `json:"price"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidUntil      time.Time `json:"valid_until"`
	Priority        int       `json:"priority"`
	CreatedAt       time.Time `json:"created_at"`
}

// ActiveAt reports whether the inclusive validity window contains the
// instant.
func (d Discount) ActiveAt(asOf time.Time) bool {
	return !asOf.Before(d.ValidFrom) && !asOf.After(d.ValidUntil)
}

// RangeByLength is a (min, max, price) row on a price list item, the 1-D
// analogue of RangeByDimensions. Rows of one item must not overlap; the
// service enforces that at write time.
type RangeByLength struct {
	ID              int64   `json:"id"`
	PriceListItemID int64   `json:"price_list_item_id"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	Price           float64 `json:"price"`
}

// IsInRange reports whether the length falls within the inclusive bounds.
func (r RangeByLength) IsInRange(length float64) bool {
	return length >= r.Min && length <= r.Max
}

// RangeByDimensions prices a rectangular dimension window on a price list
// item. A point is in range iff both dimensions fall within their
// respective inclusive bounds.
type RangeByDimensions struct {
	ID              int64   `json:"id"`
	PriceListItemID int64   `json:"price_list_item_id"`
	MinWidth        float64 `json:"min_width"`
	MaxWidth        float64 `json:"max_width"`
	MinHeight       float64 `json:"min_height"`
	MaxHeight       float64 `json:"max_height"`
	Price           float64 `json:"price"`
}

// IsInRange reports whether the point (width, height) falls within both
// inclusive bounds.
func (r RangeByDimensions) IsInRange(width, height float64) bool {
	return width >= r.MinWidth && width <= r.MaxWidth &&
		height >= r.MinHeight && height <= r.MaxHeight
}

// CurtainPricingConfig holds the inputs the curtain matrix generator
// derives RangeByDimensions rows from. One-to-one with a price list item;
// it is never consulted at quote time directly.
type CurtainPricingConfig struct {
	ID              int64           `json:"id"`
	PriceListItemID int64           `json:"price_list_item_id"`
	BasePrice       float64         `json:"base_price"`
	TaxPercent      float64         `json:"tax_percent"`
	PricingType     PricingType     `json:"pricing_type"`
	Margins         map[int]float64 `json:"margins"` // height bucket index -> profit margin percent
}
