package catalog

import "time"

// PricingMode determines how a product type's prices are resolved.
type PricingMode string

const (
	PricingModePerUnit            PricingMode = "PER_UNIT"
	PricingModePerSquareMeter     PricingMode = "PER_SQUARE_METER"
	PricingModePerLinearMeter     PricingMode = "PER_LINEAR_METER"
	PricingModePerRangeLength     PricingMode = "PER_RANGE_LENGTH"
	PricingModePerRangeDimensions PricingMode = "PER_RANGE_DIMENSIONS"
)

// Valid reports whether the mode is one of the known pricing modes.
func (m PricingMode) Valid() bool {
	switch m {
	case PricingModePerUnit, PricingModePerSquareMeter, PricingModePerLinearMeter,
		PricingModePerRangeLength, PricingModePerRangeDimensions:
		return true
	}
	return false
}

// RequiresDimensions reports whether price resolution for this mode
// consults range tables.
func (m PricingMode) RequiresDimensions() bool {
	return m == PricingModePerRangeLength || m == PricingModePerRangeDimensions
}

// ProductType is a catalog category (e.g. "Blind", "Curtain"). Its
// PricingMode is immutable once price list items reference products of
// this type; changing it would invalidate existing range tables.
type ProductType struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	PricingMode PricingMode `json:"pricing_mode"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Variants      []Variant      `json:"variants,omitempty"`
	HeadingStyles []HeadingStyle `json:"heading_styles,omitempty"`
}

// Variant is an ordered option of a product type (e.g. "3-way", "4-way").
type Variant struct {
	ID            int64  `json:"id"`
	ProductTypeID int64  `json:"product_type_id"`
	Name          string `json:"name"`
	Position      int    `json:"position"`
}

// HeadingStyle is an ordered curtain heading option of a product type.
type HeadingStyle struct {
	ID            int64  `json:"id"`
	ProductTypeID int64  `json:"product_type_id"`
	Name          string `json:"name"`
	Position      int    `json:"position"`
}

// Product belongs to exactly one ProductType and is optionally scoped to
// a single store (nil StoreID = global, available to all stores).
type Product struct {
	ID            int64     `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	ProductTypeID int64     `json:"product_type_id"`
	StoreID       *int64    `json:"store_id,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductColor is a selectable color swatch of a product.
type ProductColor struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
}
