package pricing

import "time"

type CreatePriceListRequest struct {
	Name          string `json:"name" validate:"required,max=120"`
	StoreID       *int64 `json:"store_id,omitempty" validate:"omitempty,gt=0"`
	ProductTypeID *int64 `json:"product_type_id,omitempty" validate:"omitempty,gt=0"`
	IsActive      bool   `json:"is_active"`
}

type UpdatePriceListRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	StoreID  *int64 `json:"store_id,omitempty" validate:"omitempty,gt=0"`
	IsActive bool   `json:"is_active"`
}

type CreateItemRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	VariantID *int64  `json:"variant_id,omitempty" validate:"omitempty,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

type UpdateItemPriceRequest struct {
	Price      float64 `json:"price" validate:"gte=0"`
	RowVersion string  `json:"row_version" validate:"required"`
}

type AdjustPricesRequest struct {
	Percent float64 `json:"percent" validate:"required,gt=-100,lte=1000"`
}

type AddDiscountRequest struct {
	Price      float64   `json:"price" validate:"required,gt=0"`
	ValidFrom  time.Time `json:"valid_from" validate:"required"`
	ValidUntil time.Time `json:"valid_until" validate:"required"`
	Priority   int       `json:"priority" validate:"required,gte=1"`
}

type AddRangeByLengthRequest struct {
	Min   float64 `json:"min" validate:"gte=0"`
	Max   float64 `json:"max" validate:"required,gt=0"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

type CurtainConfigRequest struct {
	BasePrice   float64         `json:"base_price" validate:"required,gt=0"`
	TaxPercent  float64         `json:"tax_percent" validate:"gte=0,lte=100"`
	PricingType PricingType     `json:"pricing_type" validate:"required,oneof=NORMAL SPECIAL"`
	Margins     map[int]float64 `json:"margins" validate:"required"`
}

// MatrixCell is one sparse cell of the admin pricing grid.
type MatrixCell struct {
	Width  int     `json:"width" validate:"gte=0"`
	Height int     `json:"height" validate:"gte=0"`
	Price  float64 `json:"price" validate:"gte=0"`
}

type SaveMatrixRequest struct {
	PricingType PricingType  `json:"pricing_type" validate:"omitempty,oneof=NORMAL SPECIAL"`
	Cells       []MatrixCell `json:"cells" validate:"required,min=1,dive"`
}

// BucketTablesResponse exposes the fixed bucket tables so UIs can render
// range headers for the pricing grids.
type BucketTablesResponse struct {
	Width         []Range `json:"width"`
	Length        []Range `json:"length"`
	SpecialLength []Range `json:"special_length"`
}
