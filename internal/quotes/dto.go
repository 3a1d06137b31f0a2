package quotes

import "time"

// QuotationItemRequest deliberately has no price fields: prices are
// resolved server-side from the authoritative store/product/variant and
// dimensions, never accepted from the client.
type QuotationItemRequest struct {
	ProductID      int64    `json:"product_id" validate:"required,gt=0"`
	ProductColorID *int64   `json:"product_color_id,omitempty"`
	VariantID      *int64   `json:"variant_id,omitempty"`
	HeadingStyleID *int64   `json:"heading_style_id,omitempty"`
	Quantity       float64  `json:"quantity" validate:"required,gt=0"`
	Width          *float64 `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height         *float64 `json:"height,omitempty" validate:"omitempty,gt=0"`
}

type CreateQuotationRequest struct {
	StoreID               int64                  `json:"store_id" validate:"required,gt=0"`
	ContactID             int64                  `json:"contact_id" validate:"required,gt=0"`
	ValidUntil            time.Time              `json:"valid_until" validate:"required"`
	GlobalDiscountPercent float64                `json:"global_discount_percent" validate:"gte=0,lte=100"`
	ShippingCost          float64                `json:"shipping_cost" validate:"gte=0"`
	Notes                 *string                `json:"notes,omitempty"`
	DeliveryName          string                 `json:"delivery_name" validate:"required"`
	DeliveryStreet        string                 `json:"delivery_street"`
	DeliveryCity          string                 `json:"delivery_city"`
	DeliveryPostalCode    string                 `json:"delivery_postal_code"`
	DeliveryCountry       string                 `json:"delivery_country"`
	Items                 []QuotationItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateQuotationRequest struct {
	ContactID             *int64                  `json:"contact_id,omitempty" validate:"omitempty,gt=0"`
	ValidUntil            *time.Time              `json:"valid_until,omitempty"`
	GlobalDiscountPercent *float64                `json:"global_discount_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	ShippingCost          *float64                `json:"shipping_cost,omitempty" validate:"omitempty,gte=0"`
	Notes                 *string                 `json:"notes,omitempty"`
	Items                 *[]QuotationItemRequest `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	RowVersion            string                  `json:"row_version" validate:"required"`
}

type RejectQuotationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

type ListQuotationsRequest struct {
	StoreID   *int64
	ContactID *int64
	Status    *QuotationStatus
	Search    string
	Limit     int
	Offset    int
}

// QuotationResponse adds derived display fields to the stored record.
type QuotationResponse struct {
	Quotation
	EffectiveStatus QuotationStatus `json:"effective_status"`
	Subtotal        float64         `json:"subtotal"`
	DiscountAmount  float64         `json:"discount_amount"`
	Total           float64         `json:"total"`
	TotalDisplay    string          `json:"total_display"`
}

func NewQuotationResponse(q Quotation, now time.Time) QuotationResponse {
	total := q.GetTotal()
	return QuotationResponse{
		Quotation:       q,
		EffectiveStatus: q.EffectiveStatus(now),
		Subtotal:        q.GetSubtotal(),
		DiscountAmount:  q.GetDiscountAmount(),
		Total:           total,
		TotalDisplay:    FormatAmount(total),
	}
}
