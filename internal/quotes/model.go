package quotes

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "DRAFT"
	QuotationStatusSent     QuotationStatus = "SENT"
	QuotationStatusAccepted QuotationStatus = "ACCEPTED"
	QuotationStatusRejected QuotationStatus = "REJECTED"
	QuotationStatusExpired  QuotationStatus = "EXPIRED"
)

type Quotation struct {
	ID                    int64           `json:"id" db:"id"`
	Number                string          `json:"number" db:"number"`
	StoreID               int64           `json:"store_id" db:"store_id"`
	ContactID             int64           `json:"contact_id" db:"contact_id"`
	Status                QuotationStatus `json:"status" db:"status"`
	GlobalDiscountPercent float64         `json:"global_discount_percent" db:"global_discount_percent"`
	ShippingCost          float64         `json:"shipping_cost" db:"shipping_cost"`
	ValidUntil            time.Time       `json:"valid_until" db:"valid_until"`
	Notes                 *string         `json:"notes,omitempty" db:"notes"`

	// Delivery address is copied onto the quotation at creation; it does
	// not follow later edits to the contact.
	DeliveryName       string `json:"delivery_name" db:"delivery_name"`
	DeliveryStreet     string `json:"delivery_street" db:"delivery_street"`
	DeliveryCity       string `json:"delivery_city" db:"delivery_city"`
	DeliveryPostalCode string `json:"delivery_postal_code" db:"delivery_postal_code"`
	DeliveryCountry    string `json:"delivery_country" db:"delivery_country"`

	// CreatedBy is the acting user at creation, taken from the identity
	// context; nil when the request carried no identity.
	CreatedBy *int64 `json:"created_by,omitempty" db:"created_by"`

	RowVersion string     `json:"row_version" db:"row_version"`
	SentAt     *time.Time `json:"sent_at,omitempty" db:"sent_at"`
	DecidedAt  *time.Time `json:"decided_at,omitempty" db:"decided_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`

	Items []QuotationItem `json:"items,omitempty" db:"-"`
}

// QuotationItem carries prices frozen at creation. UnitPrice and
// DiscountedPrice are never recomputed from live price lists; only the
// Variant/HeadingStyle display labels may be overwritten, once, when the
// quotation leaves Draft.
type QuotationItem struct {
	ID             int64     `json:"id" db:"id"`
	QuotationID    int64     `json:"quotation_id" db:"quotation_id"`
	ProductID      int64     `json:"product_id" db:"product_id"`
	ProductColorID *int64    `json:"product_color_id,omitempty" db:"product_color_id"`
	VariantID      *int64    `json:"variant_id,omitempty" db:"variant_id"`
	HeadingStyleID *int64    `json:"heading_style_id,omitempty" db:"heading_style_id"`
	Variant        *string   `json:"variant,omitempty" db:"variant"`
	HeadingStyle   *string   `json:"heading_style,omitempty" db:"heading_style"`
	Quantity       float64   `json:"quantity" db:"quantity"`
	Width          *float64  `json:"width,omitempty" db:"width"`
	Height         *float64  `json:"height,omitempty" db:"height"`
	UnitPrice      float64   `json:"unit_price" db:"unit_price"`
	DiscountedPrice float64  `json:"discounted_price" db:"discounted_price"`
	Position       int       `json:"position" db:"position"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

func (i QuotationItem) LineTotal() float64 {
	return i.DiscountedPrice * i.Quantity
}

func (q Quotation) GetSubtotal() float64 {
	var sum float64
	for _, item := range q.Items {
		sum += item.LineTotal()
	}
	return sum
}

func (q Quotation) GetDiscountAmount() float64 {
	return q.GetSubtotal() * q.GlobalDiscountPercent / 100
}

func (q Quotation) GetTotal() float64 {
	return q.GetSubtotal() - q.GetDiscountAmount() + q.ShippingCost
}

func (q Quotation) CanBeEdited() bool {
	return q.Status == QuotationStatusDraft
}

// IsExpired reports whether a sent quotation has passed its validity
// window. Expiry is derived; the stored status stays SENT until an
// explicit expire action.
func (q Quotation) IsExpired(now time.Time) bool {
	return q.Status == QuotationStatusSent && now.After(q.ValidUntil)
}

// EffectiveStatus is what displays and exports should show.
func (q Quotation) EffectiveStatus(now time.Time) QuotationStatus {
	if q.IsExpired(now) {
		return QuotationStatusExpired
	}
	return q.Status
}

var moneyPrinter = message.NewPrinter(language.English)

// FormatAmount renders a monetary value with thousand separators for
// display and PDF output, e.g. 1234567.5 -> "1,234,567.50".
func FormatAmount(v float64) string {
	return moneyPrinter.Sprintf("%.2f", v)
}
