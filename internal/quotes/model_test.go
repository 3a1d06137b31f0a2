package quotes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	_ "github.com/decora-erp/decora-erp/internal/testing/guard"
)

func TestQuotationTotals(t *testing.T) {
	q := Quotation{
		GlobalDiscountPercent: 10,
		ShippingCost:          50,
		Items: []QuotationItem{
			{Quantity: 2, UnitPrice: 250, DiscountedPrice: 199},
			{Quantity: 1, UnitPrice: 100, DiscountedPrice: 100},
		},
	}

	assert.InDelta(t, 398.0, q.Items[0].LineTotal(), 1e-9)
	assert.InDelta(t, 498.0, q.GetSubtotal(), 1e-9, "subtotal uses discounted prices")
	assert.InDelta(t, 49.8, q.GetDiscountAmount(), 1e-9)
	assert.InDelta(t, 498.0-49.8+50, q.GetTotal(), 1e-9)
}

func TestQuotationTotalsEmpty(t *testing.T) {
	q := Quotation{ShippingCost: 25}
	assert.Zero(t, q.GetSubtotal())
	assert.InDelta(t, 25.0, q.GetTotal(), 1e-9)
}

func TestCanBeEdited(t *testing.T) {
	assert.True(t, Quotation{Status: QuotationStatusDraft}.CanBeEdited())
	for _, status := range []QuotationStatus{
		QuotationStatusSent, QuotationStatusAccepted, QuotationStatusRejected, QuotationStatusExpired,
	} {
		assert.False(t, Quotation{Status: status}.CanBeEdited(), string(status))
	}
}

func TestIsExpiredAndEffectiveStatus(t *testing.T) {
	validUntil := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	before := validUntil.Add(-time.Hour)
	after := validUntil.Add(time.Hour)

	sent := Quotation{Status: QuotationStatusSent, ValidUntil: validUntil}
	assert.False(t, sent.IsExpired(before))
	assert.False(t, sent.IsExpired(validUntil), "the last day still counts")
	assert.True(t, sent.IsExpired(after))

	assert.Equal(t, QuotationStatusSent, sent.EffectiveStatus(before))
	assert.Equal(t, QuotationStatusExpired, sent.EffectiveStatus(after))

	// Expiry is a property of the SENT state only.
	draft := Quotation{Status: QuotationStatusDraft, ValidUntil: validUntil}
	assert.False(t, draft.IsExpired(after))
	assert.Equal(t, QuotationStatusDraft, draft.EffectiveStatus(after))

	accepted := Quotation{Status: QuotationStatusAccepted, ValidUntil: validUntil}
	assert.Equal(t, QuotationStatusAccepted, accepted.EffectiveStatus(after))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,234,567.50", FormatAmount(1234567.5))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "999.99", FormatAmount(999.99))
}

func TestNewQuotationResponse(t *testing.T) {
	now := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	q := Quotation{
		Status:     QuotationStatusSent,
		ValidUntil: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Items:      []QuotationItem{{Quantity: 1, DiscountedPrice: 1000}},
	}

	resp := NewQuotationResponse(q, now)
	assert.Equal(t, QuotationStatusExpired, resp.EffectiveStatus)
	assert.Equal(t, QuotationStatusSent, resp.Status, "stored status is untouched")
	assert.InDelta(t, 1000.0, resp.Total, 1e-9)
	assert.Equal(t, "1,000.00", resp.TotalDisplay)
}
