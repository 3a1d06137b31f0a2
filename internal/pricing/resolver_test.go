package pricing

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decora-erp/decora-erp/internal/catalog"
	"github.com/decora-erp/decora-erp/internal/platform/httpx"
)

// newTestResolver takes the Metrics interface so a nil argument stays a
// nil interface instead of a typed nil pointer.
func newTestResolver(repo *mockRepository, cat *mockCatalog, metrics Metrics) *Resolver {
	r := NewResolver(repo, cat, nil, metrics, slog.Default())
	r.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return r
}

func TestResolveRequiresProductAndStore(t *testing.T) {
	r := newTestResolver(newMockRepository(), newMockCatalog(), nil)
	_, err := r.Resolve(context.Background(), ResolveRequest{})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestResolvePerUnitFromStoreList(t *testing.T) {
	repo := newMockRepository()
	repo.modes[10] = catalog.PricingModePerUnit
	item := repo.setActiveItem(10, ptrInt64(3), nil, PriceListItem{PriceListID: 1, ProductID: 10, Price: 250})
	metrics := &mockMetrics{}

	r := newTestResolver(repo, newMockCatalog(), metrics)
	res, err := r.Resolve(context.Background(), ResolveRequest{ProductID: 10, StoreID: 3})
	require.NoError(t, err)
	assert.Equal(t, item.ID, res.PriceListItemID)
	assert.Equal(t, 250.0, res.UnitPrice)
	assert.Equal(t, 250.0, res.DiscountedPrice)
	assert.Equal(t, []string{"resolved"}, metrics.outcomes)
}

func TestResolveAppliesActiveDiscount(t *testing.T) {
	repo := newMockRepository()
	repo.modes[10] = catalog.PricingModePerUnit
	item := repo.setActiveItem(10, ptrInt64(3), nil, PriceListItem{PriceListID: 1, ProductID: 10, Price: 250})
	repo.discounts[item.ID] = []Discount{{
		PriceListItemID: item.ID,
		Price:           199,
		ValidFrom:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:      time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Priority:        1,
	}}

	r := newTestResolver(repo, newMockCatalog(), nil)
	res, err := r.Resolve(context.Background(), ResolveRequest{ProductID: 10, StoreID: 3})
	require.NoError(t, err)
	assert.Equal(t, 250.0, res.UnitPrice)
	assert.Equal(t, 199.0, res.DiscountedPrice)
}

func TestResolveCachedDiscountExpiresWithWindow(t *testing.T) {
	repo := newMockRepository()
	repo.modes[10] = catalog.PricingModePerUnit
	item := repo.setActiveItem(10, ptrInt64(3), nil, PriceListItem{PriceListID: 1, ProductID: 10, Price: 250})

	cache, mr := newTestCache(t)
	r := newTestResolver(repo, newMockCatalog(), nil)
	r.cache = cache

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	// Discount window closes ten seconds from now, well inside the cache TTL.
	repo.discounts[item.ID] = []Discount{{
		PriceListItemID: item.ID,
		Price:           199,
		ValidFrom:       now.Add(-time.Hour),
		ValidUntil:      now.Add(10 * time.Second),
		Priority:        1,
	}}

	req := ResolveRequest{ProductID: 10, StoreID: 3}
	res, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 199.0, res.DiscountedPrice)

	// Past the window edge the entry must be gone, and a fresh resolution
	// yields the undiscounted price.
	mr.FastForward(11 * time.Second)
	now = now.Add(11 * time.Second)

	res, err = r.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 250.0, res.DiscountedPrice)
}

func TestNextDiscountBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	open := Discount{ValidFrom: now.Add(-time.Hour), ValidUntil: now.Add(10 * time.Second)}
	upcoming := Discount{ValidFrom: now.Add(5 * time.Second), ValidUntil: now.Add(time.Hour)}
	past := Discount{ValidFrom: now.Add(-2 * time.Hour), ValidUntil: now.Add(-time.Hour)}

	assert.Nil(t, NextDiscountBoundary(nil, now))
	assert.Nil(t, NextDiscountBoundary([]Discount{past}, now))

	edge := NextDiscountBoundary([]Discount{open}, now)
	require.NotNil(t, edge)
	assert.Equal(t, now.Add(10*time.Second), *edge)

	// The earliest future edge wins, here the window about to open.
	edge = NextDiscountBoundary([]Discount{open, upcoming, past}, now)
	require.NotNil(t, edge)
	assert.Equal(t, now.Add(5*time.Second), *edge)
}

func TestResolveFallsBackToGlobalList(t *testing.T) {
	repo := newMockRepository()
	repo.modes[10] = catalog.PricingModePerUnit
	global := repo.setActiveItem(10, nil, nil, PriceListItem{PriceListID: 2, ProductID: 10, Price: 300})

	r := newTestResolver(repo, newMockCatalog(), nil)
	res, err := r.Resolve(context.Background(), ResolveRequest{ProductID: 10, StoreID: 3})
	require.NoError(t, err)
	assert.Equal(t, global.ID, res.PriceListItemID)
	assert.Equal(t, 300.0, res.UnitPrice)
}

func TestResolveZeroPricedStoreItemFallsBack(t *testing.T) {
	repo := newMockRepository()
	repo.modes[10] = catalog.PricingModePerUnit
	repo.setActiveItem(10, ptrInt64(3), nil, PriceListItem{PriceListID: 1, ProductID: 10, Price: 0})
	global := repo.setActiveItem(10, nil, nil, PriceListItem{PriceListID: 2, ProductID: 10, Price: 180})

	r := newTestResolver(repo, newMockCatalog(), nil)
	res, err := r.Resolve(context.Background(), ResolveRequest{ProductID: 10, StoreID: 3})
	require.NoError(t, err)
	assert.Equal(t, global.ID, res.PriceListItemID)
	assert.Equal(t, 180.0, res.UnitPrice)
}

func TestResolveNotConfigured(t *testing.T) {
	repo := newMockRepository()
	metrics := &mockMetrics{}

	r := newTestResolver(repo, newMockCatalog(), metrics)
	_, err := r.Resolve(context.Background(), ResolveRequest{ProductID: 99, StoreID: 3})
	assert.ErrorIs(t, err, httpx.ErrNotConfigured)
	assert.Equal(t, []string{"not_configured"}, metrics.outcomes)
}

func TestResolvePerRangeLength(t *testing.T) {
	repo := newMockRepository()
	repo.modes[10] = catalog.PricingModePerRangeLength
	item := repo.setActiveItem(10, ptrInt64(3), nil, PriceListItem{PriceListID: 1, ProductID: 10, Price: 0})
	repo.lengthRows[item.ID] = []RangeByLength{
		{PriceListItemID: item.ID, Min: 1.00, Max: 1.59, Price: 7000},
		{PriceListItemID: item.ID, Min: 1.60, Max: 2.00, Price: 7500},
	}

	r := newTestResolver(repo, newMockCatalog(), nil)

	// Inclusive upper bound of the first row.
	res, err := r.Resolve(context.Background(), ResolveRequest{ProductID: 10, StoreID: 3, Width: ptrFloat64(1.59)})
	require.NoError(t, err)
	assert.Equal(t, 7000.0, res.UnitPrice)
	assert.Equal(t, 7000.0, res.DiscountedPrice, "range rows carry one final price")

	// One centimeter up crosses into the second row.
	res, err = r.Resolve(context.Background(), ResolveRequest{ProductID: 10, StoreID: 3, Width: ptrFloat64(1.60)})
	require.NoError(t, err)
	assert.Equal(t, 7500.0, res.UnitPrice)
}

func TestResolvePerRangeLengthOutOfRange(t *testing.T) {
	repo := newMockRepository()
	repo.modes[10] = catalog.PricingModePerRangeLength
	item := repo.setActiveItem(10, ptrInt64(3), nil, PriceListItem{PriceListID: 1, ProductID: 10, Price: 0})
	repo.lengthRows[item.ID] = []RangeByLength{{PriceListItemID: item.ID, Min: 1.00, Max: 2.00, Price: 7000}}
	metrics := &mockMetrics{}

	r := newTestResolver(repo, newMockCatalog(), metrics)
	_, err := r.Resolve(context.Background(), ResolveRequest{ProductID: 10, StoreID: 3, Width: ptrFloat64(2.50)})
	assert.ErrorIs(t, err, httpx.ErrOutOfRange)
	assert.Equal(t, []string{"out_of_range"}, metrics.outcomes)
}

func TestResolvePerRangeLengthWithoutWidthUsesBasePrice(t *testing.T) {
	repo := newMockRepository()
	repo.modes[10] = catalog.PricingModePerRangeLength
	repo.setActiveItem(10, ptrInt64(3), nil, PriceListItem{PriceListID: 1, ProductID: 10, Price: 120})

	r := newTestResolver(repo, newMockCatalog(), nil)
	res, err := r.Resolve(context.Background(), ResolveRequest{ProductID: 10, StoreID: 3})
	require.NoError(t, err)
	assert.Equal(t, 120.0, res.UnitPrice)
}

func TestResolvePerRangeDimensions(t *testing.T) {
	repo := newMockRepository()
	repo.modes[10] = catalog.PricingModePerRangeDimensions
	item := repo.setActiveItem(10, ptrInt64(3), nil, PriceListItem{PriceListID: 1, ProductID: 10, Price: 0})
	repo.dimRows[item.ID] = []RangeByDimensions{
		{MinWidth: 1.60, MaxWidth: 1.79, MinHeight: 2.00, MaxHeight: 2.09, Price: 9800},
	}

	r := newTestResolver(repo, newMockCatalog(), nil)
	res, err := r.Resolve(context.Background(), ResolveRequest{
		ProductID: 10, StoreID: 3,
		Width: ptrFloat64(1.70), Height: ptrFloat64(2.05),
	})
	require.NoError(t, err)
	assert.Equal(t, 9800.0, res.UnitPrice)

	// Both dimensions are mandatory for this mode.
	_, err = r.Resolve(context.Background(), ResolveRequest{ProductID: 10, StoreID: 3, Width: ptrFloat64(1.70)})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = r.Resolve(context.Background(), ResolveRequest{
		ProductID: 10, StoreID: 3,
		Width: ptrFloat64(5.0), Height: ptrFloat64(5.0),
	})
	assert.ErrorIs(t, err, httpx.ErrOutOfRange)
}

func TestResolveFillsVariantAndHeadingStyleNames(t *testing.T) {
	repo := newMockRepository()
	repo.modes[10] = catalog.PricingModePerUnit
	repo.setActiveItem(10, ptrInt64(3), ptrInt64(7), PriceListItem{PriceListID: 1, ProductID: 10, VariantID: ptrInt64(7), Price: 400})
	cat := newMockCatalog()
	cat.variants[7] = catalog.Variant{ID: 7, Name: "3-way"}
	cat.styles[4] = catalog.HeadingStyle{ID: 4, Name: "Wave"}

	r := newTestResolver(repo, cat, nil)
	res, err := r.Resolve(context.Background(), ResolveRequest{
		ProductID: 10, StoreID: 3,
		VariantID: ptrInt64(7), HeadingStyleID: ptrInt64(4),
	})
	require.NoError(t, err)
	require.NotNil(t, res.VariantName)
	assert.Equal(t, "3-way", *res.VariantName)
	require.NotNil(t, res.HeadingStyleName)
	assert.Equal(t, "Wave", *res.HeadingStyleName)
}
