package pricing

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decora-erp/decora-erp/internal/platform/httpx"
)

func newTestService(repo *mockRepository) *Service {
	return NewService(repo, nil, slog.Default())
}

func TestCreatePriceListRequiresName(t *testing.T) {
	s := newTestService(newMockRepository())
	_, err := s.CreatePriceList(context.Background(), PriceList{Name: "  "})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestDeletePriceListCascades(t *testing.T) {
	repo := newMockRepository()
	pl, err := repo.CreatePriceList(context.Background(), PriceList{Name: "Global"})
	require.NoError(t, err)
	item, err := repo.CreateItem(context.Background(), PriceListItem{PriceListID: pl.ID, ProductID: 10, Price: 100})
	require.NoError(t, err)

	s := newTestService(repo)
	require.NoError(t, s.DeletePriceList(context.Background(), pl.ID))

	_, err = repo.GetPriceList(context.Background(), pl.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
	_, err = repo.GetItem(context.Background(), item.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdateItemPriceChecksRowVersion(t *testing.T) {
	repo := newMockRepository()
	item, err := repo.CreateItem(context.Background(), PriceListItem{PriceListID: 1, ProductID: 10, Price: 100, RowVersion: "v1"})
	require.NoError(t, err)

	s := newTestService(repo)
	_, err = s.UpdateItemPrice(context.Background(), item.ID, 120, "stale")
	assert.ErrorIs(t, err, httpx.ErrConflict)

	next, err := s.UpdateItemPrice(context.Background(), item.ID, 120, "v1")
	require.NoError(t, err)
	assert.NotEqual(t, "v1", next, "update must rotate the concurrency token")

	updated, err := repo.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.Price)
}

func TestAdjustPricesRejectsFullWipe(t *testing.T) {
	repo := newMockRepository()
	pl, _ := repo.CreatePriceList(context.Background(), PriceList{Name: "Global"})

	s := newTestService(repo)
	_, err := s.AdjustPrices(context.Background(), pl.ID, -100)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, _ = repo.CreateItem(context.Background(), PriceListItem{PriceListID: pl.ID, ProductID: 10, Price: 100})
	n, err := s.AdjustPrices(context.Background(), pl.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSyncCatalogRequiresLinkedProductType(t *testing.T) {
	repo := newMockRepository()
	pl, _ := repo.CreatePriceList(context.Background(), PriceList{Name: "Unlinked"})

	s := newTestService(repo)
	_, err := s.SyncCatalog(context.Background(), pl.ID)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	typeID := int64(5)
	linked, _ := repo.CreatePriceList(context.Background(), PriceList{Name: "Curtains", ProductTypeID: &typeID})
	repo.synced = 12
	n, err := s.SyncCatalog(context.Background(), linked.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}

func TestAddDiscountValidation(t *testing.T) {
	repo := newMockRepository()
	item, _ := repo.CreateItem(context.Background(), PriceListItem{PriceListID: 1, ProductID: 10, Price: 100})
	s := newTestService(repo)
	now := time.Now()

	_, err := s.AddDiscount(context.Background(), Discount{PriceListItemID: item.ID, Price: 0, Priority: 1, ValidFrom: now, ValidUntil: now})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = s.AddDiscount(context.Background(), Discount{PriceListItemID: item.ID, Price: 80, Priority: 0, ValidFrom: now, ValidUntil: now})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = s.AddDiscount(context.Background(), Discount{PriceListItemID: item.ID, Price: 80, Priority: 1, ValidFrom: now, ValidUntil: now.Add(-time.Hour)})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	d, err := s.AddDiscount(context.Background(), Discount{PriceListItemID: item.ID, Price: 80, Priority: 1, ValidFrom: now, ValidUntil: now.Add(24 * time.Hour)})
	require.NoError(t, err)
	assert.NotZero(t, d.ID)
}

func TestAddRangeByLengthRejectsOverlap(t *testing.T) {
	repo := newMockRepository()
	item, _ := repo.CreateItem(context.Background(), PriceListItem{PriceListID: 1, ProductID: 10})
	s := newTestService(repo)

	_, err := s.AddRangeByLength(context.Background(), RangeByLength{PriceListItemID: item.ID, Min: 1.00, Max: 1.59, Price: 7000})
	require.NoError(t, err)

	// Touching the existing upper bound is an overlap: bounds are inclusive.
	_, err = s.AddRangeByLength(context.Background(), RangeByLength{PriceListItemID: item.ID, Min: 1.59, Max: 2.00, Price: 7500})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = s.AddRangeByLength(context.Background(), RangeByLength{PriceListItemID: item.ID, Min: 1.60, Max: 2.00, Price: 7500})
	require.NoError(t, err)

	_, err = s.AddRangeByLength(context.Background(), RangeByLength{PriceListItemID: item.ID, Min: 2.50, Max: 2.00, Price: 8000})
	assert.ErrorIs(t, err, httpx.ErrValidation, "inverted bounds")
}

func TestSetCurtainConfigValidation(t *testing.T) {
	repo := newMockRepository()
	item, _ := repo.CreateItem(context.Background(), PriceListItem{PriceListID: 1, ProductID: 10})
	s := newTestService(repo)

	base := CurtainPricingConfig{PriceListItemID: item.ID, BasePrice: 100, TaxPercent: 16, PricingType: PricingTypeNormal}

	bad := base
	bad.BasePrice = 0
	_, err := s.SetCurtainConfig(context.Background(), bad)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	bad = base
	bad.PricingType = "WEIRD"
	_, err = s.SetCurtainConfig(context.Background(), bad)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	bad = base
	bad.Margins = map[int]float64{45: 50}
	_, err = s.SetCurtainConfig(context.Background(), bad)
	assert.ErrorIs(t, err, httpx.ErrValidation, "height bucket index past the grid")

	bad = base
	bad.PricingType = PricingTypeSpecial
	bad.Margins = map[int]float64{6: 50}
	_, err = s.SetCurtainConfig(context.Background(), bad)
	assert.ErrorIs(t, err, httpx.ErrValidation, "special grid has only six height buckets")

	good := base
	good.Margins = map[int]float64{0: 60, 44: 40}
	cfg, err := s.SetCurtainConfig(context.Background(), good)
	require.NoError(t, err)
	assert.NotZero(t, cfg.ID)
}

func TestGenerateMatrixReplacesRangeRows(t *testing.T) {
	repo := newMockRepository()
	item, _ := repo.CreateItem(context.Background(), PriceListItem{PriceListID: 1, ProductID: 10})
	repo.configs[item.ID] = CurtainPricingConfig{
		PriceListItemID: item.ID,
		BasePrice:       100,
		TaxPercent:      16,
		PricingType:     PricingTypeSpecial,
		Margins:         map[int]float64{0: 60},
	}
	repo.dimRows[item.ID] = []RangeByDimensions{{Price: 1}} // stale rows

	s := newTestService(repo)
	n, err := s.GenerateMatrix(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, len(SpecialLengthBuckets)*len(WidthBuckets), n)
	assert.Len(t, repo.dimRows[item.ID], n, "old rows fully replaced")
}

func TestSaveMatrixValidatesBuckets(t *testing.T) {
	repo := newMockRepository()
	item, _ := repo.CreateItem(context.Background(), PriceListItem{PriceListID: 1, ProductID: 10})
	s := newTestService(repo)

	_, err := s.SaveMatrix(context.Background(), item.ID, PricingTypeNormal, map[BucketKey]float64{
		{Width: 29, Height: 0}: 100,
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = s.SaveMatrix(context.Background(), item.ID, PricingTypeSpecial, map[BucketKey]float64{
		{Width: 0, Height: 6}: 100,
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	n, err := s.SaveMatrix(context.Background(), item.ID, PricingTypeNormal, map[BucketKey]float64{
		{Width: 2, Height: 0}:  7500,
		{Width: 2, Height: 10}: 8200,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, repo.dimRows[item.ID], 2)
}
