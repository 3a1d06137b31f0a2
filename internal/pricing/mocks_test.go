package pricing

import (
	"context"
	"fmt"

	"github.com/decora-erp/decora-erp/internal/catalog"
	"github.com/decora-erp/decora-erp/internal/platform/httpx"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	priceLists map[int64]PriceList
	items      map[int64]PriceListItem
	// active item per (productID, storeID-or-0, variantID-or-0)
	activeItems map[string]*PriceListItem
	discounts   map[int64][]Discount
	lengthRows  map[int64][]RangeByLength
	dimRows     map[int64][]RangeByDimensions
	configs     map[int64]CurtainPricingConfig
	modes       map[int64]catalog.PricingMode
	nextID      int64

	txError       error
	findItemError error
	adjusted      int
	synced        int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		priceLists:  make(map[int64]PriceList),
		items:       make(map[int64]PriceListItem),
		activeItems: make(map[string]*PriceListItem),
		discounts:   make(map[int64][]Discount),
		lengthRows:  make(map[int64][]RangeByLength),
		dimRows:     make(map[int64][]RangeByDimensions),
		configs:     make(map[int64]CurtainPricingConfig),
		modes:       make(map[int64]catalog.PricingMode),
		nextID:      1,
	}
}

func activeKey(productID int64, storeID, variantID *int64) string {
	s, v := int64(0), int64(0)
	if storeID != nil {
		s = *storeID
	}
	if variantID != nil {
		v = *variantID
	}
	return fmt.Sprintf("%d:%d:%d", productID, s, v)
}

func (m *mockRepository) setActiveItem(productID int64, storeID, variantID *int64, item PriceListItem) PriceListItem {
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	m.activeItems[activeKey(productID, storeID, variantID)] = &item
	return item
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	if m.txError != nil {
		return m.txError
	}
	return fn(ctx, m)
}

func (m *mockRepository) ListPriceLists(ctx context.Context, filters ListFilters) ([]PriceList, error) {
	var out []PriceList
	for _, pl := range m.priceLists {
		out = append(out, pl)
	}
	return out, nil
}

func (m *mockRepository) GetPriceList(ctx context.Context, id int64) (PriceList, error) {
	pl, ok := m.priceLists[id]
	if !ok {
		return PriceList{}, httpx.ErrNotFound
	}
	return pl, nil
}

func (m *mockRepository) CreatePriceList(ctx context.Context, pl PriceList) (PriceList, error) {
	pl.ID = m.nextID
	m.nextID++
	m.priceLists[pl.ID] = pl
	return pl, nil
}

func (m *mockRepository) UpdatePriceList(ctx context.Context, id int64, pl PriceList) error {
	if _, ok := m.priceLists[id]; !ok {
		return httpx.ErrNotFound
	}
	pl.ID = id
	m.priceLists[id] = pl
	return nil
}

func (m *mockRepository) DeletePriceListChildren(ctx context.Context, listID int64) error {
	for id, item := range m.items {
		if item.PriceListID == listID {
			delete(m.items, id)
			delete(m.discounts, id)
			delete(m.lengthRows, id)
			delete(m.dimRows, id)
		}
	}
	return nil
}

func (m *mockRepository) DeletePriceList(ctx context.Context, id int64) error {
	delete(m.priceLists, id)
	return nil
}

func (m *mockRepository) FindActiveItem(ctx context.Context, productID int64, storeID *int64, variantID *int64) (*PriceListItem, error) {
	if m.findItemError != nil {
		return nil, m.findItemError
	}
	item, ok := m.activeItems[activeKey(productID, storeID, variantID)]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	clone := *item
	clone.Discounts = m.discounts[item.ID]
	return &clone, nil
}

func (m *mockRepository) GetItem(ctx context.Context, id int64) (PriceListItem, error) {
	item, ok := m.items[id]
	if !ok {
		return PriceListItem{}, httpx.ErrNotFound
	}
	item.Discounts = m.discounts[id]
	return item, nil
}

func (m *mockRepository) ListItems(ctx context.Context, listID int64) ([]PriceListItem, error) {
	var out []PriceListItem
	for _, item := range m.items {
		if item.PriceListID == listID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockRepository) CreateItem(ctx context.Context, item PriceListItem) (PriceListItem, error) {
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return item, nil
}

func (m *mockRepository) UpdateItemPrice(ctx context.Context, id int64, price float64, rowVersion string) (string, error) {
	item, ok := m.items[id]
	if !ok {
		return "", httpx.ErrNotFound
	}
	if item.RowVersion != rowVersion {
		return "", httpx.ErrConflict
	}
	item.Price = price
	item.RowVersion = rowVersion + "+1"
	m.items[id] = item
	return item.RowVersion, nil
}

func (m *mockRepository) DeleteItemChildren(ctx context.Context, itemID int64) error {
	delete(m.discounts, itemID)
	delete(m.lengthRows, itemID)
	delete(m.dimRows, itemID)
	return nil
}

func (m *mockRepository) DeleteItem(ctx context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func (m *mockRepository) AdjustItemPrices(ctx context.Context, listID int64, percent float64) (int, error) {
	n := 0
	for id, item := range m.items {
		if item.PriceListID == listID {
			item.Price = item.Price * (1 + percent/100)
			m.items[id] = item
			n++
		}
	}
	m.adjusted = n
	return n, nil
}

func (m *mockRepository) SyncCatalogItems(ctx context.Context, listID, productTypeID int64) (int, error) {
	return m.synced, nil
}

func (m *mockRepository) ListDiscounts(ctx context.Context, itemID int64) ([]Discount, error) {
	return m.discounts[itemID], nil
}

func (m *mockRepository) AddDiscount(ctx context.Context, d Discount) (Discount, error) {
	d.ID = m.nextID
	m.nextID++
	m.discounts[d.PriceListItemID] = append(m.discounts[d.PriceListItemID], d)
	return d, nil
}

func (m *mockRepository) DeleteDiscount(ctx context.Context, id int64) error {
	for itemID, list := range m.discounts {
		for i, d := range list {
			if d.ID == id {
				m.discounts[itemID] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return httpx.ErrNotFound
}

func (m *mockRepository) ListRangesByLength(ctx context.Context, itemID int64) ([]RangeByLength, error) {
	return m.lengthRows[itemID], nil
}

func (m *mockRepository) AddRangeByLength(ctx context.Context, row RangeByLength) (RangeByLength, error) {
	row.ID = m.nextID
	m.nextID++
	m.lengthRows[row.PriceListItemID] = append(m.lengthRows[row.PriceListItemID], row)
	return row, nil
}

func (m *mockRepository) DeleteRangeByLength(ctx context.Context, id int64) error {
	for itemID, list := range m.lengthRows {
		for i, row := range list {
			if row.ID == id {
				m.lengthRows[itemID] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return httpx.ErrNotFound
}

func (m *mockRepository) ListRangesByDimensions(ctx context.Context, itemID int64) ([]RangeByDimensions, error) {
	return m.dimRows[itemID], nil
}

func (m *mockRepository) ReplaceRangesByDimensions(ctx context.Context, itemID int64, rows []RangeByDimensions) error {
	m.dimRows[itemID] = rows
	return nil
}

func (m *mockRepository) GetCurtainConfig(ctx context.Context, itemID int64) (CurtainPricingConfig, error) {
	cfg, ok := m.configs[itemID]
	if !ok {
		return CurtainPricingConfig{}, httpx.ErrNotFound
	}
	return cfg, nil
}

func (m *mockRepository) UpsertCurtainConfig(ctx context.Context, cfg CurtainPricingConfig) (CurtainPricingConfig, error) {
	if cfg.ID == 0 {
		cfg.ID = m.nextID
		m.nextID++
	}
	m.configs[cfg.PriceListItemID] = cfg
	return cfg, nil
}

func (m *mockRepository) GetProductPricingMode(ctx context.Context, productID int64) (catalog.PricingMode, error) {
	mode, ok := m.modes[productID]
	if !ok {
		return "", httpx.ErrNotFound
	}
	return mode, nil
}

// ============================================================================
// MOCK CATALOG / METRICS
// ============================================================================

// mockCatalog implements only the lookups the resolver touches; anything
// else panics via the embedded nil interface.
type mockCatalog struct {
	catalog.Repository
	variants map[int64]catalog.Variant
	styles   map[int64]catalog.HeadingStyle
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		variants: make(map[int64]catalog.Variant),
		styles:   make(map[int64]catalog.HeadingStyle),
	}
}

func (m *mockCatalog) GetVariant(ctx context.Context, id int64) (catalog.Variant, error) {
	v, ok := m.variants[id]
	if !ok {
		return catalog.Variant{}, httpx.ErrNotFound
	}
	return v, nil
}

func (m *mockCatalog) GetHeadingStyle(ctx context.Context, id int64) (catalog.HeadingStyle, error) {
	hs, ok := m.styles[id]
	if !ok {
		return catalog.HeadingStyle{}, httpx.ErrNotFound
	}
	return hs, nil
}

type mockMetrics struct {
	outcomes []string
}

func (m *mockMetrics) ObserveResolution(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

func ptrInt64(v int64) *int64       { return &v }
func ptrFloat64(v float64) *float64 { return &v }
