package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decora-erp/decora-erp/internal/platform/httpx"
	_ "github.com/decora-erp/decora-erp/internal/testing/guard"
)

type mockRepository struct {
	productTypes map[int64]ProductType
	variants     map[int64]Variant
	styles       map[int64]HeadingStyle
	products     map[int64]Product
	colors       map[int64]ProductColor
	nextID       int64

	pricedItemsOfType map[int64]int
	productRefs       map[int64]int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		productTypes:      make(map[int64]ProductType),
		variants:          make(map[int64]Variant),
		styles:            make(map[int64]HeadingStyle),
		products:          make(map[int64]Product),
		colors:            make(map[int64]ProductColor),
		nextID:            1,
		pricedItemsOfType: make(map[int64]int),
		productRefs:       make(map[int64]int),
	}
}

func (m *mockRepository) ListProductTypes(ctx context.Context) ([]ProductType, error) {
	var out []ProductType
	for _, pt := range m.productTypes {
		out = append(out, pt)
	}
	return out, nil
}

func (m *mockRepository) GetProductType(ctx context.Context, id int64) (ProductType, error) {
	pt, ok := m.productTypes[id]
	if !ok {
		return ProductType{}, httpx.ErrNotFound
	}
	return pt, nil
}

func (m *mockRepository) CreateProductType(ctx context.Context, pt ProductType) (ProductType, error) {
	pt.ID = m.nextID
	m.nextID++
	m.productTypes[pt.ID] = pt
	return pt, nil
}

func (m *mockRepository) UpdateProductTypeName(ctx context.Context, id int64, name string) error {
	pt, ok := m.productTypes[id]
	if !ok {
		return httpx.ErrNotFound
	}
	pt.Name = name
	m.productTypes[id] = pt
	return nil
}

func (m *mockRepository) DeleteProductType(ctx context.Context, id int64) error {
	if _, ok := m.productTypes[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.productTypes, id)
	return nil
}

func (m *mockRepository) CountProductsOfType(ctx context.Context, typeID int64) (int, error) {
	n := 0
	for _, p := range m.products {
		if p.ProductTypeID == typeID {
			n++
		}
	}
	return n, nil
}

func (m *mockRepository) CountPricedItemsOfType(ctx context.Context, typeID int64) (int, error) {
	return m.pricedItemsOfType[typeID], nil
}

func (m *mockRepository) ListVariants(ctx context.Context, typeID int64) ([]Variant, error) {
	var out []Variant
	for _, v := range m.variants {
		if v.ProductTypeID == typeID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockRepository) GetVariant(ctx context.Context, id int64) (Variant, error) {
	v, ok := m.variants[id]
	if !ok {
		return Variant{}, httpx.ErrNotFound
	}
	return v, nil
}

func (m *mockRepository) CreateVariant(ctx context.Context, v Variant) (Variant, error) {
	v.ID = m.nextID
	m.nextID++
	m.variants[v.ID] = v
	return v, nil
}

func (m *mockRepository) RenameVariant(ctx context.Context, id int64, name string) error {
	v, ok := m.variants[id]
	if !ok {
		return httpx.ErrNotFound
	}
	v.Name = name
	m.variants[id] = v
	return nil
}

func (m *mockRepository) DeleteVariant(ctx context.Context, id int64) error {
	delete(m.variants, id)
	return nil
}

func (m *mockRepository) ListHeadingStyles(ctx context.Context, typeID int64) ([]HeadingStyle, error) {
	var out []HeadingStyle
	for _, hs := range m.styles {
		if hs.ProductTypeID == typeID {
			out = append(out, hs)
		}
	}
	return out, nil
}

func (m *mockRepository) GetHeadingStyle(ctx context.Context, id int64) (HeadingStyle, error) {
	hs, ok := m.styles[id]
	if !ok {
		return HeadingStyle{}, httpx.ErrNotFound
	}
	return hs, nil
}

func (m *mockRepository) CreateHeadingStyle(ctx context.Context, hs HeadingStyle) (HeadingStyle, error) {
	hs.ID = m.nextID
	m.nextID++
	m.styles[hs.ID] = hs
	return hs, nil
}

func (m *mockRepository) RenameHeadingStyle(ctx context.Context, id int64, name string) error {
	hs, ok := m.styles[id]
	if !ok {
		return httpx.ErrNotFound
	}
	hs.Name = name
	m.styles[id] = hs
	return nil
}

func (m *mockRepository) DeleteHeadingStyle(ctx context.Context, id int64) error {
	delete(m.styles, id)
	return nil
}

func (m *mockRepository) ListColors(ctx context.Context, productID int64) ([]ProductColor, error) {
	var out []ProductColor
	for _, c := range m.colors {
		if c.ProductID == productID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepository) CreateColor(ctx context.Context, c ProductColor) (ProductColor, error) {
	c.ID = m.nextID
	m.nextID++
	m.colors[c.ID] = c
	return c, nil
}

func (m *mockRepository) DeleteColor(ctx context.Context, id int64) error {
	delete(m.colors, id)
	return nil
}

func (m *mockRepository) CountProductReferences(ctx context.Context, productID int64) (int, error) {
	return m.productRefs[productID], nil
}

func (m *mockRepository) ListProducts(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	var out []Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *mockRepository) GetProduct(ctx context.Context, id int64) (Product, error) {
	p, ok := m.products[id]
	if !ok {
		return Product{}, httpx.ErrNotFound
	}
	return p, nil
}

func (m *mockRepository) CreateProduct(ctx context.Context, p Product) (Product, error) {
	p.ID = m.nextID
	m.nextID++
	m.products[p.ID] = p
	return p, nil
}

func (m *mockRepository) UpdateProduct(ctx context.Context, id int64, p Product) error {
	if _, ok := m.products[id]; !ok {
		return httpx.ErrNotFound
	}
	p.ID = id
	m.products[id] = p
	return nil
}

func (m *mockRepository) DeleteProduct(ctx context.Context, id int64) error {
	delete(m.products, id)
	return nil
}

// ----------------------------------------------------------------------------

func TestPricingModeValid(t *testing.T) {
	for _, mode := range []PricingMode{
		PricingModePerUnit, PricingModePerSquareMeter, PricingModePerLinearMeter,
		PricingModePerRangeLength, PricingModePerRangeDimensions,
	} {
		assert.True(t, mode.Valid(), string(mode))
	}
	assert.False(t, PricingMode("PER_KILO").Valid())
	assert.False(t, PricingMode("").Valid())

	assert.True(t, PricingModePerRangeLength.RequiresDimensions())
	assert.True(t, PricingModePerRangeDimensions.RequiresDimensions())
	assert.False(t, PricingModePerUnit.RequiresDimensions())
}

func TestCreateProductTypeValidation(t *testing.T) {
	s := NewService(newMockRepository())

	_, err := s.CreateProductType(context.Background(), ProductType{Name: " ", PricingMode: PricingModePerUnit})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = s.CreateProductType(context.Background(), ProductType{Name: "Blind", PricingMode: "BOGUS"})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	pt, err := s.CreateProductType(context.Background(), ProductType{Name: "Blind", PricingMode: PricingModePerRangeDimensions})
	require.NoError(t, err)
	assert.NotZero(t, pt.ID)
}

func TestPricingModeImmutableOncePriced(t *testing.T) {
	repo := newMockRepository()
	s := NewService(repo)
	pt, err := s.CreateProductType(context.Background(), ProductType{Name: "Curtain", PricingMode: PricingModePerRangeDimensions})
	require.NoError(t, err)

	// No priced items yet: the mode may still change.
	require.NoError(t, s.UpdateProductType(context.Background(), pt.ID, "Curtain", PricingModePerUnit))

	repo.pricedItemsOfType[pt.ID] = 3
	err = s.UpdateProductType(context.Background(), pt.ID, "Curtain", PricingModePerUnit)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	// A pure rename stays allowed.
	require.NoError(t, s.UpdateProductType(context.Background(), pt.ID, "Curtains", ""))
	renamed, err := repo.GetProductType(context.Background(), pt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Curtains", renamed.Name)
}

func TestDeleteProductTypeBlockedByProducts(t *testing.T) {
	repo := newMockRepository()
	s := NewService(repo)
	pt, _ := s.CreateProductType(context.Background(), ProductType{Name: "Blind", PricingMode: PricingModePerUnit})
	_, err := repo.CreateProduct(context.Background(), Product{SKU: "BL-1", Name: "Roller", ProductTypeID: pt.ID})
	require.NoError(t, err)

	err = s.DeleteProductType(context.Background(), pt.ID)
	assert.ErrorIs(t, err, httpx.ErrInUse)
}

func TestCreateVariantVerifiesProductType(t *testing.T) {
	repo := newMockRepository()
	s := NewService(repo)

	_, err := s.CreateVariant(context.Background(), Variant{ProductTypeID: 99, Name: "3-way"})
	assert.ErrorIs(t, err, httpx.ErrNotFound)

	pt, _ := s.CreateProductType(context.Background(), ProductType{Name: "Blind", PricingMode: PricingModePerUnit})
	v, err := s.CreateVariant(context.Background(), Variant{ProductTypeID: pt.ID, Name: "3-way"})
	require.NoError(t, err)
	assert.NotZero(t, v.ID)

	_, err = s.CreateVariant(context.Background(), Variant{ProductTypeID: pt.ID, Name: ""})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestDeleteProductBlockedByReferences(t *testing.T) {
	repo := newMockRepository()
	s := NewService(repo)
	pt, _ := s.CreateProductType(context.Background(), ProductType{Name: "Blind", PricingMode: PricingModePerUnit})
	p, err := s.CreateProduct(context.Background(), Product{SKU: "BL-1", Name: "Roller", ProductTypeID: pt.ID})
	require.NoError(t, err)

	repo.productRefs[p.ID] = 2
	err = s.DeleteProduct(context.Background(), p.ID)
	assert.ErrorIs(t, err, httpx.ErrInUse)

	repo.productRefs[p.ID] = 0
	require.NoError(t, s.DeleteProduct(context.Background(), p.ID))
}

func TestCreateProductValidation(t *testing.T) {
	repo := newMockRepository()
	s := NewService(repo)
	pt, _ := s.CreateProductType(context.Background(), ProductType{Name: "Blind", PricingMode: PricingModePerUnit})

	_, err := s.CreateProduct(context.Background(), Product{SKU: "", Name: "Roller", ProductTypeID: pt.ID})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = s.CreateProduct(context.Background(), Product{SKU: "BL-1", Name: "", ProductTypeID: pt.ID})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = s.CreateProduct(context.Background(), Product{SKU: "BL-1", Name: "Roller", ProductTypeID: 99})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestColorLifecycle(t *testing.T) {
	repo := newMockRepository()
	s := NewService(repo)
	pt, _ := s.CreateProductType(context.Background(), ProductType{Name: "Curtain", PricingMode: PricingModePerUnit})
	p, _ := s.CreateProduct(context.Background(), Product{SKU: "CU-1", Name: "Velvet", ProductTypeID: pt.ID})

	_, err := s.CreateColor(context.Background(), ProductColor{ProductID: 99, Name: "Sand"})
	assert.ErrorIs(t, err, httpx.ErrNotFound)

	c, err := s.CreateColor(context.Background(), ProductColor{ProductID: p.ID, Name: "Sand"})
	require.NoError(t, err)

	colors, err := s.ListColors(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, colors, 1)

	require.NoError(t, s.DeleteColor(context.Background(), c.ID))
	colors, _ = s.ListColors(context.Background(), p.ID)
	assert.Empty(t, colors)
}
