package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/decora-erp/decora-erp/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProductTypes(ctx context.Context) ([]ProductType, error) {
	return s.repo.ListProductTypes(ctx)
}

func (s *Service) GetProductType(ctx context.Context, id int64) (ProductType, error) {
	if id <= 0 {
		return ProductType{}, fmt.Errorf("%w: invalid product type id", httpx.ErrValidation)
	}
	return s.repo.GetProductType(ctx, id)
}

func (s *Service) CreateProductType(ctx context.Context, pt ProductType) (ProductType, error) {
	if strings.TrimSpace(pt.Name) == "" {
		return ProductType{}, fmt.Errorf("%w: product type name is required", httpx.ErrValidation)
	}
	if !pt.PricingMode.Valid() {
		return ProductType{}, fmt.Errorf("%w: unknown pricing mode %q", httpx.ErrValidation, pt.PricingMode)
	}
	return s.repo.CreateProductType(ctx, pt)
}

// UpdateProductType renames a product type. The pricing mode is immutable
// once price list items reference products of this type: existing range
// tables were built for the current mode.
func (s *Service) UpdateProductType(ctx context.Context, id int64, name string, mode PricingMode) error {
	existing, err := s.repo.GetProductType(ctx, id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: product type name is required", httpx.ErrValidation)
	}
	if mode != "" && mode != existing.PricingMode {
		priced, err := s.repo.CountPricedItemsOfType(ctx, id)
		if err != nil {
			return err
		}
		if priced > 0 {
			return fmt.Errorf("%w: pricing mode cannot change while price list items reference this type", httpx.ErrValidation)
		}
		if !mode.Valid() {
			return fmt.Errorf("%w: unknown pricing mode %q", httpx.ErrValidation, mode)
		}
	}
	return s.repo.UpdateProductTypeName(ctx, id, name)
}

// DeleteProductType rejects deletion while live products reference the
// type rather than silently cascading.
func (s *Service) DeleteProductType(ctx context.Context, id int64) error {
	n, err := s.repo.CountProductsOfType(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d products still reference this product type", httpx.ErrInUse, n)
	}
	return s.repo.DeleteProductType(ctx, id)
}

func (s *Service) CreateVariant(ctx context.Context, v Variant) (Variant, error) {
	if strings.TrimSpace(v.Name) == "" {
		return Variant{}, fmt.Errorf("%w: variant name is required", httpx.ErrValidation)
	}
	if _, err := s.repo.GetProductType(ctx, v.ProductTypeID); err != nil {
		return Variant{}, fmt.Errorf("verify product type: %w", err)
	}
	return s.repo.CreateVariant(ctx, v)
}

func (s *Service) RenameVariant(ctx context.Context, id int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: variant name is required", httpx.ErrValidation)
	}
	return s.repo.RenameVariant(ctx, id, name)
}

func (s *Service) DeleteVariant(ctx context.Context, id int64) error {
	return s.repo.DeleteVariant(ctx, id)
}

func (s *Service) CreateHeadingStyle(ctx context.Context, hs HeadingStyle) (HeadingStyle, error) {
	if strings.TrimSpace(hs.Name) == "" {
		return HeadingStyle{}, fmt.Errorf("%w: heading style name is required", httpx.ErrValidation)
	}
	if _, err := s.repo.GetProductType(ctx, hs.ProductTypeID); err != nil {
		return HeadingStyle{}, fmt.Errorf("verify product type: %w", err)
	}
	return s.repo.CreateHeadingStyle(ctx, hs)
}

func (s *Service) RenameHeadingStyle(ctx context.Context, id int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: heading style name is required", httpx.ErrValidation)
	}
	return s.repo.RenameHeadingStyle(ctx, id, name)
}

func (s *Service) DeleteHeadingStyle(ctx context.Context, id int64) error {
	return s.repo.DeleteHeadingStyle(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	return s.repo.ListProducts(ctx, filters)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product id", httpx.ErrValidation)
	}
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, p Product) (Product, error) {
	if err := s.validateProduct(p); err != nil {
		return Product{}, err
	}
	if _, err := s.repo.GetProductType(ctx, p.ProductTypeID); err != nil {
		return Product{}, fmt.Errorf("verify product type: %w", err)
	}
	return s.repo.CreateProduct(ctx, p)
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, p Product) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product id", httpx.ErrValidation)
	}
	if err := s.validateProduct(p); err != nil {
		return err
	}
	return s.repo.UpdateProduct(ctx, id, p)
}

// DeleteProduct rejects deletion while price list items or quotation
// items reference the product.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	n, err := s.repo.CountProductReferences(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: product is referenced by price lists or quotations", httpx.ErrInUse)
	}
	return s.repo.DeleteProduct(ctx, id)
}

func (s *Service) ListColors(ctx context.Context, productID int64) ([]ProductColor, error) {
	return s.repo.ListColors(ctx, productID)
}

func (s *Service) CreateColor(ctx context.Context, c ProductColor) (ProductColor, error) {
	if strings.TrimSpace(c.Name) == "" {
		return ProductColor{}, fmt.Errorf("%w: color name is required", httpx.ErrValidation)
	}
	if _, err := s.repo.GetProduct(ctx, c.ProductID); err != nil {
		return ProductColor{}, fmt.Errorf("verify product: %w", err)
	}
	return s.repo.CreateColor(ctx, c)
}

func (s *Service) DeleteColor(ctx context.Context, id int64) error {
	return s.repo.DeleteColor(ctx, id)
}

func (s *Service) validateProduct(p Product) error {
	if strings.TrimSpace(p.SKU) == "" {
		return fmt.Errorf("%w: product sku is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", httpx.ErrValidation)
	}
	return nil
}
