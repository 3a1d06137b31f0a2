package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/decora-erp/decora-erp/internal/platform/httpx"
)

// Service manages price lists and their owned rows: items, discounts,
// range tables and curtain matrix generation. All multi-row mutations run
// in one transaction so partial failure rolls back the whole batch.
type Service struct {
	repo   Repository
	cache  *ResolutionCache
	logger *slog.Logger
}

func NewService(repo Repository, cache *ResolutionCache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

func (s *Service) ListPriceLists(ctx context.Context, filters ListFilters) ([]PriceList, error) {
	return s.repo.ListPriceLists(ctx, filters)
}

func (s *Service) GetPriceList(ctx context.Context, id int64) (PriceList, error) {
	return s.repo.GetPriceList(ctx, id)
}

func (s *Service) CreatePriceList(ctx context.Context, pl PriceList) (PriceList, error) {
	if strings.TrimSpace(pl.Name) == "" {
		return PriceList{}, fmt.Errorf("%w: price list name is required", httpx.ErrValidation)
	}
	return s.repo.CreatePriceList(ctx, pl)
}

func (s *Service) UpdatePriceList(ctx context.Context, id int64, pl PriceList) error {
	if strings.TrimSpace(pl.Name) == "" {
		return fmt.Errorf("%w: price list name is required", httpx.ErrValidation)
	}
	return s.repo.UpdatePriceList(ctx, id, pl)
}

// DeletePriceList removes the list together with its owned child rows in
// one transaction. The cascade is deliberate application-level deletion,
// not a database cascade.
func (s *Service) DeletePriceList(ctx context.Context, id int64) error {
	if _, err := s.repo.GetPriceList(ctx, id); err != nil {
		return err
	}
	return s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.DeletePriceListChildren(ctx, id); err != nil {
			return fmt.Errorf("delete price list children: %w", err)
		}
		return repo.DeletePriceList(ctx, id)
	})
}

func (s *Service) ListItems(ctx context.Context, listID int64) ([]PriceListItem, error) {
	return s.repo.ListItems(ctx, listID)
}

func (s *Service) GetItem(ctx context.Context, id int64) (PriceListItem, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) CreateItem(ctx context.Context, item PriceListItem) (PriceListItem, error) {
	if item.Price < 0 {
		return PriceListItem{}, fmt.Errorf("%w: price cannot be negative", httpx.ErrValidation)
	}
	if _, err := s.repo.GetPriceList(ctx, item.PriceListID); err != nil {
		return PriceListItem{}, fmt.Errorf("verify price list: %w", err)
	}
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return PriceListItem{}, err
	}
	s.invalidate(ctx, created.ProductID)
	return created, nil
}

func (s *Service) UpdateItemPrice(ctx context.Context, id int64, price float64, rowVersion string) (string, error) {
	if price < 0 {
		return "", fmt.Errorf("%w: price cannot be negative", httpx.ErrValidation)
	}
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return "", err
	}
	next, err := s.repo.UpdateItemPrice(ctx, id, price, rowVersion)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx, item.ProductID)
	return next, nil
}

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return err
	}
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.DeleteItemChildren(ctx, id); err != nil {
			return err
		}
		return repo.DeleteItem(ctx, id)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, item.ProductID)
	return nil
}

// AdjustPrices applies a percentage adjustment across every item of the
// list atomically.
func (s *Service) AdjustPrices(ctx context.Context, listID int64, percent float64) (int, error) {
	if percent <= -100 {
		return 0, fmt.Errorf("%w: adjustment must keep prices positive", httpx.ErrValidation)
	}
	if _, err := s.repo.GetPriceList(ctx, listID); err != nil {
		return 0, err
	}
	var adjusted int
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		n, err := repo.AdjustItemPrices(ctx, listID, percent)
		if err != nil {
			return fmt.Errorf("adjust prices: %w", err)
		}
		adjusted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.invalidateList(ctx, listID)
	return adjusted, nil
}

// SyncCatalog inserts missing (product, variant) items of the linked
// product type into the list at price zero.
func (s *Service) SyncCatalog(ctx context.Context, listID int64) (int, error) {
	pl, err := s.repo.GetPriceList(ctx, listID)
	if err != nil {
		return 0, err
	}
	if pl.ProductTypeID == nil {
		return 0, fmt.Errorf("%w: price list is not linked to a product type", httpx.ErrValidation)
	}
	var inserted int
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		n, err := repo.SyncCatalogItems(ctx, listID, *pl.ProductTypeID)
		if err != nil {
			return fmt.Errorf("sync catalog items: %w", err)
		}
		inserted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *Service) AddDiscount(ctx context.Context, d Discount) (Discount, error) {
	if d.Price <= 0 {
		return Discount{}, fmt.Errorf("%w: discounted price must be positive", httpx.ErrValidation)
	}
	if d.Priority < 1 {
		return Discount{}, fmt.Errorf("%w: priority must be 1 or greater", httpx.ErrValidation)
	}
	if d.ValidUntil.Before(d.ValidFrom) {
		return Discount{}, fmt.Errorf("%w: valid_until must not precede valid_from", httpx.ErrValidation)
	}
	item, err := s.repo.GetItem(ctx, d.PriceListItemID)
	if err != nil {
		return Discount{}, fmt.Errorf("verify price list item: %w", err)
	}
	created, err := s.repo.AddDiscount(ctx, d)
	if err != nil {
		return Discount{}, err
	}
	s.invalidate(ctx, item.ProductID)
	return created, nil
}

func (s *Service) DeleteDiscount(ctx context.Context, itemID, discountID int64) error {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteDiscount(ctx, discountID); err != nil {
		return err
	}
	s.invalidate(ctx, item.ProductID)
	return nil
}

func (s *Service) ListRangesByLength(ctx context.Context, itemID int64) ([]RangeByLength, error) {
	return s.repo.ListRangesByLength(ctx, itemID)
}

// AddRangeByLength rejects rows that overlap an existing row of the same
// item; first-match lookup order is too fragile to rely on.
func (s *Service) AddRangeByLength(ctx context.Context, row RangeByLength) (RangeByLength, error) {
	if row.Min > row.Max {
		return RangeByLength{}, fmt.Errorf("%w: min must not exceed max", httpx.ErrValidation)
	}
	if row.Price <= 0 {
		return RangeByLength{}, fmt.Errorf("%w: range price must be positive", httpx.ErrValidation)
	}
	item, err := s.repo.GetItem(ctx, row.PriceListItemID)
	if err != nil {
		return RangeByLength{}, fmt.Errorf("verify price list item: %w", err)
	}
	existing, err := s.repo.ListRangesByLength(ctx, row.PriceListItemID)
	if err != nil {
		return RangeByLength{}, err
	}
	for _, other := range existing {
		if row.Min <= other.Max && other.Min <= row.Max {
			return RangeByLength{}, fmt.Errorf("%w: range [%.2f, %.2f] overlaps [%.2f, %.2f]",
				httpx.ErrValidation, row.Min, row.Max, other.Min, other.Max)
		}
	}
	created, err := s.repo.AddRangeByLength(ctx, row)
	if err != nil {
		return RangeByLength{}, err
	}
	s.invalidate(ctx, item.ProductID)
	return created, nil
}

func (s *Service) DeleteRangeByLength(ctx context.Context, itemID, rangeID int64) error {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteRangeByLength(ctx, rangeID); err != nil {
		return err
	}
	s.invalidate(ctx, item.ProductID)
	return nil
}

func (s *Service) ListRangesByDimensions(ctx context.Context, itemID int64) ([]RangeByDimensions, error) {
	return s.repo.ListRangesByDimensions(ctx, itemID)
}

func (s *Service) GetCurtainConfig(ctx context.Context, itemID int64) (CurtainPricingConfig, error) {
	return s.repo.GetCurtainConfig(ctx, itemID)
}

// SetCurtainConfig stores the matrix inputs for an item. It does not
// regenerate the matrix; call GenerateMatrix afterwards.
func (s *Service) SetCurtainConfig(ctx context.Context, cfg CurtainPricingConfig) (CurtainPricingConfig, error) {
	if cfg.BasePrice <= 0 {
		return CurtainPricingConfig{}, fmt.Errorf("%w: base price must be positive", httpx.ErrValidation)
	}
	if cfg.TaxPercent < 0 || cfg.TaxPercent > 100 {
		return CurtainPricingConfig{}, fmt.Errorf("%w: tax percent must be between 0 and 100", httpx.ErrValidation)
	}
	if cfg.PricingType != PricingTypeNormal && cfg.PricingType != PricingTypeSpecial {
		return CurtainPricingConfig{}, fmt.Errorf("%w: unknown pricing type %q", httpx.ErrValidation, cfg.PricingType)
	}
	buckets := len(cfg.PricingType.HeightBuckets())
	for bucket, margin := range cfg.Margins {
		if bucket < 0 || bucket >= buckets {
			return CurtainPricingConfig{}, fmt.Errorf("%w: height bucket %d out of bounds", httpx.ErrValidation, bucket)
		}
		if margin < 0 {
			return CurtainPricingConfig{}, fmt.Errorf("%w: profit margin cannot be negative", httpx.ErrValidation)
		}
	}
	if _, err := s.repo.GetItem(ctx, cfg.PriceListItemID); err != nil {
		return CurtainPricingConfig{}, fmt.Errorf("verify price list item: %w", err)
	}
	return s.repo.UpsertCurtainConfig(ctx, cfg)
}

// GenerateMatrix derives the full price matrix from the item's curtain
// config and replaces all of the item's dimension range rows with it.
func (s *Service) GenerateMatrix(ctx context.Context, itemID int64) (int, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	cfg, err := s.repo.GetCurtainConfig(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("curtain config: %w", err)
	}

	matrix := GenerateCurtainMatrix(cfg)
	rows := MatrixToRanges(itemID, matrix, cfg.PricingType)

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		return repo.ReplaceRangesByDimensions(ctx, itemID, rows)
	})
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, item.ProductID)
	s.logger.Info("curtain matrix generated",
		slog.Int64("item_id", itemID), slog.Int("cells", len(rows)))
	return len(rows), nil
}

// SaveMatrix accepts a sparse bucket-pair price map from the admin
// pricing grid and replaces all of the item's dimension range rows with
// it atomically.
func (s *Service) SaveMatrix(ctx context.Context, itemID int64, pricingType PricingType, cells map[BucketKey]float64) (int, error) {
	if pricingType == "" {
		pricingType = PricingTypeNormal
	}
	heights := pricingType.HeightBuckets()
	for key, price := range cells {
		if key.Width < 0 || key.Width >= len(WidthBuckets) || key.Height < 0 || key.Height >= len(heights) {
			return 0, fmt.Errorf("%w: bucket (%d, %d) out of bounds", httpx.ErrValidation, key.Width, key.Height)
		}
		if price < 0 {
			return 0, fmt.Errorf("%w: cell price cannot be negative", httpx.ErrValidation)
		}
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return 0, err
	}

	rows := MatrixToRanges(itemID, cells, pricingType)
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		return repo.ReplaceRangesByDimensions(ctx, itemID, rows)
	})
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, item.ProductID)
	return len(rows), nil
}

func (s *Service) invalidate(ctx context.Context, productID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProduct(ctx, productID); err != nil {
		s.logger.Warn("invalidate price cache", slog.Int64("product_id", productID), slog.Any("error", err))
	}
}

func (s *Service) invalidateList(ctx context.Context, listID int64) {
	if s.cache == nil {
		return
	}
	items, err := s.repo.ListItems(ctx, listID)
	if err != nil {
		s.logger.Warn("list items for cache invalidation", slog.Any("error", err))
		return
	}
	for _, item := range items {
		s.invalidate(ctx, item.ProductID)
	}
}
