package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/decora-erp/decora-erp/internal/catalog"
	"github.com/decora-erp/decora-erp/internal/platform/httpx"
)

// ResolveRequest carries the authoritative inputs for one price lookup.
type ResolveRequest struct {
	ProductID      int64    `json:"product_id"`
	StoreID        int64    `json:"store_id"`
	VariantID      *int64   `json:"variant_id,omitempty"`
	HeadingStyleID *int64   `json:"heading_style_id,omitempty"`
	Width          *float64 `json:"width,omitempty"`
	Height         *float64 `json:"height,omitempty"`
}

// Resolution is the resolved price for a request. For range-based pricing
// modes UnitPrice and DiscountedPrice are equal: range rows encode a
// pre-computed price that already includes margin, so the discount
// overlay is not composed with them.
type Resolution struct {
	PriceListItemID  int64   `json:"price_list_item_id"`
	PriceListID      int64   `json:"price_list_id"`
	UnitPrice        float64 `json:"unit_price"`
	DiscountedPrice  float64 `json:"discounted_price"`
	VariantName      *string `json:"variant_name,omitempty"`
	HeadingStyleName *string `json:"heading_style_name,omitempty"`
}

// Metrics records resolution outcomes.
type Metrics interface {
	ObserveResolution(outcome string)
}

// Resolver is the top-level pricing entry point. It cascades from the
// store-specific price list to the global fallback, applies range lookup
// when the product's pricing mode requires dimensions, and overlays the
// active discount otherwise.
type Resolver struct {
	repo    Repository
	catalog catalog.Repository
	cache   *ResolutionCache
	metrics Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewResolver(repo Repository, catalogRepo catalog.Repository, cache *ResolutionCache, metrics Metrics, logger *slog.Logger) *Resolver {
	return &Resolver{
		repo:    repo,
		catalog: catalogRepo,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Resolve determines the applicable unit price for the request. All
// unresolvable cases come back as sentinel errors (httpx.ErrNotConfigured,
// httpx.ErrOutOfRange) so callers can attach per-line messages instead of
// aborting a whole submission on the first line.
func (r *Resolver) Resolve(ctx context.Context, req ResolveRequest) (Resolution, error) {
	if req.ProductID <= 0 || req.StoreID <= 0 {
		return Resolution{}, fmt.Errorf("%w: product and store are required", httpx.ErrValidation)
	}

	if r.cache != nil {
		if res, ok := r.cache.Get(ctx, req); ok {
			return res, nil
		}
	}

	res, staleAt, err := r.resolve(ctx, req)
	switch {
	case err == nil:
		r.observe("resolved")
		r.cacheSet(ctx, req, res, staleAt)
	case errors.Is(err, httpx.ErrNotConfigured):
		r.observe("not_configured")
	case errors.Is(err, httpx.ErrOutOfRange):
		r.observe("out_of_range")
	}
	return res, err
}

// cacheSet caps the cache lifetime at the next discount window edge so a
// discounted price is never served after its window closed, nor a full
// price after a window opened.
func (r *Resolver) cacheSet(ctx context.Context, req ResolveRequest, res Resolution, staleAt *time.Time) {
	if r.cache == nil {
		return
	}
	ttl := r.cache.ttl
	if staleAt != nil {
		if until := staleAt.Sub(r.now()); until < ttl {
			ttl = until
		}
	}
	r.cache.SetFor(ctx, req, res, ttl)
}

func (r *Resolver) resolve(ctx context.Context, req ResolveRequest) (Resolution, *time.Time, error) {
	item, err := r.findItem(ctx, req)
	if err != nil {
		return Resolution{}, nil, err
	}

	mode, err := r.repo.GetProductPricingMode(ctx, req.ProductID)
	if err != nil {
		return Resolution{}, nil, fmt.Errorf("pricing mode for product %d: %w", req.ProductID, err)
	}

	res := Resolution{
		PriceListItemID: item.ID,
		PriceListID:     item.PriceListID,
	}
	if err := r.fillNames(ctx, req, &res); err != nil {
		return Resolution{}, nil, err
	}

	switch mode {
	case catalog.PricingModePerRangeLength:
		if req.Width == nil {
			// No dimension supplied: fall through to the base price.
			break
		}
		ranges, err := r.repo.ListRangesByLength(ctx, item.ID)
		if err != nil {
			return Resolution{}, nil, err
		}
		for _, row := range ranges {
			if row.IsInRange(*req.Width) {
				res.UnitPrice = row.Price
				res.DiscountedPrice = row.Price
				return res, nil, nil
			}
		}
		return Resolution{}, nil, fmt.Errorf("%w: length %.2f", httpx.ErrOutOfRange, *req.Width)

	case catalog.PricingModePerRangeDimensions:
		if req.Width == nil || req.Height == nil {
			return Resolution{}, nil, fmt.Errorf("%w: width and height are required for this product", httpx.ErrValidation)
		}
		ranges, err := r.repo.ListRangesByDimensions(ctx, item.ID)
		if err != nil {
			return Resolution{}, nil, err
		}
		for _, row := range ranges {
			if row.IsInRange(*req.Width, *req.Height) {
				res.UnitPrice = row.Price
				res.DiscountedPrice = row.Price
				return res, nil, nil
			}
		}
		return Resolution{}, nil, fmt.Errorf("%w: %.2f x %.2f", httpx.ErrOutOfRange, *req.Width, *req.Height)
	}

	now := r.now()
	res.UnitPrice = item.GetBasePrice()
	res.DiscountedPrice = item.GetFinalPrice(now)
	return res, NextDiscountBoundary(item.Discounts, now), nil
}

// findItem queries the store-specific active price list first; a missing
// item, or one whose base price is zero or negative (not actually
// priced), falls back to the global list.
func (r *Resolver) findItem(ctx context.Context, req ResolveRequest) (*PriceListItem, error) {
	item, err := r.repo.FindActiveItem(ctx, req.ProductID, &req.StoreID, req.VariantID)
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return nil, err
	}
	if item == nil || item.Price <= 0 {
		fallback, err := r.repo.FindActiveItem(ctx, req.ProductID, nil, req.VariantID)
		if err != nil && !errors.Is(err, httpx.ErrNotFound) {
			return nil, err
		}
		if fallback != nil {
			return fallback, nil
		}
		// A store item with price zero still beats nothing at all: range
		// priced items commonly carry no base price.
		if item != nil {
			return item, nil
		}
		return nil, fmt.Errorf("%w: product %d", httpx.ErrNotConfigured, req.ProductID)
	}
	return item, nil
}

func (r *Resolver) fillNames(ctx context.Context, req ResolveRequest, res *Resolution) error {
	if req.VariantID != nil {
		v, err := r.catalog.GetVariant(ctx, *req.VariantID)
		if err != nil {
			return fmt.Errorf("variant %d: %w", *req.VariantID, err)
		}
		res.VariantName = &v.Name
	}
	if req.HeadingStyleID != nil {
		hs, err := r.catalog.GetHeadingStyle(ctx, *req.HeadingStyleID)
		if err != nil {
			return fmt.Errorf("heading style %d: %w", *req.HeadingStyleID, err)
		}
		res.HeadingStyleName = &hs.Name
	}
	return nil
}

func (r *Resolver) observe(outcome string) {
	if r.metrics != nil {
		r.metrics.ObserveResolution(outcome)
	}
}
