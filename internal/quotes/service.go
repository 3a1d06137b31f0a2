package quotes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/decora-erp/decora-erp/internal/catalog"
	"github.com/decora-erp/decora-erp/internal/masterdata/contacts"
	"github.com/decora-erp/decora-erp/internal/masterdata/stores"
	"github.com/decora-erp/decora-erp/internal/platform/httpx"
	"github.com/decora-erp/decora-erp/internal/pricing"
)

// PriceResolver is the pricing entry point quotations price against.
type PriceResolver interface {
	Resolve(ctx context.Context, req pricing.ResolveRequest) (pricing.Resolution, error)
}

type Service struct {
	repo     Repository
	resolver PriceResolver
	catalog  catalog.Repository
	stores   stores.Repository
	contacts contacts.Repository
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(
	repo Repository,
	resolver PriceResolver,
	catalogRepo catalog.Repository,
	storeRepo stores.Repository,
	contactRepo contacts.Repository,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		catalog:  catalogRepo,
		stores:   storeRepo,
		contacts: contactRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) List(ctx context.Context, req ListQuotationsRequest) ([]Quotation, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (Quotation, error) {
	return s.repo.Get(ctx, id)
}

// Create prices every line server-side from the authoritative
// store/product/variant/dimensions in the request. Client-supplied
// prices are not part of the request shape at all. Resolution failures
// are collected per line so the caller sees every bad line at once; any
// failure rejects the whole quotation.
func (s *Service) Create(ctx context.Context, req CreateQuotationRequest) (Quotation, error) {
	if !req.ValidUntil.After(s.now()) {
		return Quotation{}, fmt.Errorf("%w: valid_until must be in the future", httpx.ErrValidation)
	}
	if _, err := s.stores.Get(ctx, req.StoreID); err != nil {
		return Quotation{}, fmt.Errorf("verify store: %w", err)
	}
	if _, err := s.contacts.Get(ctx, req.ContactID); err != nil {
		return Quotation{}, fmt.Errorf("verify contact: %w", err)
	}

	items, err := s.priceItems(ctx, req.StoreID, req.Items)
	if err != nil {
		return Quotation{}, err
	}

	number, err := s.repo.GenerateNumber(ctx, req.StoreID, s.now())
	if err != nil {
		return Quotation{}, fmt.Errorf("generate quotation number: %w", err)
	}

	quotation := Quotation{
		Number:                number,
		CreatedBy:             actingUser(ctx),
		StoreID:               req.StoreID,
		ContactID:             req.ContactID,
		Status:                QuotationStatusDraft,
		GlobalDiscountPercent: req.GlobalDiscountPercent,
		ShippingCost:          req.ShippingCost,
		ValidUntil:            req.ValidUntil,
		Notes:                 req.Notes,
		DeliveryName:          req.DeliveryName,
		DeliveryStreet:        req.DeliveryStreet,
		DeliveryCity:          req.DeliveryCity,
		DeliveryPostalCode:    req.DeliveryPostalCode,
		DeliveryCountry:       req.DeliveryCountry,
	}

	var quotationID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Create(ctx, quotation)
		if err != nil {
			return fmt.Errorf("create quotation: %w", err)
		}
		quotationID = id
		for _, item := range items {
			item.QuotationID = quotationID
			if _, err := repo.InsertItem(ctx, item); err != nil {
				return fmt.Errorf("insert quotation item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Quotation{}, err
	}

	s.logger.Info("quotation created", "quotation_id", quotationID, "number", number, "items", len(items))
	return s.repo.Get(ctx, quotationID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateQuotationRequest) (Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Quotation{}, err
	}
	if !existing.CanBeEdited() {
		return Quotation{}, fmt.Errorf("%w: only draft quotations can be edited", httpx.ErrConflict)
	}

	if req.ContactID != nil {
		if _, err := s.contacts.Get(ctx, *req.ContactID); err != nil {
			return Quotation{}, fmt.Errorf("verify contact: %w", err)
		}
		existing.ContactID = *req.ContactID
	}
	if req.ValidUntil != nil {
		existing.ValidUntil = *req.ValidUntil
	}
	if req.GlobalDiscountPercent != nil {
		existing.GlobalDiscountPercent = *req.GlobalDiscountPercent
	}
	if req.ShippingCost != nil {
		existing.ShippingCost = *req.ShippingCost
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	existing.RowVersion = req.RowVersion

	var items []QuotationItem
	if req.Items != nil {
		// Replaced lines are re-priced from the live price lists; lines
		// the client did not touch keep their original frozen prices.
		items, err = s.priceItems(ctx, existing.StoreID, *req.Items)
		if err != nil {
			return Quotation{}, err
		}
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if _, err := repo.UpdateHeader(ctx, existing); err != nil {
			return err
		}
		if req.Items == nil {
			return nil
		}
		if err := repo.DeleteItems(ctx, id); err != nil {
			return err
		}
		for _, item := range items {
			item.QuotationID = id
			if _, err := repo.InsertItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Quotation{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !existing.CanBeEdited() {
		return fmt.Errorf("%w: only draft quotations can be deleted", httpx.ErrConflict)
	}
	return s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.DeleteItems(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

// Send moves Draft to Sent and freezes the current variant and heading
// style names onto the items, so a later rename of the underlying
// catalog entity does not rewrite what the customer was shown.
func (s *Service) Send(ctx context.Context, id int64) (Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Quotation{}, err
	}
	if existing.Status != QuotationStatusDraft {
		return Quotation{}, fmt.Errorf("%w: only draft quotations can be sent", httpx.ErrConflict)
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.UpdateStatus(ctx, id, QuotationStatusDraft, QuotationStatusSent, nil); err != nil {
			return err
		}
		return s.freezeLabels(ctx, repo, existing.Items)
	})
	if err != nil {
		return Quotation{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Accept(ctx context.Context, id int64) (Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Quotation{}, err
	}
	if existing.Status != QuotationStatusSent {
		return Quotation{}, fmt.Errorf("%w: only sent quotations can be accepted", httpx.ErrConflict)
	}
	now := s.now()
	if existing.IsExpired(now) {
		return Quotation{}, fmt.Errorf("%w: quotation expired on %s", httpx.ErrConflict,
			existing.ValidUntil.Format("2006-01-02"))
	}

	// Labels were frozen when the quotation left Draft; accepting must not
	// refresh them, the customer decided on what they were shown.
	if err := s.repo.UpdateStatus(ctx, id, QuotationStatusSent, QuotationStatusAccepted, &now); err != nil {
		return Quotation{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Reject(ctx context.Context, id int64, reason *string) (Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Quotation{}, err
	}
	if existing.Status != QuotationStatusSent {
		return Quotation{}, fmt.Errorf("%w: only sent quotations can be rejected", httpx.ErrConflict)
	}
	now := s.now()
	if err := s.repo.UpdateStatus(ctx, id, QuotationStatusSent, QuotationStatusRejected, &now); err != nil {
		return Quotation{}, err
	}
	if reason != nil && *reason != "" {
		s.logger.Info("quotation rejected", "quotation_id", id, "reason", *reason)
	}
	return s.repo.Get(ctx, id)
}

// Expire is the explicit admin action that stores the derived state.
func (s *Service) Expire(ctx context.Context, id int64) (Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Quotation{}, err
	}
	now := s.now()
	if !existing.IsExpired(now) {
		return Quotation{}, fmt.Errorf("%w: quotation is not past its validity window", httpx.ErrConflict)
	}
	if err := s.repo.UpdateStatus(ctx, id, QuotationStatusSent, QuotationStatusExpired, &now); err != nil {
		return Quotation{}, err
	}
	return s.repo.Get(ctx, id)
}

func actingUser(ctx context.Context) *int64 {
	if id, ok := httpx.UserID(ctx); ok {
		return &id
	}
	return nil
}

func (s *Service) priceItems(ctx context.Context, storeID int64, reqs []QuotationItemRequest) ([]QuotationItem, error) {
	items := make([]QuotationItem, 0, len(reqs))
	var lineErrs []error
	for i, line := range reqs {
		res, err := s.resolver.Resolve(ctx, pricing.ResolveRequest{
			ProductID:      line.ProductID,
			StoreID:        storeID,
			VariantID:      line.VariantID,
			HeadingStyleID: line.HeadingStyleID,
			Width:          line.Width,
			Height:         line.Height,
		})
		if err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("item %d: %v", i+1, err))
			continue
		}
		items = append(items, QuotationItem{
			ProductID:       line.ProductID,
			ProductColorID:  line.ProductColorID,
			VariantID:       line.VariantID,
			HeadingStyleID:  line.HeadingStyleID,
			Variant:         res.VariantName,
			HeadingStyle:    res.HeadingStyleName,
			Quantity:        line.Quantity,
			Width:           line.Width,
			Height:          line.Height,
			UnitPrice:       res.UnitPrice,
			DiscountedPrice: res.DiscountedPrice,
			Position:        i + 1,
		})
	}
	if len(lineErrs) > 0 {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, errors.Join(lineErrs...))
	}
	return items, nil
}

func (s *Service) freezeLabels(ctx context.Context, repo Repository, items []QuotationItem) error {
	for _, item := range items {
		var variant, headingStyle *string
		if item.VariantID != nil {
			v, err := s.catalog.GetVariant(ctx, *item.VariantID)
			if err == nil {
				variant = &v.Name
			} else if !errors.Is(err, httpx.ErrNotFound) {
				return err
			}
		}
		if item.HeadingStyleID != nil {
			hs, err := s.catalog.GetHeadingStyle(ctx, *item.HeadingStyleID)
			if err == nil {
				headingStyle = &hs.Name
			} else if !errors.Is(err, httpx.ErrNotFound) {
				return err
			}
		}
		if variant == nil && headingStyle == nil {
			continue
		}
		if err := repo.FreezeItemLabels(ctx, item.ID, variant, headingStyle); err != nil {
			return err
		}
	}
	return nil
}
