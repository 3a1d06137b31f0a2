package contacts

import (
	"context"
	"fmt"
	"strings"

	"github.com/decora-erp/decora-erp/internal/masterdata/shared"
	"github.com/decora-erp/decora-erp/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Contact, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Contact, error) {
	if id <= 0 {
		return Contact{}, httpx.ErrValidation
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, contact Contact) (Contact, error) {
	if strings.TrimSpace(contact.Name) == "" {
		return Contact{}, fmt.Errorf("%w: contact name is required", httpx.ErrValidation)
	}
	return s.repo.Create(ctx, contact)
}

func (s *Service) Update(ctx context.Context, id int64, contact Contact) error {
	if id <= 0 {
		return httpx.ErrValidation
	}
	if strings.TrimSpace(contact.Name) == "" {
		return fmt.Errorf("%w: contact name is required", httpx.ErrValidation)
	}
	return s.repo.Update(ctx, id, contact)
}

// Delete refuses to remove a contact that still has quotations; the
// quotation keeps a copied address, but the foreign key must stay
// resolvable for listings.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return httpx.ErrValidation
	}
	refs, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: contact has %d quotations", httpx.ErrInUse, refs)
	}
	return s.repo.Delete(ctx, id)
}
