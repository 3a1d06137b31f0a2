package stores

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Store, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Store, error) {
	if id <= 0 {
		return Store{}, httpx.ErrValidation
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, store Store) (Store, error) {
	if err := validate(store); err != nil {
		return Store{}, err
	}
	return s.repo.Create(ctx, store)
}

func (s *Service) Update(ctx context.Context, id int64, store Store) error {
	if id <= 0 {
		return httpx.ErrValidation
	}
	if err := validate(store); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, store)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return httpx.ErrValidation
	}
	refs, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: store is referenced by %d records", httpx.ErrInUse, refs)
	}
	return s.repo.Delete(ctx, id)
}

func validate(store Store) error {
	if strings.TrimSpace(store.Code) == "" {
		return fmt.Errorf("%w: store code is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(store.Name) == "" {
		return fmt.Errorf("%w: store name is required", httpx.ErrValidation)
	}
	return nil
}
