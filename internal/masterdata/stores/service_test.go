package stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decora-erp/decora-erp/internal/masterdata/shared"
	"github.com/decora-erp/decora-erp/internal/platform/httpx"
	_ "github.com/decora-erp/decora-erp/internal/testing/guard"
)

type mockRepository struct {
	stores map[int64]Store
	refs   map[int64]int
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{stores: make(map[int64]Store), refs: make(map[int64]int), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context, filters shared.ListFilters) ([]Store, int, error) {
	var out []Store
	for _, s := range m.stores {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Store, error) {
	s, ok := m.stores[id]
	if !ok {
		return Store{}, httpx.ErrNotFound
	}
	return s, nil
}

func (m *mockRepository) Create(ctx context.Context, store Store) (Store, error) {
	store.ID = m.nextID
	m.nextID++
	m.stores[store.ID] = store
	return store, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, store Store) error {
	if _, ok := m.stores[id]; !ok {
		return httpx.ErrNotFound
	}
	store.ID = id
	m.stores[id] = store
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.stores[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.stores, id)
	return nil
}

func (m *mockRepository) CountReferences(ctx context.Context, id int64) (int, error) {
	return m.refs[id], nil
}

func TestCreateRequiresCodeAndName(t *testing.T) {
	s := NewService(newMockRepository())

	_, err := s.Create(context.Background(), Store{Code: "", Name: "Amsterdam"})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = s.Create(context.Background(), Store{Code: "AMS", Name: " "})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	created, err := s.Create(context.Background(), Store{Code: "AMS", Name: "Amsterdam"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestDeleteBlockedWhileReferenced(t *testing.T) {
	repo := newMockRepository()
	s := NewService(repo)
	created, err := s.Create(context.Background(), Store{Code: "AMS", Name: "Amsterdam"})
	require.NoError(t, err)

	repo.refs[created.ID] = 4
	err = s.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, httpx.ErrInUse)

	repo.refs[created.ID] = 0
	require.NoError(t, s.Delete(context.Background(), created.ID))
}
