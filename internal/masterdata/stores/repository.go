package stores

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/decora-erp/decora-erp/internal/masterdata/shared"
	"github.com/decora-erp/decora-erp/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Store, int, error)
	Get(ctx context.Context, id int64) (Store, error)
	Create(ctx context.Context, store Store) (Store, error)
	Update(ctx context.Context, id int64, store Store) error
	Delete(ctx context.Context, id int64) error
	CountReferences(ctx context.Context, id int64) (int, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const storeColumns = `id, code, name, address, city, phone, email, is_active, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Store, int, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM stores WHERE 1=1`
	args := []interface{}{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		clause := ` AND (name ILIKE $` + strconv.Itoa(len(args)) + ` OR code ILIKE $` + strconv.Itoa(len(args)) + `)`
		query += clause
		countQuery += clause
	}
	if filters.IsActive != nil {
		args = append(args, *filters.IsActive)
		clause := ` AND is_active = $` + strconv.Itoa(len(args))
		query += clause
		countQuery += clause
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filters.PageSize())
	query += ` ORDER BY name LIMIT $` + strconv.Itoa(len(args))
	args = append(args, filters.Offset())
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Store
	for rows.Next() {
		var s Store
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Address, &s.City, &s.Phone, &s.Email, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Store, error) {
	var s Store
	err := r.db.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id).
		Scan(&s.ID, &s.Code, &s.Name, &s.Address, &s.City, &s.Phone, &s.Email, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, mapPgError(err)
}

func (r *repository) Create(ctx context.Context, store Store) (Store, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO stores (code, name, address, city, phone, email, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING `+storeColumns,
		store.Code, store.Name, store.Address, store.City, store.Phone, store.Email, store.IsActive,
	).Scan(&store.ID, &store.Code, &store.Name, &store.Address, &store.City, &store.Phone, &store.Email, &store.IsActive, &store.CreatedAt, &store.UpdatedAt)
	return store, mapPgError(err)
}

func (r *repository) Update(ctx context.Context, id int64, store Store) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE stores SET code = $1, name = $2, address = $3, city = $4, phone = $5,
			email = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8`,
		store.Code, store.Name, store.Address, store.City, store.Phone, store.Email, store.IsActive, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// CountReferences reports how many records still point at the store.
// Deletion is refused while any exist.
func (r *repository) CountReferences(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM quotations WHERE store_id = $1)
		     + (SELECT COUNT(*) FROM price_lists WHERE store_id = $1)
		     + (SELECT COUNT(*) FROM products WHERE store_id = $1)`, id).Scan(&n)
	return n, err
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return httpx.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httpx.ErrDuplicate
	}
	return err
}
