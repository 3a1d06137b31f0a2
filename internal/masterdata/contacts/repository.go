package contacts

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
	List(ctx context.Context, filters shared.ListFilters) ([]Contact, int, error)
	Get(ctx context.Context, id int64) (Contact, error)
	Create(ctx context.Context, contact Contact) (Contact, error)
	Update(ctx context.Context, id int64, contact Contact) error
	Delete(ctx context.Context, id int64) error
	CountReferences(ctx context.Context, id int64) (int, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const contactColumns = `id, name, email, phone, street, city, postal_code, country, notes, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Contact, int, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM contacts WHERE 1=1`
	args := []interface{}{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		clause := ` AND (name ILIKE $` + strconv.Itoa(len(args)) + ` OR email ILIKE $` + strconv.Itoa(len(args)) + `)`
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

	var out []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Street, &c.City, &c.PostalCode, &c.Country, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Contact, error) {
	var c Contact
	err := r.db.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Street, &c.City, &c.PostalCode, &c.Country, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, mapPgError(err)
}

func (r *repository) Create(ctx context.Context, contact Contact) (Contact, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO contacts (name, email, phone, street, city, postal_code, country, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING `+contactColumns,
		contact.Name, contact.Email, contact.Phone, contact.Street, contact.City,
		contact.PostalCode, contact.Country, contact.Notes,
	).Scan(&contact.ID, &contact.Name, &contact.Email, &contact.Phone, &contact.Street, &contact.City, &contact.PostalCode, &contact.Country, &contact.Notes, &contact.CreatedAt, &contact.UpdatedAt)
	return contact, mapPgError(err)
}

func (r *repository) Update(ctx context.Context, id int64, contact Contact) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE contacts SET name = $1, email = $2, phone = $3, street = $4, city = $5,
			postal_code = $6, country = $7, notes = $8, updated_at = NOW()
		WHERE id = $9`,
		contact.Name, contact.Email, contact.Phone, contact.Street, contact.City,
		contact.PostalCode, contact.Country, contact.Notes, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) CountReferences(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quotations WHERE contact_id = $1`, id).Scan(&n)
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
