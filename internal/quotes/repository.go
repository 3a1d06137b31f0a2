package quotes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/decora-erp/decora-erp/internal/platform/db"
	"github.com/decora-erp/decora-erp/internal/platform/httpx"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error

	List(ctx context.Context, req ListQuotationsRequest) ([]Quotation, int, error)
	Get(ctx context.Context, id int64) (Quotation, error)
	Create(ctx context.Context, q Quotation) (int64, error)
	UpdateHeader(ctx context.Context, q Quotation) (string, error)
	UpdateStatus(ctx context.Context, id int64, from, to QuotationStatus, decidedAt *time.Time) error
	Delete(ctx context.Context, id int64) error

	InsertItem(ctx context.Context, item QuotationItem) (int64, error)
	DeleteItems(ctx context.Context, quotationID int64) error
	FreezeItemLabels(ctx context.Context, itemID int64, variant, headingStyle *string) error

	GenerateNumber(ctx context.Context, storeID int64, date time.Time) (string, error)
	CountByContact(ctx context.Context, contactID int64) (int, error)
	CountByStore(ctx context.Context, storeID int64) (int, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const quotationColumns = `id, number, store_id, contact_id, status, global_discount_percent,
	shipping_cost, valid_until, notes, delivery_name, delivery_street, delivery_city,
	delivery_postal_code, delivery_country, created_by, row_version, sent_at, decided_at,
	created_at, updated_at`

func scanQuotation(row pgx.Row) (Quotation, error) {
	var q Quotation
	err := row.Scan(
		&q.ID, &q.Number, &q.StoreID, &q.ContactID, &q.Status, &q.GlobalDiscountPercent,
		&q.ShippingCost, &q.ValidUntil, &q.Notes, &q.DeliveryName, &q.DeliveryStreet,
		&q.DeliveryCity, &q.DeliveryPostalCode, &q.DeliveryCountry, &q.CreatedBy,
		&q.RowVersion, &q.SentAt, &q.DecidedAt, &q.CreatedAt, &q.UpdatedAt,
	)
	return q, err
}

func (r *repository) List(ctx context.Context, req ListQuotationsRequest) ([]Quotation, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if req.StoreID != nil {
		args = append(args, *req.StoreID)
		where += ` AND store_id = $` + strconv.Itoa(len(args))
	}
	if req.ContactID != nil {
		args = append(args, *req.ContactID)
		where += ` AND contact_id = $` + strconv.Itoa(len(args))
	}
	if req.Status != nil {
		args = append(args, *req.Status)
		where += ` AND status = $` + strconv.Itoa(len(args))
	}
	if req.Search != "" {
		args = append(args, "%"+req.Search+"%")
		where += ` AND number ILIKE $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quotations`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit)
	query := `SELECT ` + quotationColumns + ` FROM quotations` + where +
		` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args))
	if req.Offset > 0 {
		args = append(args, req.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, q)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Quotation, error) {
	q, err := scanQuotation(r.db.QueryRow(ctx,
		`SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id))
	if err != nil {
		return Quotation{}, mapPgError(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, quotation_id, product_id, product_color_id, variant_id, heading_style_id,
		       variant, heading_style, quantity, width, height, unit_price, discounted_price,
		       position, created_at, updated_at
		FROM quotation_items WHERE quotation_id = $1 ORDER BY position, id`, id)
	if err != nil {
		return Quotation{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item QuotationItem
		if err := rows.Scan(
			&item.ID, &item.QuotationID, &item.ProductID, &item.ProductColorID,
			&item.VariantID, &item.HeadingStyleID, &item.Variant, &item.HeadingStyle,
			&item.Quantity, &item.Width, &item.Height, &item.UnitPrice,
			&item.DiscountedPrice, &item.Position, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return Quotation{}, err
		}
		q.Items = append(q.Items, item)
	}
	return q, rows.Err()
}

func (r *repository) Create(ctx context.Context, q Quotation) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO quotations (number, store_id, contact_id, status, global_discount_percent,
			shipping_cost, valid_until, notes, delivery_name, delivery_street, delivery_city,
			delivery_postal_code, delivery_country, created_by, row_version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING id`,
		q.Number, q.StoreID, q.ContactID, q.Status, q.GlobalDiscountPercent,
		q.ShippingCost, q.ValidUntil, q.Notes, q.DeliveryName, q.DeliveryStreet,
		q.DeliveryCity, q.DeliveryPostalCode, q.DeliveryCountry, q.CreatedBy, uuid.NewString(),
	).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}
	return id, nil
}

// UpdateHeader rewrites the mutable header fields guarded by the row
// version token. A stale token yields ErrConflict.
func (r *repository) UpdateHeader(ctx context.Context, q Quotation) (string, error) {
	next := uuid.NewString()
	tag, err := r.db.Exec(ctx, `
		UPDATE quotations SET contact_id = $1, global_discount_percent = $2,
			shipping_cost = $3, valid_until = $4, notes = $5,
			row_version = $6, updated_at = NOW()
		WHERE id = $7 AND row_version = $8`,
		q.ContactID, q.GlobalDiscountPercent, q.ShippingCost, q.ValidUntil,
		q.Notes, next, q.ID, q.RowVersion)
	if err != nil {
		return "", err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM quotations WHERE id = $1)`, q.ID).Scan(&exists); err != nil {
			return "", err
		}
		if !exists {
			return "", httpx.ErrNotFound
		}
		return "", httpx.ErrConflict
	}
	return next, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, from, to QuotationStatus, decidedAt *time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE quotations SET status = $1,
			sent_at = CASE WHEN $1 = 'SENT' THEN NOW() ELSE sent_at END,
			decided_at = COALESCE($4, decided_at),
			row_version = $5, updated_at = NOW()
		WHERE id = $2 AND status = $3`,
		to, id, from, decidedAt, uuid.NewString())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM quotations WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return httpx.ErrNotFound
		}
		return fmt.Errorf("%w: quotation is no longer %s", httpx.ErrConflict, from)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) InsertItem(ctx context.Context, item QuotationItem) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO quotation_items (quotation_id, product_id, product_color_id, variant_id,
			heading_style_id, variant, heading_style, quantity, width, height,
			unit_price, discounted_price, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id`,
		item.QuotationID, item.ProductID, item.ProductColorID, item.VariantID,
		item.HeadingStyleID, item.Variant, item.HeadingStyle, item.Quantity,
		item.Width, item.Height, item.UnitPrice, item.DiscountedPrice, item.Position,
	).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}
	return id, nil
}

func (r *repository) DeleteItems(ctx context.Context, quotationID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1`, quotationID)
	return err
}

// FreezeItemLabels overwrites the display labels only; prices stay as
// captured at creation.
func (r *repository) FreezeItemLabels(ctx context.Context, itemID int64, variant, headingStyle *string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE quotation_items SET variant = COALESCE($1, variant),
			heading_style = COALESCE($2, heading_style), updated_at = NOW()
		WHERE id = $3`, variant, headingStyle, itemID)
	return err
}

func (r *repository) GenerateNumber(ctx context.Context, storeID int64, date time.Time) (string, error) {
	// Q-{YY}{MM}-{SEQ}, sequence per store and month.
	var seq int64
	period := date.Format("200601")
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_sequences (store_id, doc_type, period, seq)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (store_id, doc_type, period)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq`, storeID, "Q", period).Scan(&seq)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Q-%s-%04d", date.Format("0601"), seq), nil
}

func (r *repository) CountByContact(ctx context.Context, contactID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quotations WHERE contact_id = $1`, contactID).Scan(&n)
	return n, err
}

func (r *repository) CountByStore(ctx context.Context, storeID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quotations WHERE store_id = $1`, storeID).Scan(&n)
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
