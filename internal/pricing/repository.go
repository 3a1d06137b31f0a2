package pricing

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/decora-erp/decora-erp/internal/catalog"
	"github.com/decora-erp/decora-erp/internal/platform/db"
	"github.com/decora-erp/decora-erp/internal/platform/httpx"
)

const uniqueViolation = "23505"

type ListFilters struct {
	StoreID  *int64
	IsActive *bool
	Search   string
}

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error

	ListPriceLists(ctx context.Context, filters ListFilters) ([]PriceList, error)
	GetPriceList(ctx context.Context, id int64) (PriceList, error)
	CreatePriceList(ctx context.Context, pl PriceList) (PriceList, error)
	UpdatePriceList(ctx context.Context, id int64, pl PriceList) error
	DeletePriceListChildren(ctx context.Context, listID int64) error
	DeletePriceList(ctx context.Context, id int64) error

	FindActiveItem(ctx context.Context, productID int64, storeID *int64, variantID *int64) (*PriceListItem, error)
	GetItem(ctx context.Context, id int64) (PriceListItem, error)
	ListItems(ctx context.Context, listID int64) ([]PriceListItem, error)
	CreateItem(ctx context.Context, item PriceListItem) (PriceListItem, error)
	UpdateItemPrice(ctx context.Context, id int64, price float64, rowVersion string) (string, error)
	DeleteItemChildren(ctx context.Context, itemID int64) error
	DeleteItem(ctx context.Context, id int64) error
	AdjustItemPrices(ctx context.Context, listID int64, percent float64) (int, error)
	SyncCatalogItems(ctx context.Context, listID, productTypeID int64) (int, error)

	ListDiscounts(ctx context.Context, itemID int64) ([]Discount, error)
	AddDiscount(ctx context.Context, d Discount) (Discount, error)
	DeleteDiscount(ctx context.Context, id int64) error

	ListRangesByLength(ctx context.Context, itemID int64) ([]RangeByLength, error)
	AddRangeByLength(ctx context.Context, row RangeByLength) (RangeByLength, error)
	DeleteRangeByLength(ctx context.Context, id int64) error

	ListRangesByDimensions(ctx context.Context, itemID int64) ([]RangeByDimensions, error)
	ReplaceRangesByDimensions(ctx context.Context, itemID int64, rows []RangeByDimensions) error

	GetCurtainConfig(ctx context.Context, itemID int64) (CurtainPricingConfig, error)
	UpsertCurtainConfig(ctx context.Context, cfg CurtainPricingConfig) (CurtainPricingConfig, error)

	GetProductPricingMode(ctx context.Context, productID int64) (catalog.PricingMode, error)
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

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return httpx.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return httpx.ErrDuplicate
	}
	return err
}

func (r *repository) ListPriceLists(ctx context.Context, filters ListFilters) ([]PriceList, error) {
	query := `SELECT id, name, store_id, product_type_id, is_active, created_at, updated_at FROM price_lists WHERE 1=1`
	args := []interface{}{}
	if filters.StoreID != nil {
		args = append(args, *filters.StoreID)
		query += ` AND (store_id IS NULL OR store_id = $1)`
	}
	if filters.IsActive != nil {
		args = append(args, *filters.IsActive)
		query += ` AND is_active = $` + strconv.Itoa(len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		query += ` AND name ILIKE $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []PriceList
	for rows.Next() {
		var pl PriceList
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.StoreID, &pl.ProductTypeID, &pl.IsActive, &pl.CreatedAt, &pl.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, pl)
	}
	return lists, rows.Err()
}

func (r *repository) GetPriceList(ctx context.Context, id int64) (PriceList, error) {
	var pl PriceList
	err := r.db.QueryRow(ctx,
		`SELECT id, name, store_id, product_type_id, is_active, created_at, updated_at FROM price_lists WHERE id = $1`, id).
		Scan(&pl.ID, &pl.Name, &pl.StoreID, &pl.ProductTypeID, &pl.IsActive, &pl.CreatedAt, &pl.UpdatedAt)
	if err != nil {
		return PriceList{}, mapPgError(err)
	}
	return pl, nil
}

func (r *repository) CreatePriceList(ctx context.Context, pl PriceList) (PriceList, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO price_lists (name, store_id, product_type_id, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING id, created_at, updated_at`,
		pl.Name, pl.StoreID, pl.ProductTypeID, pl.IsActive).
		Scan(&pl.ID, &pl.CreatedAt, &pl.UpdatedAt)
	if err != nil {
		return PriceList{}, mapPgError(err)
	}
	return pl, nil
}

func (r *repository) UpdatePriceList(ctx context.Context, id int64, pl PriceList) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE price_lists SET name = $1, store_id = $2, is_active = $3, updated_at = NOW() WHERE id = $4`,
		pl.Name, pl.StoreID, pl.IsActive, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// DeletePriceListChildren removes every row owned by the list's items:
// discounts, range rows and curtain configs, then the items. Application
// level cascade; call inside a transaction together with DeletePriceList.
func (r *repository) DeletePriceListChildren(ctx context.Context, listID int64) error {
	statements := []string{
		`DELETE FROM discounts WHERE price_list_item_id IN (SELECT id FROM price_list_items WHERE price_list_id = $1)`,
		`DELETE FROM ranges_by_length WHERE price_list_item_id IN (SELECT id FROM price_list_items WHERE price_list_id = $1)`,
		`DELETE FROM ranges_by_dimensions WHERE price_list_item_id IN (SELECT id FROM price_list_items WHERE price_list_id = $1)`,
		`DELETE FROM curtain_pricing_configs WHERE price_list_item_id IN (SELECT id FROM price_list_items WHERE price_list_id = $1)`,
		`DELETE FROM price_list_items WHERE price_list_id = $1`,
	}
	for _, stmt := range statements {
		if _, err := r.db.Exec(ctx, stmt, listID); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) DeletePriceList(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM price_lists WHERE id = $1`, id)
	return err
}

// FindActiveItem picks the most recently updated item matching the
// product on an active list scoped to the given store (nil = global
// lists). Variant equality is null safe. The item's discounts are loaded
// along with it.
func (r *repository) FindActiveItem(ctx context.Context, productID int64, storeID *int64, variantID *int64) (*PriceListItem, error) {
	var item PriceListItem
	err := r.db.QueryRow(ctx, `
		SELECT i.id, i.price_list_id, i.product_id, i.variant_id, i.price, i.row_version, i.created_at, i.updated_at
		FROM price_list_items i
		JOIN price_lists l ON l.id = i.price_list_id
		WHERE i.product_id = $1
		  AND l.is_active
		  AND (($2::bigint IS NULL AND l.store_id IS NULL) OR l.store_id = $2)
		  AND i.variant_id IS NOT DISTINCT FROM $3
		ORDER BY i.updated_at DESC, i.id DESC
		LIMIT 1`, productID, storeID, variantID).
		Scan(&item.ID, &item.PriceListID, &item.ProductID, &item.VariantID, &item.Price, &item.RowVersion, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}

	discounts, err := r.ListDiscounts(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.Discounts = discounts
	return &item, nil
}

func (r *repository) GetItem(ctx context.Context, id int64) (PriceListItem, error) {
	var item PriceListItem
	err := r.db.QueryRow(ctx, `
		SELECT id, price_list_id, product_id, variant_id, price, row_version, created_at, updated_at
		FROM price_list_items WHERE id = $1`, id).
		Scan(&item.ID, &item.PriceListID, &item.ProductID, &item.VariantID, &item.Price, &item.RowVersion, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return PriceListItem{}, mapPgError(err)
	}

	discounts, err := r.ListDiscounts(ctx, item.ID)
	if err != nil {
		return PriceListItem{}, err
	}
	item.Discounts = discounts
	return item, nil
}

func (r *repository) ListItems(ctx context.Context, listID int64) ([]PriceListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, price_list_id, product_id, variant_id, price, row_version, created_at, updated_at
		FROM price_list_items WHERE price_list_id = $1 ORDER BY product_id, variant_id NULLS FIRST`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PriceListItem
	for rows.Next() {
		var item PriceListItem
		if err := rows.Scan(&item.ID, &item.PriceListID, &item.ProductID, &item.VariantID, &item.Price, &item.RowVersion, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) CreateItem(ctx context.Context, item PriceListItem) (PriceListItem, error) {
	item.RowVersion = uuid.NewString()
	err := r.db.QueryRow(ctx, `
		INSERT INTO price_list_items (price_list_id, product_id, variant_id, price, row_version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING id, created_at, updated_at`,
		item.PriceListID, item.ProductID, item.VariantID, item.Price, item.RowVersion).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return PriceListItem{}, mapPgError(err)
	}
	return item, nil
}

// UpdateItemPrice applies an optimistic concurrency check: the update
// only lands when the caller still holds the current row version. The
// new version is returned on success.
func (r *repository) UpdateItemPrice(ctx context.Context, id int64, price float64, rowVersion string) (string, error) {
	next := uuid.NewString()
	tag, err := r.db.Exec(ctx, `
		UPDATE price_list_items SET price = $1, row_version = $2, updated_at = NOW()
		WHERE id = $3 AND row_version = $4`, price, next, id, rowVersion)
	if err != nil {
		return "", err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM price_list_items WHERE id = $1)`, id).Scan(&exists); err != nil {
			return "", err
		}
		if !exists {
			return "", httpx.ErrNotFound
		}
		return "", httpx.ErrConflict
	}
	return next, nil
}

func (r *repository) DeleteItemChildren(ctx context.Context, itemID int64) error {
	statements := []string{
		`DELETE FROM discounts WHERE price_list_item_id = $1`,
		`DELETE FROM ranges_by_length WHERE price_list_item_id = $1`,
		`DELETE FROM ranges_by_dimensions WHERE price_list_item_id = $1`,
		`DELETE FROM curtain_pricing_configs WHERE price_list_item_id = $1`,
	}
	for _, stmt := range statements {
		if _, err := r.db.Exec(ctx, stmt, itemID); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) DeleteItem(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM price_list_items WHERE id = $1`, id)
	return err
}

// AdjustItemPrices applies a percentage adjustment to every item of the
// list in one statement; run inside a transaction so partial failure
// rolls the whole batch back.
func (r *repository) AdjustItemPrices(ctx context.Context, listID int64, percent float64) (int, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE price_list_items
		SET price = ROUND(price * (1 + $2 / 100.0), 2), row_version = gen_random_uuid(), updated_at = NOW()
		WHERE price_list_id = $1`, listID, percent)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// SyncCatalogItems inserts one zero-priced item per missing
// (product, variant) pair of the linked product type. Existing items are
// left untouched.
func (r *repository) SyncCatalogItems(ctx context.Context, listID, productTypeID int64) (int, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO price_list_items (price_list_id, product_id, variant_id, price, row_version, created_at, updated_at)
		SELECT $1, p.id, v.id, 0, gen_random_uuid(), NOW(), NOW()
		FROM products p
		LEFT JOIN product_type_variants v ON v.product_type_id = p.product_type_id
		WHERE p.product_type_id = $2
		  AND p.is_active
		  AND NOT EXISTS (
			SELECT 1 FROM price_list_items i
			WHERE i.price_list_id = $1 AND i.product_id = p.id AND i.variant_id IS NOT DISTINCT FROM v.id
		  )`, listID, productTypeID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *repository) ListDiscounts(ctx context.Context, itemID int64) ([]Discount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, price_list_item_id, price, valid_from, valid_until, priority, created_at
		FROM discounts WHERE price_list_item_id = $1 ORDER BY priority, created_at DESC`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discounts []Discount
	for rows.Next() {
		var d Discount
		if err := rows.Scan(&d.ID, &d.PriceListItemID, &d.Price, &d.ValidFrom, &d.ValidUntil, &d.Priority, &d.CreatedAt); err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	return discounts, rows.Err()
}

func (r *repository) AddDiscount(ctx context.Context, d Discount) (Discount, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO discounts (price_list_item_id, price, valid_from, valid_until, priority, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_at`,
		d.PriceListItemID, d.Price, d.ValidFrom, d.ValidUntil, d.Priority).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return Discount{}, mapPgError(err)
	}
	return d, nil
}

func (r *repository) DeleteDiscount(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM discounts WHERE id = $1`, id)
	return err
}

func (r *repository) ListRangesByLength(ctx context.Context, itemID int64) ([]RangeByLength, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, price_list_item_id, min_length, max_length, price
		FROM ranges_by_length WHERE price_list_item_id = $1 ORDER BY min_length`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranges []RangeByLength
	for rows.Next() {
		var row RangeByLength
		if err := rows.Scan(&row.ID, &row.PriceListItemID, &row.Min, &row.Max, &row.Price); err != nil {
			return nil, err
		}
		ranges = append(ranges, row)
	}
	return ranges, rows.Err()
}

func (r *repository) AddRangeByLength(ctx context.Context, row RangeByLength) (RangeByLength, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO ranges_by_length (price_list_item_id, min_length, max_length, price)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		row.PriceListItemID, row.Min, row.Max, row.Price).Scan(&row.ID)
	if err != nil {
		return RangeByLength{}, mapPgError(err)
	}
	return row, nil
}

func (r *repository) DeleteRangeByLength(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM ranges_by_length WHERE id = $1`, id)
	return err
}

func (r *repository) ListRangesByDimensions(ctx context.Context, itemID int64) ([]RangeByDimensions, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, price_list_item_id, min_width, max_width, min_height, max_height, price
		FROM ranges_by_dimensions WHERE price_list_item_id = $1 ORDER BY min_height, min_width`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranges []RangeByDimensions
	for rows.Next() {
		var row RangeByDimensions
		if err := rows.Scan(&row.ID, &row.PriceListItemID, &row.MinWidth, &row.MaxWidth, &row.MinHeight, &row.MaxHeight, &row.Price); err != nil {
			return nil, err
		}
		ranges = append(ranges, row)
	}
	return ranges, rows.Err()
}

// ReplaceRangesByDimensions deletes all existing rows of the item and
// inserts the new set. Full replace, not merge; run inside a transaction.
func (r *repository) ReplaceRangesByDimensions(ctx context.Context, itemID int64, rows []RangeByDimensions) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM ranges_by_dimensions WHERE price_list_item_id = $1`, itemID); err != nil {
		return err
	}
	for _, row := range rows {
		_, err := r.db.Exec(ctx, `
			INSERT INTO ranges_by_dimensions (price_list_item_id, min_width, max_width, min_height, max_height, price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			itemID, row.MinWidth, row.MaxWidth, row.MinHeight, row.MaxHeight, row.Price)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) GetCurtainConfig(ctx context.Context, itemID int64) (CurtainPricingConfig, error) {
	var cfg CurtainPricingConfig
	err := r.db.QueryRow(ctx, `
		SELECT id, price_list_item_id, base_price, tax_percent, pricing_type, margins
		FROM curtain_pricing_configs WHERE price_list_item_id = $1`, itemID).
		Scan(&cfg.ID, &cfg.PriceListItemID, &cfg.BasePrice, &cfg.TaxPercent, &cfg.PricingType, &cfg.Margins)
	if err != nil {
		return CurtainPricingConfig{}, mapPgError(err)
	}
	return cfg, nil
}

func (r *repository) UpsertCurtainConfig(ctx context.Context, cfg CurtainPricingConfig) (CurtainPricingConfig, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO curtain_pricing_configs (price_list_item_id, base_price, tax_percent, pricing_type, margins)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (price_list_item_id)
		DO UPDATE SET base_price = $2, tax_percent = $3, pricing_type = $4, margins = $5
		RETURNING id`,
		cfg.PriceListItemID, cfg.BasePrice, cfg.TaxPercent, cfg.PricingType, cfg.Margins).
		Scan(&cfg.ID)
	if err != nil {
		return CurtainPricingConfig{}, mapPgError(err)
	}
	return cfg, nil
}

func (r *repository) GetProductPricingMode(ctx context.Context, productID int64) (catalog.PricingMode, error) {
	var mode catalog.PricingMode
	err := r.db.QueryRow(ctx, `
		SELECT pt.pricing_mode
		FROM products p
		JOIN product_types pt ON pt.id = p.product_type_id
		WHERE p.id = $1`, productID).Scan(&mode)
	if err != nil {
		return "", mapPgError(err)
	}
	return mode, nil
}
