package catalog

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/decora-erp/decora-erp/internal/platform/httpx"
)

const uniqueViolation = "23505"

type ListFilters struct {
	ProductTypeID *int64
	StoreID       *int64
	Search        string
	IsActive      *bool
	Page          int
	Limit         int
}

type Repository interface {
	ListProductTypes(ctx context.Context) ([]ProductType, error)
	GetProductType(ctx context.Context, id int64) (ProductType, error)
	CreateProductType(ctx context.Context, pt ProductType) (ProductType, error)
	UpdateProductTypeName(ctx context.Context, id int64, name string) error
	DeleteProductType(ctx context.Context, id int64) error
	CountProductsOfType(ctx context.Context, typeID int64) (int, error)
	CountPricedItemsOfType(ctx context.Context, typeID int64) (int, error)

	ListVariants(ctx context.Context, typeID int64) ([]Variant, error)
	GetVariant(ctx context.Context, id int64) (Variant, error)
	CreateVariant(ctx context.Context, v Variant) (Variant, error)
	RenameVariant(ctx context.Context, id int64, name string) error
	DeleteVariant(ctx context.Context, id int64) error

	ListHeadingStyles(ctx context.Context, typeID int64) ([]HeadingStyle, error)
	GetHeadingStyle(ctx context.Context, id int64) (HeadingStyle, error)
	CreateHeadingStyle(ctx context.Context, hs HeadingStyle) (HeadingStyle, error)
	RenameHeadingStyle(ctx context.Context, id int64, name string) error
	DeleteHeadingStyle(ctx context.Context, id int64) error

	ListColors(ctx context.Context, productID int64) ([]ProductColor, error)
	CreateColor(ctx context.Context, c ProductColor) (ProductColor, error)
	DeleteColor(ctx context.Context, id int64) error

	CountProductReferences(ctx context.Context, productID int64) (int, error)
	ListProducts(ctx context.Context, filters ListFilters) ([]Product, int, error)
	GetProduct(ctx context.Context, id int64) (Product, error)
	CreateProduct(ctx context.Context, p Product) (Product, error)
	UpdateProduct(ctx context.Context, id int64, p Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
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

func (r *repository) ListProductTypes(ctx context.Context) ([]ProductType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, pricing_mode, created_at, updated_at FROM product_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []ProductType
	for rows.Next() {
		var pt ProductType
		if err := rows.Scan(&pt.ID, &pt.Name, &pt.PricingMode, &pt.CreatedAt, &pt.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, pt)
	}
	return types, rows.Err()
}

func (r *repository) GetProductType(ctx context.Context, id int64) (ProductType, error) {
	var pt ProductType
	err := r.db.QueryRow(ctx,
		`SELECT id, name, pricing_mode, created_at, updated_at FROM product_types WHERE id = $1`, id).
		Scan(&pt.ID, &pt.Name, &pt.PricingMode, &pt.CreatedAt, &pt.UpdatedAt)
	if err != nil {
		return ProductType{}, mapPgError(err)
	}

	variants, err := r.ListVariants(ctx, id)
	if err != nil {
		return ProductType{}, err
	}
	pt.Variants = variants

	styles, err := r.ListHeadingStyles(ctx, id)
	if err != nil {
		return ProductType{}, err
	}
	pt.HeadingStyles = styles
	return pt, nil
}

func (r *repository) CreateProductType(ctx context.Context, pt ProductType) (ProductType, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO product_types (name, pricing_mode, created_at, updated_at)
		 VALUES ($1, $2, NOW(), NOW()) RETURNING id, created_at, updated_at`,
		pt.Name, pt.PricingMode).
		Scan(&pt.ID, &pt.CreatedAt, &pt.UpdatedAt)
	if err != nil {
		return ProductType{}, mapPgError(err)
	}
	return pt, nil
}

func (r *repository) UpdateProductTypeName(ctx context.Context, id int64, name string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE product_types SET name = $1, updated_at = NOW() WHERE id = $2`, name, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteProductType(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM product_types WHERE id = $1`, id)
	return err
}

func (r *repository) CountProductsOfType(ctx context.Context, typeID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE product_type_id = $1`, typeID).Scan(&n)
	return n, err
}

func (r *repository) CountPricedItemsOfType(ctx context.Context, typeID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM price_list_items i
		JOIN products p ON p.id = i.product_id
		WHERE p.product_type_id = $1`, typeID).Scan(&n)
	return n, err
}

func (r *repository) ListVariants(ctx context.Context, typeID int64) ([]Variant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, product_type_id, name, position FROM product_type_variants WHERE product_type_id = $1 ORDER BY position, id`, typeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []Variant
	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.ProductTypeID, &v.Name, &v.Position); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func (r *repository) GetVariant(ctx context.Context, id int64) (Variant, error) {
	var v Variant
	err := r.db.QueryRow(ctx,
		`SELECT id, product_type_id, name, position FROM product_type_variants WHERE id = $1`, id).
		Scan(&v.ID, &v.ProductTypeID, &v.Name, &v.Position)
	if err != nil {
		return Variant{}, mapPgError(err)
	}
	return v, nil
}

func (r *repository) CreateVariant(ctx context.Context, v Variant) (Variant, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO product_type_variants (product_type_id, name, position) VALUES ($1, $2, $3) RETURNING id`,
		v.ProductTypeID, v.Name, v.Position).Scan(&v.ID)
	if err != nil {
		return Variant{}, mapPgError(err)
	}
	return v, nil
}

func (r *repository) RenameVariant(ctx context.Context, id int64, name string) error {
	tag, err := r.db.Exec(ctx, `UPDATE product_type_variants SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteVariant(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM product_type_variants WHERE id = $1`, id)
	return err
}

func (r *repository) ListHeadingStyles(ctx context.Context, typeID int64) ([]HeadingStyle, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, product_type_id, name, position FROM heading_styles WHERE product_type_id = $1 ORDER BY position, id`, typeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var styles []HeadingStyle
	for rows.Next() {
		var hs HeadingStyle
		if err := rows.Scan(&hs.ID, &hs.ProductTypeID, &hs.Name, &hs.Position); err != nil {
			return nil, err
		}
		styles = append(styles, hs)
	}
	return styles, rows.Err()
}

func (r *repository) GetHeadingStyle(ctx context.Context, id int64) (HeadingStyle, error) {
	var hs HeadingStyle
	err := r.db.QueryRow(ctx,
		`SELECT id, product_type_id, name, position FROM heading_styles WHERE id = $1`, id).
		Scan(&hs.ID, &hs.ProductTypeID, &hs.Name, &hs.Position)
	if err != nil {
		return HeadingStyle{}, mapPgError(err)
	}
	return hs, nil
}

func (r *repository) CreateHeadingStyle(ctx context.Context, hs HeadingStyle) (HeadingStyle, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO heading_styles (product_type_id, name, position) VALUES ($1, $2, $3) RETURNING id`,
		hs.ProductTypeID, hs.Name, hs.Position).Scan(&hs.ID)
	if err != nil {
		return HeadingStyle{}, mapPgError(err)
	}
	return hs, nil
}

func (r *repository) RenameHeadingStyle(ctx context.Context, id int64, name string) error {
	tag, err := r.db.Exec(ctx, `UPDATE heading_styles SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteHeadingStyle(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM heading_styles WHERE id = $1`, id)
	return err
}

func (r *repository) ListColors(ctx context.Context, productID int64) ([]ProductColor, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, product_id, name FROM product_colors WHERE product_id = $1 ORDER BY name`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var colors []ProductColor
	for rows.Next() {
		var c ProductColor
		if err := rows.Scan(&c.ID, &c.ProductID, &c.Name); err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}

func (r *repository) CreateColor(ctx context.Context, c ProductColor) (ProductColor, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO product_colors (product_id, name) VALUES ($1, $2) RETURNING id`,
		c.ProductID, c.Name).Scan(&c.ID)
	if err != nil {
		return ProductColor{}, mapPgError(err)
	}
	return c, nil
}

func (r *repository) DeleteColor(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM product_colors WHERE id = $1`, id)
	return err
}

func (r *repository) CountProductReferences(ctx context.Context, productID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM price_list_items WHERE product_id = $1)
		     + (SELECT COUNT(*) FROM quotation_items WHERE product_id = $1)`, productID).Scan(&n)
	return n, err
}

func (r *repository) ListProducts(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	query := `SELECT id, sku, name, product_type_id, store_id, is_active, created_at, updated_at FROM products WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM products WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	appendFilter := func(clause string, value interface{}) {
		argCount++
		query += ` AND ` + clause + `$` + strconv.Itoa(argCount)
		countQuery += ` AND ` + clause + `$` + strconv.Itoa(argCount)
		args = append(args, value)
	}

	if filters.ProductTypeID != nil {
		appendFilter("product_type_id = ", *filters.ProductTypeID)
	}
	if filters.StoreID != nil {
		appendFilter("(store_id IS NULL OR store_id = ", *filters.StoreID)
		query += `)`
		countQuery += `)`
	}
	if filters.Search != "" {
		appendFilter("(name ILIKE ", "%"+filters.Search+"%")
		query += ` OR sku ILIKE $` + strconv.Itoa(argCount) + `)`
		countQuery += ` OR sku ILIKE $` + strconv.Itoa(argCount) + `)`
	}
	if filters.IsActive != nil {
		appendFilter("is_active = ", *filters.IsActive)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY name`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.ProductTypeID, &p.StoreID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *repository) GetProduct(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.db.QueryRow(ctx,
		`SELECT id, sku, name, product_type_id, store_id, is_active, created_at, updated_at FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.SKU, &p.Name, &p.ProductTypeID, &p.StoreID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, mapPgError(err)
	}
	return p, nil
}

func (r *repository) CreateProduct(ctx context.Context, p Product) (Product, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO products (sku, name, product_type_id, store_id, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING id, created_at, updated_at`,
		p.SKU, p.Name, p.ProductTypeID, p.StoreID, p.IsActive).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, mapPgError(err)
	}
	return p, nil
}

func (r *repository) UpdateProduct(ctx context.Context, id int64, p Product) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET sku = $1, name = $2, store_id = $3, is_active = $4, updated_at = NOW() WHERE id = $5`,
		p.SKU, p.Name, p.StoreID, p.IsActive, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteProduct(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}
