package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

// sortColumns whitelists the columns a paginated listing may order by. Sort
// input never reaches the SQL text directly.
var sortColumns = map[string]string{
	"id":       "product_id",
	"name":     "name",
	"price":    "price",
	"quantity": "quantity",
}

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (product_id, name, price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		product.ID, product.Name, product.Price, product.Quantity, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrProductExists
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `
		SELECT product_id, name, price, quantity, created_at, updated_at
		FROM products WHERE product_id = $1`, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE products
		SET name = $1, price = $2, quantity = $3, updated_at = $4
		WHERE product_id = $5
		RETURNING updated_at`,
		product.Name, product.Price, product.Quantity, time.Now().UTC(), product.ID,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("update product %s: %w", product.ID, err)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		// foreign_key_violation: a purchase still references this product
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.ErrProductReferenced
		}
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context, page ports.PageRequest) ([]domain.Product, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	column, ok := sortColumns[strings.ToLower(page.SortColumn)]
	if !ok {
		column = "product_id"
	}
	direction := ports.SortAsc
	if strings.EqualFold(page.SortDirection, ports.SortDesc) {
		direction = ports.SortDesc
	}

	sql := fmt.Sprintf(`
		SELECT product_id, name, price, quantity, created_at, updated_at
		FROM products
		ORDER BY %s %s
		LIMIT $1 OFFSET $2`, column, direction)

	rows, err := r.pool.Query(ctx, sql, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) Search(ctx context.Context, c ports.SearchCriteria) ([]domain.Product, error) {
	sql := `
		SELECT product_id, name, price, quantity, created_at, updated_at
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2::numeric IS NULL OR price >= $2)
		  AND ($3::numeric IS NULL OR price <= $3)
		  AND (NOT $4 OR quantity > 0)
		ORDER BY product_id`

	rows, err := r.pool.Query(ctx, sql, c.Name, c.MinPrice, c.MaxPrice, c.InStockOnly)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) SalesAnalysis(ctx context.Context) ([]ports.ProductSales, error) {
	sql := `
		SELECT p.product_id, p.name, p.price, p.quantity,
		       COUNT(pu.transaction_id) AS times_sold,
		       COALESCE(SUM(pu.quantity), 0) AS quantity_sold,
		       COALESCE(SUM(pu.quantity * pu.unit_price), 0) AS total_revenue
		FROM products p
		LEFT JOIN purchases pu ON pu.product_id = p.product_id
		GROUP BY p.product_id, p.name, p.price, p.quantity
		ORDER BY total_revenue DESC, p.product_id`

	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("sales analysis: %w", err)
	}
	defer rows.Close()

	var out []ports.ProductSales
	for rows.Next() {
		var s ports.ProductSales
		if err := rows.Scan(&s.ProductID, &s.Name, &s.Price, &s.CurrentStock, &s.TimesSold, &s.QuantitySold, &s.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan sales row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales rows: %w", err)
	}
	return out, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
