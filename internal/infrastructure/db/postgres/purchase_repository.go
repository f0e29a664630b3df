package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

type PurchaseRepository struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

// ReserveAndRecord decrements stock and inserts the purchase row in one
// transaction. The decrement is a conditional UPDATE, so two concurrent
// purchases can never oversell: whichever commits second sees the reduced
// quantity and fails the quantity >= $1 guard.
func (r *PurchaseRepository) ReserveAndRecord(ctx context.Context, personID int64, productID string, quantity int) (*domain.Purchase, int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("begin purchase tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var remaining int
	var unitPrice float64
	err = tx.QueryRow(ctx, `
		UPDATE products
		SET quantity = quantity - $1, updated_at = $2
		WHERE product_id = $3 AND quantity >= $1
		RETURNING quantity, price`,
		quantity, time.Now().UTC(), productID,
	).Scan(&remaining, &unitPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, r.stockFailure(ctx, tx, productID, quantity)
		}
		return nil, 0, fmt.Errorf("reserve stock for %s: %w", productID, err)
	}

	purchase := &domain.Purchase{
		PersonID:  personID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO purchases (person_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING transaction_id, purchased_at`,
		personID, productID, quantity, unitPrice,
	).Scan(&purchase.TransactionID, &purchase.PurchasedAt)
	if err != nil {
		return nil, 0, fmt.Errorf("record purchase: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("commit purchase: %w", err)
	}
	return purchase, remaining, nil
}

// stockFailure distinguishes a missing product from a genuine shortfall after
// the conditional UPDATE matched no row.
func (r *PurchaseRepository) stockFailure(ctx context.Context, tx pgx.Tx, productID string, requested int) error {
	var available int
	err := tx.QueryRow(ctx, `SELECT quantity FROM products WHERE product_id = $1`, productID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("check stock for %s: %w", productID, err)
	}
	return &domain.InsufficientStockError{
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}

func (r *PurchaseRepository) CountByProduct(ctx context.Context, productID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchases WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count purchases for %s: %w", productID, err)
	}
	return count, nil
}

func (r *PurchaseRepository) HistoryByPerson(ctx context.Context, personID int64, page ports.PageRequest) ([]ports.PurchaseLine, int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchases WHERE person_id = $1`, personID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT pu.transaction_id, pu.purchased_at, pu.person_id,
		       pe.first_name || ' ' || pe.last_name,
		       pu.product_id, pr.name, pu.quantity, pu.unit_price,
		       pu.quantity * pu.unit_price
		FROM purchases pu
		JOIN persons pe ON pe.person_id = pu.person_id
		JOIN products pr ON pr.product_id = pu.product_id
		WHERE pu.person_id = $1
		ORDER BY pu.purchased_at DESC, pu.transaction_id DESC
		LIMIT $2 OFFSET $3`,
		personID, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("purchase history: %w", err)
	}
	defer rows.Close()

	lines, err := scanPurchaseLines(rows)
	if err != nil {
		return nil, 0, err
	}
	return lines, total, nil
}

func (r *PurchaseRepository) SummaryByPerson(ctx context.Context, personID int64) (*ports.CustomerSummary, error) {
	var s ports.CustomerSummary
	var last *time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT pe.person_id, pe.first_name, pe.last_name, pe.email,
		       COUNT(pu.transaction_id),
		       COALESCE(SUM(pu.quantity), 0),
		       COALESCE(SUM(pu.quantity * pu.unit_price), 0),
		       MAX(pu.purchased_at)
		FROM persons pe
		LEFT JOIN purchases pu ON pu.person_id = pe.person_id
		WHERE pe.person_id = $1
		GROUP BY pe.person_id, pe.first_name, pe.last_name, pe.email`,
		personID,
	).Scan(&s.PersonID, &s.FirstName, &s.LastName, &s.Email,
		&s.TotalTransactions, &s.TotalItems, &s.TotalSpent, &last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, fmt.Errorf("customer summary %d: %w", personID, err)
	}
	if last != nil {
		s.LastPurchase = *last
	}
	return &s, nil
}

func (r *PurchaseRepository) ListAll(ctx context.Context, page ports.PageRequest) ([]ports.PurchaseLine, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchases`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchases: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT pu.transaction_id, pu.purchased_at, pu.person_id,
		       pe.first_name || ' ' || pe.last_name,
		       pu.product_id, pr.name, pu.quantity, pu.unit_price,
		       pu.quantity * pu.unit_price
		FROM purchases pu
		JOIN persons pe ON pe.person_id = pu.person_id
		JOIN products pr ON pr.product_id = pu.product_id
		ORDER BY pu.purchased_at DESC, pu.transaction_id DESC
		LIMIT $1 OFFSET $2`,
		page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	lines, err := scanPurchaseLines(rows)
	if err != nil {
		return nil, 0, err
	}
	return lines, total, nil
}

func scanPurchaseLines(rows pgx.Rows) ([]ports.PurchaseLine, error) {
	var lines []ports.PurchaseLine
	for rows.Next() {
		var l ports.PurchaseLine
		if err := rows.Scan(&l.TransactionID, &l.PurchasedAt, &l.PersonID, &l.CustomerName,
			&l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice, &l.Total); err != nil {
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchase lines: %w", err)
	}
	return lines, nil
}
