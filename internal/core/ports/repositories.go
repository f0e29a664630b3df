package ports

import (
	"context"
	"time"

	"github.com/retailops/store-console/internal/core/domain"
)

// PersonRepository defines persistence for persons (customers and admins).
type PersonRepository interface {
	Create(ctx context.Context, person *domain.Person) (*domain.Person, error)
	FindByID(ctx context.Context, id int64) (*domain.Person, error)
	FindByEmail(ctx context.Context, email string) (*domain.Person, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// UpdateCredentials replaces the stored hash and salt for the given email.
	// Used for first-login provisioning of migrated records.
	UpdateCredentials(ctx context.Context, email, passwordHash, salt string) error
}

// SortDirection values accepted by paginated listings.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// PageRequest carries pagination and ordering parameters.
type PageRequest struct {
	Page     int
	PageSize int
	// SortColumn is matched against a per-query whitelist; unknown values fall
	// back to the query's default ordering.
	SortColumn    string
	SortDirection string
}

// Offset returns the row offset for this page.
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns the page count for total rows under this page size.
func (p PageRequest) TotalPages(total int) int {
	if p.PageSize <= 0 || total <= 0 {
		return 0
	}
	pages := total / p.PageSize
	if total%p.PageSize != 0 {
		pages++
	}
	return pages
}

// SearchCriteria filters a product search. Nil pointers mean "no constraint".
type SearchCriteria struct {
	Name        string
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
}

// ProductSales is one row of the per-product sales analysis.
type ProductSales struct {
	ProductID    string
	Name         string
	Price        float64
	CurrentStock int
	TimesSold    int
	QuantitySold int
	TotalRevenue float64
}

// ProductRepository defines persistence for the product catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page PageRequest) ([]domain.Product, int, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]domain.Product, error)
	SalesAnalysis(ctx context.Context) ([]ProductSales, error)
}

// PurchaseLine is a purchase joined with its product and customer for display.
type PurchaseLine struct {
	TransactionID int64
	PurchasedAt   time.Time
	PersonID      int64
	CustomerName  string
	ProductID     string
	ProductName   string
	Quantity      int
	UnitPrice     float64
	Total         float64
}

// CustomerSummary aggregates a customer's purchase activity.
type CustomerSummary struct {
	PersonID          int64
	FirstName         string
	LastName          string
	Email             string
	TotalTransactions int
	TotalItems        int
	TotalSpent        float64
	LastPurchase      time.Time
}

// PurchaseRepository defines persistence for purchases.
type PurchaseRepository interface {
	// ReserveAndRecord atomically decrements stock and inserts the purchase row
	// in a single transaction, returning the purchase and the stock remaining
	// after the decrement. It is safe under concurrent callers: the stock
	// check and decrement are one conditional UPDATE, and a shortfall aborts
	// with *domain.InsufficientStockError leaving stock unchanged.
	ReserveAndRecord(ctx context.Context, personID int64, productID string, quantity int) (*domain.Purchase, int, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
	HistoryByPerson(ctx context.Context, personID int64, page PageRequest) ([]PurchaseLine, int, error)
	SummaryByPerson(ctx context.Context, personID int64) (*CustomerSummary, error)
	ListAll(ctx context.Context, page PageRequest) ([]PurchaseLine, int, error)
}

// ProductCacheInvalidator drops cached product entries after out-of-band stock
// changes. Implementations must tolerate a no-op; callers must tolerate nil.
type ProductCacheInvalidator interface {
	InvalidateProduct(ctx context.Context, productID string)
}
