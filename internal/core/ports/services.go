package ports

import (
	"context"

	"github.com/retailops/store-console/internal/core/domain"
)

// RegisterInput carries a self-service registration request.
type RegisterInput struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"required,usphone"`
	Password  string `validate:"required"`
}

// AddClientInput carries an admin-created customer record. The client has no
// credentials until their first login provisions them.
type AddClientInput struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"required,usphone"`
}

// AuthService implements registration, login and session issuance.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Person, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Session, error)
}

// AddProductInput carries a new catalog entry.
type AddProductInput struct {
	ID       string  `validate:"required"`
	Name     string  `validate:"required"`
	Price    float64 `validate:"gt=0"`
	Quantity int     `validate:"gte=0"`
}

// UpdateProductInput is a partial update; nil fields keep current values.
type UpdateProductInput struct {
	ID       string `validate:"required"`
	Name     *string
	Price    *float64
	Quantity *int
}

// CatalogService manages the product catalog.
type CatalogService interface {
	AddProduct(ctx context.Context, sess *domain.Session, input AddProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, sess *domain.Session, input UpdateProductInput) (*domain.Product, error)
	RemoveProduct(ctx context.Context, sess *domain.Session, productID string) error
	ListProducts(ctx context.Context, sess *domain.Session, page PageRequest) ([]domain.Product, int, error)
	SearchProducts(ctx context.Context, sess *domain.Session, criteria SearchCriteria) ([]domain.Product, error)
	SalesAnalysis(ctx context.Context, sess *domain.Session) ([]ProductSales, error)
}

// PurchaseInput carries a purchase request.
type PurchaseInput struct {
	CustomerID int64  `validate:"gt=0"`
	ProductID  string `validate:"required"`
	Quantity   int    `validate:"gt=0"`
}

// PurchaseResult is returned after a completed purchase.
type PurchaseResult struct {
	Purchase    *domain.Purchase
	ProductName string
	Total       float64
	Remaining   int
}

// PurchaseService runs the transaction workflows.
type PurchaseService interface {
	AddClient(ctx context.Context, sess *domain.Session, input AddClientInput) (*domain.Person, error)
	MakePurchase(ctx context.Context, sess *domain.Session, input PurchaseInput) (*PurchaseResult, error)
}

// HistoryService exposes customer purchase history and summaries.
type HistoryService interface {
	PurchaseHistory(ctx context.Context, sess *domain.Session, customerID int64, page PageRequest) ([]PurchaseLine, int, error)
	PurchaseSummary(ctx context.Context, sess *domain.Session, customerID int64) (*CustomerSummary, error)
	FindCustomerByEmail(ctx context.Context, sess *domain.Session, email string) (*domain.Person, error)
	AllPurchases(ctx context.Context, sess *domain.Session, page PageRequest) ([]PurchaseLine, int, error)
}

// AuditRecorder records user actions for the audit trail. Implementations are
// fire-and-forget; recording must never fail a workflow.
type AuditRecorder interface {
	UserAction(userID int64, action, detail string)
}
