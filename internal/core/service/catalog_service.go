package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

// CatalogService manages the product catalog. Mutations and the sales
// analysis are admin-only; listing and search are open to any authenticated
// session. Denied calls never touch the repositories.
type CatalogService struct {
	products  ports.ProductRepository
	purchases ports.PurchaseRepository
	audit     ports.AuditRecorder
	validate  *validator.Validate
	logger    zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, purchases ports.PurchaseRepository, audit ports.AuditRecorder, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		products:  products,
		purchases: purchases,
		audit:     audit,
		validate:  newValidator(),
		logger:    logger,
	}
}

// AddProduct creates a catalog entry with an operator-assigned id.
func (s *CatalogService) AddProduct(ctx context.Context, sess *domain.Session, input ports.AddProductInput) (*domain.Product, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if err := checkInput(s.validate, input); err != nil {
		return nil, err
	}

	if _, err := s.products.FindByID(ctx, input.ID); err == nil {
		s.logger.Warn().Str("product_id", input.ID).Msg("attempt to add product with existing id")
		return nil, domain.ErrProductExists
	} else if !isNotFound(err) {
		return nil, err
	}

	product := &domain.Product{
		ID:       input.ID,
		Name:     input.Name,
		Price:    input.Price,
		Quantity: input.Quantity,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("product added")
	s.audit.UserAction(sess.UserID(), "product_add",
		fmt.Sprintf("added product %s (%s) price %.2f quantity %d", product.ID, product.Name, product.Price, product.Quantity))
	return product, nil
}

// UpdateProduct applies a partial update. Current values are fetched first so
// the audit entry carries the diff.
func (s *CatalogService) UpdateProduct(ctx context.Context, sess *domain.Session, input ports.UpdateProductInput) (*domain.Product, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if err := checkInput(s.validate, input); err != nil {
		return nil, err
	}

	current, err := s.products.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	before := *current

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domain.NewValidationError("name", "name cannot be empty")
		}
		current.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, domain.NewValidationError("price", "price must be greater than 0")
		}
		current.Price = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, domain.NewValidationError("quantity", "quantity must be at least 0")
		}
		current.Quantity = *input.Quantity
	}

	if err := s.products.Update(ctx, current); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", current.ID).Msg("product updated")
	s.audit.UserAction(sess.UserID(), "product_update",
		fmt.Sprintf("updated product %s: name %q->%q price %.2f->%.2f quantity %d->%d",
			current.ID, before.Name, current.Name, before.Price, current.Price, before.Quantity, current.Quantity))
	return current, nil
}

// RemoveProduct deletes a product unless any purchase references it.
func (s *CatalogService) RemoveProduct(ctx context.Context, sess *domain.Session, productID string) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}
	if productID == "" {
		return domain.NewValidationError("product id", "product id cannot be empty")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	refs, err := s.purchases.CountByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if refs > 0 {
		s.logger.Warn().Str("product_id", productID).Int("purchases", refs).Msg("attempt to remove referenced product")
		return domain.ErrProductReferenced
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", productID).Msg("product removed")
	s.audit.UserAction(sess.UserID(), "product_remove",
		fmt.Sprintf("removed product %s (%s)", productID, product.Name))
	return nil
}

// ListProducts returns one page of the catalog plus the total count.
func (s *CatalogService) ListProducts(ctx context.Context, sess *domain.Session, page ports.PageRequest) ([]domain.Product, int, error) {
	if err := requireUser(sess); err != nil {
		return nil, 0, err
	}
	return s.products.List(ctx, page)
}

// SearchProducts filters the catalog by name substring, price range and stock.
func (s *CatalogService) SearchProducts(ctx context.Context, sess *domain.Session, criteria ports.SearchCriteria) ([]domain.Product, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	if criteria.MinPrice != nil && *criteria.MinPrice < 0 {
		return nil, domain.NewValidationError("minimum price", "minimum price cannot be negative")
	}
	if criteria.MaxPrice != nil && *criteria.MaxPrice < 0 {
		return nil, domain.NewValidationError("maximum price", "maximum price cannot be negative")
	}
	if criteria.MinPrice != nil && criteria.MaxPrice != nil && *criteria.MaxPrice < *criteria.MinPrice {
		return nil, domain.NewValidationError("maximum price", "maximum price cannot be less than minimum price")
	}
	return s.products.Search(ctx, criteria)
}

// SalesAnalysis reports per-product sales figures.
func (s *CatalogService) SalesAnalysis(ctx context.Context, sess *domain.Session) ([]ports.ProductSales, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	return s.products.SalesAnalysis(ctx)
}
