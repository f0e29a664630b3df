package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

// PurchaseService runs the transaction workflows: admin client creation and
// the validated purchase sequence. Each step short-circuits the operation;
// steps 4-5 (stock check and record) are a single storage transaction.
type PurchaseService struct {
	persons   ports.PersonRepository
	products  ports.ProductRepository
	purchases ports.PurchaseRepository
	cache     ports.ProductCacheInvalidator
	audit     ports.AuditRecorder
	validate  *validator.Validate
	logger    zerolog.Logger
}

func NewPurchaseService(
	persons ports.PersonRepository,
	products ports.ProductRepository,
	purchases ports.PurchaseRepository,
	cache ports.ProductCacheInvalidator,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *PurchaseService {
	return &PurchaseService{
		persons:   persons,
		products:  products,
		purchases: purchases,
		cache:     cache,
		audit:     audit,
		validate:  newValidator(),
		logger:    logger,
	}
}

// AddClient creates a customer record without credentials; the client's first
// login provisions them. Admin only.
func (s *PurchaseService) AddClient(ctx context.Context, sess *domain.Session, input ports.AddClientInput) (*domain.Person, error) {
	if err := requireAdmin(sess); err != nil {
		if sess.IsAuthenticated() {
			s.logger.Warn().Int64("person_id", sess.UserID()).Msg("unauthorized attempt to add client")
		}
		return nil, err
	}
	if err := checkInput(s.validate, input); err != nil {
		return nil, err
	}

	taken, err := s.persons.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		s.logger.Warn().Str("email", input.Email).Msg("attempt to add client with existing email")
		return nil, domain.ErrEmailExists
	}

	person := &domain.Person{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Role:      domain.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.persons.Create(ctx, person)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("person_id", created.ID).Str("email", created.Email).Msg("client added")
	s.audit.UserAction(sess.UserID(), "client_add",
		fmt.Sprintf("added client %s (id %d)", created.FullName(), created.ID))
	return created, nil
}

// MakePurchase validates the request, confirms the customer and product
// exist, then atomically decrements stock and records the purchase.
func (s *PurchaseService) MakePurchase(ctx context.Context, sess *domain.Session, input ports.PurchaseInput) (*ports.PurchaseResult, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	if err := checkInput(s.validate, input); err != nil {
		return nil, err
	}

	if _, err := s.persons.FindByID(ctx, input.CustomerID); err != nil {
		if isNotFound(err) {
			s.logger.Warn().Int64("customer_id", input.CustomerID).Msg("purchase for non-existent customer")
		}
		return nil, err
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if isNotFound(err) {
			s.logger.Warn().Str("product_id", input.ProductID).Msg("purchase of non-existent product")
		}
		return nil, err
	}

	purchase, remaining, err := s.purchases.ReserveAndRecord(ctx, input.CustomerID, input.ProductID, input.Quantity)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.InvalidateProduct(ctx, input.ProductID)
	}

	total := purchase.Total()
	s.logger.Info().
		Int64("customer_id", input.CustomerID).
		Str("product_id", input.ProductID).
		Int("quantity", input.Quantity).
		Float64("total", total).
		Msg("purchase completed")
	s.audit.UserAction(sess.UserID(), "purchase",
		fmt.Sprintf("processed purchase of %d %s for customer %d, total %.2f",
			input.Quantity, product.Name, input.CustomerID, total))

	return &ports.PurchaseResult{
		Purchase:    purchase,
		ProductName: product.Name,
		Total:       total,
		Remaining:   remaining,
	}, nil
}
