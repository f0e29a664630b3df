package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

// HistoryService exposes purchase history and summaries. A user may always
// view their own records; another customer's records and the all-purchases
// listing require the ADMIN role.
type HistoryService struct {
	persons   ports.PersonRepository
	purchases ports.PurchaseRepository
	logger    zerolog.Logger
}

func NewHistoryService(persons ports.PersonRepository, purchases ports.PurchaseRepository, logger zerolog.Logger) *HistoryService {
	return &HistoryService{persons: persons, purchases: purchases, logger: logger}
}

// PurchaseHistory returns one page of a customer's purchases plus the total count.
func (s *HistoryService) PurchaseHistory(ctx context.Context, sess *domain.Session, customerID int64, page ports.PageRequest) ([]ports.PurchaseLine, int, error) {
	if customerID <= 0 {
		return nil, 0, domain.NewValidationError("customer id", "customer id must be greater than 0")
	}
	if err := requireSelfOrAdmin(sess, customerID); err != nil {
		s.warnDenied(sess, customerID, "history")
		return nil, 0, err
	}
	if _, err := s.persons.FindByID(ctx, customerID); err != nil {
		return nil, 0, err
	}
	return s.purchases.HistoryByPerson(ctx, customerID, page)
}

// PurchaseSummary returns a customer's aggregate purchase statistics.
func (s *HistoryService) PurchaseSummary(ctx context.Context, sess *domain.Session, customerID int64) (*ports.CustomerSummary, error) {
	if customerID <= 0 {
		return nil, domain.NewValidationError("customer id", "customer id must be greater than 0")
	}
	if err := requireSelfOrAdmin(sess, customerID); err != nil {
		s.warnDenied(sess, customerID, "summary")
		return nil, err
	}
	if _, err := s.persons.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.purchases.SummaryByPerson(ctx, customerID)
}

// FindCustomerByEmail looks a customer up for the summary view. Non-admins may
// only look up their own address.
func (s *HistoryService) FindCustomerByEmail(ctx context.Context, sess *domain.Session, email string) (*domain.Person, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, domain.NewValidationError("email", "email cannot be empty")
	}
	if !sess.IsAdmin() && sess.User().Email != email {
		return nil, domain.ErrForbidden
	}
	return s.persons.FindByEmail(ctx, email)
}

// AllPurchases returns one page of every customer's purchases. Admin only.
func (s *HistoryService) AllPurchases(ctx context.Context, sess *domain.Session, page ports.PageRequest) ([]ports.PurchaseLine, int, error) {
	if err := requireAdmin(sess); err != nil {
		if sess.IsAuthenticated() {
			s.logger.Warn().Int64("person_id", sess.UserID()).Msg("unauthorized attempt to view all purchases")
		}
		return nil, 0, err
	}
	return s.purchases.ListAll(ctx, page)
}

func (s *HistoryService) warnDenied(sess *domain.Session, customerID int64, what string) {
	if sess.IsAuthenticated() && !sess.IsAdmin() && sess.UserID() != customerID {
		s.logger.Warn().
			Int64("person_id", sess.UserID()).
			Int64("customer_id", customerID).
			Msgf("unauthorized attempt to view customer %s", what)
	}
}
