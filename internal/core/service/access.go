package service

import (
	"errors"

	"github.com/retailops/store-console/internal/core/domain"
)

// requireUser rejects calls without an authenticated session.
func requireUser(sess *domain.Session) error {
	if !sess.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	return nil
}

// requireAdmin rejects calls without an authenticated ADMIN session.
func requireAdmin(sess *domain.Session) error {
	if !sess.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	if !sess.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// requireSelfOrAdmin rejects access to another person's data unless the
// session carries the ADMIN role.
func requireSelfOrAdmin(sess *domain.Session, personID int64) error {
	if !sess.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	if sess.IsAdmin() || sess.UserID() == personID {
		return nil
	}
	return domain.ErrForbidden
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrPersonNotFound)
}
