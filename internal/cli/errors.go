package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/retailops/store-console/internal/core/domain"
)

// resolveError maps an error from a service call to the message shown on the
// console. Known domain errors get deterministic operator-facing text;
// anything else is logged with its real cause and rendered generically.
func resolveError(err error, log zerolog.Logger) string {
	// Validation messages already name the offending field.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fmt.Sprintf("Error: %s.", ve.Message)
	}

	var ise *domain.InsufficientStockError
	if errors.As(err, &ise) {
		return fmt.Sprintf("Error: insufficient stock for product %s (requested %d, available %d).",
			ise.ProductID, ise.Requested, ise.Available)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid email or password. Please try again."
	case errors.Is(err, domain.ErrEmailExists):
		return "Error: Email already exists."
	case errors.Is(err, domain.ErrPersonNotFound):
		return "Error: Customer ID does not exist!"
	case errors.Is(err, domain.ErrProductNotFound):
		return "Error: Product not found."
	case errors.Is(err, domain.ErrProductExists):
		return "Error: A product with this ID already exists."
	case errors.Is(err, domain.ErrProductReferenced):
		return "Error: Product has purchase records and cannot be removed."
	case errors.Is(err, domain.ErrUnauthenticated):
		return "Authentication required."
	case errors.Is(err, domain.ErrForbidden):
		return "Access denied. Admin privileges required."
	}

	log.Error().Err(err).Msg("unhandled error")
	return "An unexpected error occurred. Please try again."
}
