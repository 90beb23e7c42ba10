package graphql

import (
	"errors"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

// Error codes surfaced in the extensions of GraphQL errors
const (
	codeNotFound        = "NOT_FOUND"
	codeInvalidInput    = "INVALID_INPUT"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeInternal        = "INTERNAL_ERROR"
)

// classifyError maps a resolver error to an extensions code
func classifyError(err error) string {
	if err == nil {
		return codeInternal
	}

	if domain.IsNotFound(err) {
		return codeNotFound
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return codeInvalidInput
	}

	return codeInternal
}
