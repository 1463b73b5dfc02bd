package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/happyfarm/internal/domain"
)

func TestToDomainError(t *testing.T) {
	policy := &domain.PolicyError{Kind: domain.ErrNotEligible, Message: "Cow must be at least 2 years old for sacrifice."}

	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"domain error passes through", NewNotFound("Animal not found"), http.StatusNotFound, "NOT_FOUND", "Animal not found"},
		{"wrapped domain error", fmt.Errorf("ctx: %w", NewUnauthorized("Unauthenticated.")), http.StatusUnauthorized, "UNAUTHENTICATED", "Unauthenticated."},
		{"policy error", fmt.Errorf("sacrifice: %w", policy), http.StatusBadRequest, "BUSINESS_RULE", policy.Message},
		{"no rows", pgx.ErrNoRows, http.StatusNotFound, "NOT_FOUND", "Resource not found"},
		{"fiber not found", fiber.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "Not Found"},
		{"fiber bad request", fiber.NewError(http.StatusBadRequest, "bad"), http.StatusBadRequest, "Bad Request", "bad"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", "Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToDomainError(tc.err)
			require.NotNil(t, got)
			assert.Equal(t, tc.status, got.HTTPStatus)
			assert.Equal(t, tc.code, got.Code)
			assert.Equal(t, tc.message, got.Message)
		})
	}
}

func TestToDomainErrorKeepsPolicyKind(t *testing.T) {
	policy := &domain.PolicyError{Kind: domain.ErrAlreadySacrificed, Message: "Animal has already been sacrificed"}
	got := ToDomainError(policy)
	assert.ErrorIs(t, got, domain.ErrAlreadySacrificed)
}

func TestNewFieldError(t *testing.T) {
	err := ToDomainError(NewFieldError("email", "The email field is required."))
	assert.Equal(t, http.StatusUnprocessableEntity, err.HTTPStatus)
	assert.Equal(t, map[string][]string{"email": {"The email field is required."}}, err.Fields)
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}
