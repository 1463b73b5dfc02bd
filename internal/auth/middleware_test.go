package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/happyfarm/internal/domain"
	"github.com/spec-kit/happyfarm/internal/repository"
	apperrors "github.com/spec-kit/happyfarm/pkg/util/errorutil"
)

const testUserID = "5b0f6a0e-4c1e-4a55-8d7e-0d6c1f6a3b11"

func newMiddlewareApp(t *testing.T) (*fiber.App, *TokenManager, RevocationList) {
	t.Helper()

	store := repository.NewMemoryStore()
	user := &domain.User{ID: testUserID, Name: "Ali Eid", Email: "ali@example.com", PasswordHash: "x"}
	farm := &domain.Farm{ID: "8e3b7a52-9f0c-4d0e-b6f3-2f4e7c1d9a20", UserID: testUserID, Name: "Ali Eid's Farm"}
	require.NoError(t, store.Users().CreateWithFarm(context.Background(), user, farm))

	tokens := NewTokenManager("secret", time.Hour)
	revoked := NewMemoryRevocationList()
	mw := NewAuthMiddleware(tokens, store.Users(), revoked, zap.NewNop())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"message": domainErr.Message})
		},
	})
	app.Get("/me", mw.Handle, func(c *fiber.Ctx) error {
		principal, err := RequirePrincipal(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": principal.User.ID, "jti": principal.TokenID})
	})
	return app, tokens, revoked
}

func TestAuthMiddleware(t *testing.T) {
	app, tokens, revoked := newMiddlewareApp(t)

	valid, err := tokens.GenerateToken(testUserID)
	require.NoError(t, err)
	unknownUser, err := tokens.GenerateToken("0c7a1f3e-1111-4222-8333-944455556666")
	require.NoError(t, err)
	revokedToken, err := tokens.GenerateToken(testUserID)
	require.NoError(t, err)
	require.NoError(t, revoked.Revoke(context.Background(), revokedToken.ID, time.Hour))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid bearer", "Bearer " + valid.Value, http.StatusOK},
		{"lowercase scheme", "bearer " + valid.Value, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid.Value, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"malformed token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"unknown user", "Bearer " + unknownUser.Value, http.StatusUnauthorized},
		{"revoked token", "Bearer " + revokedToken.Value, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
