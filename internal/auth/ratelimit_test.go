package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLimiterAllowsBurstThenRejects(t *testing.T) {
	limiter := NewLoginLimiter(1, 2)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"), "limits are per client")
}

func TestLoginLimiterDisabled(t *testing.T) {
	limiter := NewLoginLimiter(0, 1)
	for i := 0; i < 50; i++ {
		require.True(t, limiter.Allow("10.0.0.1"))
	}
}

func TestLoginLimiterCleanupEvictsIdleClients(t *testing.T) {
	now := time.Date(2025, 6, 25, 12, 0, 0, 0, time.UTC)
	limiter := NewLoginLimiter(10, 5)
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.Allow("10.0.0.1"))
	now = now.Add(5 * time.Minute)
	require.True(t, limiter.Allow("10.0.0.2"))
	assert.Equal(t, 2, limiter.tracked())

	now = now.Add(6 * time.Minute)
	limiter.Cleanup()
	assert.Equal(t, 1, limiter.tracked(), "only the client idle past the window is dropped")

	now = now.Add(10 * time.Minute)
	limiter.Cleanup()
	assert.Zero(t, limiter.tracked())
}

func TestLoginLimiterBoundsTrackedClients(t *testing.T) {
	now := time.Date(2025, 6, 25, 12, 0, 0, 0, time.UTC)
	limiter := NewLoginLimiter(10, 5)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 3*maxTrackedClients; i++ {
		require.True(t, limiter.Allow(fmt.Sprintf("ip-%d", i)))
		now = now.Add(time.Second)
	}

	assert.LessOrEqual(t, limiter.tracked(), maxTrackedClients)
}

func TestLoginLimiterKeepsThrottledClientUntilRefilled(t *testing.T) {
	now := time.Date(2025, 6, 25, 12, 0, 0, 0, time.UTC)
	limiter := NewLoginLimiter(1, 2)
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.Allow("10.0.0.1"))
	require.True(t, limiter.Allow("10.0.0.1"))
	require.False(t, limiter.Allow("10.0.0.1"))

	now = now.Add(30 * time.Second)
	limiter.Cleanup()
	assert.False(t, limiter.Allow("10.0.0.1"), "eviction must not reset an active limit")
}

func TestLoginLimiterHandler(t *testing.T) {
	limiter := NewLoginLimiter(1, 1)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(http.StatusTooManyRequests).SendString(err.Error())
		},
	})
	app.Post("/login", limiter.Handle, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
