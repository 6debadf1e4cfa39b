package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/santoko/kasir-api/internal/interfaces/http"
	pkgjwt "github.com/santoko/kasir-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "kasir-api-test"
	testExpMin    = 60
)

// buildTestApp mounts the auth middleware in front of a handler that echoes
// the actor extracted from the token.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/me",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			actor, ok := apphttp.GetActor(c)
			if !ok {
				return c.SendStatus(fiber.StatusUnauthorized)
			}
			return c.JSON(fiber.Map{
				"user_id":      actor.UserID,
				"store_id":     actor.StoreID,
				"warehouse_id": actor.WarehouseID,
			})
		},
	)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate(testJWTSecret, 7, 1, 3, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		UserID      int64 `json:"user_id"`
		StoreID     int64 `json:"store_id"`
		WarehouseID int64 `json:"warehouse_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(7), body.UserID)
	assert.Equal(t, int64(1), body.StoreID)
	assert.Equal(t, int64(3), body.WarehouseID)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "")
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate(testJWTSecret, 7, 1, 3, testIssuer, testExpMin)
	require.NoError(t, err)

	for _, header := range []string{tok, "Basic " + tok, "Bearer "} {
		resp := doRequest(t, app, header)
		resp.Body.Close()
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q must be rejected", header)
	}
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "Bearer not.a.token")
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate("some-other-secret", 7, 1, 3, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
