package serverutils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type sampleRequest struct {
	Name  string `validate:"required"`
	Total int    `validate:"gte=0"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Name: "x"}))

	err := ValidateRequest(sampleRequest{Total: -1})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(err))
	assert.Equal(t, "Name is required; Total must be at least 0", ValidationMessage(err))
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fiber.NewError(fiber.StatusTeapot, "tea"), fiber.StatusTeapot},
		{BadRequest("unknown item type %q", "essay"), fiber.StatusBadRequest},
		{ErrNotFound, fiber.StatusNotFound},
		{ErrUnauthorized, fiber.StatusUnauthorized},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/bad", func(c *fiber.Ctx) error { return BadRequest("nope") })
	app.Get("/ok", func(c *fiber.Ctx) error { return c.JSON(SuccessResponse("fine", nil)) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/bad", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func newAuthApp(opts AuthOptions) *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(opts))
	app.Get("/", func(c *fiber.Ctx) error {
		subject, _ := c.Locals("subject").(string)
		return c.SendString(subject)
	})
	return app
}

func TestAuthMiddlewareDisabled(t *testing.T) {
	resp, err := newAuthApp(AuthOptions{}).Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareJWT(t *testing.T) {
	app := newAuthApp(AuthOptions{JWTSecret: "secret"})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "author-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareAPIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("k3y"), bcrypt.MinCost)
	require.NoError(t, err)
	app := newAuthApp(AuthOptions{APIKeyHash: string(hash)})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-API-Key", "k3y")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-API-Key", "wrong")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
