package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func runRequest(auth string, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	_ = h(c)
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"sub": "42", "role": "CUSTOMER"}, testSecret)
	rec, c := runRequest("Bearer "+raw, JWTAuth(testSecret))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", c.Get("user_id"))
	assert.Equal(t, "CUSTOMER", c.Get("role"))
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := runRequest("", JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"sub": "42"}, "other-secret")
	rec, _ := runRequest("Bearer "+raw, JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleAllows(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"sub": "1", "role": "OPERATOR"}, testSecret)
	rec, _ := runRequest("Bearer "+raw, JWTAuth(testSecret), RequireRole("OPERATOR"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleForbids(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"sub": "1", "role": "CUSTOMER"}, testSecret)
	rec, _ := runRequest("Bearer "+raw, JWTAuth(testSecret), RequireRole("OPERATOR"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleMissingClaim(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"sub": "1"}, testSecret)
	rec, _ := runRequest("Bearer "+raw, JWTAuth(testSecret), RequireRole("OPERATOR"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
