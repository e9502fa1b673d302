package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vismay-farm/agri-market/internal/utils"
)

func runJWT(t *testing.T, secret, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := JWTAuth(secret)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", 7, "FARMER", 15)
	require.NoError(t, err)

	rec, c := runJWT(t, "secret", "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	// sub round-trips through JSON numbers.
	assert.Equal(t, float64(7), c.Get("user_id"))
	assert.Equal(t, "FARMER", c.Get("role"))
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := runJWT(t, "secret", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "login_url")
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 7, "FARMER", 15)
	require.NoError(t, err)

	rec, _ := runJWT(t, "secret", "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	mw := RequireRole("FARMER")
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	cases := []struct {
		name string
		role any
		want int
	}{
		{"allowed", "FARMER", http.StatusOK},
		{"unknown role", "OWNER", http.StatusForbidden},
		{"missing role", nil, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}
			require.NoError(t, handler(c))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
