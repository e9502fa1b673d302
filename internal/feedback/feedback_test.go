package feedback

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vismay-farm/agri-market/internal/repository"
)

func testContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoginPromptShape(t *testing.T) {
	m := LoginPrompt("please login first")
	assert.Equal(t, "please login first", m["error"])
	assert.Equal(t, "login", m["action"])
	assert.Equal(t, "/v1/auth/login", m["login_url"])
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"forbidden", repository.ErrForbidden, http.StatusForbidden},
		{"already resolved", repository.ErrInvalidState, http.StatusConflict},
		{"no inventory", repository.ErrNoInventory, http.StatusConflict},
		{"machine missing", repository.ErrMachineNotFound, http.StatusNotFound},
		{"crop missing", repository.ErrCropNotFound, http.StatusNotFound},
		{"barter missing", repository.ErrBarterNotFound, http.StatusNotFound},
		{"purchase missing", repository.ErrPurchaseNotFound, http.StatusNotFound},
		{"no rows", sql.ErrNoRows, http.StatusNotFound},
		{"store down", errors.New("dial tcp: connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := testContext(t)
			require.NoError(t, Error(c, tc.err, "machine"))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestErrorHidesStoreDetails(t *testing.T) {
	c, rec := testContext(t)
	require.NoError(t, Error(c, errors.New("mysql: table gone"), "machine"))
	assert.NotContains(t, rec.Body.String(), "mysql")
	assert.Contains(t, rec.Body.String(), "try again")
}

func TestValidationNamesRequirement(t *testing.T) {
	c, rec := testContext(t)
	require.NoError(t, Validation(c, "name is required"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}
