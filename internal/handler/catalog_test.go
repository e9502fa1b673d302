package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vismay-farm/agri-market/internal/repository"
)

func newCatalogTestHandler(t *testing.T) (*CatalogHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCatalogHandler(repository.NewMachineRepo(db), repository.NewCropRepo(db)), mock
}

func getRequest(t *testing.T, path string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user_id", userID)
	}
	return c, rec
}

func allMachinesRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"m.id", "m.owner_id", "m.name", "m.description", "m.value_rupees", "m.condition", "m.image_url", "m.created_at",
		"p.user_id", "p.full_name", "p.location", "p.phone",
	}).
		AddRow(1, 10, "Rotavator", "", 70000.0, "Good", "", now, 10, "A", "Nashik", nil).
		AddRow(2, 7, "Power Tiller", "", 55000.0, "Used", "", now, 7, "B", "Pune", nil).
		AddRow(3, 11, "Hand Hoe", "", 500.0, "New", "", now, 11, "C", "Amritsar", nil)
}

func TestBrowseBarterExcludesViewerAndLabelsBands(t *testing.T) {
	h, mock := newCatalogTestHandler(t)

	mock.ExpectQuery("FROM machines m").WillReturnRows(allMachinesRows())

	c, rec := getRequest(t, "/v1/barter/machines", 7)
	require.NoError(t, h.BrowseBarter(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	items, ok := body["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)
	assert.Equal(t, "Rotavator", first["name"])
	assert.Equal(t, "₹50,000 - ₹75,000", first["value_band"])

	second := items[1].(map[string]any)
	assert.Equal(t, "Hand Hoe", second["name"])
	assert.Equal(t, "Below ₹10,000", second["value_band"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBrowseBarterAppliesValueFilter(t *testing.T) {
	h, mock := newCatalogTestHandler(t)

	mock.ExpectQuery("FROM machines m").WillReturnRows(allMachinesRows())

	c, rec := getRequest(t, "/v1/barter/machines?target_value=75000", 99)
	require.NoError(t, h.BrowseBarter(c))

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMachinesOpenToGuests(t *testing.T) {
	h, mock := newCatalogTestHandler(t)

	mock.ExpectQuery("FROM machines m").WillReturnRows(allMachinesRows())

	c, rec := getRequest(t, "/v1/catalog/machines", 0)
	require.NoError(t, h.ListMachines(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["count"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBrowseBarterRequiresLogin(t *testing.T) {
	h, _ := newCatalogTestHandler(t)

	c, rec := getRequest(t, "/v1/barter/machines", 0)
	require.NoError(t, h.BrowseBarter(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
