package handler

// Catalog browsing. The public endpoints return every listing for
// guests; the authenticated barter/buy views run the catalog filter
// with the viewer excluded so farmers are never offered their own
// inventory. Filtering happens in memory over the already-fetched page
// of listings, exactly like the web UI did.

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vismay-farm/agri-market/internal/catalog"
	"github.com/vismay-farm/agri-market/internal/feedback"
	"github.com/vismay-farm/agri-market/internal/repository"
)

// CatalogHandler aggregates repositories for browse and search views.
type CatalogHandler struct {
	Machines *repository.MachineRepo
	Crops    *repository.CropRepo
}

func NewCatalogHandler(machines *repository.MachineRepo, crops *repository.CropRepo) *CatalogHandler {
	if machines == nil || crops == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Machines: machines, Crops: crops}
}

// catalogQuery reads the shared search/target_value query parameters.
func catalogQuery(c echo.Context) catalog.Query {
	q := catalog.Query{Text: strings.TrimSpace(c.QueryParam("search"))}
	if raw := strings.TrimSpace(c.QueryParam("target_value")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			q.TargetValue = v
		}
	}
	return q
}

// ListMachines handles GET /v1/catalog/machines, open to guests. Search
// and value filters apply; nothing is excluded by default.
func (h *CatalogHandler) ListMachines(c echo.Context) error {
	items, err := h.Machines.ListAll(c.Request().Context())
	if err != nil {
		return feedback.Error(c, err, "machine")
	}
	filtered := catalog.Machines(items, catalogQuery(c))
	return c.JSON(http.StatusOK, echo.Map{"items": filtered, "count": len(filtered)})
}

// ListCrops handles GET /v1/catalog/crops, open to guests.
func (h *CatalogHandler) ListCrops(c echo.Context) error {
	items, err := h.Crops.ListAll(c.Request().Context())
	if err != nil {
		return feedback.Error(c, err, "crop")
	}
	filtered := catalog.Crops(items, catalogQuery(c))
	return c.JSON(http.StatusOK, echo.Map{"items": filtered, "count": len(filtered)})
}

// machineWithBand decorates a machine with its value-band label for the
// barter view.
type machineWithBand struct {
	*repository.MachineDetail
	ValueBand string `json:"value_band"`
}

// BrowseBarter handles GET /v1/barter/machines: the authenticated
// browse-to-barter view. The viewer's own machines are excluded
// regardless of the other filters.
func (h *CatalogHandler) BrowseBarter(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to barter equipment"))
	}
	items, err := h.Machines.ListAll(c.Request().Context())
	if err != nil {
		return feedback.Error(c, err, "machine")
	}
	q := catalogQuery(c)
	q.ExcludeOwner = uid
	filtered := catalog.Machines(items, q)

	out := make([]machineWithBand, 0, len(filtered))
	for _, m := range filtered {
		out = append(out, machineWithBand{MachineDetail: m, ValueBand: catalog.ValueBandLabel(m.Value)})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

// BrowseCrops handles GET /v1/buy/crops: the authenticated browse-to-buy
// view, excluding the viewer's own produce.
func (h *CatalogHandler) BrowseCrops(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to purchase crops"))
	}
	items, err := h.Crops.ListAll(c.Request().Context())
	if err != nil {
		return feedback.Error(c, err, "crop")
	}
	q := catalogQuery(c)
	q.ExcludeOwner = uid
	filtered := catalog.Crops(items, q)
	return c.JSON(http.StatusOK, echo.Map{"items": filtered, "count": len(filtered)})
}
