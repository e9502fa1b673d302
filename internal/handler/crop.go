package handler

// Crop listing CRUD for the authenticated seller. Mirrors the machine
// handlers with two produce-specific touches carried over from the web
// UI: a blank description gets a friendly default and a missing image
// falls back to the stock produce photo.

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vismay-farm/agri-market/internal/feedback"
	"github.com/vismay-farm/agri-market/internal/model"
	"github.com/vismay-farm/agri-market/internal/repository"
)

// CropHandler bundles the repositories needed for crop CRUD.
type CropHandler struct {
	Crops *repository.CropRepo
}

func NewCropHandler(crops *repository.CropRepo) *CropHandler {
	if crops == nil {
		panic("nil repository passed to NewCropHandler")
	}
	return &CropHandler{Crops: crops}
}

type createCropReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    string  `json:"quantity"`
	Price       float64 `json:"price"`
	Quality     string  `json:"quality"`
	ImageURL    string  `json:"image_url"`
}

type updateCropReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Quantity    *string  `json:"quantity"`
	Price       *float64 `json:"price"`
	Quality     *string  `json:"quality"`
	ImageURL    *string  `json:"image_url"`
}

// CreateCrop handles POST /v1/crops.
func (h *CropHandler) CreateCrop(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to list your crops"))
	}
	var req createCropReq
	if err := c.Bind(&req); err != nil {
		return feedback.Validation(c, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Quantity = strings.TrimSpace(req.Quantity)
	req.Quality = strings.TrimSpace(req.Quality)
	if req.Quality == "" {
		req.Quality = "Standard"
	}
	if req.Name == "" {
		return feedback.Validation(c, "name is required")
	}
	if req.Quantity == "" {
		return feedback.Validation(c, "quantity is required")
	}
	if req.Price <= 0 {
		return feedback.Validation(c, "price must be a positive number")
	}
	if !model.CropQualities[req.Quality] {
		return feedback.Validation(c, "quality must be Premium or Standard")
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = fmt.Sprintf("Fresh %s available for purchase.", req.Name)
	}
	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		imageURL = model.DefaultCropImageURL
	}

	cr := &model.Crop{
		SellerID:    sellerID,
		Name:        req.Name,
		Description: description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Quality:     req.Quality,
		ImageURL:    imageURL,
	}
	if err := h.Crops.Create(c.Request().Context(), cr); err != nil {
		return feedback.Error(c, err, "crop")
	}
	return feedback.Confirm(c, http.StatusCreated, "crop listed successfully", "crop", cr)
}

// ListMyCrops handles GET /v1/my-crops.
func (h *CropHandler) ListMyCrops(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to view your listings"))
	}
	items, err := h.Crops.ListBySeller(c.Request().Context(), sellerID)
	if err != nil {
		return feedback.Error(c, err, "crop")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// GetCrop handles GET /v1/crops/:id.
func (h *CropHandler) GetCrop(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return feedback.Validation(c, "invalid crop id")
	}
	d, err := h.Crops.GetByID(c.Request().Context(), id)
	if err != nil {
		return feedback.Error(c, err, "crop")
	}
	return c.JSON(http.StatusOK, d)
}

// UpdateCrop handles PUT/PATCH /v1/crops/:id with partial fields.
func (h *CropHandler) UpdateCrop(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to update your listing"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return feedback.Validation(c, "invalid crop id")
	}
	var req updateCropReq
	if err := c.Bind(&req); err != nil {
		return feedback.Validation(c, "invalid request body")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return feedback.Validation(c, "name cannot be empty")
	}
	if req.Quantity != nil && strings.TrimSpace(*req.Quantity) == "" {
		return feedback.Validation(c, "quantity cannot be empty")
	}
	if req.Price != nil && *req.Price <= 0 {
		return feedback.Validation(c, "price must be a positive number")
	}
	if req.Quality != nil && !model.CropQualities[strings.TrimSpace(*req.Quality)] {
		return feedback.Validation(c, "quality must be Premium or Standard")
	}

	patch := repository.CropPatch{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Quality:     req.Quality,
		ImageURL:    req.ImageURL,
	}
	if err := h.Crops.Update(c.Request().Context(), id, sellerID, patch); err != nil {
		return feedback.Error(c, err, "crop")
	}
	updated, err := h.Crops.GetByID(c.Request().Context(), id)
	if err != nil {
		return feedback.Error(c, err, "crop")
	}
	return feedback.Confirm(c, http.StatusOK, "crop updated successfully", "crop", updated)
}

// DeleteCrop handles DELETE /v1/crops/:id.
func (h *CropHandler) DeleteCrop(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to delete your listing"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return feedback.Validation(c, "invalid crop id")
	}
	if err := h.Crops.Delete(c.Request().Context(), id, sellerID); err != nil {
		return feedback.Error(c, err, "crop")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "crop listing deleted successfully"})
}
