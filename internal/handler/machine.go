package handler

// Machine listing CRUD for the authenticated owner. Every mutation
// binds an explicit request struct and is validated field by field
// before any repository call; the repository enforces ownership so a
// farmer can only ever edit or withdraw their own equipment.

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vismay-farm/agri-market/internal/feedback"
	"github.com/vismay-farm/agri-market/internal/model"
	"github.com/vismay-farm/agri-market/internal/repository"
)

// MachineHandler bundles the repositories needed for machine CRUD.
type MachineHandler struct {
	Machines *repository.MachineRepo
}

func NewMachineHandler(machines *repository.MachineRepo) *MachineHandler {
	if machines == nil {
		panic("nil repository passed to NewMachineHandler")
	}
	return &MachineHandler{Machines: machines}
}

type createMachineReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	Condition   string  `json:"condition"`
	ImageURL    string  `json:"image_url"`
}

type updateMachineReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Value       *float64 `json:"value"`
	Condition   *string  `json:"condition"`
	ImageURL    *string  `json:"image_url"`
}

// CreateMachine handles POST /v1/machines. The new listing is visible
// to every other farmer as soon as the insert lands.
func (h *MachineHandler) CreateMachine(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to list equipment"))
	}
	var req createMachineReq
	if err := c.Bind(&req); err != nil {
		return feedback.Validation(c, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Condition = strings.TrimSpace(req.Condition)
	if req.Name == "" {
		return feedback.Validation(c, "name is required")
	}
	if req.Description == "" {
		return feedback.Validation(c, "description is required")
	}
	if req.Value <= 0 {
		return feedback.Validation(c, "value must be a positive number")
	}
	if !model.MachineConditions[req.Condition] {
		return feedback.Validation(c, "condition must be one of New, Good, Used, Needs Repair")
	}

	m := &model.Machine{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Value:       req.Value,
		Condition:   req.Condition,
		ImageURL:    strings.TrimSpace(req.ImageURL),
	}
	if err := h.Machines.Create(c.Request().Context(), m); err != nil {
		return feedback.Error(c, err, "machine")
	}
	return feedback.Confirm(c, http.StatusCreated, "machine listed successfully", "machine", m)
}

// ListMyMachines handles GET /v1/my-machines.
func (h *MachineHandler) ListMyMachines(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to view your listings"))
	}
	items, err := h.Machines.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return feedback.Error(c, err, "machine")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// GetMachine handles GET /v1/machines/:id.
func (h *MachineHandler) GetMachine(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return feedback.Validation(c, "invalid machine id")
	}
	d, err := h.Machines.GetByID(c.Request().Context(), id)
	if err != nil {
		return feedback.Error(c, err, "machine")
	}
	return c.JSON(http.StatusOK, d)
}

// UpdateMachine handles PUT/PATCH /v1/machines/:id with partial fields.
func (h *MachineHandler) UpdateMachine(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to update your listing"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return feedback.Validation(c, "invalid machine id")
	}
	var req updateMachineReq
	if err := c.Bind(&req); err != nil {
		return feedback.Validation(c, "invalid request body")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return feedback.Validation(c, "name cannot be empty")
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return feedback.Validation(c, "description cannot be empty")
	}
	if req.Value != nil && *req.Value <= 0 {
		return feedback.Validation(c, "value must be a positive number")
	}
	if req.Condition != nil && !model.MachineConditions[strings.TrimSpace(*req.Condition)] {
		return feedback.Validation(c, "condition must be one of New, Good, Used, Needs Repair")
	}

	patch := repository.MachinePatch{
		Name:        req.Name,
		Description: req.Description,
		Value:       req.Value,
		Condition:   req.Condition,
		ImageURL:    req.ImageURL,
	}
	if err := h.Machines.Update(c.Request().Context(), id, ownerID, patch); err != nil {
		return feedback.Error(c, err, "machine")
	}
	updated, err := h.Machines.GetByID(c.Request().Context(), id)
	if err != nil {
		return feedback.Error(c, err, "machine")
	}
	return feedback.Confirm(c, http.StatusOK, "machine updated successfully", "machine", updated)
}

// DeleteMachine handles DELETE /v1/machines/:id. Barter requests that
// reference the machine survive the delete; their machine join simply
// reads back as absent.
func (h *MachineHandler) DeleteMachine(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to delete your listing"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return feedback.Validation(c, "invalid machine id")
	}
	if err := h.Machines.Delete(c.Request().Context(), id, ownerID); err != nil {
		return feedback.Error(c, err, "machine")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "machine listing deleted successfully"})
}
