package handler

// Barter negotiation endpoints. A proposal pairs one of the requester's
// machines against another farmer's machine and starts life pending;
// the machine owner resolves it exactly once to accepted or rejected.
// Every precondition that can be checked without writing (requester
// owns the offered machine, does not own the target, has inventory at
// all) is checked here, before any request row exists.

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vismay-farm/agri-market/internal/feedback"
	"github.com/vismay-farm/agri-market/internal/model"
	"github.com/vismay-farm/agri-market/internal/queue"
	"github.com/vismay-farm/agri-market/internal/repository"
	queue_publisher "github.com/vismay-farm/agri-market/internal/service"
)

// BarterHandler groups the repositories behind the negotiation flow.
type BarterHandler struct {
	Barters  *repository.BarterRepo
	Machines *repository.MachineRepo
	Profiles *repository.ProfileRepo
}

func NewBarterHandler(barters *repository.BarterRepo, machines *repository.MachineRepo, profiles *repository.ProfileRepo) *BarterHandler {
	if barters == nil || machines == nil || profiles == nil {
		panic("nil repository passed to NewBarterHandler")
	}
	return &BarterHandler{Barters: barters, Machines: machines, Profiles: profiles}
}

type proposeBarterReq struct {
	RequestingMachineID uint64 `json:"requesting_machine_id"`
	OfferedMachineID    uint64 `json:"offered_machine_id"`
}

type respondReq struct {
	Decision string `json:"decision"` // "accept" or "reject"
}

// decisionStatus maps the wire decision onto a terminal status.
func decisionStatus(decision string) (string, bool) {
	switch decision {
	case "accept":
		return model.StatusAccepted, true
	case "reject":
		return model.StatusRejected, true
	}
	return "", false
}

// Propose handles POST /v1/barters.
func (h *BarterHandler) Propose(c echo.Context) error {
	requesterID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to propose a barter"))
	}
	var req proposeBarterReq
	if err := c.Bind(&req); err != nil {
		return feedback.Validation(c, "invalid request body")
	}
	if req.RequestingMachineID == 0 || req.OfferedMachineID == 0 {
		return feedback.Validation(c, "requesting_machine_id and offered_machine_id are required")
	}
	if req.RequestingMachineID == req.OfferedMachineID {
		return feedback.Validation(c, "cannot offer a machine in exchange for itself")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// A farmer with nothing listed has nothing to trade. Checked first
	// so the failure mode is the same whether or not the offered id is
	// plausible.
	n, err := h.Machines.CountByOwner(ctx, requesterID)
	if err != nil {
		return feedback.Error(c, err, "machine")
	}
	if n == 0 {
		return feedback.Error(c, repository.ErrNoInventory, "machine")
	}

	offered, err := h.Machines.GetByID(ctx, req.OfferedMachineID)
	if err != nil {
		return feedback.Error(c, err, "offered machine")
	}
	if offered.OwnerID != requesterID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only offer a machine you own"})
	}

	target, err := h.Machines.GetByID(ctx, req.RequestingMachineID)
	if err != nil {
		return feedback.Error(c, err, "requested machine")
	}
	if target.OwnerID == requesterID {
		return feedback.Validation(c, "you cannot barter for your own machine")
	}

	barter := &model.BarterRequest{
		RequesterID:         requesterID,
		OwnerID:             target.OwnerID,
		RequestingMachineID: target.ID,
		OfferedMachineID:    offered.ID,
	}
	if err := h.Barters.Create(ctx, barter); err != nil {
		return feedback.Error(c, err, "barter request")
	}
	return feedback.Confirm(c, http.StatusCreated, "barter request sent successfully", "request", barter)
}

// Respond handles POST /v1/barters/:id/respond. Only the owner of the
// requested machine may resolve the request, and only while it is still
// pending; the repository's conditional update enforces both.
func (h *BarterHandler) Respond(c echo.Context) error {
	responderID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to respond to a barter request"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return feedback.Validation(c, "invalid request id")
	}
	var req respondReq
	if err := c.Bind(&req); err != nil {
		return feedback.Validation(c, "invalid request body")
	}
	status, ok := decisionStatus(req.Decision)
	if !ok {
		return feedback.Validation(c, "decision must be accept or reject")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Barters.Decide(ctx, id, responderID, status); err != nil {
		return feedback.Error(c, err, "barter request")
	}

	h.publishDecision(id, status)

	return feedback.Confirm(c, http.StatusOK, "barter request "+status, "request", echo.Map{"id": id, "status": status})
}

// publishDecision emits the decided event on a best-effort basis. The
// response to the responder never waits on the broker.
func (h *BarterHandler) publishDecision(id uint64, status string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		req, err := h.Barters.GetByID(ctx, id)
		if err != nil {
			log.Printf("barter decision event: load request %d failed: %v", id, err)
			return
		}
		ev := queue.RequestDecidedEvent{
			Kind:        "barter",
			RequestID:   req.ID,
			RequesterID: req.RequesterID,
			RecipientID: req.OwnerID,
			Status:      status,
			DecidedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if p, err := h.Profiles.GetByUserID(ctx, req.RequesterID); err == nil {
			ev.RequesterName = p.FullName
		}
		if p, err := h.Profiles.GetByUserID(ctx, req.OwnerID); err == nil {
			ev.RecipientName = p.FullName
		}
		// Machine joins tolerate deletion; names stay empty if gone.
		if m, err := h.Machines.GetByID(ctx, req.RequestingMachineID); err == nil {
			ev.ListingName = m.Name
		}
		if m, err := h.Machines.GetByID(ctx, req.OfferedMachineID); err == nil {
			ev.OfferedName = m.Name
		}
		_ = queue_publisher.PublishRequestDecided(ctx, ev)
	}()
}

// ListSent handles GET /v1/barters/sent.
func (h *BarterHandler) ListSent(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to view your barter requests"))
	}
	items, err := h.Barters.ListSent(c.Request().Context(), uid)
	if err != nil {
		return feedback.Error(c, err, "barter request")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// ListReceived handles GET /v1/barters/received.
func (h *BarterHandler) ListReceived(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to view your barter requests"))
	}
	items, err := h.Barters.ListReceived(c.Request().Context(), uid)
	if err != nil {
		return feedback.Error(c, err, "barter request")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}
