package handler

// Crop purchase endpoints. A purchase request asks a seller for some or
// all of a crop listing at a total price; the seller resolves it once
// to accepted or rejected, same lifecycle as barter requests.

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

type PurchaseHandler struct {
	Purchases *repository.PurchaseRepo
	Crops     *repository.CropRepo
	Profiles  *repository.ProfileRepo
}

func NewPurchaseHandler(purchases *repository.PurchaseRepo, crops *repository.CropRepo, profiles *repository.ProfileRepo) *PurchaseHandler {
	if purchases == nil || crops == nil || profiles == nil {
		panic("nil repository passed to NewPurchaseHandler")
	}
	return &PurchaseHandler{Purchases: purchases, Crops: crops, Profiles: profiles}
}

type createPurchaseReq struct {
	CropID            uint64  `json:"crop_id"`
	QuantityRequested string  `json:"quantity_requested"`
	TotalPrice        float64 `json:"total_price"`
}

// CreatePurchase handles POST /v1/purchases.
func (h *PurchaseHandler) CreatePurchase(c echo.Context) error {
	buyerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to buy crops"))
	}
	var req createPurchaseReq
	if err := c.Bind(&req); err != nil {
		return feedback.Validation(c, "invalid request body")
	}
	if req.CropID == 0 {
		return feedback.Validation(c, "crop_id is required")
	}
	if req.TotalPrice < 0 {
		return feedback.Validation(c, "total_price cannot be negative")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	crop, err := h.Crops.GetByID(ctx, req.CropID)
	if err != nil {
		return feedback.Error(c, err, "crop")
	}
	if crop.SellerID == buyerID {
		return feedback.Validation(c, "you cannot buy your own crop listing")
	}

	// Asking for "the lot" is the common case, so an empty quantity
	// means the full listed quantity at the listed price.
	quantity := req.QuantityRequested
	if quantity == "" {
		quantity = crop.Quantity
	}
	total := req.TotalPrice
	if total == 0 {
		total = crop.Price
	}

	p := &model.CropPurchase{
		BuyerID:           buyerID,
		SellerID:          crop.SellerID,
		CropID:            crop.ID,
		QuantityRequested: quantity,
		TotalPrice:        total,
	}
	if err := h.Purchases.Create(ctx, p); err != nil {
		return feedback.Error(c, err, "purchase request")
	}
	return feedback.Confirm(c, http.StatusCreated, "purchase request sent successfully", "request", p)
}

// Respond handles POST /v1/purchases/:id/respond. Only the seller may
// resolve a purchase request, and only while it is pending.
func (h *PurchaseHandler) Respond(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to respond to a purchase request"))
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

	if err := h.Purchases.Decide(ctx, id, sellerID, status); err != nil {
		return feedback.Error(c, err, "purchase request")
	}

	h.publishDecision(id, status)

	return feedback.Confirm(c, http.StatusOK, "purchase request "+status, "request", echo.Map{"id": id, "status": status})
}

func (h *PurchaseHandler) publishDecision(id uint64, status string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		p, err := h.Purchases.GetByID(ctx, id)
		if err != nil {
			log.Printf("purchase decision event: load request %d failed: %v", id, err)
			return
		}
		ev := queue.RequestDecidedEvent{
			Kind:        "purchase",
			RequestID:   p.ID,
			RequesterID: p.BuyerID,
			RecipientID: p.SellerID,
			TotalPrice:  p.TotalPrice,
			Status:      status,
			DecidedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if pr, err := h.Profiles.GetByUserID(ctx, p.BuyerID); err == nil {
			ev.RequesterName = pr.FullName
		}
		if pr, err := h.Profiles.GetByUserID(ctx, p.SellerID); err == nil {
			ev.RecipientName = pr.FullName
		}
		if crop, err := h.Crops.GetByID(ctx, p.CropID); err == nil {
			ev.ListingName = crop.Name
		}
		_ = queue_publisher.PublishRequestDecided(ctx, ev)
	}()
}

// ListSent handles GET /v1/purchases/sent: requests the viewer made as
// a buyer.
func (h *PurchaseHandler) ListSent(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to view your purchase requests"))
	}
	items, err := h.Purchases.ListByBuyer(c.Request().Context(), uid)
	if err != nil {
		return feedback.Error(c, err, "purchase request")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// ListReceived handles GET /v1/purchases/received: requests against the
// viewer's crop listings.
func (h *PurchaseHandler) ListReceived(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, feedback.LoginPrompt("please login to view your purchase requests"))
	}
	items, err := h.Purchases.ListBySeller(c.Request().Context(), uid)
	if err != nil {
		return feedback.Error(c, err, "purchase request")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}
