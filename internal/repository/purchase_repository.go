// Crop purchase requests share the barter lifecycle (pending until the
// seller accepts or rejects, then frozen) but reference a single crop
// listing instead of a pair of machines.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vismay-farm/agri-market/internal/model"
)

// ErrPurchaseNotFound is returned when a purchase request does not exist.
var ErrPurchaseNotFound = errors.New("purchase request not found")

// PurchaseRepo encapsulates all database queries for crop purchases.
type PurchaseRepo struct {
	db *sql.DB
}

func NewPurchaseRepo(db *sql.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

// PurchaseCrop is the slice of crop fields embedded in purchase reads,
// null when the listing has been deleted since the request was made.
type PurchaseCrop struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Price    float64 `json:"price"`
	Quality  string  `json:"quality"`
	ImageURL string  `json:"image_url"`
}

// PurchaseDetail is a purchase request with the crop and both parties'
// profiles joined.
type PurchaseDetail struct {
	ID                uint64              `json:"id"`
	Status            string              `json:"status"`
	QuantityRequested string              `json:"quantity_requested"`
	TotalPrice        float64             `json:"total_price"`
	CreatedAt         time.Time           `json:"created_at"`
	Crop              *PurchaseCrop       `json:"crop"`
	Buyer             model.PublicProfile `json:"buyer"`
	Seller            model.PublicProfile `json:"seller"`
}

// Create inserts a new pending purchase request and populates the
// generated ID and timestamps.
func (r *PurchaseRepo) Create(ctx context.Context, p *model.CropPurchase) error {
	const qInsert = `INSERT INTO crop_purchases (buyer_id, seller_id, crop_id, status, quantity_requested, total_price)
	                 VALUES (?, ?, ?, ?, ?, ?)`
	p.Status = model.StatusPending
	res, err := r.db.ExecContext(ctx, qInsert, p.BuyerID, p.SellerID, p.CropID, p.Status, p.QuantityRequested, p.TotalPrice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM crop_purchases WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetByID fetches the bare request row, or ErrPurchaseNotFound.
func (r *PurchaseRepo) GetByID(ctx context.Context, id uint64) (*model.CropPurchase, error) {
	const q = `SELECT id, buyer_id, seller_id, crop_id, status, quantity_requested, total_price, created_at, updated_at
	           FROM crop_purchases WHERE id = ?`
	var p model.CropPurchase
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.BuyerID, &p.SellerID, &p.CropID, &p.Status,
		&p.QuantityRequested, &p.TotalPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPurchaseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Decide resolves a pending purchase on behalf of the seller, with the
// same conditional-update guard as BarterRepo.Decide.
func (r *PurchaseRepo) Decide(ctx context.Context, id, sellerID uint64, status string) error {
	const q = `UPDATE crop_purchases SET status = ?, updated_at = NOW()
	           WHERE id = ? AND seller_id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, status, id, sellerID, model.StatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.SellerID != sellerID {
		return ErrForbidden
	}
	return ErrInvalidState
}

// ListByBuyer returns purchase requests the farmer sent, newest first.
func (r *PurchaseRepo) ListByBuyer(ctx context.Context, buyerID uint64) ([]*PurchaseDetail, error) {
	return r.listDetails(ctx, "cp.buyer_id = ?", buyerID)
}

// ListBySeller returns purchase requests on the farmer's crops, newest first.
func (r *PurchaseRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]*PurchaseDetail, error) {
	return r.listDetails(ctx, "cp.seller_id = ?", sellerID)
}

func (r *PurchaseRepo) listDetails(ctx context.Context, where string, arg uint64) ([]*PurchaseDetail, error) {
	q := `SELECT cp.id, cp.status, cp.quantity_requested, cp.total_price, cp.created_at,
	             c.id, c.name, c.quantity, c.price_rupees, c.quality, c.image_url,
	             b.user_id, b.full_name, b.location, b.phone,
	             s.user_id, s.full_name, s.location, s.phone
	      FROM crop_purchases cp
	      LEFT JOIN crops c ON c.id = cp.crop_id
	      JOIN profiles b ON b.user_id = cp.buyer_id
	      JOIN profiles s ON s.user_id = cp.seller_id
	      WHERE ` + where + `
	      ORDER BY cp.created_at DESC, cp.id DESC`

	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*PurchaseDetail, 0)
	for rows.Next() {
		var (
			d                PurchaseDetail
			cID              sql.NullInt64
			cName, cQty      sql.NullString
			cPrice           sql.NullFloat64
			cQuality, cImage sql.NullString
			bPhone, sPhone   sql.NullString
		)
		err := rows.Scan(
			&d.ID, &d.Status, &d.QuantityRequested, &d.TotalPrice, &d.CreatedAt,
			&cID, &cName, &cQty, &cPrice, &cQuality, &cImage,
			&d.Buyer.UserID, &d.Buyer.FullName, &d.Buyer.Location, &bPhone,
			&d.Seller.UserID, &d.Seller.FullName, &d.Seller.Location, &sPhone,
		)
		if err != nil {
			return nil, err
		}
		if cID.Valid {
			d.Crop = &PurchaseCrop{
				ID: uint64(cID.Int64), Name: cName.String, Quantity: cQty.String,
				Price: cPrice.Float64, Quality: cQuality.String, ImageURL: cImage.String,
			}
		}
		if bPhone.Valid {
			v := bPhone.String
			d.Buyer.Phone = &v
		}
		if sPhone.Valid {
			v := sPhone.String
			d.Seller.Phone = &v
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
