// Crop listings mirror the machine repository shape: owner-joined list
// reads ordered newest first, ownership-checked writes. Crops differ in
// carrying a quantity string and a per quintal price instead of an
// equipment value.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vismay-farm/agri-market/internal/model"
)

// ErrCropNotFound is returned when a crop cannot be found in the DB.
var ErrCropNotFound = errors.New("crop not found")

// CropRepo encapsulates all database queries related to crop listings.
type CropRepo struct {
	db *sql.DB
}

func NewCropRepo(db *sql.DB) *CropRepo { return &CropRepo{db: db} }

// CropDetail is a crop joined with its seller's public profile.
type CropDetail struct {
	ID          uint64              `json:"id"`
	SellerID    uint64              `json:"seller_id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Quantity    string              `json:"quantity"`
	Price       float64             `json:"price"`
	Quality     string              `json:"quality"`
	ImageURL    string              `json:"image_url"`
	CreatedAt   time.Time           `json:"created_at"`
	Seller      model.PublicProfile `json:"seller"`
}

const cropDetailColumns = `c.id, c.seller_id, c.name, c.description, c.quantity, c.price_rupees, c.quality, c.image_url, c.created_at,
       p.user_id, p.full_name, p.location, p.phone`

func scanCropDetail(row interface{ Scan(...any) error }) (*CropDetail, error) {
	var (
		d     CropDetail
		phone sql.NullString
	)
	err := row.Scan(
		&d.ID, &d.SellerID, &d.Name, &d.Description, &d.Quantity, &d.Price, &d.Quality, &d.ImageURL, &d.CreatedAt,
		&d.Seller.UserID, &d.Seller.FullName, &d.Seller.Location, &phone,
	)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		v := phone.String
		d.Seller.Phone = &v
	}
	return &d, nil
}

// Create inserts a new crop listing and populates the store-generated
// ID and timestamps on the provided model.
func (r *CropRepo) Create(ctx context.Context, cr *model.Crop) error {
	const qInsert = `INSERT INTO crops (seller_id, name, description, quantity, price_rupees, quality, image_url)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, cr.SellerID, cr.Name, cr.Description, cr.Quantity, cr.Price, cr.Quality, cr.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cr.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM crops WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, cr.ID).Scan(&cr.CreatedAt, &cr.UpdatedAt)
}

// ListAll returns every crop with its seller joined, newest first.
func (r *CropRepo) ListAll(ctx context.Context) ([]*CropDetail, error) {
	const q = `SELECT ` + cropDetailColumns + `
	           FROM crops c
	           JOIN profiles p ON p.user_id = c.seller_id
	           ORDER BY c.created_at DESC, c.id DESC`
	return r.listDetails(ctx, q)
}

// ListBySeller returns one seller's crops, newest first.
func (r *CropRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]*CropDetail, error) {
	const q = `SELECT ` + cropDetailColumns + `
	           FROM crops c
	           JOIN profiles p ON p.user_id = c.seller_id
	           WHERE c.seller_id = ?
	           ORDER BY c.created_at DESC, c.id DESC`
	return r.listDetails(ctx, q, sellerID)
}

func (r *CropRepo) listDetails(ctx context.Context, q string, args ...any) ([]*CropDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*CropDetail, 0)
	for rows.Next() {
		d, err := scanCropDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByID fetches a crop with its seller joined, or ErrCropNotFound.
func (r *CropRepo) GetByID(ctx context.Context, id uint64) (*CropDetail, error) {
	const q = `SELECT ` + cropDetailColumns + `
	           FROM crops c
	           JOIN profiles p ON p.user_id = c.seller_id
	           WHERE c.id = ?`
	d, err := scanCropDetail(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCropNotFound
		}
		return nil, err
	}
	return d, nil
}

// CropPatch carries the optional fields of a partial update.
type CropPatch struct {
	Name        *string
	Description *string
	Quantity    *string
	Price       *float64
	Quality     *string
	ImageURL    *string
}

// Update applies a partial update to a crop owned by sellerID, with
// the same not-found/forbidden split as the machine repository.
func (r *CropRepo) Update(ctx context.Context, id, sellerID uint64, patch CropPatch) error {
	if err := r.checkOwnership(ctx, id, sellerID); err != nil {
		return err
	}

	set := make([]string, 0, 6)
	args := make([]any, 0, 7)
	if patch.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Quantity != nil {
		set = append(set, "quantity = ?")
		args = append(args, *patch.Quantity)
	}
	if patch.Price != nil {
		set = append(set, "price_rupees = ?")
		args = append(args, *patch.Price)
	}
	if patch.Quality != nil {
		set = append(set, "quality = ?")
		args = append(args, *patch.Quality)
	}
	if patch.ImageURL != nil {
		set = append(set, "image_url = ?")
		args = append(args, *patch.ImageURL)
	}
	if len(set) == 0 {
		return nil
	}

	q := "UPDATE crops SET " + joinSet(set) + ", updated_at = NOW() WHERE id = ? AND seller_id = ?"
	args = append(args, id, sellerID)
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

// Delete removes a crop owned by sellerID. Purchase requests that
// reference it are kept; their crop join reads back as absent.
func (r *CropRepo) Delete(ctx context.Context, id, sellerID uint64) error {
	if err := r.checkOwnership(ctx, id, sellerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM crops WHERE id = ? AND seller_id = ?", id, sellerID)
	return err
}

func (r *CropRepo) checkOwnership(ctx context.Context, id, sellerID uint64) error {
	var seller uint64
	err := r.db.QueryRowContext(ctx, "SELECT seller_id FROM crops WHERE id = ?", id).Scan(&seller)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCropNotFound
	}
	if err != nil {
		return err
	}
	if seller != sellerID {
		return ErrForbidden
	}
	return nil
}
