// This file defines the machine repository: CRUD and lookup operations
// over equipment listings. List queries join the owner's profile so
// responses can show who is offering the machine and where, ordered
// newest first. Ownership checks live here so handlers can translate
// ErrForbidden versus ErrMachineNotFound into distinct HTTP responses.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vismay-farm/agri-market/internal/model"
)

// ErrMachineNotFound is returned when a machine cannot be found in the DB.
var ErrMachineNotFound = errors.New("machine not found")

// MachineRepo encapsulates all database queries related to machines.
type MachineRepo struct {
	db *sql.DB
}

// NewMachineRepo constructs a MachineRepo with the provided DB handle.
func NewMachineRepo(db *sql.DB) *MachineRepo { return &MachineRepo{db: db} }

// MachineDetail is a machine joined with its owner's public profile.
// It is the shape returned by all list and detail reads.
type MachineDetail struct {
	ID          uint64              `json:"id"`
	OwnerID     uint64              `json:"owner_id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Value       float64             `json:"value"`
	Condition   string              `json:"condition"`
	ImageURL    string              `json:"image_url"`
	CreatedAt   time.Time           `json:"created_at"`
	Owner       model.PublicProfile `json:"owner"`
}

const machineDetailColumns = `m.id, m.owner_id, m.name, m.description, m.value_rupees, m.condition, m.image_url, m.created_at,
       p.user_id, p.full_name, p.location, p.phone`

func scanMachineDetail(row interface{ Scan(...any) error }) (*MachineDetail, error) {
	var (
		d     MachineDetail
		phone sql.NullString
	)
	err := row.Scan(
		&d.ID, &d.OwnerID, &d.Name, &d.Description, &d.Value, &d.Condition, &d.ImageURL, &d.CreatedAt,
		&d.Owner.UserID, &d.Owner.FullName, &d.Owner.Location, &phone,
	)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		v := phone.String
		d.Owner.Phone = &v
	}
	return &d, nil
}

// Create inserts a new machine. On success the machine's ID, CreatedAt
// and UpdatedAt fields are populated from the stored row so callers
// receive a fully formed record.
func (r *MachineRepo) Create(ctx context.Context, m *model.Machine) error {
	const qInsert = `INSERT INTO machines (owner_id, name, description, value_rupees, ` + "`condition`" + `, image_url)
	                 VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, m.OwnerID, m.Name, m.Description, m.Value, m.Condition, m.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	// Query back the row to populate store-generated timestamps.
	const qSelect = "SELECT created_at, updated_at FROM machines WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, m.ID).Scan(&m.CreatedAt, &m.UpdatedAt)
}

// ListAll returns every machine with its owner joined, newest first.
func (r *MachineRepo) ListAll(ctx context.Context) ([]*MachineDetail, error) {
	const q = `SELECT ` + machineDetailColumns + `
	           FROM machines m
	           JOIN profiles p ON p.user_id = m.owner_id
	           ORDER BY m.created_at DESC, m.id DESC`
	return r.listDetails(ctx, q)
}

// ListByOwner returns one owner's machines, newest first.
func (r *MachineRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*MachineDetail, error) {
	const q = `SELECT ` + machineDetailColumns + `
	           FROM machines m
	           JOIN profiles p ON p.user_id = m.owner_id
	           WHERE m.owner_id = ?
	           ORDER BY m.created_at DESC, m.id DESC`
	return r.listDetails(ctx, q, ownerID)
}

func (r *MachineRepo) listDetails(ctx context.Context, q string, args ...any) ([]*MachineDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*MachineDetail, 0)
	for rows.Next() {
		d, err := scanMachineDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByID fetches a machine with its owner joined. It returns
// ErrMachineNotFound if no row is found.
func (r *MachineRepo) GetByID(ctx context.Context, id uint64) (*MachineDetail, error) {
	const q = `SELECT ` + machineDetailColumns + `
	           FROM machines m
	           JOIN profiles p ON p.user_id = m.owner_id
	           WHERE m.id = ?`
	d, err := scanMachineDetail(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMachineNotFound
		}
		return nil, err
	}
	return d, nil
}

// CountByOwner reports how many machines a farmer currently lists.
// The barter handler uses it to reject proposals from farmers with
// nothing to offer before any request row is written.
func (r *MachineRepo) CountByOwner(ctx context.Context, ownerID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM machines WHERE owner_id = ?", ownerID).Scan(&n)
	return n, err
}

// MachinePatch carries the optional fields of a partial update. Nil
// pointers leave the column untouched.
type MachinePatch struct {
	Name        *string
	Description *string
	Value       *float64
	Condition   *string
	ImageURL    *string
}

// Update applies a partial update to a machine owned by ownerID. It
// returns ErrMachineNotFound when the machine does not exist and
// ErrForbidden when it belongs to a different farmer, so callers can
// distinguish 404 from 403. An empty patch is a no-op.
func (r *MachineRepo) Update(ctx context.Context, id, ownerID uint64, patch MachinePatch) error {
	if err := r.checkOwnership(ctx, id, ownerID); err != nil {
		return err
	}

	set := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if patch.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Value != nil {
		set = append(set, "value_rupees = ?")
		args = append(args, *patch.Value)
	}
	if patch.Condition != nil {
		set = append(set, "`condition` = ?")
		args = append(args, *patch.Condition)
	}
	if patch.ImageURL != nil {
		set = append(set, "image_url = ?")
		args = append(args, *patch.ImageURL)
	}
	if len(set) == 0 {
		return nil
	}

	q := "UPDATE machines SET " + joinSet(set) + ", updated_at = NOW() WHERE id = ? AND owner_id = ?"
	args = append(args, id, ownerID)
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

// Delete removes a machine owned by ownerID. Requests referencing the
// machine are left in place; their reads tolerate the missing join.
func (r *MachineRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	if err := r.checkOwnership(ctx, id, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM machines WHERE id = ? AND owner_id = ?", id, ownerID)
	return err
}

func (r *MachineRepo) checkOwnership(ctx context.Context, id, ownerID uint64) error {
	var owner uint64
	err := r.db.QueryRowContext(ctx, "SELECT owner_id FROM machines WHERE id = ?", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMachineNotFound
	}
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	return nil
}

func joinSet(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}
