// Barter requests pair two machines owned by two different farmers.
// The status column is the whole state machine: rows are inserted as
// 'pending' and flipped to 'accepted' or 'rejected' exactly once. The
// flip uses a conditional UPDATE so two racing responders cannot both
// win; the loser is told the request was already resolved. Machines
// joined into list reads are LEFT JOINed because a referenced listing
// may have been deleted after the request was created.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vismay-farm/agri-market/internal/model"
)

// ErrBarterNotFound is returned when a barter request does not exist.
var ErrBarterNotFound = errors.New("barter request not found")

// BarterRepo encapsulates all database queries for barter requests.
type BarterRepo struct {
	db *sql.DB
}

func NewBarterRepo(db *sql.DB) *BarterRepo { return &BarterRepo{db: db} }

// BarterMachine is the slice of machine fields embedded in request
// reads. It is nullable in BarterDetail because the listing may have
// been withdrawn since the request was made.
type BarterMachine struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Condition string  `json:"condition"`
	ImageURL  string  `json:"image_url"`
}

// BarterDetail is a barter request with both machines and both parties'
// profiles joined, as returned by ListSent and ListReceived.
type BarterDetail struct {
	ID                uint64              `json:"id"`
	Status            string              `json:"status"`
	CreatedAt         time.Time           `json:"created_at"`
	RequestingMachine *BarterMachine      `json:"requesting_machine"`
	OfferedMachine    *BarterMachine      `json:"offered_machine"`
	Requester         model.PublicProfile `json:"requester"`
	Owner             model.PublicProfile `json:"owner"`
}

// Create inserts a new pending request and populates the generated ID
// and timestamps on the provided model.
func (r *BarterRepo) Create(ctx context.Context, req *model.BarterRequest) error {
	const qInsert = `INSERT INTO barter_requests (requester_id, owner_id, requesting_machine_id, offered_machine_id, status)
	                 VALUES (?, ?, ?, ?, ?)`
	req.Status = model.StatusPending
	res, err := r.db.ExecContext(ctx, qInsert, req.RequesterID, req.OwnerID, req.RequestingMachineID, req.OfferedMachineID, req.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM barter_requests WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, req.ID).Scan(&req.CreatedAt, &req.UpdatedAt)
}

// GetByID fetches the bare request row, or ErrBarterNotFound.
func (r *BarterRepo) GetByID(ctx context.Context, id uint64) (*model.BarterRequest, error) {
	const q = `SELECT id, requester_id, owner_id, requesting_machine_id, offered_machine_id, status, created_at, updated_at
	           FROM barter_requests WHERE id = ?`
	var req model.BarterRequest
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&req.ID, &req.RequesterID, &req.OwnerID, &req.RequestingMachineID, &req.OfferedMachineID,
		&req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBarterNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Decide resolves a pending request to the given terminal status on
// behalf of responderID. The UPDATE only matches while the row is still
// pending and owned by the responder, so a concurrent second respond
// affects zero rows. When that happens the row is re-read once to tell
// the caller which precondition failed: missing row, wrong responder,
// or a request that was already resolved.
func (r *BarterRepo) Decide(ctx context.Context, id, responderID uint64, status string) error {
	const q = `UPDATE barter_requests SET status = ?, updated_at = NOW()
	           WHERE id = ? AND owner_id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, status, id, responderID, model.StatusPending)
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

	req, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req.OwnerID != responderID {
		return ErrForbidden
	}
	return ErrInvalidState
}

// ListSent returns requests the farmer proposed, newest first.
func (r *BarterRepo) ListSent(ctx context.Context, requesterID uint64) ([]*BarterDetail, error) {
	return r.listDetails(ctx, "b.requester_id = ?", requesterID)
}

// ListReceived returns requests aimed at the farmer's machines, newest first.
func (r *BarterRepo) ListReceived(ctx context.Context, ownerID uint64) ([]*BarterDetail, error) {
	return r.listDetails(ctx, "b.owner_id = ?", ownerID)
}

func (r *BarterRepo) listDetails(ctx context.Context, where string, arg uint64) ([]*BarterDetail, error) {
	// LEFT JOIN on both machines: a deleted listing leaves the request
	// readable with a null machine instead of dropping the row.
	q := `SELECT b.id, b.status, b.created_at,
	             rm.id, rm.name, rm.value_rupees, rm.condition, rm.image_url,
	             om.id, om.name, om.value_rupees, om.condition, om.image_url,
	             rq.user_id, rq.full_name, rq.location, rq.phone,
	             ow.user_id, ow.full_name, ow.location, ow.phone
	      FROM barter_requests b
	      LEFT JOIN machines rm ON rm.id = b.requesting_machine_id
	      LEFT JOIN machines om ON om.id = b.offered_machine_id
	      JOIN profiles rq ON rq.user_id = b.requester_id
	      JOIN profiles ow ON ow.user_id = b.owner_id
	      WHERE ` + where + `
	      ORDER BY b.created_at DESC, b.id DESC`

	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*BarterDetail, 0)
	for rows.Next() {
		var (
			d                 BarterDetail
			rmID, omID        sql.NullInt64
			rmName, omName    sql.NullString
			rmValue, omValue  sql.NullFloat64
			rmCond, omCond    sql.NullString
			rmImage, omImage  sql.NullString
			rqPhone, ownPhone sql.NullString
		)
		err := rows.Scan(
			&d.ID, &d.Status, &d.CreatedAt,
			&rmID, &rmName, &rmValue, &rmCond, &rmImage,
			&omID, &omName, &omValue, &omCond, &omImage,
			&d.Requester.UserID, &d.Requester.FullName, &d.Requester.Location, &rqPhone,
			&d.Owner.UserID, &d.Owner.FullName, &d.Owner.Location, &ownPhone,
		)
		if err != nil {
			return nil, err
		}
		if rmID.Valid {
			d.RequestingMachine = &BarterMachine{
				ID: uint64(rmID.Int64), Name: rmName.String, Value: rmValue.Float64,
				Condition: rmCond.String, ImageURL: rmImage.String,
			}
		}
		if omID.Valid {
			d.OfferedMachine = &BarterMachine{
				ID: uint64(omID.Int64), Name: omName.String, Value: omValue.Float64,
				Condition: omCond.String, ImageURL: omImage.String,
			}
		}
		if rqPhone.Valid {
			v := rqPhone.String
			d.Requester.Phone = &v
		}
		if ownPhone.Valid {
			v := ownPhone.String
			d.Owner.Phone = &v
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
