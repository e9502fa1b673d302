package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vismay-farm/agri-market/internal/model"
)

// ErrProfileNotFound is returned when no profile row exists for a user.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepo reads and writes farmer profiles. A profile row is
// created once during registration and treated as read-only by the
// marketplace afterwards; there is deliberately no update method here.
type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

// CreateTx inserts the profile belonging to a freshly created user
// inside the registration transaction.
func (r *ProfileRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Profile) error {
	const q = "INSERT INTO profiles (user_id, full_name, location, phone) VALUES (?,?,?,?)"
	var phone interface{}
	if p.Phone != nil {
		phone = *p.Phone
	}
	_, err := tx.ExecContext(ctx, q, p.UserID, p.FullName, p.Location, phone)
	return err
}

// GetByUserID fetches a profile by its user id. It returns
// ErrProfileNotFound when the row is absent.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Profile, error) {
	const q = "SELECT user_id, full_name, location, phone, created_at FROM profiles WHERE user_id = ?"
	var (
		p     model.Profile
		phone sql.NullString
	)
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&p.UserID, &p.FullName, &p.Location, &phone, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if phone.Valid {
		v := phone.String
		p.Phone = &v
	}
	return &p, nil
}
