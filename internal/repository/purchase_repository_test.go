package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vismay-farm/agri-market/internal/model"
)

func newPurchaseRepo(t *testing.T) (*PurchaseRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPurchaseRepo(db), mock
}

func TestPurchaseCreateStartsPending(t *testing.T) {
	repo, mock := newPurchaseRepo(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO crop_purchases").
		WithArgs(uint64(5), uint64(8), uint64(2), model.StatusPending, "50 quintals", 110000.0).
		WillReturnResult(sqlmock.NewResult(17, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM crop_purchases").
		WithArgs(uint64(17)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	p := &model.CropPurchase{
		BuyerID:           5,
		SellerID:          8,
		CropID:            2,
		QuantityRequested: "50 quintals",
		TotalPrice:        110000,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, uint64(17), p.ID)
	assert.Equal(t, model.StatusPending, p.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func purchaseRow(id, buyer, seller uint64, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "buyer_id", "seller_id", "crop_id", "status",
		"quantity_requested", "total_price", "created_at", "updated_at",
	}).AddRow(id, buyer, seller, 2, status, "50 quintals", 110000.0, now, now)
}

func TestPurchaseDecideSecondResponseLoses(t *testing.T) {
	repo, mock := newPurchaseRepo(t)

	mock.ExpectExec("UPDATE crop_purchases SET status").
		WithArgs(model.StatusAccepted, uint64(17), uint64(8), model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, buyer_id, seller_id").
		WithArgs(uint64(17)).
		WillReturnRows(purchaseRow(17, 5, 8, model.StatusRejected))

	err := repo.Decide(context.Background(), 17, 8, model.StatusAccepted)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseDecideOnlySeller(t *testing.T) {
	repo, mock := newPurchaseRepo(t)

	mock.ExpectExec("UPDATE crop_purchases SET status").
		WithArgs(model.StatusRejected, uint64(17), uint64(5), model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, buyer_id, seller_id").
		WithArgs(uint64(17)).
		WillReturnRows(purchaseRow(17, 5, 8, model.StatusPending))

	// The buyer cannot resolve their own request.
	err := repo.Decide(context.Background(), 17, 5, model.StatusRejected)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseListBySellerWithDeletedCrop(t *testing.T) {
	repo, mock := newPurchaseRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"cp.id", "cp.status", "cp.quantity_requested", "cp.total_price", "cp.created_at",
		"c.id", "c.name", "c.quantity", "c.price_rupees", "c.quality", "c.image_url",
		"b.user_id", "b.full_name", "b.location", "b.phone",
		"s.user_id", "s.full_name", "s.location", "s.phone",
	}).AddRow(
		17, model.StatusPending, "50 quintals", 110000.0, now,
		nil, nil, nil, nil, nil, nil, // crop withdrawn after the request
		5, "Ravi Kumar", "Amritsar", nil,
		8, "Anita Rao", "Pune", "9876500000",
	)

	mock.ExpectQuery("FROM crop_purchases cp").
		WithArgs(uint64(8)).
		WillReturnRows(rows)

	items, err := repo.ListBySeller(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Crop)
	assert.Equal(t, "Ravi Kumar", items[0].Buyer.FullName)
	assert.Equal(t, 110000.0, items[0].TotalPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}
