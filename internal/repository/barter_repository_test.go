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

func newBarterRepo(t *testing.T) (*BarterRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBarterRepo(db), mock
}

func TestBarterCreateStartsPending(t *testing.T) {
	repo, mock := newBarterRepo(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO barter_requests").
		WithArgs(uint64(7), uint64(9), uint64(3), uint64(4), model.StatusPending).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM barter_requests").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	req := &model.BarterRequest{
		RequesterID:         7,
		OwnerID:             9,
		RequestingMachineID: 3,
		OfferedMachineID:    4,
	}
	require.NoError(t, repo.Create(context.Background(), req))
	assert.Equal(t, uint64(42), req.ID)
	assert.Equal(t, model.StatusPending, req.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBarterDecideAccept(t *testing.T) {
	repo, mock := newBarterRepo(t)

	mock.ExpectExec("UPDATE barter_requests SET status").
		WithArgs(model.StatusAccepted, uint64(42), uint64(9), model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Decide(context.Background(), 42, 9, model.StatusAccepted)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func barterRow(id, requester, owner uint64, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "requester_id", "owner_id", "requesting_machine_id", "offered_machine_id",
		"status", "created_at", "updated_at",
	}).AddRow(id, requester, owner, 3, 4, status, now, now)
}

func TestBarterDecideAlreadyResolved(t *testing.T) {
	repo, mock := newBarterRepo(t)

	// The conditional update matches nothing because a racing responder
	// already flipped the row; the re-read finds it accepted.
	mock.ExpectExec("UPDATE barter_requests SET status").
		WithArgs(model.StatusRejected, uint64(42), uint64(9), model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, requester_id, owner_id").
		WithArgs(uint64(42)).
		WillReturnRows(barterRow(42, 7, 9, model.StatusAccepted))

	err := repo.Decide(context.Background(), 42, 9, model.StatusRejected)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBarterDecideWrongResponder(t *testing.T) {
	repo, mock := newBarterRepo(t)

	mock.ExpectExec("UPDATE barter_requests SET status").
		WithArgs(model.StatusAccepted, uint64(42), uint64(5), model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, requester_id, owner_id").
		WithArgs(uint64(42)).
		WillReturnRows(barterRow(42, 7, 9, model.StatusPending))

	err := repo.Decide(context.Background(), 42, 5, model.StatusAccepted)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBarterDecideMissingRequest(t *testing.T) {
	repo, mock := newBarterRepo(t)

	mock.ExpectExec("UPDATE barter_requests SET status").
		WithArgs(model.StatusAccepted, uint64(404), uint64(9), model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, requester_id, owner_id").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "requester_id", "owner_id", "requesting_machine_id", "offered_machine_id",
			"status", "created_at", "updated_at",
		}))

	err := repo.Decide(context.Background(), 404, 9, model.StatusAccepted)
	assert.ErrorIs(t, err, ErrBarterNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBarterListReceivedTolerateDeletedMachine(t *testing.T) {
	repo, mock := newBarterRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"b.id", "b.status", "b.created_at",
		"rm.id", "rm.name", "rm.value_rupees", "rm.condition", "rm.image_url",
		"om.id", "om.name", "om.value_rupees", "om.condition", "om.image_url",
		"rq.user_id", "rq.full_name", "rq.location", "rq.phone",
		"ow.user_id", "ow.full_name", "ow.location", "ow.phone",
	}).AddRow(
		42, model.StatusPending, now,
		3, "Rotavator", 70000.0, "Good", "https://img.example/rotavator.jpg",
		nil, nil, nil, nil, nil, // offered machine was deleted
		7, "Vismay Patel", "Nashik", "9876543210",
		9, "Anita Rao", "Pune", nil,
	)

	mock.ExpectQuery("FROM barter_requests b").
		WithArgs(uint64(9)).
		WillReturnRows(rows)

	items, err := repo.ListReceived(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, items, 1)

	d := items[0]
	assert.Equal(t, uint64(42), d.ID)
	require.NotNil(t, d.RequestingMachine)
	assert.Equal(t, "Rotavator", d.RequestingMachine.Name)
	assert.Nil(t, d.OfferedMachine)
	assert.Equal(t, "Vismay Patel", d.Requester.FullName)
	require.NotNil(t, d.Requester.Phone)
	assert.Equal(t, "9876543210", *d.Requester.Phone)
	assert.Nil(t, d.Owner.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
