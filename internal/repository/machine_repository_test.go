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

func newMachineRepo(t *testing.T) (*MachineRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMachineRepo(db), mock
}

func machineDetailRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"m.id", "m.owner_id", "m.name", "m.description", "m.value_rupees", "m.condition", "m.image_url", "m.created_at",
		"p.user_id", "p.full_name", "p.location", "p.phone",
	})
}

func TestMachineCreatePopulatesGeneratedFields(t *testing.T) {
	repo, mock := newMachineRepo(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO machines").
		WithArgs(uint64(7), "Rotavator", "6 feet rotavator", 70000.0, "Good", "https://img.example/r.jpg").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM machines").
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	m := &model.Machine{
		OwnerID:     7,
		Name:        "Rotavator",
		Description: "6 feet rotavator",
		Value:       70000,
		Condition:   "Good",
		ImageURL:    "https://img.example/r.jpg",
	}
	require.NoError(t, repo.Create(context.Background(), m))
	assert.Equal(t, uint64(11), m.ID)
	assert.Equal(t, now, m.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMachineGetByIDNotFound(t *testing.T) {
	repo, mock := newMachineRepo(t)

	mock.ExpectQuery("FROM machines m").
		WithArgs(uint64(404)).
		WillReturnRows(machineDetailRows())

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrMachineNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMachineListByOwner(t *testing.T) {
	repo, mock := newMachineRepo(t)
	now := time.Now()

	rows := machineDetailRows().
		AddRow(12, 7, "Power Tiller", "", 55000.0, "Used", "", now,
			7, "Vismay Patel", "Nashik", nil).
		AddRow(11, 7, "Rotavator", "6 feet rotavator", 70000.0, "Good", "", now.Add(-time.Hour),
			7, "Vismay Patel", "Nashik", "9876543210")

	mock.ExpectQuery("WHERE m.owner_id").
		WithArgs(uint64(7)).
		WillReturnRows(rows)

	items, err := repo.ListByOwner(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint64(12), items[0].ID)
	assert.Equal(t, "Vismay Patel", items[0].Owner.FullName)
	assert.Nil(t, items[0].Owner.Phone)
	require.NotNil(t, items[1].Owner.Phone)
	assert.Equal(t, "9876543210", *items[1].Owner.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMachineCountByOwner(t *testing.T) {
	repo, mock := newMachineRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountByOwner(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMachineUpdatePartial(t *testing.T) {
	repo, mock := newMachineRepo(t)

	mock.ExpectQuery("SELECT owner_id FROM machines").
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(7))
	mock.ExpectExec("UPDATE machines SET name").
		WithArgs("Rotavator 7ft", 72000.0, uint64(11), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	name := "Rotavator 7ft"
	value := 72000.0
	err := repo.Update(context.Background(), 11, 7, MachinePatch{Name: &name, Value: &value})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMachineUpdateForeignMachine(t *testing.T) {
	repo, mock := newMachineRepo(t)

	mock.ExpectQuery("SELECT owner_id FROM machines").
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(99))

	name := "stolen"
	err := repo.Update(context.Background(), 11, 7, MachinePatch{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMachineDeleteMissing(t *testing.T) {
	repo, mock := newMachineRepo(t)

	mock.ExpectQuery("SELECT owner_id FROM machines").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}))

	err := repo.Delete(context.Background(), 404, 7)
	assert.ErrorIs(t, err, ErrMachineNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
