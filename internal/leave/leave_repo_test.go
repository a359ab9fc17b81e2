package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-leavedesk/internal/leave"
)

func TestLeaveRepository_FindEventBasedLeaveType(t *testing.T) {
	db, mock := newTxDB(t)
	repo := leave.NewRepository(db)

	id := uuid.New()
	male := "male"
	rows := sqlmock.NewRows([]string{"id", "name", "max_days", "required_gender"}).
		AddRow(id, "Paternity Leave", 2, &male)
	mock.ExpectQuery("SELECT id, name, max_days, required_gender").
		WithArgs(id).
		WillReturnRows(rows)

	lt, err := repo.FindEventBasedLeaveType(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "Paternity Leave", lt.Name)
	assert.Equal(t, 2, lt.MaxDays)
	require.NotNil(t, lt.RequiredGender)
	assert.Equal(t, "male", *lt.RequiredGender)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRepository_FindEventBasedLeaveType_NoRows(t *testing.T) {
	db, mock := newTxDB(t)
	repo := leave.NewRepository(db)

	id := uuid.New()
	mock.ExpectQuery("SELECT id, name, max_days, required_gender").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindEventBasedLeaveType(context.Background(), id)

	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestLeaveRepository_CreateUsesBoundTransaction(t *testing.T) {
	db, mock := newTxDB(t)
	repo := leave.NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO leave_requests").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	qtx := repo.WithTx(tx)
	err = qtx.Create(context.Background(), &leave.LeaveRequest{
		ID:          uuid.New(),
		PersonnelID: uuid.New(),
		LeaveTypeID: uuid.New(),
		StartDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		Status:      leave.StatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRepository_FindHistoryOrdersByStartDateDesc(t *testing.T) {
	db, mock := newTxDB(t)
	repo := leave.NewRepository(db)

	pid := uuid.New()
	ltid := uuid.New()
	cols := []string{
		"id", "personnel_id", "leave_type_id", "start_date", "end_date",
		"status", "reason", "decided_by", "decided_at", "rejection_reason",
		"created_at", "updated_at", "name", "max_days",
	}
	now := time.Now()
	rows := sqlmock.NewRows(cols).
		AddRow(uuid.New(), pid, ltid,
			time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
			leave.StatusApproved, "", nil, nil, nil, now, now, "Marriage Leave", 3).
		AddRow(uuid.New(), pid, ltid,
			time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
			leave.StatusPending, "", nil, nil, nil, now, now, "Marriage Leave", 3)

	mock.ExpectQuery(`ORDER BY lr\.start_date DESC`).
		WithArgs(pid, ltid).
		WillReturnRows(rows)

	items, err := repo.FindHistory(context.Background(), pid, ltid)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Marriage Leave", items[0].LeaveTypeName)
	assert.True(t, items[0].StartDate.After(items[1].StartDate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRepository_UpdateDecision_NoRowMatched(t *testing.T) {
	db, mock := newTxDB(t)
	repo := leave.NewRepository(db)

	mock.ExpectExec("UPDATE leave_requests").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateDecision(context.Background(), &leave.LeaveRequest{
		ID:     uuid.New(),
		Status: leave.StatusApproved,
	})

	assert.ErrorIs(t, err, sql.ErrNoRows)
}
