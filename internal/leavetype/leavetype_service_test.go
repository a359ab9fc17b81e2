package leavetype_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-leavedesk/internal/leavetype"
	leavetypeerrors "go-leavedesk/internal/leavetype/errors"
)

type fakeLeaveTypeRepo struct {
	createFn         func(ctx context.Context, lt *leavetype.LeaveType) error
	findAllFn        func(ctx context.Context) ([]leavetype.LeaveType, error)
	findEventBasedFn func(ctx context.Context) ([]leavetype.LeaveType, error)
	findByIDFn       func(ctx context.Context, id string) (*leavetype.LeaveType, error)
	updateFn         func(ctx context.Context, lt *leavetype.LeaveType) error
	deleteFn         func(ctx context.Context, id string) error
}

func (f *fakeLeaveTypeRepo) WithTx(tx *sql.Tx) leavetype.Repository { return f }

func (f *fakeLeaveTypeRepo) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepo) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepo) FindEventBased(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findEventBasedFn != nil {
		return f.findEventBasedFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepo) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepo) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveTypeService_Create(t *testing.T) {
	db, mock := newTxDB(t)
	expectTx(mock, true)

	var persisted *leavetype.LeaveType
	repo := &fakeLeaveTypeRepo{
		createFn: func(ctx context.Context, lt *leavetype.LeaveType) error {
			persisted = lt
			return nil
		},
	}

	gender := "male"
	svc := leavetype.NewService(db, repo)
	resp, err := svc.Create(context.Background(), leavetype.CreateLeaveTypeRequest{
		Name:           "Paternity Leave",
		IsEventBased:   true,
		MaxDays:        3,
		RequiredGender: &gender,
	})

	assert.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, "Paternity Leave", persisted.Name)
	assert.True(t, persisted.IsEventBased)
	assert.Equal(t, 3, persisted.MaxDays)
	assert.Equal(t, persisted.ID.String(), resp.ID)
	require.NotNil(t, resp.RequiredGender)
	assert.Equal(t, "male", *resp.RequiredGender)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveTypeService_Create_InvalidMaxDays(t *testing.T) {
	db, _ := newTxDB(t)
	svc := leavetype.NewService(db, &fakeLeaveTypeRepo{})

	_, err := svc.Create(context.Background(), leavetype.CreateLeaveTypeRequest{
		Name:    "Broken",
		MaxDays: 0,
	})

	assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidMaxDays)
}

func TestLeaveTypeService_Create_DuplicateName(t *testing.T) {
	db, mock := newTxDB(t)
	expectTx(mock, false)

	repo := &fakeLeaveTypeRepo{
		createFn: func(ctx context.Context, lt *leavetype.LeaveType) error {
			return errors.New(`duplicate key value violates unique constraint "uq_leave_type_name"`)
		},
	}

	svc := leavetype.NewService(db, repo)
	_, err := svc.Create(context.Background(), leavetype.CreateLeaveTypeRequest{
		Name:    "Annual Leave",
		MaxDays: 14,
	})

	assert.ErrorIs(t, err, leavetypeerrors.ErrNameAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveTypeService_GetByID(t *testing.T) {
	db, _ := newTxDB(t)
	id := uuid.New()
	repo := &fakeLeaveTypeRepo{
		findByIDFn: func(ctx context.Context, got string) (*leavetype.LeaveType, error) {
			assert.Equal(t, id.String(), got)
			return &leavetype.LeaveType{ID: id, Name: "Marriage Leave", IsEventBased: true, MaxDays: 3}, nil
		},
	}

	svc := leavetype.NewService(db, repo)
	resp, err := svc.GetByID(context.Background(), id.String())

	assert.NoError(t, err)
	assert.Equal(t, "Marriage Leave", resp.Name)
	assert.Equal(t, 3, resp.MaxDays)
}

func TestLeaveTypeService_GetByID_InvalidID(t *testing.T) {
	db, _ := newTxDB(t)
	svc := leavetype.NewService(db, &fakeLeaveTypeRepo{})

	_, err := svc.GetByID(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidLeaveTypeID)
}

func TestLeaveTypeService_GetByID_NotFound(t *testing.T) {
	db, _ := newTxDB(t)
	repo := &fakeLeaveTypeRepo{
		findByIDFn: func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := leavetype.NewService(db, repo)
	_, err := svc.GetByID(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
}

func TestLeaveTypeService_Update(t *testing.T) {
	db, mock := newTxDB(t)
	expectTx(mock, true)

	id := uuid.New()
	repo := &fakeLeaveTypeRepo{
		findByIDFn: func(ctx context.Context, got string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: id, Name: "Old Name", MaxDays: 1}, nil
		},
	}

	svc := leavetype.NewService(db, repo)
	resp, err := svc.Update(context.Background(), id.String(), leavetype.UpdateLeaveTypeRequest{
		Name:         "Bereavement Leave",
		IsEventBased: true,
		MaxDays:      5,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Bereavement Leave", resp.Name)
	assert.Equal(t, 5, resp.MaxDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveTypeService_GetEventBased(t *testing.T) {
	db, _ := newTxDB(t)
	repo := &fakeLeaveTypeRepo{
		findEventBasedFn: func(ctx context.Context) ([]leavetype.LeaveType, error) {
			return []leavetype.LeaveType{
				{ID: uuid.New(), Name: "Marriage Leave", IsEventBased: true, MaxDays: 3},
				{ID: uuid.New(), Name: "Paternity Leave", IsEventBased: true, MaxDays: 2},
			}, nil
		},
	}

	svc := leavetype.NewService(db, repo)
	resp, err := svc.GetEventBased(context.Background())

	assert.NoError(t, err)
	require.Len(t, resp, 2)
	assert.True(t, resp[0].IsEventBased)
}
