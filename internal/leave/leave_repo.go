package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindEventBasedLeaveType(ctx context.Context, id uuid.UUID) (*EligibleLeaveType, error)
	FindPersonnelGender(ctx context.Context, id uuid.UUID) (string, error)
	Create(ctx context.Context, req *LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	FindHistory(ctx context.Context, personnelID, leaveTypeID uuid.UUID) ([]HistoryItem, error)
	FindApprovedBetween(ctx context.Context, from, to time.Time) ([]HistoryItem, error)
	UpdateDecision(ctx context.Context, req *LeaveRequest) error
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// querier routes reads and writes through the transaction when one is
// bound, so the eligibility checks and the insert see the same snapshot.
type querier interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func (r *repository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) FindEventBasedLeaveType(ctx context.Context, id uuid.UUID) (*EligibleLeaveType, error) {
	query := `
SELECT id, name, max_days, required_gender
FROM leave_types
WHERE id = $1
	AND is_event_based = TRUE
	AND deleted_at IS NULL
`
	var lt EligibleLeaveType
	err := r.q().QueryRowContext(ctx, query, id).Scan(
		&lt.ID,
		&lt.Name,
		&lt.MaxDays,
		&lt.RequiredGender,
	)
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) FindPersonnelGender(ctx context.Context, id uuid.UUID) (string, error) {
	query := `
SELECT gender
FROM personnel
WHERE id = $1
	AND deleted_at IS NULL
`
	var gender string
	if err := r.q().QueryRowContext(ctx, query, id).Scan(&gender); err != nil {
		return "", err
	}
	return gender, nil
}

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	query := `
INSERT INTO leave_requests (
	id, personnel_id, leave_type_id, start_date, end_date, status, reason
) VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.q().ExecContext(
		ctx, query,
		req.ID, req.PersonnelID, req.LeaveTypeID,
		req.StartDate, req.EndDate, req.Status, req.Reason,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	query := `
SELECT
	id, personnel_id, leave_type_id, start_date, end_date,
	status, reason, decided_by, decided_at, rejection_reason,
	created_at, updated_at
FROM leave_requests
WHERE id = $1
`
	var lr LeaveRequest
	err := r.q().QueryRowContext(ctx, query, id).Scan(
		&lr.ID,
		&lr.PersonnelID,
		&lr.LeaveTypeID,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Status,
		&lr.Reason,
		&lr.DecidedBy,
		&lr.DecidedAt,
		&lr.RejectionReason,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) FindHistory(ctx context.Context, personnelID, leaveTypeID uuid.UUID) ([]HistoryItem, error) {
	query := `
SELECT
	lr.id, lr.personnel_id, lr.leave_type_id, lr.start_date, lr.end_date,
	lr.status, lr.reason, lr.decided_by, lr.decided_at, lr.rejection_reason,
	lr.created_at, lr.updated_at,
	lt.name, lt.max_days
FROM leave_requests lr
JOIN leave_types lt ON lt.id = lr.leave_type_id
WHERE lr.personnel_id = $1
	AND lr.leave_type_id = $2
ORDER BY lr.start_date DESC
`
	rows, err := r.q().QueryContext(ctx, query, personnelID, leaveTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHistory(rows)
}

func (r *repository) FindApprovedBetween(ctx context.Context, from, to time.Time) ([]HistoryItem, error) {
	query := `
SELECT
	lr.id, lr.personnel_id, lr.leave_type_id, lr.start_date, lr.end_date,
	lr.status, lr.reason, lr.decided_by, lr.decided_at, lr.rejection_reason,
	lr.created_at, lr.updated_at,
	lt.name, lt.max_days
FROM leave_requests lr
JOIN leave_types lt ON lt.id = lr.leave_type_id
WHERE lr.status = $1
	AND lr.start_date <= $3
	AND lr.end_date >= $2
ORDER BY lr.start_date ASC
`
	rows, err := r.q().QueryContext(ctx, query, StatusApproved, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHistory(rows)
}

func (r *repository) UpdateDecision(ctx context.Context, req *LeaveRequest) error {
	query := `
UPDATE leave_requests
SET
	status = $2,
	decided_by = $3,
	decided_at = $4,
	rejection_reason = $5,
	updated_at = NOW()
WHERE id = $1
`
	res, err := r.q().ExecContext(
		ctx, query,
		req.ID, req.Status, req.DecidedBy, req.DecidedAt, req.RejectionReason,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanHistory(rows *sql.Rows) ([]HistoryItem, error) {
	var items []HistoryItem
	for rows.Next() {
		var item HistoryItem
		if err := rows.Scan(
			&item.ID,
			&item.PersonnelID,
			&item.LeaveTypeID,
			&item.StartDate,
			&item.EndDate,
			&item.Status,
			&item.Reason,
			&item.DecidedBy,
			&item.DecidedAt,
			&item.RejectionReason,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.LeaveTypeName,
			&item.MaxDays,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
