package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-leavedesk/internal/events"
	leaveerrors "go-leavedesk/internal/leave/errors"
	"go-leavedesk/internal/messaging/kafka"
	"go-leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	CheckEligibility(ctx context.Context, personnelID, leaveTypeID string) (EligibilityResponse, error)
	Create(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetHistory(ctx context.Context, personnelID, leaveTypeID string) ([]LeaveHistoryResponse, error)
	Approve(ctx context.Context, id, deciderID string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, id, deciderID, rejectionReason string) (LeaveRequestResponse, error)
	BuildCalendar(ctx context.Context, from, to time.Time) (string, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

// checkEligibility answers whether the personnel may open a request for the
// leave type. It runs against the repository it is handed, so inside Create
// it reads through the same transaction that performs the insert.
func (s *service) checkEligibility(ctx context.Context, repo Repository, personnelID, leaveTypeID uuid.UUID) (*EligibleLeaveType, error) {
	lt, err := repo.FindEventBasedLeaveType(ctx, leaveTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, leaveerrors.ErrInvalidLeaveType
		}
		return nil, err
	}

	// max_days >= 1 is enforced on write, but a zero entitlement must never
	// produce a request
	if lt.MaxDays < 1 {
		return nil, leaveerrors.ErrInvalidLeaveType
	}

	gender, err := repo.FindPersonnelGender(ctx, personnelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, leaveerrors.ErrPersonnelNotFound
		}
		return nil, err
	}

	if lt.RequiredGender != nil && *lt.RequiredGender != gender {
		return nil, leaveerrors.NewGenderMismatch(*lt.RequiredGender)
	}

	return lt, nil
}

func (s *service) CheckEligibility(ctx context.Context, personnelID, leaveTypeID string) (EligibilityResponse, error) {
	pid, err := uuid.Parse(personnelID)
	if err != nil {
		return EligibilityResponse{}, leaveerrors.ErrPersonnelNotFound
	}
	ltid, err := uuid.Parse(leaveTypeID)
	if err != nil {
		return EligibilityResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	lt, err := s.checkEligibility(ctx, s.repo, pid, ltid)
	if err != nil {
		return EligibilityResponse{}, err
	}

	return EligibilityResponse{
		Eligible:      true,
		LeaveTypeName: lt.Name,
		MaxDays:       lt.MaxDays,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave request requested",
		zap.String("request_id", rid),
		zap.String("actor_id", contextutil.GetActorID(ctx)),
		zap.String("personnel_id", req.PersonnelID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
	)

	pid, err := uuid.Parse(req.PersonnelID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrPersonnelNotFound
	}
	ltid, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidStartDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create leave request begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := s.checkEligibility(ctx, qtx, pid, ltid)
	if err != nil {
		log.Warn("create leave request not eligible",
			zap.String("request_id", rid),
			zap.String("personnel_id", req.PersonnelID),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}
	if lt == nil {
		return LeaveRequestResponse{}, leaveerrors.ErrNotEligible
	}

	// both ends inclusive: a 3-day entitlement starting 2024-05-01 ends
	// 2024-05-03
	endDate := startDate.AddDate(0, 0, lt.MaxDays-1)

	lr := &LeaveRequest{
		ID:          uuid.New(),
		PersonnelID: pid,
		LeaveTypeID: ltid,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      StatusPending,
		Reason:      req.Reason,
	}

	if err := qtx.Create(ctx, lr); err != nil {
		log.Error("create leave request persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, events.LeaveRequestCreated, lr); err != nil {
		log.Error("create leave request outbox persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create leave request commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	log.Info("create leave request success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", lr.ID.String()),
		zap.String("personnel_id", req.PersonnelID),
		zap.String("leave_type", lt.Name),
		zap.String("end_date", endDate.Format("2006-01-02")),
	)

	return mapToResponse(*lr), nil
}

func (s *service) GetHistory(ctx context.Context, personnelID, leaveTypeID string) ([]LeaveHistoryResponse, error) {
	pid, err := uuid.Parse(personnelID)
	if err != nil {
		return nil, leaveerrors.ErrPersonnelNotFound
	}
	ltid, err := uuid.Parse(leaveTypeID)
	if err != nil {
		return nil, leaveerrors.ErrInvalidLeaveType
	}

	if _, err := s.repo.FindPersonnelGender(ctx, pid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, leaveerrors.ErrPersonnelNotFound
		}
		return nil, err
	}

	items, err := s.repo.FindHistory(ctx, pid, ltid)
	if err != nil {
		s.logger.Error("get leave history failed", zap.String("personnel_id", personnelID), zap.Error(err))
		return nil, err
	}

	resp := make([]LeaveHistoryResponse, len(items))
	for i, item := range items {
		resp[i] = LeaveHistoryResponse{
			ID:              item.ID.String(),
			LeaveTypeID:     item.LeaveTypeID.String(),
			LeaveTypeName:   item.LeaveTypeName,
			MaxDays:         item.MaxDays,
			StartDate:       item.StartDate.Format("2006-01-02"),
			EndDate:         item.EndDate.Format("2006-01-02"),
			Status:          item.Status,
			Reason:          item.Reason,
			RejectionReason: item.RejectionReason,
		}
	}
	return resp, nil
}

func (s *service) Approve(ctx context.Context, id, deciderID string) (LeaveRequestResponse, error) {
	return s.decide(ctx, id, deciderID, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, id, deciderID, rejectionReason string) (LeaveRequestResponse, error) {
	if rejectionReason == "" {
		return LeaveRequestResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	return s.decide(ctx, id, deciderID, StatusRejected, &rejectionReason)
}

func (s *service) decide(ctx context.Context, id, deciderID, status string, rejectionReason *string) (LeaveRequestResponse, error) {
	lrID, err := uuid.Parse(id)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidLeaveRequestID
	}

	var decidedBy *uuid.UUID
	if deciderID != "" {
		did, err := uuid.Parse(deciderID)
		if err == nil {
			decidedBy = &did
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindByID(ctx, lrID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if lr.Status != StatusPending {
		return LeaveRequestResponse{}, leaveerrors.ErrAlreadyDecided
	}

	now := time.Now().UTC()
	lr.Status = status
	lr.DecidedBy = decidedBy
	lr.DecidedAt = &now
	lr.RejectionReason = rejectionReason

	if err := qtx.UpdateDecision(ctx, lr); err != nil {
		s.logger.Error("decide leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	eventType := events.LeaveRequestApproved
	if status == StatusRejected {
		eventType = events.LeaveRequestRejected
	}
	if err := s.enqueueLifecycleEvent(ctx, tx, eventType, lr); err != nil {
		s.logger.Error("decide leave request outbox persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave request commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("decide leave request success",
		zap.String("leave_request_id", id),
		zap.String("status", status),
	)

	return mapToResponse(*lr), nil
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *sql.Tx, eventType string, lr *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveRequestEvent{
		EventType:      eventType,
		RequestID:      contextutil.GetRequestID(ctx),
		LeaveRequestID: lr.ID.String(),
		PersonnelID:    lr.PersonnelID.String(),
		LeaveTypeID:    lr.LeaveTypeID.String(),
		Status:         lr.Status,
		StartDate:      lr.StartDate.Format("2006-01-02"),
		EndDate:        lr.EndDate.Format("2006-01-02"),
		OccurredAt:     time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "leave_request",
		AggregateID:   lr.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveRequestLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:              lr.ID.String(),
		PersonnelID:     lr.PersonnelID.String(),
		LeaveTypeID:     lr.LeaveTypeID.String(),
		StartDate:       lr.StartDate.Format("2006-01-02"),
		EndDate:         lr.EndDate.Format("2006-01-02"),
		Status:          lr.Status,
		Reason:          lr.Reason,
		RejectionReason: lr.RejectionReason,
	}
	if lr.DecidedBy != nil {
		v := lr.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if lr.DecidedAt != nil {
		v := lr.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}
