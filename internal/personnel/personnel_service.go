package personnel

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-leavedesk/internal/events"
	"go-leavedesk/internal/messaging/kafka"
	personnelerrors "go-leavedesk/internal/personnel/errors"
	"go-leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const OptionsCacheKey = "personnel:options"

//go:generate mockgen -source=personnel_service.go -destination=mock/personnel_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePersonnelRequest) (PersonnelResponse, error)
	GetAll(ctx context.Context) ([]PersonnelResponse, error)
	GetOptions(ctx context.Context) ([]PersonnelResponse, error)
	GetByID(ctx context.Context, id string) (PersonnelResponse, error)
	Update(ctx context.Context, id string, req UpdatePersonnelRequest) (PersonnelResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("personnel.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("personnel.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreatePersonnelRequest) (PersonnelResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create personnel requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		s.logger.Warn("create personnel invalid hire_date",
			zap.String("hire_date", req.HireDate),
			zap.Error(err),
		)
		return PersonnelResponse{}, personnelerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create personnel begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PersonnelResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p := &Personnel{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    req.Email,
		Gender:   req.Gender,
		HireDate: hireDate,
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create personnel persist failed", zap.Error(err))
		return PersonnelResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.PersonnelCreatedEvent{
			EventType:   "personnel_created",
			RequestID:   rid,
			PersonnelID: p.ID.String(),
			OccurredAt:  time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return PersonnelResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "personnel",
			AggregateID:   p.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PersonnelCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create personnel outbox persist failed",
				zap.String("personnel_id", p.ID.String()),
				zap.Error(err),
			)
			return PersonnelResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create personnel commit failed", zap.String("request_id", rid), zap.Error(err))
		return PersonnelResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create personnel success",
		zap.String("request_id", rid),
		zap.String("personnel_id", p.ID.String()),
	)

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PersonnelResponse, error) {
	people, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all personnel failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(people), nil
}

func (s *service) GetOptions(ctx context.Context) ([]PersonnelResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp []PersonnelResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// singleflight keeps a cold cache from stampeding the database when
	// several admins open a form at once
	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		people, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(people)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, OptionsCacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]PersonnelResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PersonnelResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PersonnelResponse{}, personnelerrors.ErrInvalidPersonnelID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get personnel by id failed", zap.Error(err))
		return PersonnelResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePersonnelRequest) (PersonnelResponse, error) {
	s.logger.Debug("update personnel requested", zap.String("personnel_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return PersonnelResponse{}, personnelerrors.ErrInvalidPersonnelID
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return PersonnelResponse{}, personnelerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update personnel begin tx failed", zap.Error(err))
		return PersonnelResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update personnel fetch existing failed", zap.Error(err))
		return PersonnelResponse{}, mapRepositoryError(err)
	}

	p.FullName = req.FullName
	p.Email = req.Email
	p.Gender = req.Gender
	p.HireDate = hireDate

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update personnel persist failed", zap.Error(err))
		return PersonnelResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update personnel commit failed", zap.Error(err))
		return PersonnelResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("update personnel success", zap.String("personnel_id", id))

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete personnel requested", zap.String("personnel_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return personnelerrors.ErrInvalidPersonnelID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete personnel begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete personnel failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete personnel commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("delete personnel success", zap.String("personnel_id", id))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate personnel options cache",
			zap.Error(err),
			zap.String("key", OptionsCacheKey),
		)
	}
}

func mapToResponse(p Personnel) PersonnelResponse {
	return PersonnelResponse{
		ID:       p.ID.String(),
		FullName: p.FullName,
		Email:    p.Email,
		Gender:   p.Gender,
		HireDate: p.HireDate.Format("2006-01-02"),
	}
}

func mapToListResponse(people []Personnel) []PersonnelResponse {
	res := make([]PersonnelResponse, len(people))
	for i, p := range people {
		res[i] = mapToResponse(p)
	}
	return res
}
