package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-portal/internal/events"
	leaveerrors "go-portal/internal/leave/errors"
	"go-portal/internal/leavetype"
	"go-portal/internal/messaging/kafka"
	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/clock"
	"go-portal/internal/shared/contextutil"
	"go-portal/internal/shared/window"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor contextutil.Actor, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actor contextutil.Actor, status string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actor contextutil.Actor, id string) (LeaveResponse, error)
	GetBalances(ctx context.Context, actor contextutil.Actor) ([]BalanceResponse, error)
	Decide(ctx context.Context, actor contextutil.Actor, id string, req DecideLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	typeRepo leavetype.Repository
	outbox   kafka.OutboxRepository
	clk      clock.Clock
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	typeRepo leavetype.Repository,
	outbox kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &service{
		db:       db,
		repo:     repo,
		typeRepo: typeRepo,
		outbox:   outbox,
		clk:      clk,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, actor contextutil.Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return LeaveResponse{}, apperror.InvalidField("start_date")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return LeaveResponse{}, apperror.InvalidField("end_date")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return LeaveResponse{}, apperror.RequiredField("reason")
	}

	now := s.clk.Now()
	if !window.LeaveDatesValid(startDate, endDate, now) {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveDates
	}

	lt, err := s.typeRepo.FindByName(ctx, req.LeaveTypeName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrUnknownLeaveType
		}
		return LeaveResponse{}, err
	}

	totalDays := int(window.Day(endDate).Sub(window.Day(startDate)).Hours()/24) + 1

	ownerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return LeaveResponse{}, apperror.ErrUnauthorized
	}

	// Balance is re-read right before the insert. Two racing submits can
	// still both pass the check (the read runs on the pool, not the tx);
	// only decisions need strict serialization, so that window is accepted.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	used, err := qtx.UsedDaysByType(ctx, actor.ID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if used[lt.Name]+totalDays > lt.AnnualAllowance {
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	leaveReq := &LeaveRequest{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		LeaveTypeName: lt.Name,
		StartDate:     window.Day(startDate),
		EndDate:       window.Day(endDate),
		TotalDays:     totalDays,
		Reason:        req.Reason,
		Status:        StatusPending,
	}
	if err := qtx.Create(ctx, leaveReq); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request created",
		zap.String("leave_id", leaveReq.ID.String()),
		zap.String("owner_id", actor.ID),
		zap.String("leave_type", lt.Name),
		zap.Int("total_days", totalDays),
	)

	return mapToResponse(*leaveReq), nil
}

func (s *service) GetAll(ctx context.Context, actor contextutil.Actor, status string) ([]LeaveResponse, error) {
	reqs, err := s.repo.FindAllByOwner(ctx, actor.ID, status)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveResponse, len(reqs))
	for i, r := range reqs {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor contextutil.Actor, id string) (LeaveResponse, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	// Owners see their own requests; managers see everything pending in
	// their approval queue, so they get read access here too.
	if req.OwnerID.String() != actor.ID && !actor.IsManager() {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	return mapToResponse(*req), nil
}

func (s *service) GetBalances(ctx context.Context, actor contextutil.Actor) ([]BalanceResponse, error) {
	types, err := s.typeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	used, err := s.repo.UsedDaysByType(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	return ComputeBalances(types, used), nil
}

func (s *service) Decide(ctx context.Context, actor contextutil.Actor, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	if !actor.IsManager() {
		return LeaveResponse{}, leaveerrors.ErrDecisionForbidden
	}
	if req.Decision != StatusApproved && req.Decision != StatusRejected {
		return LeaveResponse{}, apperror.InvalidField("decision")
	}

	var rejectionReason *string
	if req.Decision == StatusRejected {
		reason := strings.TrimSpace(req.RejectionReason)
		if reason == "" {
			return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
		}
		rejectionReason = &reason
	}

	decidedBy, err := uuid.Parse(actor.ID)
	if err != nil {
		return LeaveResponse{}, apperror.ErrUnauthorized
	}
	decidedAt := s.clk.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.UpdateDecision(ctx, id, req.Decision, rejectionReason, decidedBy, decidedAt)
	if err != nil {
		return LeaveResponse{}, err
	}
	if affected == 0 {
		// Either the request never existed or another manager got there
		// first. Look it up to tell the two apart.
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			}
			return LeaveResponse{}, err
		}
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	decided, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	payload, err := json.Marshal(events.RequestDecidedEvent{
		RequestID:   id,
		RequestKind: events.RequestKindLeave,
		OwnerID:     decided.OwnerID.String(),
		Decision:    req.Decision,
		DecidedBy:   actor.ID,
		DecidedAt:   decidedAt,
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   id,
		EventType:     "request.decided",
		Topic:         events.RequestDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request decided",
		zap.String("leave_id", id),
		zap.String("decision", req.Decision),
		zap.String("decided_by", actor.ID),
	)

	decided.Status = req.Decision
	decided.RejectionReason = rejectionReason
	decided.DecidedBy = &decidedBy
	decided.DecidedAt = &decidedAt

	return mapToResponse(*decided), nil
}

func mapToResponse(r LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              r.ID.String(),
		OwnerID:         r.OwnerID.String(),
		LeaveTypeName:   r.LeaveTypeName,
		StartDate:       r.StartDate.Format(dateLayout),
		EndDate:         r.EndDate.Format(dateLayout),
		TotalDays:       r.TotalDays,
		Reason:          r.Reason,
		Status:          r.Status,
		RejectionReason: r.RejectionReason,
	}
	if r.DecidedBy != nil {
		v := r.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if r.DecidedAt != nil {
		v := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}
