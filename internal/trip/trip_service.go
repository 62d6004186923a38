package trip

import (
	"context"
	"errors"
	"time"

	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/clock"
	"go-portal/internal/shared/contextutil"
	"go-portal/internal/shared/window"
	triperrors "go-portal/internal/trip/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=trip_service.go -destination=mock/trip_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor contextutil.Actor, req CreateTripRequest) (TripResponse, error)
	GetAll(ctx context.Context, actor contextutil.Actor) ([]TripResponse, error)
	GetByID(ctx context.Context, actor contextutil.Actor, id string) (TripResponse, error)
	Update(ctx context.Context, actor contextutil.Actor, id string, req UpdateTripRequest) (TripResponse, error)
	Submit(ctx context.Context, actor contextutil.Actor, id string) (TripResponse, error)
}

type service struct {
	repo   Repository
	clk    clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("trip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("trip.service")
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &service{repo: repo, clk: clk, logger: l}
}

func (s *service) Create(ctx context.Context, actor contextutil.Actor, req CreateTripRequest) (TripResponse, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return TripResponse{}, apperror.InvalidField("start_date")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return TripResponse{}, apperror.InvalidField("end_date")
	}
	if window.Day(endDate).Before(window.Day(startDate)) {
		return TripResponse{}, triperrors.ErrInvalidTripDates
	}

	now := s.clk.Now()
	today := window.Day(now)
	if !window.Day(startDate).Before(today) || !window.Day(endDate).Before(today) {
		return TripResponse{}, triperrors.ErrInvalidTripDates
	}
	if !window.TripFilingOpen(startDate, endDate, now) {
		return TripResponse{}, triperrors.ErrFilingWindowExpired
	}

	ownerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return TripResponse{}, apperror.ErrUnauthorized
	}

	report := &TripReport{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Destination: req.Destination,
		Purpose:     req.Purpose,
		StartDate:   window.Day(startDate),
		EndDate:     window.Day(endDate),
		Outcome:     req.Outcome,
		Status:      StatusDraft,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return TripResponse{}, err
	}

	s.logger.Info("trip report created",
		zap.String("trip_id", report.ID.String()),
		zap.String("owner_id", actor.ID),
	)

	return mapToResponse(*report), nil
}

func (s *service) GetAll(ctx context.Context, actor contextutil.Actor) ([]TripResponse, error) {
	reports, err := s.repo.FindAllByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]TripResponse, len(reports))
	for i, r := range reports {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor contextutil.Actor, id string) (TripResponse, error) {
	report, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return TripResponse{}, err
	}
	return mapToResponse(*report), nil
}

func (s *service) Update(ctx context.Context, actor contextutil.Actor, id string, req UpdateTripRequest) (TripResponse, error) {
	report, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return TripResponse{}, err
	}

	if report.Status != StatusDraft {
		return TripResponse{}, triperrors.ErrNotDraft
	}
	if !window.TripEditOpen(report.EndDate, s.clk.Now()) {
		return TripResponse{}, triperrors.ErrFilingWindowExpired
	}

	report.Destination = req.Destination
	report.Purpose = req.Purpose
	report.Outcome = req.Outcome

	if err := s.repo.Update(ctx, report); err != nil {
		return TripResponse{}, err
	}

	return mapToResponse(*report), nil
}

func (s *service) Submit(ctx context.Context, actor contextutil.Actor, id string) (TripResponse, error) {
	report, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return TripResponse{}, err
	}

	if report.Status == StatusSubmitted {
		return TripResponse{}, triperrors.ErrAlreadySubmitted
	}
	if !window.TripEditOpen(report.EndDate, s.clk.Now()) {
		return TripResponse{}, triperrors.ErrFilingWindowExpired
	}

	now := s.clk.Now()
	report.Status = StatusSubmitted
	report.SubmittedAt = &now

	if err := s.repo.Update(ctx, report); err != nil {
		return TripResponse{}, err
	}

	s.logger.Info("trip report submitted",
		zap.String("trip_id", report.ID.String()),
		zap.String("owner_id", actor.ID),
	)

	return mapToResponse(*report), nil
}

func (s *service) findOwned(ctx context.Context, actor contextutil.Actor, id string) (*TripReport, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, triperrors.ErrTripNotFound
		}
		return nil, err
	}

	if report.OwnerID.String() != actor.ID {
		return nil, triperrors.ErrTripNotFound
	}
	return report, nil
}

func mapToResponse(r TripReport) TripResponse {
	resp := TripResponse{
		ID:          r.ID.String(),
		OwnerID:     r.OwnerID.String(),
		Destination: r.Destination,
		Purpose:     r.Purpose,
		StartDate:   r.StartDate.Format(dateLayout),
		EndDate:     r.EndDate.Format(dateLayout),
		Outcome:     r.Outcome,
		Status:      r.Status,
	}
	if r.SubmittedAt != nil {
		v := r.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &v
	}
	return resp
}
