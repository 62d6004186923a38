package payslip

import (
	"context"
	"errors"
	"time"

	"go-portal/internal/employee"
	paysliperrors "go-portal/internal/payslip/errors"
	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/clock"
	"go-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const periodLayout = "2006-01"

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	Issue(ctx context.Context, actor contextutil.Actor, req IssuePayslipRequest) (PayslipResponse, error)
	GetAll(ctx context.Context, actor contextutil.Actor) ([]PayslipResponse, error)
	Download(ctx context.Context, actor contextutil.Actor, id string) ([]byte, string, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	clk          clock.Clock
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("payslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.service")
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &service{repo: repo, employeeRepo: employeeRepo, clk: clk, logger: l}
}

func (s *service) Issue(ctx context.Context, actor contextutil.Actor, req IssuePayslipRequest) (PayslipResponse, error) {
	if !actor.IsManager() {
		return PayslipResponse{}, paysliperrors.ErrIssueForbidden
	}

	if _, err := time.Parse(periodLayout, req.Period); err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidPeriod
	}

	base, err := decimal.NewFromString(req.BaseSalary)
	if err != nil || base.IsNegative() {
		return PayslipResponse{}, apperror.InvalidField("base_salary")
	}
	allowance, err := decimal.NewFromString(req.Allowance)
	if err != nil || allowance.IsNegative() {
		return PayslipResponse{}, apperror.InvalidField("allowance")
	}
	deduction, err := decimal.NewFromString(req.Deduction)
	if err != nil || deduction.IsNegative() {
		return PayslipResponse{}, apperror.InvalidField("deduction")
	}

	net := base.Add(allowance).Sub(deduction)
	if net.IsNegative() {
		return PayslipResponse{}, paysliperrors.ErrNegativeNetSalary
	}

	if _, err := s.employeeRepo.FindByID(ctx, req.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrUnknownEmployee
		}
		return PayslipResponse{}, err
	}

	issuedBy, err := uuid.Parse(actor.ID)
	if err != nil {
		return PayslipResponse{}, apperror.ErrUnauthorized
	}

	p := &Payslip{
		ID:         uuid.New(),
		OwnerID:    uuid.MustParse(req.OwnerID),
		Period:     req.Period,
		BaseSalary: base,
		Allowance:  allowance,
		Deduction:  deduction,
		NetSalary:  net,
		IssuedBy:   issuedBy,
		IssuedAt:   s.clk.Now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return PayslipResponse{}, paysliperrors.ErrDuplicatePeriod
		}
		return PayslipResponse{}, err
	}

	s.logger.Info("payslip issued",
		zap.String("payslip_id", p.ID.String()),
		zap.String("owner_id", req.OwnerID),
		zap.String("period", req.Period),
	)

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, actor contextutil.Actor) ([]PayslipResponse, error) {
	slips, err := s.repo.FindAllByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]PayslipResponse, len(slips))
	for i, p := range slips {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

// Download renders the payslip as a PDF and returns the bytes plus a
// suggested file name.
func (s *service) Download(ctx context.Context, actor contextutil.Actor, id string) ([]byte, string, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", paysliperrors.ErrPayslipNotFound
		}
		return nil, "", err
	}

	if p.OwnerID.String() != actor.ID && !actor.IsManager() {
		return nil, "", paysliperrors.ErrPayslipNotFound
	}

	ownerName := actor.Name
	if emp, err := s.employeeRepo.FindByID(ctx, p.OwnerID.String()); err == nil {
		ownerName = emp.FullName
	}

	pdf, err := renderPayslipPDF(*p, ownerName)
	if err != nil {
		return nil, "", err
	}

	filename := "payslip-" + p.Period + ".pdf"
	return pdf, filename, nil
}

func mapToResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:         p.ID.String(),
		OwnerID:    p.OwnerID.String(),
		Period:     p.Period,
		BaseSalary: p.BaseSalary.StringFixed(2),
		Allowance:  p.Allowance.StringFixed(2),
		Deduction:  p.Deduction.StringFixed(2),
		NetSalary:  p.NetSalary.StringFixed(2),
		IssuedAt:   p.IssuedAt.Format(time.RFC3339),
	}
}
