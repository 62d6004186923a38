package payslip_test

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"go-portal/internal/employee"
	"go-portal/internal/payslip"
	paysliperrors "go-portal/internal/payslip/errors"
	"go-portal/internal/shared/clock"
	"go-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayslipRepo struct {
	CreateFn         func(ctx context.Context, p *payslip.Payslip) error
	FindByIDFn       func(ctx context.Context, id string) (*payslip.Payslip, error)
	FindAllByOwnerFn func(ctx context.Context, ownerID string) ([]payslip.Payslip, error)
}

func (f *fakePayslipRepo) Create(ctx context.Context, p *payslip.Payslip) error {
	return f.CreateFn(ctx, p)
}

func (f *fakePayslipRepo) FindByID(ctx context.Context, id string) (*payslip.Payslip, error) {
	return f.FindByIDFn(ctx, id)
}

func (f *fakePayslipRepo) FindAllByOwner(ctx context.Context, ownerID string) ([]payslip.Payslip, error) {
	return f.FindAllByOwnerFn(ctx, ownerID)
}

type fakeEmployeeRepo struct {
	FindByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp *employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.FindByIDFn(ctx, id)
}

func (f *fakeEmployeeRepo) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, emp *employee.Employee) error { return nil }

var testNow = time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

func managerActor() contextutil.Actor {
	return contextutil.Actor{ID: uuid.NewString(), Role: "MANAGER", Name: "Siti"}
}

func TestIssuePayslip(t *testing.T) {
	ownerID := uuid.New()

	empRepo := &fakeEmployeeRepo{
		FindByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: ownerID, FullName: "Budi"}, nil
		},
	}

	t.Run("success computes net salary", func(t *testing.T) {
		repo := &fakePayslipRepo{
			CreateFn: func(ctx context.Context, p *payslip.Payslip) error {
				assert.Equal(t, "4700.00", p.NetSalary.StringFixed(2))
				return nil
			},
		}

		svc := payslip.NewService(repo, empRepo, clock.Fixed{T: testNow})
		resp, err := svc.Issue(context.Background(), managerActor(), payslip.IssuePayslipRequest{
			OwnerID:    ownerID.String(),
			Period:     "2026-08",
			BaseSalary: "5000.00",
			Allowance:  "200.00",
			Deduction:  "500.00",
		})

		assert.NoError(t, err)
		assert.Equal(t, "4700.00", resp.NetSalary)
		assert.Equal(t, "2026-08", resp.Period)
	})

	t.Run("negative employee cannot issue", func(t *testing.T) {
		svc := payslip.NewService(&fakePayslipRepo{}, empRepo, clock.Fixed{T: testNow})
		_, err := svc.Issue(context.Background(), contextutil.Actor{ID: uuid.NewString(), Role: "EMPLOYEE"}, payslip.IssuePayslipRequest{
			OwnerID:    ownerID.String(),
			Period:     "2026-08",
			BaseSalary: "5000.00",
			Allowance:  "0",
			Deduction:  "0",
		})

		assert.ErrorIs(t, err, paysliperrors.ErrIssueForbidden)
	})

	t.Run("negative malformed period", func(t *testing.T) {
		svc := payslip.NewService(&fakePayslipRepo{}, empRepo, clock.Fixed{T: testNow})
		_, err := svc.Issue(context.Background(), managerActor(), payslip.IssuePayslipRequest{
			OwnerID:    ownerID.String(),
			Period:     "Aug 2026",
			BaseSalary: "5000.00",
			Allowance:  "0",
			Deduction:  "0",
		})

		assert.ErrorIs(t, err, paysliperrors.ErrInvalidPeriod)
	})

	t.Run("negative deduction exceeds gross", func(t *testing.T) {
		svc := payslip.NewService(&fakePayslipRepo{}, empRepo, clock.Fixed{T: testNow})
		_, err := svc.Issue(context.Background(), managerActor(), payslip.IssuePayslipRequest{
			OwnerID:    ownerID.String(),
			Period:     "2026-08",
			BaseSalary: "1000.00",
			Allowance:  "0",
			Deduction:  "1500.00",
		})

		assert.ErrorIs(t, err, paysliperrors.ErrNegativeNetSalary)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		empRepo := &fakeEmployeeRepo{
			FindByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := payslip.NewService(&fakePayslipRepo{}, empRepo, clock.Fixed{T: testNow})
		_, err := svc.Issue(context.Background(), managerActor(), payslip.IssuePayslipRequest{
			OwnerID:    uuid.NewString(),
			Period:     "2026-08",
			BaseSalary: "5000.00",
			Allowance:  "0",
			Deduction:  "0",
		})

		assert.ErrorIs(t, err, paysliperrors.ErrUnknownEmployee)
	})
}

func TestDownloadPayslip(t *testing.T) {
	payslipID := uuid.New()
	ownerID := uuid.New()

	stored := func() *payslip.Payslip {
		return &payslip.Payslip{
			ID:         payslipID,
			OwnerID:    ownerID,
			Period:     "2026-07",
			BaseSalary: decimal.RequireFromString("5000.00"),
			Allowance:  decimal.RequireFromString("200.00"),
			Deduction:  decimal.RequireFromString("500.00"),
			NetSalary:  decimal.RequireFromString("4700.00"),
			IssuedAt:   testNow,
		}
	}

	empRepo := &fakeEmployeeRepo{
		FindByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: ownerID, FullName: "Budi"}, nil
		},
	}

	t.Run("success owner downloads pdf", func(t *testing.T) {
		repo := &fakePayslipRepo{
			FindByIDFn: func(ctx context.Context, id string) (*payslip.Payslip, error) {
				return stored(), nil
			},
		}

		svc := payslip.NewService(repo, empRepo, clock.Fixed{T: testNow})
		actor := contextutil.Actor{ID: ownerID.String(), Role: "EMPLOYEE", Name: "Budi"}
		pdf, filename, err := svc.Download(context.Background(), actor, payslipID.String())

		assert.NoError(t, err)
		assert.Equal(t, "payslip-2026-07.pdf", filename)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-1.4")))
		assert.Contains(t, string(pdf), "Net salary: 4700.00")
	})

	t.Run("negative other employee cannot download", func(t *testing.T) {
		repo := &fakePayslipRepo{
			FindByIDFn: func(ctx context.Context, id string) (*payslip.Payslip, error) {
				return stored(), nil
			},
		}

		svc := payslip.NewService(repo, empRepo, clock.Fixed{T: testNow})
		actor := contextutil.Actor{ID: uuid.NewString(), Role: "EMPLOYEE"}
		_, _, err := svc.Download(context.Background(), actor, payslipID.String())

		assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotFound)
	})
}
