package payslip

import (
	"context"

	"go-portal/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, p *Payslip) error
	FindByID(ctx context.Context, id string) (*Payslip, error)
	FindAllByOwner(ctx context.Context, ownerID string) ([]Payslip, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindAllByOwner(ctx context.Context, ownerID string) ([]Payslip, error) {
	var slips []Payslip
	err := r.db.WithContext(ctx).
		Scopes(scope.OwnedBy(ownerID)).
		Order("period DESC").
		Find(&slips).Error
	return slips, err
}
