package trip

import (
	"context"

	"go-portal/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=trip_repo.go -destination=mock/trip_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, report *TripReport) error
	FindByID(ctx context.Context, id string) (*TripReport, error)
	FindAllByOwner(ctx context.Context, ownerID string) ([]TripReport, error)
	Update(ctx context.Context, report *TripReport) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, report *TripReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*TripReport, error) {
	var report TripReport
	err := r.db.WithContext(ctx).
		First(&report, "id = ?", id).Error
	return &report, err
}

func (r *repository) FindAllByOwner(ctx context.Context, ownerID string) ([]TripReport, error) {
	var reports []TripReport
	err := r.db.WithContext(ctx).
		Scopes(scope.OwnedBy(ownerID)).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *repository) Update(ctx context.Context, report *TripReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}
