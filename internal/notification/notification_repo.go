package notification

import (
	"context"

	"go-portal/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindAllByOwner(ctx context.Context, ownerID string) ([]Notification, error)
	MarkRead(ctx context.Context, ownerID, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindAllByOwner(ctx context.Context, ownerID string) ([]Notification, error) {
	var notifications []Notification
	err := r.db.WithContext(ctx).
		Scopes(scope.OwnedBy(ownerID)).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error
	return notifications, err
}

func (r *repository) MarkRead(ctx context.Context, ownerID, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("read", true)
	return result.RowsAffected, result.Error
}
