package task

import (
	"context"

	"go-portal/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	FindAllByOwner(ctx context.Context, ownerID string, status string) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindAllByOwner(ctx context.Context, ownerID string, status string) ([]Task, error) {
	var tasks []Task
	q := r.db.WithContext(ctx).Scopes(scope.OwnedBy(ownerID))
	if status != "" {
		q = q.Scopes(scope.WithStatus(status))
	}
	err := q.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *repository) Update(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&Task{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
