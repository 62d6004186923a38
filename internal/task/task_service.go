package task

import (
	"context"
	"errors"
	"time"

	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/contextutil"
	taskerrors "go-portal/internal/task/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor contextutil.Actor, req CreateTaskRequest) (TaskResponse, error)
	GetAll(ctx context.Context, actor contextutil.Actor, status string) ([]TaskResponse, error)
	GetByID(ctx context.Context, actor contextutil.Actor, id string) (TaskResponse, error)
	Update(ctx context.Context, actor contextutil.Actor, id string, req UpdateTaskRequest) (TaskResponse, error)
	Delete(ctx context.Context, actor contextutil.Actor, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actor contextutil.Actor, req CreateTaskRequest) (TaskResponse, error) {
	ownerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return TaskResponse{}, apperror.ErrUnauthorized
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return TaskResponse{}, apperror.InvalidField("due_date")
		}
		dueDate = &d
	}

	t := &Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      StatusOpen,
		DueDate:     dueDate,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return TaskResponse{}, err
	}

	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, actor contextutil.Actor, status string) ([]TaskResponse, error) {
	tasks, err := s.repo.FindAllByOwner(ctx, actor.ID, status)
	if err != nil {
		return nil, err
	}

	resp := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = mapToResponse(t)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor contextutil.Actor, id string) (TaskResponse, error) {
	t, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return TaskResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, actor contextutil.Actor, id string, req UpdateTaskRequest) (TaskResponse, error) {
	t, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return TaskResponse{}, err
	}

	if err := validateTransition(t.Status, req.Status); err != nil {
		return TaskResponse{}, err
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return TaskResponse{}, apperror.InvalidField("due_date")
		}
		dueDate = &d
	}

	t.Title = req.Title
	t.Description = req.Description
	t.Status = req.Status
	t.DueDate = dueDate

	if err := s.repo.Update(ctx, t); err != nil {
		return TaskResponse{}, err
	}

	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, actor contextutil.Actor, id string) error {
	if _, err := s.findOwned(ctx, actor, id); err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return taskerrors.ErrTaskNotFound
	}
	return nil
}

// validateTransition allows moving between OPEN and IN_PROGRESS freely and
// into DONE from either, but DONE is terminal.
func validateTransition(from, to string) error {
	switch to {
	case StatusOpen, StatusInProgress, StatusDone:
	default:
		return taskerrors.ErrInvalidStatus
	}

	if from == StatusDone && to != StatusDone {
		return taskerrors.ErrTaskDone
	}
	return nil
}

func (s *service) findOwned(ctx context.Context, actor contextutil.Actor, id string) (*Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, taskerrors.ErrTaskNotFound
		}
		return nil, err
	}

	if t.OwnerID.String() != actor.ID {
		return nil, taskerrors.ErrTaskNotFound
	}
	return t, nil
}

func mapToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		OwnerID:     t.OwnerID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
	}
	if t.DueDate != nil {
		v := t.DueDate.Format(dateLayout)
		resp.DueDate = &v
	}
	return resp
}
