package task_test

import (
	"context"
	"testing"

	"go-portal/internal/shared/contextutil"
	"go-portal/internal/task"
	taskerrors "go-portal/internal/task/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTaskRepo struct {
	CreateFn         func(ctx context.Context, t *task.Task) error
	FindByIDFn       func(ctx context.Context, id string) (*task.Task, error)
	FindAllByOwnerFn func(ctx context.Context, ownerID, status string) ([]task.Task, error)
	UpdateFn         func(ctx context.Context, t *task.Task) error
	DeleteFn         func(ctx context.Context, id string) (int64, error)
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *task.Task) error {
	return f.CreateFn(ctx, t)
}

func (f *fakeTaskRepo) FindByID(ctx context.Context, id string) (*task.Task, error) {
	return f.FindByIDFn(ctx, id)
}

func (f *fakeTaskRepo) FindAllByOwner(ctx context.Context, ownerID, status string) ([]task.Task, error) {
	return f.FindAllByOwnerFn(ctx, ownerID, status)
}

func (f *fakeTaskRepo) Update(ctx context.Context, t *task.Task) error {
	return f.UpdateFn(ctx, t)
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id string) (int64, error) {
	return f.DeleteFn(ctx, id)
}

func taskActor() contextutil.Actor {
	return contextutil.Actor{ID: uuid.NewString(), Role: "EMPLOYEE", Name: "Budi"}
}

func TestCreateTask(t *testing.T) {
	t.Run("success starts open", func(t *testing.T) {
		repo := &fakeTaskRepo{
			CreateFn: func(ctx context.Context, tk *task.Task) error {
				assert.Equal(t, task.StatusOpen, tk.Status)
				return nil
			},
		}

		svc := task.NewService(repo)
		resp, err := svc.Create(context.Background(), taskActor(), task.CreateTaskRequest{
			Title:       "prepare onboarding deck",
			Description: "slides for the new hires",
			DueDate:     "2026-09-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, task.StatusOpen, resp.Status)
		assert.NotNil(t, resp.DueDate)
	})
}

func TestUpdateTask(t *testing.T) {
	taskID := uuid.New()
	actor := taskActor()
	ownerID := uuid.MustParse(actor.ID)

	withStatus := func(status string) *task.Task {
		return &task.Task{
			ID:      taskID,
			OwnerID: ownerID,
			Title:   "prepare onboarding deck",
			Status:  status,
		}
	}

	t.Run("success open to in progress", func(t *testing.T) {
		repo := &fakeTaskRepo{
			FindByIDFn: func(ctx context.Context, id string) (*task.Task, error) {
				return withStatus(task.StatusOpen), nil
			},
			UpdateFn: func(ctx context.Context, tk *task.Task) error {
				assert.Equal(t, task.StatusInProgress, tk.Status)
				return nil
			},
		}

		svc := task.NewService(repo)
		resp, err := svc.Update(context.Background(), actor, taskID.String(), task.UpdateTaskRequest{
			Title:  "prepare onboarding deck",
			Status: task.StatusInProgress,
		})

		assert.NoError(t, err)
		assert.Equal(t, task.StatusInProgress, resp.Status)
	})

	t.Run("success in progress back to open", func(t *testing.T) {
		repo := &fakeTaskRepo{
			FindByIDFn: func(ctx context.Context, id string) (*task.Task, error) {
				return withStatus(task.StatusInProgress), nil
			},
			UpdateFn: func(ctx context.Context, tk *task.Task) error { return nil },
		}

		svc := task.NewService(repo)
		resp, err := svc.Update(context.Background(), actor, taskID.String(), task.UpdateTaskRequest{
			Title:  "prepare onboarding deck",
			Status: task.StatusOpen,
		})

		assert.NoError(t, err)
		assert.Equal(t, task.StatusOpen, resp.Status)
	})

	t.Run("negative done cannot reopen", func(t *testing.T) {
		repo := &fakeTaskRepo{
			FindByIDFn: func(ctx context.Context, id string) (*task.Task, error) {
				return withStatus(task.StatusDone), nil
			},
		}

		svc := task.NewService(repo)
		_, err := svc.Update(context.Background(), actor, taskID.String(), task.UpdateTaskRequest{
			Title:  "prepare onboarding deck",
			Status: task.StatusOpen,
		})

		assert.ErrorIs(t, err, taskerrors.ErrTaskDone)
	})

	t.Run("negative someone else's task hidden", func(t *testing.T) {
		repo := &fakeTaskRepo{
			FindByIDFn: func(ctx context.Context, id string) (*task.Task, error) {
				other := withStatus(task.StatusOpen)
				other.OwnerID = uuid.New()
				return other, nil
			},
		}

		svc := task.NewService(repo)
		_, err := svc.Update(context.Background(), actor, taskID.String(), task.UpdateTaskRequest{
			Title:  "prepare onboarding deck",
			Status: task.StatusDone,
		})

		assert.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
	})
}

func TestDeleteTask(t *testing.T) {
	taskID := uuid.New()
	actor := taskActor()
	ownerID := uuid.MustParse(actor.ID)

	t.Run("success", func(t *testing.T) {
		repo := &fakeTaskRepo{
			FindByIDFn: func(ctx context.Context, id string) (*task.Task, error) {
				return &task.Task{ID: taskID, OwnerID: ownerID, Status: task.StatusOpen}, nil
			},
			DeleteFn: func(ctx context.Context, id string) (int64, error) {
				return 1, nil
			},
		}

		svc := task.NewService(repo)
		assert.NoError(t, svc.Delete(context.Background(), actor, taskID.String()))
	})

	t.Run("negative unknown task", func(t *testing.T) {
		repo := &fakeTaskRepo{
			FindByIDFn: func(ctx context.Context, id string) (*task.Task, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := task.NewService(repo)
		err := svc.Delete(context.Background(), actor, uuid.NewString())

		assert.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
	})
}
