package notification

import (
	"context"
	"fmt"
	"net/http"

	"go-portal/internal/events"
	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotificationNotFound = apperror.New(
	apperror.CodeNotFound,
	"notification not found",
	http.StatusNotFound,
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, actor contextutil.Actor) ([]Notification, error)
	MarkRead(ctx context.Context, actor contextutil.Actor, id string) error
	RecordDecision(ctx context.Context, event events.RequestDecidedEvent) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, actor contextutil.Actor) ([]Notification, error) {
	return s.repo.FindAllByOwner(ctx, actor.ID)
}

func (s *service) MarkRead(ctx context.Context, actor contextutil.Actor, id string) error {
	affected, err := s.repo.MarkRead(ctx, actor.ID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// RecordDecision turns a decision event from the outbox stream into an
// in-app notification for the request owner.
func (s *service) RecordDecision(ctx context.Context, event events.RequestDecidedEvent) error {
	ownerID, err := uuid.Parse(event.OwnerID)
	if err != nil {
		return fmt.Errorf("invalid owner id in decision event: %w", err)
	}

	n := &Notification{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Message: fmt.Sprintf("Your %s request was %s", event.RequestKind, event.Decision),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	s.logger.Info("decision notification recorded",
		zap.String("owner_id", event.OwnerID),
		zap.String("request_kind", event.RequestKind),
		zap.String("decision", event.Decision),
	)
	return nil
}
