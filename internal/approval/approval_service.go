package approval

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go-portal/internal/employee"
	"go-portal/internal/events"
	"go-portal/internal/leave"
	"go-portal/internal/reimbursement"
	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	pendingApprovalsKey = "approvals:pending"

	// Short TTL: a stale queue entry just produces a harmless conflict
	// when the manager decides it, so freshness is best-effort.
	pendingCacheTTL = 30 * time.Second
)

//go:generate mockgen -source=approval_service.go -destination=mock/approval_service_mock.go -package=mock
type Service interface {
	ListPending(ctx context.Context, actor contextutil.Actor) ([]PendingApproval, error)
}

type service struct {
	leaveRepo    leave.Repository
	claimRepo    reimbursement.Repository
	employeeRepo employee.Repository
	rdb          *redis.Client
	sf           *singleflight.Group
	logger       *zap.Logger
}

func NewService(
	leaveRepo leave.Repository,
	claimRepo reimbursement.Repository,
	employeeRepo employee.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("approval.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.service")
	}
	return &service{
		leaveRepo:    leaveRepo,
		claimRepo:    claimRepo,
		employeeRepo: employeeRepo,
		rdb:          rdb,
		sf:           &singleflight.Group{},
		logger:       l,
	}
}

func (s *service) ListPending(ctx context.Context, actor contextutil.Actor) ([]PendingApproval, error) {
	if !actor.IsManager() {
		return nil, apperror.ErrForbidden
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, pendingApprovalsKey).Result(); err == nil {
			var approvals []PendingApproval
			if err := json.Unmarshal([]byte(cached), &approvals); err == nil {
				return approvals, nil
			}
		}
	}

	v, err, _ := s.sf.Do(pendingApprovalsKey, func() (interface{}, error) {
		return s.loadPending(ctx)
	})
	if err != nil {
		return nil, err
	}

	return v.([]PendingApproval), nil
}

func (s *service) loadPending(ctx context.Context) ([]PendingApproval, error) {
	leaves, err := s.leaveRepo.FindAllPending(ctx)
	if err != nil {
		return nil, err
	}
	claims, err := s.claimRepo.FindAllPending(ctx)
	if err != nil {
		return nil, err
	}

	ownerIDs := make([]string, 0, len(leaves)+len(claims))
	for _, l := range leaves {
		ownerIDs = append(ownerIDs, l.OwnerID.String())
	}
	for _, c := range claims {
		ownerIDs = append(ownerIDs, c.OwnerID.String())
	}

	names, err := s.employeeRepo.NamesByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	approvals := make([]PendingApproval, 0, len(leaves)+len(claims))
	for _, l := range leaves {
		ownerID := l.OwnerID.String()
		approvals = append(approvals, PendingApproval{
			RequestID:     l.ID.String(),
			RequestKind:   events.RequestKindLeave,
			RequesterID:   ownerID,
			RequesterName: names[ownerID],
			Summary:       fmt.Sprintf("%s leave, %d day(s)", l.LeaveTypeName, l.TotalDays),
			SubmittedAt:   l.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, c := range claims {
		ownerID := c.OwnerID.String()
		approvals = append(approvals, PendingApproval{
			RequestID:     c.ID.String(),
			RequestKind:   events.RequestKindReimbursement,
			RequesterID:   ownerID,
			RequesterName: names[ownerID],
			Summary:       fmt.Sprintf("reimbursement of %s", c.TotalAmount.StringFixed(2)),
			SubmittedAt:   c.CreatedAt.Format(time.RFC3339),
		})
	}

	// Oldest first so the longest-waiting request tops the queue.
	sort.Slice(approvals, func(i, j int) bool {
		return approvals[i].SubmittedAt < approvals[j].SubmittedAt
	})

	if s.rdb != nil {
		if payload, err := json.Marshal(approvals); err == nil {
			if err := s.rdb.Set(ctx, pendingApprovalsKey, payload, pendingCacheTTL).Err(); err != nil {
				s.logger.Warn("cache pending approvals failed", zap.Error(err))
			}
		}
	}

	return approvals, nil
}
