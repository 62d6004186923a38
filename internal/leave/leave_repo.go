package leave

import (
	"context"
	"database/sql"
	"time"

	"go-portal/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAllByOwner(ctx context.Context, ownerID string, status string) ([]LeaveRequest, error)
	FindAllPending(ctx context.Context) ([]LeaveRequest, error)
	UsedDaysByType(ctx context.Context, ownerID string) (map[string]int, error)
	UpdateDecision(ctx context.Context, id string, decision string, rejectionReason *string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).
		First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindAllByOwner(ctx context.Context, ownerID string, status string) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	q := r.db.WithContext(ctx).Scopes(scope.OwnedBy(ownerID))
	if status != "" {
		q = q.Scopes(scope.WithStatus(status))
	}
	err := q.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindAllPending(ctx context.Context) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(scope.WithStatus(StatusPending)).
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

// UsedDaysByType sums PENDING and APPROVED days per leave type. Pending
// requests count against the balance so two overlapping submissions cannot
// both fit into the same remaining days.
func (r *repository) UsedDaysByType(ctx context.Context, ownerID string) (map[string]int, error) {
	type row struct {
		LeaveTypeName string
		Used          int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("leave_type_name, COALESCE(SUM(total_days), 0) as used").
		Where("owner_id = ? AND status IN ?", ownerID, []string{StatusPending, StatusApproved}).
		Group("leave_type_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	used := make(map[string]int, len(rows))
	for _, r := range rows {
		used[r.LeaveTypeName] = r.Used
	}
	return used, nil
}

// UpdateDecision flips a request out of PENDING. The status guard in the
// WHERE clause makes concurrent decisions race-safe: the loser updates zero
// rows and the caller maps that to a conflict.
func (r *repository) UpdateDecision(ctx context.Context, id string, decision string, rejectionReason *string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error) {
	query := `
UPDATE leave_requests
SET
	status = $2,
	rejection_reason = $3,
	decided_by = $4,
	decided_at = $5,
	updated_at = $5
WHERE id = $1 AND status = $6
`
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query, id, decision, rejectionReason, decidedBy, decidedAt, StatusPending)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	result := r.db.WithContext(ctx).Exec(query, id, decision, rejectionReason, decidedBy, decidedAt, StatusPending)
	return result.RowsAffected, result.Error
}
