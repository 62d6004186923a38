package reimbursement

import (
	"context"
	"database/sql"
	"time"

	"go-portal/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=reimbursement_repo.go -destination=mock/reimbursement_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, claim *Claim) error
	FindByID(ctx context.Context, id string) (*Claim, error)
	FindAllByOwner(ctx context.Context, ownerID string, status string) ([]Claim, error)
	FindAllPending(ctx context.Context) ([]Claim, error)
	UpdateDecision(ctx context.Context, id string, decision string, rejectionReason *string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error)
	UpdateComment(ctx context.Context, id string, comment string) (int64, error)
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

// Items keep their submitted order via the position column.
func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create persists the claim and its line items in one write. gorm cascades
// the association insert, so a failed item insert rolls the claim back.
func (r *repository) Create(ctx context.Context, claim *Claim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Claim, error) {
	var claim Claim
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		First(&claim, "id = ?", id).Error
	return &claim, err
}

func (r *repository) FindAllByOwner(ctx context.Context, ownerID string, status string) ([]Claim, error) {
	var claims []Claim
	q := r.db.WithContext(ctx).Preload("Items", orderedItems).Scopes(scope.OwnedBy(ownerID))
	if status != "" {
		q = q.Scopes(scope.WithStatus(status))
	}
	err := q.Order("created_at DESC").Find(&claims).Error
	return claims, err
}

func (r *repository) FindAllPending(ctx context.Context) ([]Claim, error) {
	var claims []Claim
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Scopes(scope.WithStatus(StatusPending)).
		Order("created_at ASC").
		Find(&claims).Error
	return claims, err
}

// UpdateDecision carries the same status guard as the leave repo: zero rows
// means somebody else decided first.
func (r *repository) UpdateDecision(ctx context.Context, id string, decision string, rejectionReason *string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error) {
	query := `
UPDATE reimbursement_claims
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

func (r *repository) UpdateComment(ctx context.Context, id string, comment string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Claim{}).
		Where("id = ?", id).
		Update("manager_comment", comment)
	return result.RowsAffected, result.Error
}
