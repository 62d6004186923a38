package reimbursement

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-portal/internal/events"
	"go-portal/internal/messaging/kafka"
	reimbursementerrors "go-portal/internal/reimbursement/errors"
	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/clock"
	"go-portal/internal/shared/contextutil"
	"go-portal/internal/shared/window"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=reimbursement_service.go -destination=mock/reimbursement_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor contextutil.Actor, req CreateClaimRequest) (ClaimResponse, error)
	GetAll(ctx context.Context, actor contextutil.Actor, status string) ([]ClaimResponse, error)
	GetByID(ctx context.Context, actor contextutil.Actor, id string) (ClaimResponse, error)
	Decide(ctx context.Context, actor contextutil.Actor, id string, req DecideClaimRequest) (ClaimResponse, error)
	Comment(ctx context.Context, actor contextutil.Actor, id string, req CommentRequest) (ClaimResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	clk    clock.Clock
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("reimbursement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reimbursement.service")
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &service{db: db, repo: repo, outbox: outbox, clk: clk, logger: l}
}

func (s *service) Create(ctx context.Context, actor contextutil.Actor, req CreateClaimRequest) (ClaimResponse, error) {
	if len(req.Items) == 0 {
		return ClaimResponse{}, reimbursementerrors.ErrNoLineItems
	}

	total, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		return ClaimResponse{}, apperror.InvalidField("total_amount")
	}
	if !total.IsPositive() {
		return ClaimResponse{}, reimbursementerrors.ErrInvalidAmount
	}

	ownerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return ClaimResponse{}, apperror.ErrUnauthorized
	}

	claimDate, err := time.Parse(dateLayout, req.ClaimDate)
	if err != nil {
		return ClaimResponse{}, apperror.InvalidField("claim_date")
	}

	now := s.clk.Now()
	claimID := uuid.New()

	items := make([]LineItem, len(req.Items))
	sum := decimal.Zero
	for i, item := range req.Items {
		amount, err := decimal.NewFromString(item.Amount)
		if err != nil {
			return ClaimResponse{}, apperror.InvalidField("items.amount")
		}
		if !amount.IsPositive() {
			return ClaimResponse{}, reimbursementerrors.ErrInvalidAmount
		}

		billDate, err := time.Parse(dateLayout, item.BillDate)
		if err != nil {
			return ClaimResponse{}, apperror.InvalidField("items.bill_date")
		}
		if !window.BillDateValid(billDate, now) {
			return ClaimResponse{}, reimbursementerrors.ErrInvalidBillDate
		}

		sum = sum.Add(amount)
		items[i] = LineItem{
			ID:          uuid.New(),
			ClaimID:     claimID,
			Position:    i + 1,
			ExpenseType: item.ExpenseType,
			Description: item.Description,
			Amount:      amount,
			RefBillName: item.RefBillName,
			BillDate:    window.Day(billDate),
			BillFileRef: item.BillFileRef,
		}
	}

	if !sum.Equal(total) {
		return ClaimResponse{}, reimbursementerrors.ErrAmountMismatch
	}

	claim := &Claim{
		ID:          claimID,
		OwnerID:     ownerID,
		Category:    req.Category,
		ClaimDate:   window.Day(claimDate),
		Description: req.Description,
		TotalAmount: total,
		Status:      StatusPending,
		Items:       items,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, claim); err != nil {
		return ClaimResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClaimResponse{}, err
	}

	s.logger.Info("reimbursement claim created",
		zap.String("claim_id", claim.ID.String()),
		zap.String("owner_id", actor.ID),
		zap.String("total_amount", total.StringFixed(2)),
		zap.Int("items", len(items)),
	)

	return mapToResponse(*claim), nil
}

func (s *service) GetAll(ctx context.Context, actor contextutil.Actor, status string) ([]ClaimResponse, error) {
	claims, err := s.repo.FindAllByOwner(ctx, actor.ID, status)
	if err != nil {
		return nil, err
	}

	resp := make([]ClaimResponse, len(claims))
	for i, c := range claims {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor contextutil.Actor, id string) (ClaimResponse, error) {
	claim, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClaimResponse{}, reimbursementerrors.ErrClaimNotFound
		}
		return ClaimResponse{}, err
	}

	if claim.OwnerID.String() != actor.ID && !actor.IsManager() {
		return ClaimResponse{}, reimbursementerrors.ErrClaimNotFound
	}

	return mapToResponse(*claim), nil
}

func (s *service) Decide(ctx context.Context, actor contextutil.Actor, id string, req DecideClaimRequest) (ClaimResponse, error) {
	if !actor.IsManager() {
		return ClaimResponse{}, reimbursementerrors.ErrDecisionForbidden
	}
	if req.Decision != StatusApproved && req.Decision != StatusRejected {
		return ClaimResponse{}, apperror.InvalidField("decision")
	}

	var rejectionReason *string
	if req.Decision == StatusRejected {
		reason := strings.TrimSpace(req.RejectionReason)
		if reason == "" {
			return ClaimResponse{}, reimbursementerrors.ErrRejectionReasonRequired
		}
		rejectionReason = &reason
	}

	decidedBy, err := uuid.Parse(actor.ID)
	if err != nil {
		return ClaimResponse{}, apperror.ErrUnauthorized
	}
	decidedAt := s.clk.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResponse{}, err
	}
	defer tx.Rollback()

	affected, err := s.repo.WithTx(tx).UpdateDecision(ctx, id, req.Decision, rejectionReason, decidedBy, decidedAt)
	if err != nil {
		return ClaimResponse{}, err
	}
	if affected == 0 {
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ClaimResponse{}, reimbursementerrors.ErrClaimNotFound
			}
			return ClaimResponse{}, err
		}
		return ClaimResponse{}, reimbursementerrors.ErrAlreadyDecided
	}

	decided, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ClaimResponse{}, err
	}

	payload, err := json.Marshal(events.RequestDecidedEvent{
		RequestID:   id,
		RequestKind: events.RequestKindReimbursement,
		OwnerID:     decided.OwnerID.String(),
		Decision:    req.Decision,
		DecidedBy:   actor.ID,
		DecidedAt:   decidedAt,
	})
	if err != nil {
		return ClaimResponse{}, err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "reimbursement_claim",
		AggregateID:   id,
		EventType:     "request.decided",
		Topic:         events.RequestDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		return ClaimResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClaimResponse{}, err
	}

	s.logger.Info("reimbursement claim decided",
		zap.String("claim_id", id),
		zap.String("decision", req.Decision),
		zap.String("decided_by", actor.ID),
	)

	decided.Status = req.Decision
	decided.RejectionReason = rejectionReason
	decided.DecidedBy = &decidedBy
	decided.DecidedAt = &decidedAt

	return mapToResponse(*decided), nil
}

// Comment is allowed on any claim regardless of status: managers leave
// notes on decided claims during audits.
func (s *service) Comment(ctx context.Context, actor contextutil.Actor, id string, req CommentRequest) (ClaimResponse, error) {
	if !actor.IsManager() {
		return ClaimResponse{}, reimbursementerrors.ErrCommentForbidden
	}

	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return ClaimResponse{}, reimbursementerrors.ErrCommentRequired
	}

	affected, err := s.repo.UpdateComment(ctx, id, comment)
	if err != nil {
		return ClaimResponse{}, err
	}
	if affected == 0 {
		return ClaimResponse{}, reimbursementerrors.ErrClaimNotFound
	}

	claim, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ClaimResponse{}, err
	}

	return mapToResponse(*claim), nil
}

func mapToResponse(c Claim) ClaimResponse {
	items := make([]LineItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = LineItemResponse{
			ID:          item.ID.String(),
			Position:    item.Position,
			ExpenseType: item.ExpenseType,
			Description: item.Description,
			Amount:      item.Amount.StringFixed(2),
			RefBillName: item.RefBillName,
			BillDate:    item.BillDate.Format(dateLayout),
			BillFileRef: item.BillFileRef,
		}
	}

	resp := ClaimResponse{
		ID:              c.ID.String(),
		OwnerID:         c.OwnerID.String(),
		Category:        c.Category,
		ClaimDate:       c.ClaimDate.Format(dateLayout),
		Description:     c.Description,
		TotalAmount:     c.TotalAmount.StringFixed(2),
		Status:          c.Status,
		RejectionReason: c.RejectionReason,
		ManagerComment:  c.ManagerComment,
		Items:           items,
	}
	if c.DecidedBy != nil {
		v := c.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if c.DecidedAt != nil {
		v := c.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}
