package reimbursement_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-portal/internal/messaging/kafka"
	"go-portal/internal/reimbursement"
	reimbursementerrors "go-portal/internal/reimbursement/errors"
	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/clock"
	"go-portal/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeClaimRepo struct {
	WithTxFn         func(tx *sql.Tx) reimbursement.Repository
	CreateFn         func(ctx context.Context, claim *reimbursement.Claim) error
	FindByIDFn       func(ctx context.Context, id string) (*reimbursement.Claim, error)
	FindAllByOwnerFn func(ctx context.Context, ownerID, status string) ([]reimbursement.Claim, error)
	FindAllPendingFn func(ctx context.Context) ([]reimbursement.Claim, error)
	UpdateDecisionFn func(ctx context.Context, id, decision string, rejectionReason *string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error)
	UpdateCommentFn  func(ctx context.Context, id, comment string) (int64, error)
}

func (f *fakeClaimRepo) WithTx(tx *sql.Tx) reimbursement.Repository {
	if f.WithTxFn != nil {
		return f.WithTxFn(tx)
	}
	return f
}

func (f *fakeClaimRepo) Create(ctx context.Context, claim *reimbursement.Claim) error {
	return f.CreateFn(ctx, claim)
}

func (f *fakeClaimRepo) FindByID(ctx context.Context, id string) (*reimbursement.Claim, error) {
	return f.FindByIDFn(ctx, id)
}

func (f *fakeClaimRepo) FindAllByOwner(ctx context.Context, ownerID, status string) ([]reimbursement.Claim, error) {
	return f.FindAllByOwnerFn(ctx, ownerID, status)
}

func (f *fakeClaimRepo) FindAllPending(ctx context.Context) ([]reimbursement.Claim, error) {
	return f.FindAllPendingFn(ctx)
}

func (f *fakeClaimRepo) UpdateDecision(ctx context.Context, id, decision string, rejectionReason *string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error) {
	return f.UpdateDecisionFn(ctx, id, decision, rejectionReason, decidedBy, decidedAt)
}

func (f *fakeClaimRepo) UpdateComment(ctx context.Context, id, comment string) (int64, error) {
	return f.UpdateCommentFn(ctx, id, comment)
}

type fakeOutboxRepo struct {
	CreateFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

var testNow = time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

func employeeActor() contextutil.Actor {
	return contextutil.Actor{ID: uuid.NewString(), Role: "EMPLOYEE", Name: "Budi"}
}

func managerActor() contextutil.Actor {
	return contextutil.Actor{ID: uuid.NewString(), Role: "MANAGER", Name: "Siti"}
}

func TestCreateClaim(t *testing.T) {
	validReq := func() reimbursement.CreateClaimRequest {
		return reimbursement.CreateClaimRequest{
			Category:    "TRAVEL",
			ClaimDate:   "2026-08-19",
			Description: "client visit",
			TotalAmount: "150.50",
			Items: []reimbursement.LineItemRequest{
				{ExpenseType: "TRANSPORT", Description: "taxi", Amount: "50.50", RefBillName: "BlueBird 4411", BillDate: "2026-08-18", BillFileRef: "bills/4411.pdf"},
				{ExpenseType: "MEAL", Description: "lunch", Amount: "100.00", BillDate: "2026-08-19"},
			},
		}
	}

	t.Run("success", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		repo := &fakeClaimRepo{
			CreateFn: func(ctx context.Context, claim *reimbursement.Claim) error {
				assert.Equal(t, reimbursement.StatusPending, claim.Status)
				assert.Equal(t, "TRAVEL", claim.Category)
				assert.Equal(t, "2026-08-19", claim.ClaimDate.Format("2006-01-02"))
				assert.Len(t, claim.Items, 2)
				assert.Equal(t, "150.5", claim.TotalAmount.String())
				for i, item := range claim.Items {
					assert.Equal(t, claim.ID, item.ClaimID)
					assert.Equal(t, i+1, item.Position)
				}
				assert.Equal(t, "TRANSPORT", claim.Items[0].ExpenseType)
				assert.Equal(t, "BlueBird 4411", claim.Items[0].RefBillName)
				assert.Equal(t, "bills/4411.pdf", claim.Items[0].BillFileRef)
				return nil
			},
		}

		svc := reimbursement.NewService(db, repo, &fakeOutboxRepo{}, clock.Fixed{T: testNow})
		resp, err := svc.Create(context.Background(), employeeActor(), validReq())

		assert.NoError(t, err)
		assert.Equal(t, "150.50", resp.TotalAmount)
		assert.Equal(t, "TRAVEL", resp.Category)
		assert.Equal(t, "2026-08-19", resp.ClaimDate)
		assert.Equal(t, 1, resp.Items[0].Position)
		assert.Equal(t, "MEAL", resp.Items[1].ExpenseType)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("negative malformed claim date", func(t *testing.T) {
		req := validReq()
		req.ClaimDate = "19-08-2026"

		svc := reimbursement.NewService(nil, &fakeClaimRepo{}, &fakeOutboxRepo{}, clock.Fixed{T: testNow})
		_, err := svc.Create(context.Background(), employeeActor(), req)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("negative item sum mismatch", func(t *testing.T) {
		req := validReq()
		req.TotalAmount = "200.00"

		svc := reimbursement.NewService(nil, &fakeClaimRepo{}, &fakeOutboxRepo{}, clock.Fixed{T: testNow})
		_, err := svc.Create(context.Background(), employeeActor(), req)

		assert.ErrorIs(t, err, reimbursementerrors.ErrAmountMismatch)
	})

	t.Run("negative future bill date", func(t *testing.T) {
		req := validReq()
		req.Items[0].BillDate = "2026-08-21"

		svc := reimbursement.NewService(nil, &fakeClaimRepo{}, &fakeOutboxRepo{}, clock.Fixed{T: testNow})
		_, err := svc.Create(context.Background(), employeeActor(), req)

		assert.ErrorIs(t, err, reimbursementerrors.ErrInvalidBillDate)
	})

	t.Run("negative zero amount item", func(t *testing.T) {
		req := validReq()
		req.Items[0].Amount = "0"

		svc := reimbursement.NewService(nil, &fakeClaimRepo{}, &fakeOutboxRepo{}, clock.Fixed{T: testNow})
		_, err := svc.Create(context.Background(), employeeActor(), req)

		assert.ErrorIs(t, err, reimbursementerrors.ErrInvalidAmount)
	})

	t.Run("negative no items", func(t *testing.T) {
		req := validReq()
		req.Items = nil

		svc := reimbursement.NewService(nil, &fakeClaimRepo{}, &fakeOutboxRepo{}, clock.Fixed{T: testNow})
		_, err := svc.Create(context.Background(), employeeActor(), req)

		assert.ErrorIs(t, err, reimbursementerrors.ErrNoLineItems)
	})
}

func TestDecideClaim(t *testing.T) {
	claimID := uuid.New()
	ownerID := uuid.New()

	pending := func() *reimbursement.Claim {
		return &reimbursement.Claim{
			ID:      claimID,
			OwnerID: ownerID,
			Status:  reimbursement.StatusPending,
		}
	}

	t.Run("success reject with reason", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		repo := &fakeClaimRepo{
			UpdateDecisionFn: func(ctx context.Context, id, decision string, rejectionReason *string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error) {
				assert.Equal(t, reimbursement.StatusRejected, decision)
				assert.NotNil(t, rejectionReason)
				assert.Equal(t, "no receipt attached", *rejectionReason)
				return 1, nil
			},
			FindByIDFn: func(ctx context.Context, id string) (*reimbursement.Claim, error) {
				return pending(), nil
			},
		}

		var published *kafka.OutboxEvent
		outbox := &fakeOutboxRepo{
			CreateFn: func(ctx context.Context, event kafka.OutboxEvent) error {
				published = &event
				return nil
			},
		}

		svc := reimbursement.NewService(db, repo, outbox, clock.Fixed{T: testNow})
		resp, err := svc.Decide(context.Background(), managerActor(), claimID.String(), reimbursement.DecideClaimRequest{
			Decision:        reimbursement.StatusRejected,
			RejectionReason: "no receipt attached",
		})

		assert.NoError(t, err)
		assert.Equal(t, reimbursement.StatusRejected, resp.Status)
		assert.NotNil(t, published)
		assert.Equal(t, "reimbursement_claim", published.AggregateType)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("negative non-manager", func(t *testing.T) {
		svc := reimbursement.NewService(nil, &fakeClaimRepo{}, &fakeOutboxRepo{}, clock.Fixed{T: testNow})
		_, err := svc.Decide(context.Background(), employeeActor(), claimID.String(), reimbursement.DecideClaimRequest{
			Decision: reimbursement.StatusApproved,
		})

		assert.ErrorIs(t, err, reimbursementerrors.ErrDecisionForbidden)
	})

	t.Run("negative unknown decision value", func(t *testing.T) {
		repo := &fakeClaimRepo{
			UpdateDecisionFn: func(ctx context.Context, id, decision string, rejectionReason *string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error) {
				t.Fatal("update must not run for an unknown decision value")
				return 0, nil
			},
		}

		svc := reimbursement.NewService(nil, repo, &fakeOutboxRepo{}, clock.Fixed{T: testNow})
		_, err := svc.Decide(context.Background(), managerActor(), claimID.String(), reimbursement.DecideClaimRequest{
			Decision: "ESCALATED",
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("negative already decided", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		dbMock.ExpectBegin()
		dbMock.ExpectRollback()

		decided := pending()
		decided.Status = reimbursement.StatusApproved

		repo := &fakeClaimRepo{
			UpdateDecisionFn: func(ctx context.Context, id, decision string, rejectionReason *string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error) {
				return 0, nil
			},
			FindByIDFn: func(ctx context.Context, id string) (*reimbursement.Claim, error) {
				return decided, nil
			},
		}

		svc := reimbursement.NewService(db, repo, &fakeOutboxRepo{}, clock.Fixed{T: testNow})
		_, err = svc.Decide(context.Background(), managerActor(), claimID.String(), reimbursement.DecideClaimRequest{
			Decision: reimbursement.StatusApproved,
		})

		assert.ErrorIs(t, err, reimbursementerrors.ErrAlreadyDecided)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestCommentClaim(t *testing.T) {
	claimID := uuid.New()

	t.Run("success on decided claim", func(t *testing.T) {
		comment := "approved per travel policy"
		repo := &fakeClaimRepo{
			UpdateCommentFn: func(ctx context.Context, id, got string) (int64, error) {
				assert.Equal(t, comment, got)
				return 1, nil
			},
			FindByIDFn: func(ctx context.Context, id string) (*reimbursement.Claim, error) {
				return &reimbursement.Claim{
					ID:             claimID,
					OwnerID:        uuid.New(),
					Status:         reimbursement.StatusApproved,
					ManagerComment: &comment,
				}, nil
			},
		}

		svc := reimbursement.NewService(nil, repo, &fakeOutboxRepo{}, clock.Fixed{T: testNow})
		resp, err := svc.Comment(context.Background(), managerActor(), claimID.String(), reimbursement.CommentRequest{
			Comment: comment,
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp.ManagerComment)
		assert.Equal(t, comment, *resp.ManagerComment)
	})

	t.Run("negative employee cannot comment", func(t *testing.T) {
		svc := reimbursement.NewService(nil, &fakeClaimRepo{}, &fakeOutboxRepo{}, clock.Fixed{T: testNow})
		_, err := svc.Comment(context.Background(), employeeActor(), claimID.String(), reimbursement.CommentRequest{
			Comment: "looks fine",
		})

		assert.ErrorIs(t, err, reimbursementerrors.ErrCommentForbidden)
	})

	t.Run("negative blank comment", func(t *testing.T) {
		svc := reimbursement.NewService(nil, &fakeClaimRepo{}, &fakeOutboxRepo{}, clock.Fixed{T: testNow})
		_, err := svc.Comment(context.Background(), managerActor(), claimID.String(), reimbursement.CommentRequest{
			Comment: "  ",
		})

		assert.ErrorIs(t, err, reimbursementerrors.ErrCommentRequired)
	})
}
