package leave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-portal/internal/leave"
	"go-portal/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveService struct {
	CreateFn      func(ctx context.Context, actor contextutil.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	GetAllFn      func(ctx context.Context, actor contextutil.Actor, status string) ([]leave.LeaveResponse, error)
	GetByIDFn     func(ctx context.Context, actor contextutil.Actor, id string) (leave.LeaveResponse, error)
	GetBalancesFn func(ctx context.Context, actor contextutil.Actor) ([]leave.BalanceResponse, error)
	DecideFn      func(ctx context.Context, actor contextutil.Actor, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, actor contextutil.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.CreateFn(ctx, actor, req)
}

func (f *fakeLeaveService) GetAll(ctx context.Context, actor contextutil.Actor, status string) ([]leave.LeaveResponse, error) {
	return f.GetAllFn(ctx, actor, status)
}

func (f *fakeLeaveService) GetByID(ctx context.Context, actor contextutil.Actor, id string) (leave.LeaveResponse, error) {
	return f.GetByIDFn(ctx, actor, id)
}

func (f *fakeLeaveService) GetBalances(ctx context.Context, actor contextutil.Actor) ([]leave.BalanceResponse, error) {
	return f.GetBalancesFn(ctx, actor)
}

func (f *fakeLeaveService) Decide(ctx context.Context, actor contextutil.Actor, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return f.DecideFn(ctx, actor, id, req)
}

func createBody() gin.H {
	return gin.H{
		"leave_type_name": "Casual",
		"start_date":      "2026-08-25",
		"end_date":        "2026-08-26",
		"reason":          "family matters",
	}
}

func newCreateContext(t *testing.T, body gin.H) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestCreateLeaveHandlerIdempotency(t *testing.T) {
	const (
		cacheKey = "idemp:/api/v1/leaves:user-1:key-1"
		lockKey  = cacheKey + ":lock"
	)

	t.Run("success fills replay cache and releases lock", func(t *testing.T) {
		rdb, rdbMock := redismock.NewClientMock()
		rdbMock.Regexp().ExpectSet(cacheKey, `.*`, 24*time.Hour).SetVal("OK")
		rdbMock.ExpectDel(lockKey).SetVal(1)

		svc := &fakeLeaveService{
			CreateFn: func(ctx context.Context, actor contextutil.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{ID: "leave-1", Status: leave.StatusPending}, nil
			},
		}
		h := leave.NewHandlerWithRedis(svc, rdb)

		c, w := newCreateContext(t, createBody())
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, rdbMock.ExpectationsWereMet())
	})

	t.Run("failure releases lock without caching", func(t *testing.T) {
		rdb, rdbMock := redismock.NewClientMock()
		rdbMock.ExpectDel(lockKey).SetVal(1)

		svc := &fakeLeaveService{
			CreateFn: func(ctx context.Context, actor contextutil.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, errors.New("db down")
			},
		}
		h := leave.NewHandlerWithRedis(svc, rdb)

		c, w := newCreateContext(t, createBody())
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NoError(t, rdbMock.ExpectationsWereMet())
	})

	t.Run("no idempotency key skips redis entirely", func(t *testing.T) {
		rdb, rdbMock := redismock.NewClientMock()

		svc := &fakeLeaveService{
			CreateFn: func(ctx context.Context, actor contextutil.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{ID: "leave-2", Status: leave.StatusPending}, nil
			},
		}
		h := leave.NewHandlerWithRedis(svc, rdb)

		c, w := newCreateContext(t, createBody())

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, rdbMock.ExpectationsWereMet())
	})
}
