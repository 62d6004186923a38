package rbac_test

import (
	"testing"

	"go-portal/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) rbac.Service {
	t.Helper()

	enforcer, err := rbac.NewEnforcer("model.conf", "policy.csv")
	assert.NoError(t, err)
	return rbac.NewService(enforcer)
}

func TestService_Enforce(t *testing.T) {
	svc := newTestService(t)

	t.Run("manager can decide leaves", func(t *testing.T) {
		allowed, err := svc.Enforce(rbac.RoleManager, "leave", "decide")
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("manager can comment reimbursements", func(t *testing.T) {
		allowed, err := svc.Enforce(rbac.RoleManager, "reimbursement", "comment")
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("manager inherits employee permissions", func(t *testing.T) {
		allowed, err := svc.Enforce(rbac.RoleManager, "leave", "create")
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("employee cannot decide", func(t *testing.T) {
		allowed, err := svc.Enforce(rbac.RoleEmployee, "leave", "decide")
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("employee cannot read pending approvals", func(t *testing.T) {
		allowed, err := svc.Enforce(rbac.RoleEmployee, "approval", "read")
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("unknown role denied", func(t *testing.T) {
		allowed, err := svc.Enforce("CONTRACTOR", "leave", "read")
		assert.NoError(t, err)
		assert.False(t, allowed)
	})
}
