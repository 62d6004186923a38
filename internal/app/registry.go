package app

import (
	"database/sql"
	"path/filepath"

	"go-portal/internal/approval"
	"go-portal/internal/auth"
	"go-portal/internal/employee"
	"go-portal/internal/leave"
	"go-portal/internal/leavetype"
	"go-portal/internal/messaging/kafka"
	"go-portal/internal/middleware"
	"go-portal/internal/notification"
	"go-portal/internal/payslip"
	"go-portal/internal/rbac"
	"go-portal/internal/reimbursement"
	"go-portal/internal/shared/clock"
	"go-portal/internal/task"
	"go-portal/internal/trip"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	clk := clock.Real{}

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	claimRepo := reimbursement.NewRepository(gormDB)
	tripRepo := trip.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer(
		filepath.Join("internal", "rbac", "model.conf"),
		filepath.Join("internal", "rbac", "policy.csv"),
	)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	authService := auth.NewService(db, authRepo, employeeRepo)
	employeeService := employee.NewService(db, employeeRepo, rdb)
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	leaveService := leave.NewService(db, leaveRepo, leaveTypeRepo, outboxRepo, clk)
	claimService := reimbursement.NewService(db, claimRepo, outboxRepo, clk)
	tripService := trip.NewService(tripRepo, clk)
	approvalService := approval.NewService(leaveRepo, claimRepo, employeeRepo, rdb)
	payslipService := payslip.NewService(payslipRepo, employeeRepo, clk)
	taskService := task.NewService(taskRepo)
	notificationService := notification.NewService(notificationRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	claimHandler := reimbursement.NewHandlerWithRedis(claimService, rdb)
	tripHandler := trip.NewHandlerWithRedis(tripService, rdb)
	approvalHandler := approval.NewHandler(approvalService)
	payslipHandler := payslip.NewHandlerWithRedis(payslipService, rdb)
	taskHandler := task.NewHandler(taskService)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
		middleware.Idempotency(rdb),
	)
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		reimbursement.RegisterRoutes(api, claimHandler, rbacService)
		trip.RegisterRoutes(api, tripHandler, rbacService)
		approval.RegisterRoutes(api, approvalHandler, rbacService)
		payslip.RegisterRoutes(api, payslipHandler, rbacService)
		task.RegisterRoutes(api, taskHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler)
	}

	return nil
}
