package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"time"

	autherrors "go-portal/internal/auth/errors"
	"go-portal/internal/employee"
	"go-portal/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, repo: repo, employeeRepo: employeeRepo, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	emp, err := s.employeeRepo.FindByID(ctx, user.EmployeeID.String())
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	accessToken, _ := s.generateToken(user, emp, accessTokenTTL)
	refreshToken, _ := s.generateToken(user, emp, refreshTokenTTL)

	s.logger.Info("login success", zap.String("user_id", user.ID.String()))

	return accessToken, refreshToken, mapToAuthResponse(user, emp), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}
	emp, err := s.employeeRepo.FindByID(ctx, user.EmployeeID.String())
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	newAccess, _ := s.generateToken(user, emp, accessTokenTTL)
	newRefresh, _ := s.generateToken(user, emp, refreshTokenTTL)

	return newAccess, newRefresh, mapToAuthResponse(user, emp), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, err
	}

	emp, err := s.employeeRepo.FindByID(ctx, user.EmployeeID.String())
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := mapToAuthResponse(user, emp)
	return &resp, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	role := req.Role
	if role == "" {
		role = rbac.RoleEmployee
	}
	if role != rbac.RoleEmployee && role != rbac.RoleManager {
		return AuthResponse{}, autherrors.ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AuthResponse{}, err
	}
	defer tx.Rollback()

	var reportingTo *uuid.UUID
	if req.ReportingTo != nil && *req.ReportingTo != "" {
		id, err := uuid.Parse(*req.ReportingTo)
		if err != nil {
			return AuthResponse{}, autherrors.ErrInvalidRole
		}
		reportingTo = &id
	}

	emp := &employee.Employee{
		ID:          uuid.New(),
		FullName:    req.FullName,
		Email:       strings.ToLower(req.Email),
		Role:        role,
		ReportingTo: reportingTo,
	}
	if err := s.employeeRepo.WithTx(tx).Create(ctx, emp); err != nil {
		return AuthResponse{}, mapRegisterError(err)
	}

	user := &User{
		ID:         uuid.New(),
		EmployeeID: emp.ID,
		Email:      strings.ToLower(req.Email),
		Password:   string(hashed),
	}
	if err := s.repo.WithTx(tx).Create(ctx, user); err != nil {
		return AuthResponse{}, mapRegisterError(err)
	}

	if err := tx.Commit(); err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("register success",
		zap.String("user_id", user.ID.String()),
		zap.String("employee_id", emp.ID.String()),
		zap.String("role", role),
	)

	return mapToAuthResponse(user, emp), nil
}

func (s *service) generateToken(user *User, emp *employee.Employee, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"employee_id": emp.ID.String(),
		"role":        emp.Role,
		"name":        emp.FullName,
		"exp":         time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapRegisterError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return autherrors.ErrEmailAlreadyUsed
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return autherrors.ErrEmailAlreadyUsed
	}
	return err
}

func mapToAuthResponse(user *User, emp *employee.Employee) AuthResponse {
	return AuthResponse{
		ID:         user.ID.String(),
		EmployeeID: emp.ID.String(),
		Email:      user.Email,
		Name:       emp.FullName,
		Role:       emp.Role,
	}
}
