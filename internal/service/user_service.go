package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type userRepository interface {
	ListUsernames(ctx context.Context) ([]string, error)
	Create(ctx context.Context, user *models.User) error
}

// UserService manages operator accounts. Account creation is master-only.
type UserService struct {
	repo      userRepository
	audit     *AuditService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userRepository, audit *AuditService, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// List returns every registered username.
func (s *UserService) List(ctx context.Context) ([]string, error) {
	usernames, err := s.repo.ListUsernames(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return usernames, nil
}

// Create registers a new operator. Master-only; the password is stored as a
// bcrypt hash and the addition is audited with the username as record id.
func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest, actor string) error {
	if !models.IsMaster(actor) {
		return appErrors.Clone(appErrors.ErrPermissionDenied, "only the master user can create accounts")
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{Username: req.Username, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return appErrors.Clone(appErrors.ErrConflict, "username already exists")
		}
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to create user")
	}

	if err := s.audit.Record(ctx, actor, models.AuditActionAdd, "users", req.Username); err != nil {
		s.logger.Warn("audit append failed after user create", zap.String("username", req.Username), zap.Error(err))
	}
	return nil
}
