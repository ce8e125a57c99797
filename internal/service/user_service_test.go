package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
)

func newUserService(repo *mockUserRepo, auditRepo *mockAuditRepo) *UserService {
	return NewUserService(repo, NewAuditService(auditRepo, zap.NewNop()), nil, zap.NewNop())
}

func TestUserServiceCreateRequiresMaster(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{}}
	auditRepo := &mockAuditRepo{}
	svc := newUserService(repo, auditRepo)

	err := svc.Create(context.Background(), models.CreateUserRequest{Username: "ana", Password: "secret"}, "ana")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPermissionDenied.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
	assert.Empty(t, auditRepo.entries)
}

func TestUserServiceCreateHashesPasswordAndAudits(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{}}
	auditRepo := &mockAuditRepo{}
	svc := newUserService(repo, auditRepo)

	err := svc.Create(context.Background(), models.CreateUserRequest{Username: "ana", Password: "secret"}, "master")
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, "ana", created.Username)
	assert.NotEqual(t, "secret", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret")))

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	assert.Equal(t, models.AuditActionAdd, entry.Action)
	assert.Equal(t, "users", entry.TableName)
	assert.Equal(t, "ana", entry.RecordID)
}

func TestUserServiceCreateValidation(t *testing.T) {
	svc := newUserService(&mockUserRepo{users: map[string]*models.User{}}, &mockAuditRepo{})

	err := svc.Create(context.Background(), models.CreateUserRequest{Username: "ana", Password: "ab"}, "master")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserServiceList(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"master": {Username: "master"},
		"ana":    {Username: "ana"},
	}}
	svc := newUserService(repo, &mockAuditRepo{})

	usernames, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"master", "ana"}, usernames)
}
