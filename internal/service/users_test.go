package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/esterlin12/tvplus/internal/apperr"
	"github.com/esterlin12/tvplus/internal/auth"
	"github.com/esterlin12/tvplus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *memUsers, *memAudit) {
	t.Helper()
	users := newMemUsers()
	audit := &memAudit{}
	svc := NewUserService(users, auth.NewTokenIssuer([]byte("test-secret")), 30*time.Minute, audit, nil)
	return svc, users, audit
}

func TestUserService_Register(t *testing.T) {
	svc, users, _ := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.IsSuperUser)
	assert.NotEqual(t, "pw", u.PasswordHash)

	stored, err := users.byIDCopy(u.ID)
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword("pw", stored.PasswordHash))
}

func TestUserService_Register_Conflict(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "pw")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Register(ctx, "bob", "alice@example.com", "pw")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Register(ctx, "Alice", "ALICE@example.com", "pw")
	assert.NoError(t, err, "uniqueness is case-sensitive")
}

func TestUserService_Register_PasswordTooLong(t *testing.T) {
	svc, users, _ := newUserService(t)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", strings.Repeat("é", 40))
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "password")

	list, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUserService_LoginAndAuthenticate(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)
	assert.Equal(t, "alice", res.User.Username)

	claims, err := svc.tokens.Decode(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown user and wrong password look the same")
}

func TestUserService_PromoteToSuper(t *testing.T) {
	svc, _, audit := newUserService(t)
	ctx := context.Background()
	admin := &models.User{ID: "admin", IsSuperUser: true}
	u, err := svc.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.PromoteToSuper(ctx, admin, u.ID))
	got, err := svc.ByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, got.IsSuperUser)
	require.Len(t, audit.calls, 1)
	assert.Equal(t, auditCall{"admin", "promote", models.ResourceUser, u.ID}, audit.calls[0])

	err = svc.PromoteToSuper(ctx, admin, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUserService_ListAll_NewestFirst(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Register(ctx, name, name+"@example.com", "pw")
		require.NoError(t, err)
	}

	list, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Username)
	assert.Equal(t, "a", list[2].Username)
}
