package service

import (
	"context"
	"testing"

	"github.com/goldcrest/banking/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Parallel()
	userSvc, _, authSvc := newTestServices()
	ctx := context.Background()

	created, err := userSvc.CreateUser(ctx, "alice", "Alice Smith", "s3cret-pw")
	require.NoError(t, err)

	u, err := authSvc.Login(ctx, "alice", "s3cret-pw")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Empty(t, u.Password, "login must not expose the credential hash")
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	userSvc, _, authSvc := newTestServices()
	ctx := context.Background()

	_, err := userSvc.CreateUser(ctx, "bob", "Bob Jones", "s3cret-pw")
	require.NoError(t, err)

	_, err = authSvc.Login(ctx, "bob", "wrong-pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()
	_, _, authSvc := newTestServices()

	_, err := authSvc.Login(context.Background(), "ghost", "whatever")
	// Indistinguishable from a wrong password.
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestToken_RoundTrip(t *testing.T) {
	t.Parallel()
	userSvc, _, authSvc := newTestServices()
	ctx := context.Background()

	u, err := userSvc.CreateUser(ctx, "carol", "Carol White", "s3cret-pw")
	require.NoError(t, err)

	raw, err := authSvc.GenerateToken(u)
	require.NoError(t, err)

	token, err := authSvc.ParseToken(raw)
	require.NoError(t, err)
	require.True(t, token.Valid)

	subject, err := authSvc.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, subject)
}

func TestParseToken_BadSignature(t *testing.T) {
	t.Parallel()
	userSvc, _, authSvc := newTestServices()
	ctx := context.Background()

	u, err := userSvc.CreateUser(ctx, "dave", "Dave Green", "s3cret-pw")
	require.NoError(t, err)

	otherCfg := testJwtConfig()
	otherCfg.Secret = "a-different-secret"
	other := NewAuthService(nil, otherCfg, testLogger())
	raw, err := other.GenerateToken(u)
	require.NoError(t, err)

	_, err = authSvc.ParseToken(raw)
	assert.Error(t, err)
}
