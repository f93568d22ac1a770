package service

import (
	"context"
	"errors"
	"testing"

	"github.com/goldcrest/banking/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()
	userSvc, _, _ := newTestServices()

	u, err := userSvc.CreateUser(context.Background(), "alice", "Alice Smith", "s3cret-pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "Alice Smith", u.FullName)
	assert.Empty(t, u.Password, "credential must be redacted on the read path")
}

func TestCreateUser_DuplicateUsernameIgnoresCase(t *testing.T) {
	t.Parallel()
	userSvc, _, _ := newTestServices()

	_, err := userSvc.CreateUser(context.Background(), "bob", "Bob Jones", "s3cret-pw")
	require.NoError(t, err)

	_, err = userSvc.CreateUser(context.Background(), "Bob", "Other Bob", "s3cret-pw")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGetUser(t *testing.T) {
	t.Parallel()
	userSvc, _, _ := newTestServices()

	created, err := userSvc.CreateUser(context.Background(), "carol", "Carol White", "s3cret-pw")
	require.NoError(t, err)

	got, err := userSvc.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Empty(t, got.Password)
}

func TestGetUser_NotFound(t *testing.T) {
	t.Parallel()
	userSvc, _, _ := newTestServices()
	_, err := userSvc.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateUser_PartialFields(t *testing.T) {
	t.Parallel()
	userSvc, _, authSvc := newTestServices()
	ctx := context.Background()

	created, err := userSvc.CreateUser(ctx, "dave", "Dave Green", "original-pw")
	require.NoError(t, err)

	// Only the full name changes; old password still valid.
	newName := "David Green"
	updated, err := userSvc.UpdateUser(ctx, created.ID, UserUpdate{FullName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "David Green", updated.FullName)

	_, err = authSvc.Login(ctx, "dave", "original-pw")
	require.NoError(t, err)

	// Only the password changes; it must be re-hashed and usable.
	newPassword := "updated-pw"
	_, err = userSvc.UpdateUser(ctx, created.ID, UserUpdate{Password: &newPassword})
	require.NoError(t, err)

	_, err = authSvc.Login(ctx, "dave", "updated-pw")
	require.NoError(t, err)
	_, err = authSvc.Login(ctx, "dave", "original-pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateUser_NotFound(t *testing.T) {
	t.Parallel()
	userSvc, _, _ := newTestServices()
	name := "Nobody"
	_, err := userSvc.UpdateUser(context.Background(), uuid.New(), UserUpdate{FullName: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteUser_BlockedByAccounts(t *testing.T) {
	t.Parallel()
	userSvc, accountSvc, _ := newTestServices()
	ctx := context.Background()

	u, err := userSvc.CreateUser(ctx, "erin", "Erin Black", "s3cret-pw")
	require.NoError(t, err)
	a, err := accountSvc.CreateAccount(ctx, u.ID, "checking")
	require.NoError(t, err)

	err = userSvc.DeleteUser(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, accountSvc.DeleteAccount(ctx, u.ID, a.ID))
	require.NoError(t, userSvc.DeleteUser(ctx, u.ID))

	_, err = userSvc.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteUser_NotFound(t *testing.T) {
	t.Parallel()
	userSvc, _, _ := newTestServices()
	err := userSvc.DeleteUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateUser_UoWError(t *testing.T) {
	t.Parallel()
	uow := &MockUnitOfWork{}
	uow.On("Do", mock.Anything, mock.Anything).Return(errors.New("db down"))
	userSvc := NewUserService(uow, testLogger())

	_, err := userSvc.CreateUser(context.Background(), "frank", "Frank Grey", "s3cret-pw")
	assert.Error(t, err)
	uow.AssertExpectations(t)
}
