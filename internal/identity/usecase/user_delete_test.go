package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDelete(t *testing.T) {
	f := newFixture(t)
	id := registerUser(t, f, "jane@example.com", "correct horse battery")

	err := f.uc.UserDelete(adminContext(99), UserDeleteInput{UserID: id})
	require.NoError(t, err)

	_, err = f.repo.GetUserByID(context.Background(), id)
	require.ErrorIs(t, err, goerror.ErrNotFound)

	// The account's verification codes went with it.
	assert.Equal(t, []int64{id}, f.purger.purged)
}

func TestUserDeleteSelf(t *testing.T) {
	f := newFixture(t)
	id := registerUser(t, f, "jane@example.com", "correct horse battery")

	err := f.uc.UserDelete(adminContext(id), UserDeleteInput{UserID: id})
	requireErrCode(t, err, goerror.CodeConflict)
}

func TestUserDeleteUnknown(t *testing.T) {
	f := newFixture(t)

	err := f.uc.UserDelete(adminContext(99), UserDeleteInput{UserID: 42})
	requireErrCode(t, err, goerror.CodeNotFound)
	assert.Empty(t, f.purger.purged)
}

func TestUserDeletePurgeFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	id := registerUser(t, f, "jane@example.com", "correct horse battery")
	f.purger.err = assert.AnError

	// The deletion itself stands even when the purge fails.
	err := f.uc.UserDelete(adminContext(99), UserDeleteInput{UserID: id})
	require.NoError(t, err)

	_, err = f.repo.GetUserByID(context.Background(), id)
	require.ErrorIs(t, err, goerror.ErrNotFound)
}

func TestUserDeleteRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	id := registerUser(t, f, "jane@example.com", "correct horse battery")

	err := f.uc.UserDelete(context.Background(), UserDeleteInput{UserID: id})
	requireErrCode(t, err, goerror.CodeUnauthorized)
}

func TestUserList(t *testing.T) {
	f := newFixture(t)
	registerUser(t, f, "jane@example.com", "correct horse battery")
	registerUser(t, f, "john@example.com", "correct horse battery")

	out, err := f.uc.UserList(adminContext(99), UserListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)

	out, err = f.uc.UserList(adminContext(99), UserListInput{Search: "john"})
	require.NoError(t, err)
	require.Len(t, out.Users, 1)
	assert.Equal(t, "john@example.com", out.Users[0].Email)
}

func TestUserListRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.UserList(context.Background(), UserListInput{})
	requireErrCode(t, err, goerror.CodeUnauthorized)
}
