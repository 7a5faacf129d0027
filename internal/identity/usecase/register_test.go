package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/otpsender/internal/identity/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Register(context.Background(), RegisterInput{
		Email:    " Jane.Doe@Example.COM ",
		Password: "correct horse battery",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	user, err := f.repo.GetUserByID(context.Background(), out.UserID)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", user.Email)
	assert.Equal(t, "Jane Doe", user.FullName)
	assert.Equal(t, "user", user.Role)
	assert.Equal(t, entity.UserStatusActive, user.Status)
	assert.Equal(t, f.clock.now, user.CreatedAt)

	// Only the hash is stored.
	assert.Equal(t, "h:correct horse battery", f.repo.passwords[out.UserID])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)

	in := RegisterInput{
		Email:    "jane.doe@example.com",
		Password: "correct horse battery",
		FullName: "Jane Doe",
	}

	_, err := f.uc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = f.uc.Register(context.Background(), in)
	requireErrCode(t, err, goerror.CodeConflict)
}

func TestRegisterInvalidInput(t *testing.T) {
	f := newFixture(t)

	for _, in := range []RegisterInput{
		{Email: "not-an-email", Password: "correct horse battery", FullName: "Jane Doe"},
		{Email: "jane@example.com", Password: "short", FullName: "Jane Doe"},
		{Email: "jane@example.com", Password: "correct horse battery", FullName: "J4n3 D03!"},
		{Email: "jane@example.com", Password: "correct horse battery", FullName: "Jane"},
	} {
		_, err := f.uc.Register(context.Background(), in)
		requireErrCode(t, err, goerror.CodeInvalidInput)
	}
}
