package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, f *ucFixture, email, password string) int64 {
	t.Helper()

	out, err := f.uc.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: password,
		FullName: "Jane Doe",
	})
	require.NoError(t, err)

	return out.UserID
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	id := registerUser(t, f, "jane@example.com", "correct horse battery")

	out, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "Jane@Example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "token:1:jane@example.com:user", out.AccessToken)
	assert.Equal(t, int64(1), id)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	registerUser(t, f, "jane@example.com", "correct horse battery")

	_, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "jane@example.com",
		Password: "wrong password here",
	})
	requireErrCode(t, err, goerror.CodeUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newFixture(t)

	// Unknown account and wrong password answer identically.
	_, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "correct horse battery",
	})
	requireErrCode(t, err, goerror.CodeUnauthorized)
}

func TestLoginDeletedAccount(t *testing.T) {
	f := newFixture(t)
	id := registerUser(t, f, "jane@example.com", "correct horse battery")
	require.NoError(t, f.repo.MarkUserDeleted(context.Background(), id))

	_, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "jane@example.com",
		Password: "correct horse battery",
	})
	requireErrCode(t, err, goerror.CodeUnauthorized)
}

func TestLoginInvalidInput(t *testing.T) {
	f := newFixture(t)

	for _, in := range []LoginInput{
		{Email: "", Password: "correct horse battery"},
		{Email: "not-an-email", Password: "correct horse battery"},
		{Email: "jane@example.com", Password: ""},
	} {
		_, err := f.uc.Login(context.Background(), in)
		requireErrCode(t, err, goerror.CodeInvalidInput)
	}
}
