package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/otpsender/internal/otp/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedListCodes(t *testing.T, f *ucFixture) {
	t.Helper()

	for _, c := range []entity.Code{
		{ID: "a-1", UserID: 1, Value: "111111", OperationID: "login", Status: entity.CodeStatusActive},
		{ID: "a-2", UserID: 1, Value: "222222", OperationID: "reset", Status: entity.CodeStatusUsed},
		{ID: "b-1", UserID: 2, Value: "333333", OperationID: "login", Status: entity.CodeStatusExpired},
	} {
		c.CreatedAt = f.clock.now.Add(-time.Minute)
		c.ExpiresAt = f.clock.now.Add(time.Minute)
		require.NoError(t, f.repo.CreateCode(context.Background(), c))
	}
}

func TestCodeList(t *testing.T) {
	f := newFixture(t)
	seedListCodes(t, f)

	out, err := f.uc.CodeList(adminContext(), CodeListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
	assert.Len(t, out.Codes, 3)
}

func TestCodeListFilterByUser(t *testing.T) {
	f := newFixture(t)
	seedListCodes(t, f)

	out, err := f.uc.CodeList(adminContext(), CodeListInput{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)
}

func TestCodeListFilterByStatus(t *testing.T) {
	f := newFixture(t)
	seedListCodes(t, f)

	out, err := f.uc.CodeList(adminContext(), CodeListInput{Status: "used"})
	require.NoError(t, err)
	require.Len(t, out.Codes, 1)
	assert.Equal(t, "a-2", out.Codes[0].ID)
}

func TestCodeListUnknownStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CodeList(adminContext(), CodeListInput{Status: "pending"})
	requireErrCode(t, err, goerror.CodeInvalidInput)
}

func TestCodeListPagination(t *testing.T) {
	f := newFixture(t)
	seedListCodes(t, f)

	out, err := f.uc.CodeList(adminContext(), CodeListInput{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
	assert.Len(t, out.Codes, 2)

	out, err = f.uc.CodeList(adminContext(), CodeListInput{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, out.Codes, 1)
}

func TestCodeListRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CodeList(context.Background(), CodeListInput{})
	requireErrCode(t, err, goerror.CodeUnauthorized)

	_, err = f.uc.CodeList(userContext(), CodeListInput{})
	requireErrCode(t, err, goerror.CodeForbidden)
}

func TestPurgeUserCodes(t *testing.T) {
	f := newFixture(t)
	seedListCodes(t, f)

	deleted, err := f.uc.PurgeUserCodes(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	out, err := f.uc.CodeList(adminContext(), CodeListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
}

func TestPurgeUserCodesInvalidUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.PurgeUserCodes(context.Background(), 0)
	requireErrCode(t, err, goerror.CodeInvalidInput)
}
