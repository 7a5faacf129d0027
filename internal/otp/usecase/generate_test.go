package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/otpsender/internal/otp/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
	"github.com/shandysiswandi/otpsender/internal/pkg/idempotency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.Generate(ctx, GenerateInput{
		UserID:      7,
		OperationID: "login",
		Channel:     "email",
		Destination: "user@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "code-1", out.CodeID)
	assert.Equal(t, "482915", out.Code)
	assert.Equal(t, "email", out.Channel)
	assert.Equal(t, f.clock.now.Add(5*time.Minute), out.ExpiresAt)

	// Default policy was created lazily with a six digit length.
	assert.Equal(t, []int{6}, f.gen.lengths)

	stored := f.repo.code(t, "code-1")
	assert.Equal(t, entity.CodeStatusActive, stored.Status)
	assert.Equal(t, int64(7), stored.UserID)
	assert.Nil(t, stored.UsedAt)

	require.Len(t, f.email.sent, 1)
	assert.Equal(t, "user@example.com", f.email.sent[0])
	assert.Equal(t, []string{"482915"}, f.email.codes)

	require.Len(t, f.pub.issued, 1)
	assert.Equal(t, "code-1", f.pub.issued[0].CodeID)
	assert.Equal(t, "email", f.pub.issued[0].Channel)
}

func TestGenerateNormalizesChannel(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Generate(context.Background(), GenerateInput{
		UserID:      7,
		OperationID: " login ",
		Channel:     "  EMAIL ",
		Destination: "user@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "email", out.Channel)
	assert.Equal(t, "login", f.repo.code(t, out.CodeID).OperationID)
}

func TestGenerateUnknownChannel(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Generate(context.Background(), GenerateInput{
		UserID:      7,
		OperationID: "login",
		Channel:     "pigeon",
		Destination: "user@example.com",
	})
	requireErrCode(t, err, goerror.CodeInvalidInput)

	// Channel resolution happens before storage, nothing was written.
	assert.Empty(t, f.repo.codes)
	assert.Empty(t, f.idem.keys)
}

func TestGenerateUnavailableChannel(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Generate(context.Background(), GenerateInput{
		UserID:      7,
		OperationID: "login",
		Channel:     "sms",
		Destination: "+628123456789",
	})
	requireErrCode(t, err, goerror.CodeConflict)
	assert.Empty(t, f.repo.codes)
}

func TestGenerateDeliveryFailure(t *testing.T) {
	f := newFixture(t)
	f.email.sendErr = assert.AnError

	_, err := f.uc.Generate(context.Background(), GenerateInput{
		UserID:      7,
		OperationID: "login",
		Channel:     "email",
		Destination: "user@example.com",
	})
	requireErrCode(t, err, goerror.CodeInternal)
	assert.Empty(t, f.pub.issued)
}

func TestGenerateInvalidInput(t *testing.T) {
	f := newFixture(t)

	for _, in := range []GenerateInput{
		{UserID: 0, OperationID: "login", Channel: "email", Destination: "a@b.c"},
		{UserID: 7, OperationID: "", Channel: "email", Destination: "a@b.c"},
		{UserID: 7, OperationID: "login", Channel: "e", Destination: "a@b.c"},
		{UserID: 7, OperationID: "login", Channel: "email", Destination: "ab"},
	} {
		_, err := f.uc.Generate(context.Background(), in)
		requireErrCode(t, err, goerror.CodeInvalidInput)
	}
}

func TestGenerateIdempotencyKey(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Generate(context.Background(), GenerateInput{
		UserID:      7,
		OperationID: "login",
		Channel:     "email",
		Destination: "user@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"otp:generate:7:login"}, f.idem.keys)
}

func TestGenerateDuplicateInFlight(t *testing.T) {
	f := newFixture(t)
	f.idem.err = idempotency.ErrAlreadyInProgress

	_, err := f.uc.Generate(context.Background(), GenerateInput{
		UserID:      7,
		OperationID: "login",
		Channel:     "email",
		Destination: "user@example.com",
	})
	requireErrCode(t, err, goerror.CodeTooManyRequest)
}
