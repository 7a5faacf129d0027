package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/otpsender/internal/otp/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCode(t *testing.T, f *ucFixture, status entity.CodeStatus, expiresAt time.Time) entity.Code {
	t.Helper()

	code := entity.Code{
		ID:          "seed-1",
		UserID:      7,
		Value:       "482915",
		OperationID: "login",
		Status:      status,
		CreatedAt:   f.clock.now.Add(-time.Minute),
		ExpiresAt:   expiresAt,
	}
	require.NoError(t, f.repo.CreateCode(context.Background(), code))

	return code
}

func TestValidate(t *testing.T) {
	f := newFixture(t)
	seedCode(t, f, entity.CodeStatusActive, f.clock.now.Add(time.Minute))

	out, err := f.uc.Validate(context.Background(), ValidateInput{
		UserID:      7,
		OperationID: "login",
		Code:        "482915",
	})
	require.NoError(t, err)
	assert.True(t, out.Valid)

	stored := f.repo.code(t, "seed-1")
	assert.Equal(t, entity.CodeStatusUsed, stored.Status)
	require.NotNil(t, stored.UsedAt)
	assert.Equal(t, f.clock.now, *stored.UsedAt)

	require.Len(t, f.pub.consumed, 1)
	assert.Equal(t, "seed-1", f.pub.consumed[0].CodeID)
}

func TestValidateWrongCode(t *testing.T) {
	f := newFixture(t)
	seedCode(t, f, entity.CodeStatusActive, f.clock.now.Add(time.Minute))

	out, err := f.uc.Validate(context.Background(), ValidateInput{
		UserID:      7,
		OperationID: "login",
		Code:        "000000",
	})
	require.NoError(t, err)
	assert.False(t, out.Valid)

	// The stored code is untouched and can still be consumed.
	assert.Equal(t, entity.CodeStatusActive, f.repo.code(t, "seed-1").Status)
	assert.Empty(t, f.pub.consumed)
}

func TestValidateSecondAttemptFails(t *testing.T) {
	f := newFixture(t)
	seedCode(t, f, entity.CodeStatusActive, f.clock.now.Add(time.Minute))

	in := ValidateInput{UserID: 7, OperationID: "login", Code: "482915"}

	out, err := f.uc.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, out.Valid)

	out, err = f.uc.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, out.Valid)

	assert.Len(t, f.pub.consumed, 1)
}

func TestValidateExpiredCode(t *testing.T) {
	f := newFixture(t)
	seedCode(t, f, entity.CodeStatusActive, f.clock.now.Add(-time.Second))

	out, err := f.uc.Validate(context.Background(), ValidateInput{
		UserID:      7,
		OperationID: "login",
		Code:        "482915",
	})
	require.NoError(t, err)
	assert.False(t, out.Valid)

	// Lazy expiry flipped the overdue record.
	assert.Equal(t, entity.CodeStatusExpired, f.repo.code(t, "seed-1").Status)
	assert.Empty(t, f.pub.consumed)
}

func TestValidateExactExpiryBoundary(t *testing.T) {
	f := newFixture(t)
	// A code whose expiry equals the current instant is already expired.
	seedCode(t, f, entity.CodeStatusActive, f.clock.now)

	out, err := f.uc.Validate(context.Background(), ValidateInput{
		UserID:      7,
		OperationID: "login",
		Code:        "482915",
	})
	require.NoError(t, err)
	assert.False(t, out.Valid)
}

func TestValidateInvalidInput(t *testing.T) {
	f := newFixture(t)

	for _, in := range []ValidateInput{
		{UserID: 0, OperationID: "login", Code: "482915"},
		{UserID: 7, OperationID: "", Code: "482915"},
		{UserID: 7, OperationID: "login", Code: "12a456"},
		{UserID: 7, OperationID: "login", Code: "123"},
		{UserID: 7, OperationID: "login", Code: "123456789"},
	} {
		_, err := f.uc.Validate(context.Background(), in)
		requireErrCode(t, err, goerror.CodeInvalidInput)
	}
}

func TestValidateConcurrentSingleWinner(t *testing.T) {
	f := newFixture(t)
	seedCode(t, f, entity.CodeStatusActive, f.clock.now.Add(time.Minute))

	const attempts = 8
	results := make([]bool, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()

			out, err := f.uc.Validate(context.Background(), ValidateInput{
				UserID:      7,
				OperationID: "login",
				Code:        "482915",
			})
			if assert.NoError(t, err) {
				results[i] = out.Valid
			}
		}()
	}
	wg.Wait()

	winners := 0
	for _, won := range results {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
	assert.Len(t, f.pub.consumed, 1)
}
