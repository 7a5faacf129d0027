package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/otpsender/internal/otp/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCodes(t *testing.T, f *ucFixture, specs map[string]time.Time) {
	t.Helper()

	for id, expiresAt := range specs {
		require.NoError(t, f.repo.CreateCode(context.Background(), entity.Code{
			ID:          id,
			UserID:      7,
			Value:       "482915",
			OperationID: "login",
			Status:      entity.CodeStatusActive,
			CreatedAt:   f.clock.now.Add(-time.Hour),
			ExpiresAt:   expiresAt,
		}))
	}
}

func TestSweep(t *testing.T) {
	f := newFixture(t)
	seedCodes(t, f, map[string]time.Time{
		"overdue-1": f.clock.now.Add(-time.Minute),
		"overdue-2": f.clock.now.Add(-time.Second),
		"fresh-1":   f.clock.now.Add(time.Minute),
	})

	res, err := f.uc.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Scanned)
	assert.Equal(t, 2, res.Expired)
	assert.Equal(t, 0, res.Failed)

	assert.Equal(t, entity.CodeStatusExpired, f.repo.code(t, "overdue-1").Status)
	assert.Equal(t, entity.CodeStatusExpired, f.repo.code(t, "overdue-2").Status)
	assert.Equal(t, entity.CodeStatusActive, f.repo.code(t, "fresh-1").Status)

	require.Len(t, f.pub.sweeps, 1)
	assert.Equal(t, 2, f.pub.sweeps[0].Expired)
	assert.Equal(t, f.clock.now, f.pub.sweeps[0].StartedAt)
}

func TestSweepRerunFindsNothing(t *testing.T) {
	f := newFixture(t)
	seedCodes(t, f, map[string]time.Time{
		"overdue-1": f.clock.now.Add(-time.Minute),
	})

	res, err := f.uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Expired)

	// Already expired records are not picked up again.
	res, err = f.uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Scanned)
	assert.Equal(t, 0, res.Expired)
}

func TestSweepContinuesPastFailure(t *testing.T) {
	f := newFixture(t)
	seedCodes(t, f, map[string]time.Time{
		"overdue-1": f.clock.now.Add(-time.Minute),
		"overdue-2": f.clock.now.Add(-time.Minute),
		"overdue-3": f.clock.now.Add(-time.Minute),
	})
	f.repo.expireErrIDs["overdue-2"] = assert.AnError

	res, err := f.uc.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Scanned)
	assert.Equal(t, 2, res.Expired)
	assert.Equal(t, 1, res.Failed)

	// The failed record stays active for the next pass.
	assert.Equal(t, entity.CodeStatusActive, f.repo.code(t, "overdue-2").Status)
}

func TestSweepEmpty(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Scanned)
	require.Len(t, f.pub.sweeps, 1)
}
