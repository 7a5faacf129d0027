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

func TestConfigGetCreatesDefaultOnce(t *testing.T) {
	f := newFixture(t)
	ctx := adminContext()

	out, err := f.uc.ConfigGet(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCodeLength, out.CodeLength)
	assert.Equal(t, entity.DefaultTTLSeconds, out.TTLSeconds)

	out, err = f.uc.ConfigGet(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCodeLength, out.CodeLength)

	// The second read reused the row instead of seeding another one.
	assert.Len(t, f.repo.configs, 1)
}

func TestConfigConcurrentFirstAccessSeedsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := adminContext()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			out, err := f.uc.ConfigGet(ctx)
			if assert.NoError(t, err) {
				assert.Equal(t, entity.DefaultCodeLength, out.CodeLength)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, f.repo.configs, 1)
}

func TestConfigGetEarliestRowWins(t *testing.T) {
	f := newFixture(t)
	ctx := adminContext()

	require.NoError(t, f.repo.CreateConfig(ctx, entity.Config{
		CodeLength: 8, TTLSeconds: 60,
		CreatedAt: f.clock.now.Add(-2 * time.Hour), UpdatedAt: f.clock.now,
	}))
	require.NoError(t, f.repo.CreateConfig(ctx, entity.Config{
		CodeLength: 4, TTLSeconds: 30,
		CreatedAt: f.clock.now.Add(-time.Hour), UpdatedAt: f.clock.now,
	}))

	out, err := f.uc.ConfigGet(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, out.CodeLength)
	assert.Equal(t, 60, out.TTLSeconds)
}

func TestConfigGetRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.ConfigGet(context.Background())
	requireErrCode(t, err, goerror.CodeUnauthorized)

	_, err = f.uc.ConfigGet(userContext())
	requireErrCode(t, err, goerror.CodeForbidden)
}

func TestConfigUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := adminContext()

	out, err := f.uc.ConfigUpdate(ctx, ConfigUpdateInput{CodeLength: 8, TTLSeconds: 600})
	require.NoError(t, err)
	assert.Equal(t, 8, out.CodeLength)
	assert.Equal(t, 600, out.TTLSeconds)

	got, err := f.uc.ConfigGet(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, got.CodeLength)
	assert.Equal(t, 600, got.TTLSeconds)
}

func TestConfigUpdateBounds(t *testing.T) {
	f := newFixture(t)
	ctx := adminContext()

	tests := []struct {
		name    string
		input   ConfigUpdateInput
		wantErr bool
	}{
		{name: "LengthBelowMin", input: ConfigUpdateInput{CodeLength: 3, TTLSeconds: 300}, wantErr: true},
		{name: "LengthAboveMax", input: ConfigUpdateInput{CodeLength: 9, TTLSeconds: 300}, wantErr: true},
		{name: "TTLBelowMin", input: ConfigUpdateInput{CodeLength: 6, TTLSeconds: 10}, wantErr: true},
		{name: "TTLAboveMax", input: ConfigUpdateInput{CodeLength: 6, TTLSeconds: 3601}, wantErr: true},
		{name: "MinEdges", input: ConfigUpdateInput{CodeLength: 4, TTLSeconds: 30}},
		{name: "MaxEdges", input: ConfigUpdateInput{CodeLength: 8, TTLSeconds: 3600}},
		{name: "Defaults", input: ConfigUpdateInput{CodeLength: 6, TTLSeconds: 300}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.ConfigUpdate(ctx, tc.input)
			if tc.wantErr {
				requireErrCode(t, err, goerror.CodeInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfigUpdateRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.ConfigUpdate(userContext(), ConfigUpdateInput{CodeLength: 6, TTLSeconds: 300})
	requireErrCode(t, err, goerror.CodeForbidden)
}

func TestConfigUpdateAppliesToNextGenerate(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.ConfigUpdate(adminContext(), ConfigUpdateInput{CodeLength: 8, TTLSeconds: 60})
	require.NoError(t, err)

	out, err := f.uc.Generate(context.Background(), GenerateInput{
		UserID:      7,
		OperationID: "login",
		Channel:     "email",
		Destination: "user@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, []int{8}, f.gen.lengths)
	assert.Equal(t, f.clock.now.Add(time.Minute), out.ExpiresAt)
}
