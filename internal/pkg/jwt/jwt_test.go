package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct{ now time.Time }

func (c testClock) Now() time.Time { return c.now }

type testUUID struct{}

func (testUUID) Generate() string { return "jti-1" }

func newTestJWT(t *testing.T, clk testClock) *Symmetric {
	t.Helper()

	j, err := NewHS512(Config{
		Secret:     []byte(strings.Repeat("s", 64)),
		Issuer:     "otpsender",
		Audiences:  []string{"otpsender"},
		TTLMinutes: time.Hour,
		Clock:      clk,
		UUID:       testUUID{},
	})
	require.NoError(t, err)

	return j
}

func TestSymmetricRoundTrip(t *testing.T) {
	j := newTestJWT(t, testClock{now: time.Now()})

	token, err := j.Generate(42, "jane@example.com", RoleAdmin)
	require.NoError(t, err)

	claims, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.UserEmail)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.True(t, claims.IsAdmin())
}

func TestSymmetricRoleUser(t *testing.T) {
	j := newTestJWT(t, testClock{now: time.Now()})

	token, err := j.Generate(7, "john@example.com", "user")
	require.NoError(t, err)

	claims, err := j.Verify(token)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin())
}

func TestSymmetricExpired(t *testing.T) {
	j := newTestJWT(t, testClock{now: time.Now().Add(-2 * time.Hour)})

	token, err := j.Generate(42, "jane@example.com", "user")
	require.NoError(t, err)

	_, err = j.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSymmetricTampered(t *testing.T) {
	j := newTestJWT(t, testClock{now: time.Now()})

	token, err := j.Generate(42, "jane@example.com", "user")
	require.NoError(t, err)

	_, err = j.Verify(token + "x")
	assert.Error(t, err)
}

func TestNewHS512ShortSecret(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("too-short")})
	assert.ErrorIs(t, err, ErrSigningKeyTooShort)
}

func TestAuthContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetAuth(ctx))

	ctx = SetAuth(ctx, Claims{UserID: 42, Role: RoleAdmin})
	clm := GetAuth(ctx)
	require.NotNil(t, clm)
	assert.Equal(t, int64(42), clm.UserID)
	assert.True(t, clm.IsAdmin())
}
