package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 0)

	token, expiresAt, err := tm.Issue("user-1", "a@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestVerifyDistinguishesExpiredFromInvalid(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tm := NewTokenManager("secret", time.Hour)
	tm.now = func() time.Time { return issuedAt }

	token, _, err := tm.Issue("user-1", "a@example.com")
	require.NoError(t, err)

	tm.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)

	other := NewTokenManager("other-secret", time.Hour)
	other.now = func() time.Time { return issuedAt }
	forged, _, err := other.Issue("user-1", "a@example.com")
	require.NoError(t, err)

	tm.now = func() time.Time { return issuedAt }
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong secret", token: forged},
		{name: "alg none", token: unsigned},
		{name: "truncated", token: token[:len(token)-4]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.Verify(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
			assert.NotErrorIs(t, err, ErrTokenExpired)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}
