package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)

	assert.True(t, VerifyPassword(hashed, "secret123"))
	assert.False(t, VerifyPassword(hashed, "wrong"))
	assert.False(t, VerifyPassword("not-a-hash", "secret123"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	tokenString, err := issuer.NewAccessToken(42, "alice", "alice@test.com")
	require.NoError(t, err)

	claims, err := issuer.ParseAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@test.com", claims.Email)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	other := NewTokenIssuer("different-secret", "refresh-secret", time.Hour, 24*time.Hour)

	tokenString, err := issuer.NewAccessToken(1, "bob", "bob@test.com")
	require.NoError(t, err)

	_, err = other.ParseAccessToken(tokenString)
	assert.Error(t, err)
}

func TestExpiredAccessToken(t *testing.T) {
	// TTL为负，签出来就已经过期
	issuer := NewTokenIssuer("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)

	tokenString, err := issuer.NewAccessToken(1, "carol", "carol@test.com")
	require.NoError(t, err)

	_, err = issuer.ParseAccessToken(tokenString)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	tokenString, err := issuer.NewRefreshToken(7)
	require.NoError(t, err)

	claims, err := issuer.ParseRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
}

// 两种令牌的密钥是隔离的，拿刷新令牌当访问令牌用必须失败
func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	refreshToken, err := issuer.NewRefreshToken(7)
	require.NoError(t, err)
	_, err = issuer.ParseAccessToken(refreshToken)
	assert.Error(t, err)

	accessToken, err := issuer.NewAccessToken(7, "dave", "dave@test.com")
	require.NoError(t, err)
	_, err = issuer.ParseRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	_, err := issuer.ParseAccessToken("garbage")
	assert.Error(t, err)
	_, err = issuer.ParseRefreshToken("")
	assert.Error(t, err)
}
