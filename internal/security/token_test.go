package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 30*time.Minute, 0)

	token, expiresAt, err := tm.GenerateAccessToken("user-1", "a@b.co", "operator")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestRefreshToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 0, 0)

	token, err := tm.GenerateRefreshToken("user-2", "c@d.co")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
	assert.Equal(t, "user-2", claims.UserID)
}

func TestValidateToken_Expired(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute, 0).(*tokenManager)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := m.GenerateAccessToken("user-1", "", "customer")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager(testSecret, 0, 0).GenerateAccessToken("user-1", "", "customer")
	require.NoError(t, err)

	_, err = NewTokenManager("another-secret-another-secret-xx", 0, 0).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsNoneAlg(t *testing.T) {
	claims := UserClaims{UserID: "user-1", Type: TokenTypeAccess, RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, 0, 0).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := NewTokenManager(testSecret, 0, 0).ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
