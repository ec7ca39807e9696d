package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uppi/backend/internal/domain/user"
)

// TestGenerateAndValidate tests the token round trip
func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", "uppi", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	pair, err := m.GenerateTokenPair(userID, user.TypeDriver)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := m.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, user.TypeDriver, claims.UserType)
	assert.Equal(t, "uppi", claims.Issuer)
}

// TestValidateToken_WrongSecret tests rejection of foreign signatures
func TestValidateToken_WrongSecret(t *testing.T) {
	m := NewManager("secret-a", "uppi", time.Minute, time.Hour)
	other := NewManager("secret-b", "uppi", time.Minute, time.Hour)

	pair, err := m.GenerateTokenPair(uuid.New(), user.TypePassenger)
	require.NoError(t, err)

	_, err = other.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestValidateToken_Expired tests expiry detection
func TestValidateToken_Expired(t *testing.T) {
	m := &Manager{secret: []byte("test-secret"), issuer: "uppi", accessTTL: -time.Minute, refreshTTL: time.Hour}

	pair, err := m.GenerateTokenPair(uuid.New(), user.TypePassenger)
	require.NoError(t, err)

	_, err = m.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

// TestValidateToken_Garbage tests malformed input
func TestValidateToken_Garbage(t *testing.T) {
	m := NewManager("test-secret", "uppi", time.Minute, time.Hour)

	_, err := m.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
