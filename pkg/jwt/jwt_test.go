package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func TestGenerateAndParseToken(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 168*time.Hour)

	pair, err := m.GenerateTokenPair(42, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.EqualValues(t, (2 * time.Hour).Seconds(), pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.CustomerID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestParseToken_WrongSecret(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 168*time.Hour)
	other := NewManager("another-secret", 2*time.Hour, 168*time.Hour)

	pair, err := m.GenerateTokenPair(1, "a@b.com")
	require.NoError(t, err)

	_, err = other.ParseToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 168*time.Hour)

	pair, err := m.GenerateTokenPair(1, "a@b.com")
	require.NoError(t, err)

	_, err = m.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestParseToken_Garbage(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 168*time.Hour)
	_, err := m.ParseToken("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
