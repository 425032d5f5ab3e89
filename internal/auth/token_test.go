package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestIssuePair_RoundTrip(t *testing.T) {
	m := newTestManager()

	pair, err := m.IssuePair(42, "alice", "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	access, err := m.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), access.UserID)
	assert.Equal(t, "alice", access.Username)
	assert.Equal(t, "alice@example.com", access.Email)

	refresh, err := m.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), refresh.UserID)
}

func TestIssuePair_UniqueWithinSameSecond(t *testing.T) {
	m := newTestManager()
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	first, err := m.IssuePair(1, "bob", "bob@example.com")
	require.NoError(t, err)
	second, err := m.IssuePair(1, "bob", "bob@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
}

func TestParse_TokensAreNotInterchangeable(t *testing.T) {
	m := newTestManager()
	pair, err := m.IssuePair(7, "carol", "carol@example.com")
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.RefreshToken)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = m.ParseRefresh(pair.AccessToken)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestParse_Expired(t *testing.T) {
	m := newTestManager()
	issuedAt := time.Now().Add(-48 * time.Hour)
	m.now = func() time.Time { return issuedAt }

	pair, err := m.IssuePair(7, "carol", "carol@example.com")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongSecretAndGarbage(t *testing.T) {
	m := newTestManager()
	other := NewTokenManager("other-access", "other-refresh", time.Minute, time.Hour)

	pair, err := other.IssuePair(1, "dave", "dave@example.com")
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseAccess("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseAccess("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
