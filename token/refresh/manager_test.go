package refresh_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/token/refresh"
	refreshrepofake "github.com/jrsteele09/go-auth-client/token/refresh/repofake"
	"github.com/stretchr/testify/require"
)

type testConfig struct{}

func (testConfig) GetRefreshTokenExpiry() time.Duration { return time.Hour }
func (testConfig) GetRefreshTokenLength() int           { return 32 }

func TestManager(t *testing.T) {
	repo := refreshrepofake.NewFakeRefreshTokenRepo()
	m := refresh.NewManager(repo, testConfig{})

	first, err := m.Create("user-1", "john.doe@example.com")
	require.NoError(t, err)
	require.Len(t, first, 64)

	t.Run("one token per user", func(t *testing.T) {
		second, err := m.Create("user-1", "john.doe@example.com")
		require.NoError(t, err)
		require.NotEqual(t, first, second)
		require.Equal(t, 1, repo.Len())

		_, _, err = m.Rotate(first, "john.doe@example.com")
		require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
		first = second
	})

	t.Run("rotate replaces the token", func(t *testing.T) {
		rt, next, err := m.Rotate(first, "John.Doe@example.com")
		require.NoError(t, err)
		require.Equal(t, "user-1", rt.UserID)
		require.NotEqual(t, first, next)

		_, _, err = m.Rotate(first, "john.doe@example.com")
		require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken, "a redeemed token is rejected")
		first = next
	})

	t.Run("email must match", func(t *testing.T) {
		_, _, err := m.Rotate(first, "someone@example.com")
		require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("expired token", func(t *testing.T) {
		refresh.NowTimeFunc = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { refresh.NowTimeFunc = time.Now }()

		_, _, err := m.Rotate(first, "john.doe@example.com")
		require.ErrorIs(t, err, apperrors.ErrRefreshTokenExpired)
		_, err = m.Get(first)
		require.Error(t, err)
	})
}
