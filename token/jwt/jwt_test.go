package jwt_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/token/jwt"
	"github.com/jrsteele09/go-auth-client/users"
	"github.com/stretchr/testify/require"
)

type testConfig struct{}

func (testConfig) GetAccessTokenExpiry() time.Duration { return time.Minute }

func TestCreateAndVerify(t *testing.T) {
	signer := token.NewHMACSigner("test-secret")
	creator := jwt.NewCreator(testConfig{}, signer)
	verifier := jwt.NewVerifier(signer)
	user := &users.User{ID: "user-1", Email: "john.doe@example.com", DisplayName: "John"}

	raw, err := creator.CreateAccessToken(user)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		claims, err := verifier.Verify(raw)
		require.NoError(t, err)
		require.Equal(t, "user-1", claims.Subject)
		require.Equal(t, "john.doe@example.com", claims.Email)
		require.Equal(t, "John", claims.Name)
		require.NotEmpty(t, claims.ID)

		inspected, err := token.Inspect(raw)
		require.NoError(t, err)
		require.Equal(t, "user-1", inspected.Subject)
		require.True(t, inspected.HasExpiry())
	})

	t.Run("other secret", func(t *testing.T) {
		_, err := jwt.NewVerifier(token.NewHMACSigner("other")).Verify(raw)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.Verify("not-a-token")
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
		_, err = verifier.Verify("")
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		jwt.NowTimeFunc = func() time.Time { return time.Now().Add(time.Hour) }
		defer func() { jwt.NowTimeFunc = time.Now }()

		_, err := verifier.Verify(raw)
		require.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})
}
