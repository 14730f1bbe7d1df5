package users_test

import (
	"testing"

	apperrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/users"
	fakeuserrepo "github.com/jrsteele09/go-auth-client/users/repofake"
	"github.com/stretchr/testify/require"
)

func TestPasswords(t *testing.T) {
	require.Error(t, users.ValidatePassword("12345"))
	require.NoError(t, users.ValidatePassword("123456"))

	hash, err := users.HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)

	u := &users.User{PasswordHash: hash}
	require.True(t, u.CheckPassword("secret1"))
	require.False(t, u.CheckPassword("secret2"))
}

func TestFakeUserRepo(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()

	u := &users.User{Email: "John.Doe@example.com", DisplayName: "John"}
	require.NoError(t, repo.Insert(u))
	require.NotEmpty(t, u.ID)
	require.False(t, u.DateJoined.IsZero())

	t.Run("duplicate email is rejected regardless of case", func(t *testing.T) {
		err := repo.Insert(&users.User{Email: "john.doe@example.com"})
		require.ErrorIs(t, err, apperrors.ErrUserExists)
		require.Equal(t, 1, repo.Count())
	})

	t.Run("lookups", func(t *testing.T) {
		byEmail, err := repo.GetByEmail("john.doe@example.com")
		require.NoError(t, err)
		byID, err := repo.GetByID(u.ID)
		require.NoError(t, err)
		require.Same(t, byEmail, byID)

		_, err = repo.GetByEmail("nobody@example.com")
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("last login", func(t *testing.T) {
		require.NoError(t, repo.SetLastLogin("john.doe@example.com"))
		require.False(t, u.LastLogin.IsZero())
		require.ErrorIs(t, repo.SetLastLogin("nobody@example.com"), apperrors.ErrUserNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete("john.doe@example.com"))
		require.ErrorIs(t, repo.Delete("john.doe@example.com"), apperrors.ErrUserNotFound)
		require.Zero(t, repo.Count())
	})
}
