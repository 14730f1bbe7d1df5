package credentials_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jrsteele09/go-auth-client/credentials"
	apperrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSession = credentials.Session{
	AccessToken:  "access-1",
	RefreshToken: "refresh-1",
	Email:        "john.doe@example.com",
	DisplayName:  "John",
}

func newTestStore(t *testing.T, opts ...credentials.FileStoreOption) *credentials.FileStore {
	t.Helper()
	s, err := credentials.NewFileStore(filepath.Join(t.TempDir(), "prefs", "app_prefs.json"), opts...)
	require.NoError(t, err)
	return s
}

func TestFileStore_SaveRead(t *testing.T) {
	s := newTestStore(t)

	t.Run("empty store reads absent", func(t *testing.T) {
		got, err := s.Read()
		require.NoError(t, err)
		require.True(t, got.Empty())
		require.False(t, s.IsLoggedIn())
	})

	t.Run("save then read returns saved values", func(t *testing.T) {
		require.NoError(t, s.Save(testSession))
		got, err := s.Read()
		require.NoError(t, err)
		require.Equal(t, testSession, got)
		require.True(t, s.IsLoggedIn())
	})

	t.Run("save overwrites the previous session", func(t *testing.T) {
		next := credentials.Session{AccessToken: "access-2", RefreshToken: "refresh-2", Email: "jane@example.com", DisplayName: "Jane"}
		require.NoError(t, s.Save(next))
		got, err := s.Read()
		require.NoError(t, err)
		require.Equal(t, next, got)
	})

	t.Run("clear then read returns absent", func(t *testing.T) {
		require.NoError(t, s.Clear())
		got, err := s.Read()
		require.NoError(t, err)
		require.True(t, got.Empty())
		require.False(t, s.IsLoggedIn())
	})

	t.Run("clear on empty store is fine", func(t *testing.T) {
		require.NoError(t, s.Clear())
	})
}

func TestFileStore_RejectsIncompleteSession(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(testSession))

	partial := testSession
	partial.RefreshToken = ""
	err := s.Save(partial)
	require.ErrorIs(t, err, apperrors.ErrIncompleteSession)

	got, err := s.Read()
	require.NoError(t, err)
	require.Equal(t, testSession, got)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_prefs.json")
	first, err := credentials.NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(testSession))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, key := range []string{"access_token", "refresh_token", "user_email", "user_name"} {
		require.Contains(t, string(raw), key)
	}

	second, err := credentials.NewFileStore(path)
	require.NoError(t, err)
	got, err := second.Read()
	require.NoError(t, err)
	require.Equal(t, testSession, got)
}

func TestFileStore_Sealed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_prefs.json")
	sealer, err := credentials.NewSealer("device-secret")
	require.NoError(t, err)

	s, err := credentials.NewFileStore(path, credentials.WithSealer(sealer))
	require.NoError(t, err)
	require.NoError(t, s.Save(testSession))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), testSession.AccessToken)

	got, err := s.Read()
	require.NoError(t, err)
	require.Equal(t, testSession, got)

	t.Run("different secret reads as logged out", func(t *testing.T) {
		other, err := credentials.NewSealer("another-secret")
		require.NoError(t, err)
		s2, err := credentials.NewFileStore(path, credentials.WithSealer(other))
		require.NoError(t, err)

		got, err := s2.Read()
		require.NoError(t, err)
		require.True(t, got.Empty())
		require.False(t, s2.IsLoggedIn())
	})
}

func TestFileStore_ConcurrentReadsNeverSeeMixedRecords(t *testing.T) {
	s := newTestStore(t)
	a := testSession
	b := credentials.Session{AccessToken: "access-b", RefreshToken: "refresh-b", Email: "b@example.com", DisplayName: "B"}
	require.NoError(t, s.Save(a))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if i%2 == 0 {
				assert.NoError(t, s.Save(b))
			} else {
				assert.NoError(t, s.Save(a))
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			got, err := s.Read()
			assert.NoError(t, err)
			assert.True(t, got == a || got == b, "mixed record %+v", got)
		}
	}()
	wg.Wait()
}
