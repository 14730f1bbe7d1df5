package refresh

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Config is the part of the dev server configuration the manager reads.
type Config interface {
	GetRefreshTokenExpiry() time.Duration
	GetRefreshTokenLength() int
}

// Manager handles refresh token creation, validation, and rotation
type Manager struct {
	repo   Repo
	config Config
	// Serializes rotation so a token can be redeemed once.
	lock sync.Mutex
}

// NewManager creates a new refresh token manager
func NewManager(repo Repo, cfg Config) *Manager {
	return &Manager{
		repo:   repo,
		config: cfg,
	}
}

// Create issues a new refresh token for the user, replacing any previous one
// (single refresh token per user).
func (m *Manager) Create(userID, email string) (string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.create(userID, email)
}

// Rotate redeems token for email and issues its replacement. The redeemed
// token can't be used again.
func (m *Manager) Rotate(token, email string) (*StoredRefreshToken, string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	rt, err := m.repo.Get(token)
	if err != nil {
		return nil, "", apperrors.ErrInvalidRefreshToken
	}
	if !strings.EqualFold(rt.Email, strings.TrimSpace(email)) {
		return nil, "", apperrors.ErrInvalidRefreshToken
	}
	if m.IsExpired(rt) {
		_ = m.repo.Delete(rt.Token)
		return nil, "", apperrors.ErrRefreshTokenExpired
	}

	next, err := m.create(rt.UserID, rt.Email)
	if err != nil {
		return nil, "", err
	}
	return rt, next, nil
}

// Get retrieves a refresh token from storage
func (m *Manager) Get(token string) (*StoredRefreshToken, error) {
	return m.repo.Get(token)
}

// Delete removes a refresh token from storage
func (m *Manager) Delete(token string) error {
	return m.repo.Delete(token)
}

func (m *Manager) IsExpired(rt *StoredRefreshToken) bool {
	return NowTimeFunc().Sub(rt.Iat) > m.config.GetRefreshTokenExpiry()
}

func (m *Manager) create(userID, email string) (string, error) {
	if existingToken, err := m.repo.GetByUserID(userID); err == nil && existingToken != nil {
		if err := m.repo.Delete(existingToken.Token); err != nil {
			return "", fmt.Errorf("failed to delete existing refresh token: %w", err)
		}
	}

	tokenBytes := make([]byte, m.config.GetRefreshTokenLength())
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	tokenStr := hex.EncodeToString(tokenBytes)
	if err := m.repo.Upsert(&StoredRefreshToken{
		Token:  tokenStr,
		UserID: userID,
		Email:  email,
		Iat:    NowTimeFunc(),
	}); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return tokenStr, nil
}
