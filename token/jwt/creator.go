package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Config is the part of the dev server configuration the creator reads.
type Config interface {
	GetAccessTokenExpiry() time.Duration
}

// Creator issues signed access tokens for quiz API users
type Creator struct {
	config Config
	signer token.Signer
}

func NewCreator(cfg Config, signer token.Signer) *Creator {
	return &Creator{
		config: cfg,
		signer: signer,
	}
}

// CreateAccessToken creates a short-lived access token for user.
func (c *Creator) CreateAccessToken(user *users.User) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"sub":        user.ID,                                          // The user's unique ID
		"email":      user.Email,                                       // Login identifier
		"name":       user.DisplayName,                                 // Display name
		"iat":        now.Unix(),                                       // Issued At
		"exp":        now.Add(c.config.GetAccessTokenExpiry()).Unix(), // Expiry
		"jti":        uuid.New().String(),                              // Unique token ID
		"token_type": "access",
	}

	signedToken, err := c.signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signedToken, nil
}
