package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

// Claims is what the client can learn from its own access token without the
// server's key. Nothing here is trusted for authorization decisions.
type Claims struct {
	Subject   string
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type accessClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwtlib.RegisteredClaims
}

// Inspect decodes a JWT without verifying its signature. Opaque tokens return
// ErrOpaqueToken.
func Inspect(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if strings.Count(raw, ".") != 2 {
		return nil, apperrors.ErrOpaqueToken
	}

	var claims accessClaims
	if _, _, err := jwtlib.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrOpaqueToken, "parse: %v", err)
	}

	c := &Claims{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}
	if claims.IssuedAt != nil {
		c.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		c.ExpiresAt = claims.ExpiresAt.Time
	}
	return c, nil
}

// HasExpiry is false for tokens without an exp claim.
func (c *Claims) HasExpiry() bool {
	return !c.ExpiresAt.IsZero()
}

// ExpiresIn returns the time left until expiry; negative once expired.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	return c.ExpiresAt.Sub(now)
}

func (c *Claims) Expired(now time.Time) bool {
	return c.HasExpiry() && !now.Before(c.ExpiresAt)
}
