package jwt

import (
	"errors"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/token"
)

// AccessClaims are the verified claims of an access token.
type AccessClaims struct {
	Subject string
	Email   string
	Name    string
	ID      string
}

// Verifier checks access tokens issued by a Creator with the same signer.
type Verifier struct {
	signer token.Signer
}

func NewVerifier(signer token.Signer) *Verifier {
	return &Verifier{signer: signer}
}

// Verify validates the signature and expiry of rawToken. Expired tokens return
// ErrTokenExpired, anything else unacceptable returns ErrInvalidToken.
func (v *Verifier) Verify(rawToken string) (*AccessClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, apperrors.ErrInvalidToken
	}

	parsed, err := jwtlib.ParseWithClaims(rawToken, jwtlib.MapClaims{}, v.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{v.signer.GetSigningMethod().Alg()}),
		jwtlib.WithTimeFunc(NowTimeFunc),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "%v", err)
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok || !parsed.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if tokenType, _ := claims["token_type"].(string); tokenType != "access" {
		return nil, apperrors.ErrInvalidToken
	}

	sub, _ := claims.GetSubject()
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	jti, _ := claims["jti"].(string)
	return &AccessClaims{Subject: sub, Email: email, Name: name, ID: jti}, nil
}
