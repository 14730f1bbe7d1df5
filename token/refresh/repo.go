package refresh

import (
	"time"
)

// StoredRefreshToken is the server-side record behind a refresh token. The
// client only ever sees Token; the rest is used to validate a refresh.
type StoredRefreshToken struct {
	Token  string    // The random token string sent to the client
	UserID string    // Owner
	Email  string    // Owner's email, checked against the refresh request
	Iat    time.Time // Issued at
}

// Repo stores refresh token records keyed by the token string.
type Repo interface {
	Upsert(refreshToken *StoredRefreshToken) error
	Delete(token string) error
	Get(token string) (*StoredRefreshToken, error)
	GetByUserID(userID string) (*StoredRefreshToken, error)
}
