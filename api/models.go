package api

import "github.com/jrsteele09/go-auth-client/credentials"

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserName string `json:"userName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by sign-up, login and refresh.
type AuthResponse struct {
	DisplayName  string `json:"userName"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Session converts the payload into the record kept by the credential store.
func (a *AuthResponse) Session() credentials.Session {
	return credentials.Session{
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
		Email:        a.Email,
		DisplayName:  a.DisplayName,
	}
}
