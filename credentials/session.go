package credentials

// Session is the client's current authenticated identity. A session is either
// fully present or absent; the zero value means "not logged in".
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"user_email"`
	DisplayName  string `json:"user_name"`
}

// Complete reports whether all four fields are set.
func (s Session) Complete() bool {
	return s.AccessToken != "" && s.RefreshToken != "" && s.Email != "" && s.DisplayName != ""
}

// HasTokens reports whether both the access and the refresh token are present.
func (s Session) HasTokens() bool {
	return s.AccessToken != "" && s.RefreshToken != ""
}

// Empty reports whether no field is set.
func (s Session) Empty() bool {
	return s == Session{}
}
