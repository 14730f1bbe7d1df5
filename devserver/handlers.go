package devserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-auth-client/api"
	apperrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/users"
)

const (
	msgUserExists         = "User with this email already exists"
	msgInvalidRequest     = "Invalid request"
	msgInvalidCredentials = "Invalid email or password"
	msgInvalidRefresh     = "Invalid refresh token"
	msgUnauthorized       = "Unauthorized"
	maxBodyBytes          = 1 << 16
)

func (s *Server) SignUpHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.SignUpRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		req.UserName = strings.TrimSpace(req.UserName)
		if !strings.Contains(req.Email, "@") || req.UserName == "" {
			writeError(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}
		if err := users.ValidatePassword(req.Password); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		hash, err := users.HashPassword(req.Password)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to hash password")
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		user := &users.User{Email: req.Email, DisplayName: req.UserName, PasswordHash: hash}
		if err := s.users.Insert(user); err != nil {
			if apperrors.Is(err, apperrors.ErrUserExists) {
				writeError(w, http.StatusBadRequest, msgUserExists)
				return
			}
			s.log.Error().Err(err).Msg("failed to store user")
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		s.log.Info().Str("user_id", user.ID).Msg("user signed up")
		s.issue(w, user, "")
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}

		user, err := s.users.GetByEmail(req.Email)
		if err != nil || !user.CheckPassword(req.Password) {
			writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		if err := s.users.SetLastLogin(user.Email); err != nil {
			s.log.Warn().Err(err).Msg("failed to record last login")
		}
		s.issue(w, user, "")
	}
}

// RefreshHandler redeems the bearer refresh token for the email in the query
// and answers with a new token pair.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get(emailQueryName)
		refreshToken, ok := bearerToken(r)
		if !ok || email == "" {
			writeError(w, http.StatusUnauthorized, msgInvalidRefresh)
			return
		}

		rt, next, err := s.refresh.Rotate(refreshToken, email)
		if err != nil {
			s.log.Info().Err(err).Msg("refresh rejected")
			writeError(w, http.StatusUnauthorized, msgInvalidRefresh)
			return
		}
		user, err := s.users.GetByID(rt.UserID)
		if err != nil {
			_ = s.refresh.Delete(next)
			writeError(w, http.StatusUnauthorized, msgInvalidRefresh)
			return
		}
		s.issue(w, user, next)
	}
}

func (s *Server) ExamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		if _, err := s.verifier.Verify(accessToken); err != nil {
			s.log.Debug().Err(err).Msg("access token rejected")
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, s.quiz)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "users": s.users.Count()})
	}
}

// issue answers with a fresh access token and refreshToken, creating a new
// refresh token when refreshToken is empty.
func (s *Server) issue(w http.ResponseWriter, user *users.User, refreshToken string) {
	accessToken, err := s.creator.CreateAccessToken(user)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create access token")
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if refreshToken == "" {
		refreshToken, err = s.refresh.Create(user.ID, user.Email)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to create refresh token")
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
	}

	writeJSON(w, http.StatusOK, api.AuthResponse{
		DisplayName:  user.DisplayName,
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func bearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with the message as a plain text body, which the client
// shows as the error message.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, message)
}
