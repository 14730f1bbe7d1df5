package devserver

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/token/jwt"
	"github.com/jrsteele09/go-auth-client/token/refresh"
	refreshrepofake "github.com/jrsteele09/go-auth-client/token/refresh/repofake"
	"github.com/jrsteele09/go-auth-client/users"
	fakeuserrepo "github.com/jrsteele09/go-auth-client/users/repofake"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is what the development API needs from the application config.
type Config interface {
	GetEnv() string
	config.DevServerConfig
}

// Server is an in-memory implementation of the quiz API: sign-up, login,
// refresh and the protected exam document.
type Server struct {
	env      string // Environment (e.g. "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	users    users.UserRepo
	refresh  *refresh.Manager
	creator  *jwt.Creator
	verifier *jwt.Verifier
	quiz     Quiz
	log      zerolog.Logger

	// Replaced by WithRefreshRepo before the manager is built.
	refreshRepo refresh.Repo
}

type Option func(*Server)

// WithUserRepo replaces the in-memory account store.
func WithUserRepo(repo users.UserRepo) Option {
	return func(s *Server) {
		s.users = repo
	}
}

// WithRefreshRepo replaces the in-memory refresh token store.
func WithRefreshRepo(repo refresh.Repo) Option {
	return func(s *Server) {
		s.refreshRepo = repo
	}
}

func WithQuiz(q Quiz) Option {
	return func(s *Server) {
		s.quiz = q
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

func New(cfg Config, opts ...Option) (*Server, error) {
	secret := cfg.GetSigningSecret()
	if secret == "" {
		return nil, errors.New("[devserver New] signing secret is empty")
	}
	signer := token.NewHMACSigner(secret)

	s := &Server{
		env:         cfg.GetEnv(),
		mux:         http.NewServeMux(),
		users:       fakeuserrepo.NewFakeUserRepo(),
		refreshRepo: refreshrepofake.NewFakeRefreshTokenRepo(),
		creator:     jwt.NewCreator(cfg, signer),
		verifier:    jwt.NewVerifier(signer),
		quiz:        DefaultQuiz(),
		log:         log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.refresh = refresh.NewManager(s.refreshRepo, cfg)

	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler http.HandlerFunc) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, ChainMiddleware(handler, s.APIMiddleware()...))
}

// Routes lists the registered patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			s.logRoute(parts[0], parts[1])
		} else {
			s.logRoute("", parts[0])
		}
	}
}

func (s *Server) logRoute(method, path string) {
	s.log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}
