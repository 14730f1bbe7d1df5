package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	RequestIDHeader = "X-Request-Id"

	PathSignUp    = "/signUp"
	PathLogin     = "/login"
	PathRefresh   = "/refresh"
	PathProtected = "/exam/android"

	contentTypeJSON = "application/json"

	defaultReachabilityTimeout = 3 * time.Second
)

// Client is the process-wide transport to the quiz API. It holds no session
// state and is safe for concurrent use; construct it once and Close it on exit.
type Client struct {
	baseURL      *url.URL
	http         *http.Client
	reachTimeout time.Duration
	metrics      *Metrics
	log          zerolog.Logger
}

type Option func(*Client)

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithTransport replaces the underlying round tripper; the request timeout still applies.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

func New(cfg config.APIConfig, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.GetBaseURL())
	if err != nil {
		return nil, fmt.Errorf("[api New] invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("[api New] base URL %q must be absolute", cfg.GetBaseURL())
	}
	base.Path = strings.TrimRight(base.Path, "/")

	timeout := cfg.GetRequestTimeout()
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}).DialContext
	transport.TLSHandshakeTimeout = timeout
	transport.ResponseHeaderTimeout = timeout

	reachTimeout := cfg.GetReachabilityTimeout()
	if reachTimeout <= 0 {
		reachTimeout = defaultReachabilityTimeout
	}

	c := &Client{
		baseURL:      base,
		http:         &http.Client{Timeout: timeout, Transport: transport},
		reachTimeout: reachTimeout,
		log:          log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases pooled connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) SignUp(ctx context.Context, email, password, displayName string) (*AuthResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, PathSignUp, nil, SignUpRequest{
		Email:    email,
		Password: password,
		UserName: displayName,
	})
	if err != nil {
		return nil, transportError(OpSignUp, err)
	}
	return c.authenticate(OpSignUp, req)
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, PathLogin, nil, LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, transportError(OpLogin, err)
	}
	return c.authenticate(OpLogin, req)
}

// Refresh exchanges the refresh token for a new session. The refresh token is
// sent as the bearer credential and the email as a query parameter.
func (c *Client) Refresh(ctx context.Context, email, refreshToken string) (*AuthResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, PathRefresh, url.Values{"email": {email}}, nil)
	if err != nil {
		return nil, transportError(OpRefresh, err)
	}
	setBearer(req, refreshToken)

	auth, err := c.authenticate(OpRefresh, req)
	c.metrics.observeRefresh(err)
	return auth, err
}

// FetchProtectedResource returns the raw body of the protected endpoint.
func (c *Client) FetchProtectedResource(ctx context.Context, accessToken string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, PathProtected, nil, nil)
	if err != nil {
		return "", transportError(OpFetchProtected, err)
	}
	setBearer(req, accessToken)

	body, err := c.execute(OpFetchProtected, req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) authenticate(op Operation, req *http.Request) (*AuthResponse, error) {
	body, err := c.execute(op, req)
	if err != nil {
		return nil, err
	}
	var auth AuthResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return nil, transportError(op, fmt.Errorf("decode response: %w", err))
	}
	return &auth, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, payload any) (*http.Request, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", contentTypeJSON)
	if payload != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

// execute issues the request and normalises the outcome: the body on 2xx,
// otherwise an *Error carrying the status (or 0 when no response arrived).
func (c *Client) execute(op Operation, req *http.Request) ([]byte, error) {
	start := time.Now()
	requestID := req.Header.Get(RequestIDHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(op, 0, time.Since(start))
		c.log.Warn().Err(err).
			Str("operation", string(op)).
			Str("request_id", requestID).
			Msg("api request failed without response")
		return nil, transportError(op, err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	c.metrics.observe(op, resp.StatusCode, elapsed)
	c.log.Debug().
		Str("operation", string(op)).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("api response")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if readErr != nil {
			return nil, transportError(op, readErr)
		}
		return body, nil
	}

	message := StatusText(resp.StatusCode)
	if readErr == nil && strings.TrimSpace(string(body)) != "" {
		message = string(body)
	}
	return nil, &Error{Op: op, Code: resp.StatusCode, Message: message}
}

func setBearer(req *http.Request, token string) {
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
}
