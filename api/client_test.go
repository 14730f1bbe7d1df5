package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-client/api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	baseURL string
	timeout time.Duration
}

func (c testConfig) GetBaseURL() string { return c.baseURL }

func (c testConfig) GetRequestTimeout() time.Duration {
	if c.timeout == 0 {
		return 2 * time.Second
	}
	return c.timeout
}

func (c testConfig) GetReachabilityTimeout() time.Duration { return time.Second }

func newTestClient(t *testing.T, baseURL string, opts ...api.Option) *api.Client {
	t.Helper()
	c, err := api.New(testConfig{baseURL: baseURL}, opts...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

const authJSON = `{"userName":"John","email":"john.doe@example.com","accessToken":"access-1","refreshToken":"refresh-1","extra":true}`

func TestClient_SignUp(t *testing.T) {
	var got api.SignUpRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, api.PathSignUp, r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Empty(t, r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get(api.RequestIDHeader))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, authJSON)
	}))
	defer srv.Close()

	auth, err := newTestClient(t, srv.URL).SignUp(context.Background(), "john.doe@example.com", "secret1", "John")
	require.NoError(t, err)
	require.Equal(t, api.SignUpRequest{Email: "john.doe@example.com", Password: "secret1", UserName: "John"}, got)
	require.Equal(t, &api.AuthResponse{
		DisplayName:  "John",
		Email:        "john.doe@example.com",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}, auth)
	require.True(t, auth.Session().Complete())
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, api.PathLogin, r.URL.Path)
		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, authJSON)
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	t.Run("success", func(t *testing.T) {
		auth, err := c.Login(context.Background(), "john.doe@example.com", "secret1")
		require.NoError(t, err)
		require.Equal(t, "access-1", auth.AccessToken)
	})

	t.Run("401 without body uses fallback text", func(t *testing.T) {
		_, err := c.Login(context.Background(), "john.doe@example.com", "wrong")
		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		require.Equal(t, &api.Error{Op: api.OpLogin, Code: 401, Message: "Unauthorized"}, apiErr)
		require.Equal(t, api.CategoryInvalidCredentials, api.Categorize(err))
	})
}

func TestClient_Refresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, api.PathRefresh, r.URL.Path)
		require.Equal(t, "john.doe@example.com", r.URL.Query().Get("email"))
		require.Equal(t, "Bearer refresh-1", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.Empty(t, body)
		_, _ = io.WriteString(w, authJSON)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	metrics := api.NewMetrics(reg)
	auth, err := newTestClient(t, srv.URL, api.WithMetrics(metrics)).Refresh(context.Background(), "john.doe@example.com", "refresh-1")
	require.NoError(t, err)
	require.Equal(t, "refresh-1", auth.RefreshToken)
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.RefreshCount(true)))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestCount(api.OpRefresh, 200)))
}

func TestClient_FetchProtectedResource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, api.PathProtected, r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, "token expired")
			return
		}
		_, _ = io.WriteString(w, `{"questions":[]}`)
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	t.Run("raw text on success", func(t *testing.T) {
		body, err := c.FetchProtectedResource(context.Background(), "access-1")
		require.NoError(t, err)
		require.Equal(t, `{"questions":[]}`, body)
	})

	t.Run("401 keeps server message", func(t *testing.T) {
		_, err := c.FetchProtectedResource(context.Background(), "stale")
		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		require.Equal(t, 401, apiErr.Code)
		require.Equal(t, "token expired", apiErr.Message)
		require.Equal(t, api.CategoryAuthExpired, api.Categorize(err))
	})
}

func TestClient_ErrorNormalisation(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"400 fallback", 400, "", "Bad Request"},
		{"403 fallback", 403, "", "Forbidden"},
		{"404 fallback", 404, "", "Not Found"},
		{"503 fallback", 503, "", "Service Unavailable"},
		{"504 fallback", 504, "  \n", "Gateway Timeout"},
		{"other fallback", 418, "", "Unknown error: HTTP 418"},
		{"body wins", 500, "database down", "database down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).FetchProtectedResource(context.Background(), "access-1")
			apiErr, ok := api.AsError(err)
			require.True(t, ok)
			require.Equal(t, tt.status, apiErr.Code)
			require.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestClient_TransportFailures(t *testing.T) {
	t.Run("unreachable host", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		reg := prometheus.NewRegistry()
		metrics := api.NewMetrics(reg)
		c := newTestClient(t, url, api.WithMetrics(metrics))

		for name, call := range map[string]func() error{
			"sign up": func() error { _, err := c.SignUp(context.Background(), "a@b.co", "secret1", "A"); return err },
			"login":   func() error { _, err := c.Login(context.Background(), "a@b.co", "secret1"); return err },
			"refresh": func() error { _, err := c.Refresh(context.Background(), "a@b.co", "r"); return err },
			"fetch":   func() error { _, err := c.FetchProtectedResource(context.Background(), "a"); return err },
		} {
			err := call()
			apiErr, ok := api.AsError(err)
			require.True(t, ok, name)
			require.Equal(t, 0, apiErr.Code, name)
			require.Contains(t, apiErr.Message, "Network error: ", name)
			require.Equal(t, api.CategoryTransportFailure, api.Categorize(err), name)
		}
		require.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestCount(api.OpLogin, 0)))
		require.Equal(t, 1.0, testutil.ToFloat64(metrics.RefreshCount(false)))
		require.False(t, c.Reachable(context.Background()))
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		c, err := api.New(testConfig{baseURL: srv.URL, timeout: 50 * time.Millisecond})
		require.NoError(t, err)
		defer c.Close()

		_, err = c.FetchProtectedResource(context.Background(), "access-1")
		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		require.Equal(t, 0, apiErr.Code)
	})

	t.Run("undecodable success body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "<html>")
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv.URL).Login(context.Background(), "a@b.co", "secret1")
		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		require.Equal(t, 0, apiErr.Code)
		require.Contains(t, apiErr.Message, "Network error: decode response")
	})
}

func TestClient_ConcurrentCalls(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := c.FetchProtectedResource(context.Background(), "access-1")
			done <- err
		}()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, <-done)
	}
	require.Equal(t, int32(10), calls.Load())
}

func TestClient_Reachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	require.True(t, newTestClient(t, srv.URL).Reachable(context.Background()))
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := api.New(testConfig{baseURL: "api.example.com"})
	require.Error(t, err)
}
