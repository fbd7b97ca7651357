package authapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestClient_Login(t *testing.T) {
	t.Run("success body", func(t *testing.T) {
		so := require.New(t)
		var got loginRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			so.Equal(http.MethodPost, r.Method)
			so.Equal("/api/login", r.URL.Path)
			so.NoError(json.NewDecoder(r.Body).Decode(&got))
			w.Write([]byte(`{"status":"success","data":{"accessToken":"a","refreshToken":"r"}}`))
		}))
		t.Cleanup(srv.Close)

		cli := NewClient(Config{BaseURL: srv.URL + "/api/"})
		resp, err := cli.Login(context.Background(), "id", "pw")
		so.NoError(err)
		so.Equal(loginRequest{LoginID: "id", Password: "pw"}, got)
		so.Equal(http.StatusOK, resp.StatusCode)
		so.Equal(StatusSuccess, resp.Status)
		so.Equal("a", resp.Data.AccessToken)
		so.Equal("r", resp.Data.RefreshToken)
	})

	t.Run("401 with message", func(t *testing.T) {
		so := require.New(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"bad creds"}`))
		}))
		t.Cleanup(srv.Close)

		_, err := NewClient(Config{BaseURL: srv.URL}).Login(context.Background(), "id", "pw")
		so.Error(err)
		so.True(IsUnauthorized(err))

		var respErr *ResponseError
		so.True(errors.As(err, &respErr))
		so.Equal("bad creds", respErr.Message)
	})

	t.Run("500 without body", func(t *testing.T) {
		so := require.New(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		_, err := NewClient(Config{BaseURL: srv.URL}).Login(context.Background(), "id", "pw")
		so.Error(err)
		so.False(IsUnauthorized(err))

		var respErr *ResponseError
		so.True(errors.As(err, &respErr))
		so.Equal(http.StatusInternalServerError, respErr.Status)
		so.Empty(respErr.Message)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewClient(Config{BaseURL: url}).Login(context.Background(), "id", "pw")
		require.Error(t, err)
		require.False(t, IsUnauthorized(err))
	})
}

func TestClient_Refresh(t *testing.T) {
	t.Run("sends headers", func(t *testing.T) {
		so := require.New(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			so.Equal(http.MethodGet, r.Method)
			so.Equal("/refresh", r.URL.Path)
			so.Equal("r", r.Header.Get("refresh"))
			so.Equal("Bearer a", r.Header.Get("Authorization"))
			w.Write([]byte(`{"data":{"accessToken":"a2"}}`))
		}))
		t.Cleanup(srv.Close)

		resp, err := NewClient(Config{BaseURL: srv.URL}).Refresh(context.Background(), "a", "r")
		so.NoError(err)
		so.Equal("a2", resp.Data.AccessToken)
	})

	t.Run("no new token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		t.Cleanup(srv.Close)

		resp, err := NewClient(Config{BaseURL: srv.URL}).Refresh(context.Background(), "a", "r")
		require.NoError(t, err)
		require.Empty(t, resp.Data.AccessToken)
	})

	t.Run("application code 401", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"code":401}`))
		}))
		t.Cleanup(srv.Close)

		_, err := NewClient(Config{BaseURL: srv.URL}).Refresh(context.Background(), "a", "r")
		require.True(t, IsUnauthorized(err))
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":`))
		}))
		t.Cleanup(srv.Close)

		_, err := NewClient(Config{BaseURL: srv.URL}).Refresh(context.Background(), "a", "r")
		require.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		t.Cleanup(func() {
			close(release)
			srv.Close()
		})

		cli := NewClient(Config{BaseURL: srv.URL, RefreshTimeout: 50 * time.Millisecond})
		start := time.Now()
		_, err := cli.Refresh(context.Background(), "a", "r")
		require.Error(t, err)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Less(t, time.Since(start), 5*time.Second)
	})
}

func TestNewClient_Defaults(t *testing.T) {
	cli := NewClient(Config{BaseURL: "http://localhost/api/"})
	require.Equal(t, "http://localhost/api", cli.baseURL)
	require.Equal(t, 10*time.Second, cli.refreshTimeout)
	require.Zero(t, cli.httpCli.Timeout)
}
