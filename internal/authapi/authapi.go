package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultRefreshTimeout = 10 * time.Second
	maxResponseSize       = 1024 * 1024
	maxErrorBodySize      = 64 * 1024
)

const StatusSuccess = "success"

type Config struct {
	BaseURL string
	// HttpTimeout bounds every request; zero means no client-wide timeout.
	HttpTimeout    time.Duration
	RefreshTimeout time.Duration
	Transport      http.RoundTripper
}

type Client struct {
	baseURL        string
	refreshTimeout time.Duration

	httpCli *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.RefreshTimeout == 0 {
		cfg.RefreshTimeout = defaultRefreshTimeout
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		refreshTimeout: cfg.RefreshTimeout,
		httpCli: &http.Client{
			Timeout:   cfg.HttpTimeout,
			Transport: cfg.Transport,
		},
	}
}

type loginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type LoginResponse struct {
	StatusCode int    `json:"-"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Data       struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"data"`
}

type RefreshResponse struct {
	Data struct {
		AccessToken string `json:"accessToken"`
	} `json:"data"`
}

// ResponseError describes a non-2xx answer from the auth service.
type ResponseError struct {
	Status  int
	Code    int
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("auth service responded %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("auth service responded %d", e.Status)
}

// IsUnauthorized reports whether err carries a 401 status or application code.
func IsUnauthorized(err error) bool {
	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		return false
	}
	return respErr.Status == http.StatusUnauthorized || respErr.Code == http.StatusUnauthorized
}

// Login submits credentials. Any 2xx answer is decoded and returned; the
// caller decides whether the body means success.
func (c *Client) Login(ctx context.Context, loginID, password string) (LoginResponse, error) {
	var resp LoginResponse
	body, err := json.Marshal(loginRequest{LoginID: loginID, Password: password})
	if err != nil {
		return resp, errors.Wrap(err, "failed to encode login request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return resp, errors.Wrap(err, "failed to build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	status, err := c.do(req, &resp)
	resp.StatusCode = status
	if err != nil {
		return resp, errors.Wrap(err, "login")
	}
	return resp, nil
}

// Refresh exchanges the pair for a new access token. The call is bounded by
// the configured refresh timeout.
func (c *Client) Refresh(ctx context.Context, accessToken, refreshToken string) (RefreshResponse, error) {
	var resp RefreshResponse
	ctx, cancel := context.WithTimeout(ctx, c.refreshTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/refresh", nil)
	if err != nil {
		return resp, errors.Wrap(err, "failed to build refresh request")
	}
	req.Header.Set("refresh", refreshToken)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	if _, err := c.do(req, &resp); err != nil {
		return resp, errors.Wrap(err, "refresh")
	}
	return resp, nil
}

func (c *Client) do(req *http.Request, out interface{}) (int, error) {
	resp, err := c.httpCli.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, decodeError(resp)
	}
	body := http.MaxBytesReader(nil, resp.Body, maxResponseSize)
	if err := json.NewDecoder(body).Decode(out); err != nil && err != io.EOF {
		return resp.StatusCode, errors.Wrap(err, "failed to decode response")
	}
	return resp.StatusCode, nil
}

func decodeError(resp *http.Response) error {
	respErr := &ResponseError{Status: resp.StatusCode}
	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	// the body is optional, a broken one still yields the status
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodySize)).Decode(&body); err == nil {
		respErr.Code = body.Code
		respErr.Message = body.Message
	}
	return respErr
}
