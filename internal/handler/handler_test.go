package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pechorka/tokenkeeper/internal/handler"
	"github.com/pechorka/tokenkeeper/internal/issuer"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	srv := testServer(t)

	t.Run("success", func(t *testing.T) {
		so := require.New(t)
		resp := post(t, srv.URL+"/login", `{"loginId":"id","password":"pw"}`)
		so.Equal(http.StatusOK, resp.StatusCode)

		var body handler.LoginResponse
		so.NoError(json.NewDecoder(resp.Body).Decode(&body))
		so.Equal("success", body.Status)
		so.NotEmpty(body.Data.AccessToken)
		so.NotEmpty(body.Data.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		so := require.New(t)
		resp := post(t, srv.URL+"/login", `{"loginId":"id","password":"nope"}`)
		so.Equal(http.StatusUnauthorized, resp.StatusCode)

		body := decodeError(t, resp)
		so.Equal(401, body.Code)
		so.NotEmpty(body.Message)
	})

	t.Run("invalid json", func(t *testing.T) {
		resp := post(t, srv.URL+"/login", `{`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRefresh(t *testing.T) {
	srv := testServer(t)

	login := func(t *testing.T) handler.LoginResponseData {
		resp := post(t, srv.URL+"/login", `{"loginId":"id","password":"pw"}`)
		var body handler.LoginResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body.Data
	}

	t.Run("success", func(t *testing.T) {
		so := require.New(t)
		tokens := login(t)

		resp := refresh(t, srv.URL, tokens.AccessToken, tokens.RefreshToken)
		so.Equal(http.StatusOK, resp.StatusCode)

		var body handler.RefreshResponse
		so.NoError(json.NewDecoder(resp.Body).Decode(&body))
		so.NotEmpty(body.Data.AccessToken)
		so.NotEqual(tokens.AccessToken, body.Data.AccessToken)
	})

	t.Run("unknown refresh token", func(t *testing.T) {
		so := require.New(t)
		tokens := login(t)

		resp := refresh(t, srv.URL, tokens.AccessToken, "nope")
		so.Equal(http.StatusUnauthorized, resp.StatusCode)
		so.Equal(401, decodeError(t, resp).Code)
	})

	t.Run("missing headers", func(t *testing.T) {
		so := require.New(t)
		resp := refresh(t, srv.URL, "", "")
		so.Equal(http.StatusUnauthorized, resp.StatusCode)
		so.Equal("missing bearer token", decodeError(t, resp).Message)

		resp = refresh(t, srv.URL, "a", "")
		so.Equal(http.StatusUnauthorized, resp.StatusCode)
		so.Equal("missing refresh token", decodeError(t, resp).Message)
	})
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func refresh(t *testing.T, baseURL, access, refreshToken string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, baseURL+"/refresh", nil)
	require.NoError(t, err)
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}
	if refreshToken != "" {
		req.Header.Set("refresh", refreshToken)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	log, _ := test.NewNullLogger()
	h := handler.NewHandlers(issuer.NewService(map[string]string{"id": "pw"}), log)
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return srv
}
