package authn

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"portfolio-gateway/sdk"
)

type testConfig struct {
	backendAPIAddress string
}

func (t *testConfig) BackendAPIAddress() string {
	return t.backendAPIAddress
}

func (t *testConfig) SessionCookieName() string {
	return sdk.DefaultSessionCookieName
}

func (t *testConfig) BackendTimeout() time.Duration {
	return 0
}

func (t *testConfig) LoginPath() string {
	return "/login"
}

func TestSessionsServiceLogin(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				defer r.Body.Close()
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/v1/auth/login", r.URL.Path)
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				require.JSONEq(
					t,
					`{"identifier":"jill","password":"opensesame"}`,
					string(bodyBytes),
				)
				w.Header().Add(
					"Set-Cookie",
					"portfolio_session=abc123; Secure; HttpOnly; SameSite=Lax; "+
						"Max-Age=3600",
				)
				fmt.Fprint(w, `{"success":true,"message":"Login successful"}`)
			},
		),
	)
	defer server.Close()
	service := NewSessionsService(&testConfig{backendAPIAddress: server.URL})
	resp, err := service.Login(
		context.Background(),
		[]byte(`{"identifier":"jill","password":"opensesame"}`),
	)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(
		t,
		`{"success":true,"message":"Login successful"}`,
		string(resp.Body),
	)
	require.Len(t, resp.Cookies, 1)
	cookie := resp.Cookies[0]
	require.Equal(t, "portfolio_session", cookie.Name)
	require.Equal(t, "abc123", cookie.Value)
	require.True(t, cookie.Secure)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.Equal(t, 3600, cookie.MaxAge)
	require.Equal(t, "/", cookie.Path)
}

func TestSessionsServiceLoginWithBackendFailure(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"success":false,"message":"Invalid credentials"}`)
			},
		),
	)
	defer server.Close()
	service := NewSessionsService(&testConfig{backendAPIAddress: server.URL})
	resp, err := service.Login(context.Background(), []byte(`{}`))
	require.NoError(t, err)
	// Backend status and body pass through verbatim
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.JSONEq(
		t,
		`{"success":false,"message":"Invalid credentials"}`,
		string(resp.Body),
	)
	require.Empty(t, resp.Cookies)
}

func TestSessionsServiceLoginWithBackendUnreachable(t *testing.T) {
	service := NewSessionsService(
		&testConfig{backendAPIAddress: "http://localhost:0"},
	)
	_, err := service.Login(context.Background(), []byte(`{}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "error forwarding")
}

func TestSessionsServiceMe(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/v1/auth/me", r.URL.Path)
				cookie, err := r.Cookie(sdk.DefaultSessionCookieName)
				require.NoError(t, err)
				require.Equal(t, "abc123", cookie.Value)
				fmt.Fprint(w, `{"success":true,"data":{"id":"42"}}`)
			},
		),
	)
	defer server.Close()
	service := NewSessionsService(&testConfig{backendAPIAddress: server.URL})
	resp, err := service.Me(
		context.Background(),
		&http.Cookie{
			Name:  sdk.DefaultSessionCookieName,
			Value: "abc123",
		},
	)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"success":true,"data":{"id":"42"}}`, string(resp.Body))
}

func TestSessionsServiceMeWithNoCookie(t *testing.T) {
	backendCalled := false
	server := httptest.NewServer(
		http.HandlerFunc(
			func(http.ResponseWriter, *http.Request) {
				backendCalled = true
			},
		),
	)
	defer server.Close()
	service := NewSessionsService(&testConfig{backendAPIAddress: server.URL})
	resp, err := service.Me(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.JSONEq(
		t,
		`{"success":false,"message":"Not authenticated"}`,
		string(resp.Body),
	)
	require.False(t, backendCalled)
}

func TestSessionsServiceLogout(t *testing.T) {
	backendCalled := false
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				backendCalled = true
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/v1/auth/logout", r.URL.Path)
				_, err := r.Cookie(sdk.DefaultSessionCookieName)
				require.NoError(t, err)
				fmt.Fprint(w, `{"success":true}`)
			},
		),
	)
	defer server.Close()
	service := NewSessionsService(&testConfig{backendAPIAddress: server.URL})
	resp := service.Logout(
		context.Background(),
		&http.Cookie{
			Name:  sdk.DefaultSessionCookieName,
			Value: "abc123",
		},
	)
	require.True(t, backendCalled)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, resp.Cookies, 1)
	require.Equal(t, sdk.DefaultSessionCookieName, resp.Cookies[0].Name)
	require.Empty(t, resp.Cookies[0].Value)
	require.Equal(t, -1, resp.Cookies[0].MaxAge)
}

func TestSessionsServiceLogoutWithBackendUnreachable(t *testing.T) {
	service := NewSessionsService(
		&testConfig{backendAPIAddress: "http://localhost:0"},
	)
	resp := service.Logout(
		context.Background(),
		&http.Cookie{
			Name:  sdk.DefaultSessionCookieName,
			Value: "abc123",
		},
	)
	// Logout is locally successful no matter what
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, resp.Cookies, 1)
	require.Equal(t, -1, resp.Cookies[0].MaxAge)
}

func TestSessionsServiceLogoutWithNoCookie(t *testing.T) {
	backendCalled := false
	server := httptest.NewServer(
		http.HandlerFunc(
			func(http.ResponseWriter, *http.Request) {
				backendCalled = true
			},
		),
	)
	defer server.Close()
	service := NewSessionsService(&testConfig{backendAPIAddress: server.URL})
	resp := service.Logout(context.Background(), nil)
	require.False(t, backendCalled)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
