package rest

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"portfolio-gateway/gateway/internal/authn"
	"portfolio-gateway/gateway/internal/lib/restmachinery"
	"portfolio-gateway/sdk"
)

type sessionFlowConfig struct {
	backendAPIAddress string
}

func (s *sessionFlowConfig) BackendAPIAddress() string {
	return s.backendAPIAddress
}

func (s *sessionFlowConfig) SessionCookieName() string {
	return sdk.DefaultSessionCookieName
}

func (s *sessionFlowConfig) BackendTimeout() time.Duration {
	return 0
}

func (s *sessionFlowConfig) LoginPath() string {
	return "/login"
}

type memorySnapshots struct {
	user *sdk.User
}

func (m *memorySnapshots) Load() (*sdk.User, error) {
	return m.user, nil
}

func (m *memorySnapshots) Save(user *sdk.User) error {
	m.user = user
	return nil
}

func (m *memorySnapshots) Clear() error {
	m.user = nil
	return nil
}

// This test composes the real relay, the real SDK client, and the real state
// store against a fake backend to prove that a browser login through the
// gateway's own auth surface unlocks its guarded routes.
func TestBrowserLoginAuthenticatesGuardedRoutes(t *testing.T) {
	const sessionValue = "abc123"
	backend := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				switch {
				case r.Method == http.MethodPost &&
					r.URL.Path == "/v1/auth/login":
					w.Header().Add(
						"Set-Cookie",
						fmt.Sprintf(
							"%s=%s; HttpOnly; Path=/",
							sdk.DefaultSessionCookieName,
							sessionValue,
						),
					)
					fmt.Fprint(w, `{"success":true,"message":"Login successful"}`)
				case r.Method == http.MethodGet &&
					r.URL.Path == "/v1/auth/me":
					cookie, err := r.Cookie(sdk.DefaultSessionCookieName)
					require.NoError(t, err)
					require.Equal(t, sessionValue, cookie.Value)
					fmt.Fprint(
						w,
						`{"success":true,"data":{"id":"42","username":"jill"}}`,
					)
				default:
					http.NotFound(w, r)
				}
			},
		),
	)
	defer backend.Close()

	service := authn.NewSessionsService(
		&sessionFlowConfig{backendAPIAddress: backend.URL},
	)
	apiClient := sdk.NewClient(backend.URL, sdk.DefaultSessionCookieName, false)
	store := authn.NewStateStore(
		service,
		apiClient.Auth(),
		sdk.DefaultSessionCookieName,
		&memorySnapshots{},
	)
	baseEndpoints := &restmachinery.BaseEndpoints{
		AuthFilter: authn.NewGuardFilter(store, "/login"),
	}
	router := mux.NewRouter()
	NewSessionsEndpoints(
		baseEndpoints,
		sdk.DefaultSessionCookieName,
		service,
		store,
	).Register(router)
	router.HandleFunc(
		"/v1/admin/ping",
		baseEndpoints.AuthFilter.Decorate(
			func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"success":true}`)
			},
		),
	).Methods(http.MethodGet)

	// Before any login, guarded routes bounce to the login page
	req, err := http.NewRequest(http.MethodGet, "/v1/admin/ping", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, "/login", rr.Header().Get("Location"))

	// A browser login through the gateway's own endpoint
	req, err = http.NewRequest(
		http.MethodPost,
		"/v1/auth/login",
		bytes.NewBufferString(`{"identifier":"jill","password":"opensesame"}`),
	)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	// The session cookie reaches the browser...
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, sdk.DefaultSessionCookieName, cookies[0].Name)
	require.Equal(t, sessionValue, cookies[0].Value)
	// ...and the gateway adopted the same session for itself
	require.Equal(t, sessionValue, apiClient.Auth().SessionCookieValue())
	require.Equal(t, authn.StatusAuthenticated, store.State().Status)

	// The same guarded route now answers
	req, err = http.NewRequest(http.MethodGet, "/v1/admin/ping", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	// Logout through the gateway tears the session back down
	req, err = http.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	require.NoError(t, err)
	req.AddCookie(
		&http.Cookie{
			Name:  sdk.DefaultSessionCookieName,
			Value: sessionValue,
		},
	)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, apiClient.Auth().SessionCookieValue())
	require.Equal(t, authn.StatusUnauthenticated, store.State().Status)

	req, err = http.NewRequest(http.MethodGet, "/v1/admin/ping", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusFound, rr.Code)
}
