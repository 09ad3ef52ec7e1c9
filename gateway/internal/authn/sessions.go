package authn

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"net/http"

	"github.com/pkg/errors"
)

// RelayedResponse carries a backend response back toward the browser. The
// status code and body are re-emitted verbatim; the cookies have already been
// rewritten for emission on the gateway's own origin.
type RelayedResponse struct {
	StatusCode int
	Body       []byte
	Cookies    []*http.Cookie
}

// SessionsService is the specialized service for relaying session lifecycle
// requests to the backend API. The gateway never inspects or trusts the
// session cookie's contents-- only its presence.
type SessionsService interface {
	// Login forwards the given request body verbatim to the backend's login
	// endpoint and relays the response, including any session cookie the
	// backend issued.
	Login(ctx context.Context, body []byte) (RelayedResponse, error)
	// Register forwards the given request body verbatim to the backend's
	// registration endpoint. Registration never issues a session.
	Register(ctx context.Context, body []byte) (RelayedResponse, error)
	// ForgotPassword forwards the given request body verbatim to the backend's
	// password reset endpoint.
	ForgotPassword(ctx context.Context, body []byte) (RelayedResponse, error)
	// Me resolves the user attached to the given session cookie. A nil cookie
	// short-circuits with a 401 response without ever contacting the backend.
	Me(ctx context.Context, sessionCookie *http.Cookie) (RelayedResponse, error)
	// Logout ends the backend session on a best effort basis. The response
	// always reports success and always expires the local session cookie,
	// whatever the backend had to say about it.
	Logout(ctx context.Context, sessionCookie *http.Cookie) RelayedResponse
}

type sessionsService struct {
	backendAPIAddress string
	sessionCookieName string
	httpClient        *http.Client
}

// NewSessionsService returns a specialized service for relaying session
// lifecycle requests to the backend API.
func NewSessionsService(config Config) SessionsService {
	return &sessionsService{
		backendAPIAddress: config.BackendAPIAddress(),
		sessionCookieName: config.SessionCookieName(),
		httpClient: &http.Client{
			Timeout: config.BackendTimeout(),
		},
	}
}

func (s *sessionsService) Login(
	ctx context.Context,
	body []byte,
) (RelayedResponse, error) {
	return s.forward(ctx, http.MethodPost, "v1/auth/login", body, nil)
}

func (s *sessionsService) Register(
	ctx context.Context,
	body []byte,
) (RelayedResponse, error) {
	return s.forward(ctx, http.MethodPost, "v1/auth/register", body, nil)
}

func (s *sessionsService) ForgotPassword(
	ctx context.Context,
	body []byte,
) (RelayedResponse, error) {
	return s.forward(ctx, http.MethodPost, "v1/auth/forgot-password", body, nil)
}

func (s *sessionsService) Me(
	ctx context.Context,
	sessionCookie *http.Cookie,
) (RelayedResponse, error) {
	if sessionCookie == nil {
		// No cookie means definitely unauthenticated. Don't bother the backend.
		return RelayedResponse{
			StatusCode: http.StatusUnauthorized,
			Body:       []byte(`{"success":false,"message":"Not authenticated"}`),
		}, nil
	}
	return s.forward(ctx, http.MethodGet, "v1/auth/me", nil, sessionCookie)
}

func (s *sessionsService) Logout(
	ctx context.Context,
	sessionCookie *http.Cookie,
) RelayedResponse {
	if sessionCookie != nil {
		if _, err := s.forward(
			ctx,
			http.MethodPost,
			"v1/auth/logout",
			nil,
			sessionCookie,
		); err != nil {
			// The user-facing guarantee is "you are logged out of this
			// browser," not "the backend invalidated the token."
			log.Println(errors.Wrap(err, "error relaying logout to the backend"))
		}
	}
	return RelayedResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"success":true,"message":"Logged out"}`),
		Cookies:    []*http.Cookie{s.expiredSessionCookie()},
	}
}

func (s *sessionsService) forward(
	ctx context.Context,
	method string,
	path string,
	body []byte,
	sessionCookie *http.Cookie,
) (RelayedResponse, error) {
	var bodyReader io.Reader
	if len(body) > 0 {
		bodyReader = bytes.NewBuffer(body)
	}
	req, err := http.NewRequest(
		method,
		fmt.Sprintf("%s/%s", s.backendAPIAddress, path),
		bodyReader,
	)
	if err != nil {
		return RelayedResponse{}, errors.Wrapf(
			err,
			"error creating request %s /%s",
			method,
			path,
		)
	}
	req = req.WithContext(ctx)
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionCookie != nil {
		req.AddCookie(sessionCookie)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return RelayedResponse{}, errors.Wrapf(
			err,
			"error forwarding %s /%s to the backend",
			method,
			path,
		)
	}
	defer resp.Body.Close()
	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return RelayedResponse{}, errors.Wrap(
			err,
			"error reading backend response body",
		)
	}
	return RelayedResponse{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Cookies:    relayedCookies(resp),
	}, nil
}

func (s *sessionsService) expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}
}
