package sdk

import (
	"context"
	"crypto/tls"
	"net/http"

	"github.com/pkg/errors"

	"portfolio-gateway/sdk/internal/restmachinery"
	"portfolio-gateway/sdk/meta"
)

// Registration encapsulates the details of a request to register a new user.
type Registration struct {
	// Email is the desired email address.
	Email string `json:"email"`
	// Username is the desired username.
	Username string `json:"username"`
	// Password is the desired password.
	Password string `json:"password"`
	// ConfirmPassword must match Password.
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthClient is the specialized client for authenticating against the
// portfolio backend API using its opaque session cookie.
type AuthClient interface {
	// Login authenticates using the given identifier (email or username) and
	// password. On success, the session cookie issued by the backend is
	// captured and presented on subsequent requests made through the parent
	// Client.
	Login(ctx context.Context, identifier string, password string) error
	// Register submits a request to register a new user. Registration does
	// not authenticate; a successful registrant still has to log in.
	Register(context.Context, Registration) error
	// ForgotPassword requests a password reset for the given email address.
	ForgotPassword(ctx context.Context, email string) error
	// Me returns the User the current session belongs to. A nil User with a
	// nil error means there is no authenticated session-- that outcome is
	// normal, not exceptional.
	Me(context.Context) (*User, error)
	// Logout ends the backend session and unconditionally discards the local
	// session cookie, even if the backend call fails.
	Logout(context.Context) error
	// SessionCookieValue returns the current opaque session cookie value, or
	// an empty string when there is none.
	SessionCookieValue() string
	// SetSessionCookieValue replaces the session cookie value, e.g. with one
	// previously persisted.
	SetSessionCookieValue(string)
}

type authClient struct {
	*restmachinery.BaseClient
	session *sessionCookieHolder
}

// NewAuthClient returns a specialized client for authenticating against the
// portfolio backend API.
func NewAuthClient(
	apiAddress string,
	session *sessionCookieHolder,
	allowInsecure bool,
) AuthClient {
	return &authClient{
		BaseClient: &restmachinery.BaseClient{
			APIAddress: apiAddress,
			HTTPClient: &http.Client{
				Transport: &http.Transport{
					TLSClientConfig: &tls.Config{
						InsecureSkipVerify: allowInsecure,
					},
				},
			},
		},
		session: session,
	}
}

func (a *authClient) Login(
	_ context.Context,
	identifier string,
	password string,
) error {
	resp, err := a.SubmitRequest(
		restmachinery.OutboundRequest{
			Method: http.MethodPost,
			Path:   "v1/auth/login",
			ReqBodyObj: map[string]string{
				"identifier": identifier,
				"password":   password,
			},
			SuccessCode: http.StatusOK,
		},
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	a.session.capture(resp.Cookies())
	if a.session.get() == nil {
		return errors.New(
			"login succeeded, but the API server issued no session cookie",
		)
	}
	return nil
}

func (a *authClient) Register(
	_ context.Context,
	registration Registration,
) error {
	return a.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        "v1/auth/register",
			ReqBodyObj:  registration,
			SuccessCode: http.StatusCreated,
		},
	)
}

func (a *authClient) ForgotPassword(_ context.Context, email string) error {
	return a.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method: http.MethodPost,
			Path:   "v1/auth/forgot-password",
			ReqBodyObj: map[string]string{
				"email": email,
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (a *authClient) Me(_ context.Context) (*User, error) {
	cookie := a.session.get()
	if cookie == nil {
		// No cookie means definitely unauthenticated. Don't bother the
		// backend.
		return nil, nil
	}
	user := &User{}
	err := a.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "v1/auth/me",
			Cookies:     []*http.Cookie{cookie},
			SuccessCode: http.StatusOK,
			RespObj:     user,
		},
	)
	switch errors.Cause(err).(type) {
	case nil:
	case *meta.ErrAuthentication, *meta.ErrAuthorization:
		// The session is gone or no good. A normal outcome.
		return nil, nil
	default:
		return nil, err
	}
	return user, nil
}

func (a *authClient) Logout(_ context.Context) error {
	cookie := a.session.get()
	// Whatever the backend says, the local session is over.
	defer a.session.set("")
	if cookie == nil {
		return nil
	}
	return a.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        "v1/auth/logout",
			Cookies:     []*http.Cookie{cookie},
			SuccessCode: http.StatusOK,
		},
	)
}

func (a *authClient) SessionCookieValue() string {
	if cookie := a.session.get(); cookie != nil {
		return cookie.Value
	}
	return ""
}

func (a *authClient) SetSessionCookieValue(value string) {
	a.session.set(value)
}
