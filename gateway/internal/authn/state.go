package authn

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/pkg/errors"

	"portfolio-gateway/sdk"
)

// Status is a type whose values represent where the gateway stands in
// validating its session against the backend.
type Status string

const (
	// StatusIdle indicates that no validation has been attempted yet. This is
	// always the status on a fresh start, even when a persisted user was
	// rehydrated.
	StatusIdle Status = "idle"
	// StatusLoading indicates that a session operation is in flight.
	StatusLoading Status = "loading"
	// StatusAuthenticated indicates the backend has confirmed the session.
	StatusAuthenticated Status = "authenticated"
	// StatusUnauthenticated indicates there is no valid session.
	StatusUnauthenticated Status = "unauthenticated"
)

// State represents auth state at a point in time. Status authenticated
// implies a non-nil user; any other status means the user may be stale or
// nil.
type State struct {
	User   *sdk.User `json:"user"`
	Status Status    `json:"status"`
}

// StateStore is an interface for the single process-wide holder of auth
// state. Session lifecycle requests flow THROUGH the store: each action
// relays the browser's request to the backend verbatim, then settles the
// store's own state from the outcome. State changes happen only through the
// operations below. There are no setters.
type StateStore interface {
	// State returns a snapshot of the current auth state.
	State() State
	// Login relays a login request to the backend. When the backend issues a
	// session cookie, the store adopts that session as its own and populates
	// the user via an immediate revalidation rather than from the login
	// response itself. On failure, status becomes unauthenticated and any
	// prior user is left untouched; the relayed response carries the
	// backend's verdict back to the caller.
	Login(ctx context.Context, body []byte) (RelayedResponse, error)
	// Register relays a registration request to the backend. Success or
	// failure, status lands at unauthenticated, since a new registrant must
	// log in explicitly.
	Register(ctx context.Context, body []byte) (RelayedResponse, error)
	// ForgotPassword relays a password reset request to the backend. It never
	// touches status.
	ForgotPassword(ctx context.Context, body []byte) (RelayedResponse, error)
	// RefreshMe revalidates the adopted session against the backend. It never
	// returns an error: any failure resolves to an unauthenticated state with
	// the user cleared.
	RefreshMe(ctx context.Context)
	// Logout relays a logout to the backend on a best effort basis and
	// discards the adopted session. The terminal state is always a nil user
	// and status unauthenticated, whether or not the backend call succeeded.
	Logout(ctx context.Context, sessionCookie *http.Cookie) RelayedResponse
}

type stateStore struct {
	relay             SessionsService
	authClient        sdk.AuthClient
	sessionCookieName string
	snapshots         SnapshotStore
	// This mutex serializes actions so that each one fully determines the
	// resulting state from its own outcome.
	mu     sync.Mutex
	user   *sdk.User
	status Status
}

// NewStateStore returns the process-wide holder of auth state. Only a
// previously persisted user is rehydrated; status starts at idle regardless,
// forcing a revalidation round trip before any protected content is served.
func NewStateStore(
	relay SessionsService,
	authClient sdk.AuthClient,
	sessionCookieName string,
	snapshots SnapshotStore,
) StateStore {
	s := &stateStore{
		relay:             relay,
		authClient:        authClient,
		sessionCookieName: sessionCookieName,
		snapshots:         snapshots,
		status:            StatusIdle,
	}
	user, err := snapshots.Load()
	if err != nil {
		// A bad snapshot costs us nothing but the warm start
		log.Println(errors.Wrap(err, "error rehydrating user snapshot"))
		return s
	}
	s.user = user
	return s
}

func (s *stateStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		User:   s.user,
		Status: s.status,
	}
}

func (s *stateStore) Login(
	ctx context.Context,
	body []byte,
) (RelayedResponse, error) {
	s.setStatus(StatusLoading)
	resp, err := s.relay.Login(ctx, body)
	if err != nil || resp.StatusCode >= 300 {
		s.setStatus(StatusUnauthenticated)
		return resp, err
	}
	value, ok := s.issuedSessionCookieValue(resp.Cookies)
	if !ok {
		// A login the backend accepted but issued no session for cannot
		// authenticate this process
		s.setStatus(StatusUnauthenticated)
		return resp, nil
	}
	s.authClient.SetSessionCookieValue(value)
	// Login responses carry no guaranteed user object, so revalidate instead
	// of trusting the payload
	s.RefreshMe(ctx)
	return resp, nil
}

func (s *stateStore) Register(
	ctx context.Context,
	body []byte,
) (RelayedResponse, error) {
	s.setStatus(StatusLoading)
	resp, err := s.relay.Register(ctx, body)
	s.setStatus(StatusUnauthenticated)
	return resp, err
}

func (s *stateStore) ForgotPassword(
	ctx context.Context,
	body []byte,
) (RelayedResponse, error) {
	return s.relay.ForgotPassword(ctx, body)
}

func (s *stateStore) RefreshMe(ctx context.Context) {
	s.setStatus(StatusLoading)
	user, err := s.authClient.Me(ctx)
	if err != nil {
		log.Println(errors.Wrap(err, "error revalidating session"))
	}
	if err != nil || user == nil {
		s.setState(nil, StatusUnauthenticated)
		return
	}
	s.setState(user, StatusAuthenticated)
}

func (s *stateStore) Logout(
	ctx context.Context,
	sessionCookie *http.Cookie,
) RelayedResponse {
	s.setStatus(StatusLoading)
	resp := s.relay.Logout(ctx, sessionCookie)
	// The local session is over regardless of the backend's verdict
	s.authClient.SetSessionCookieValue("")
	s.setState(nil, StatusUnauthenticated)
	return resp
}

// issuedSessionCookieValue finds the session cookie, if any, among the
// cookies a relayed response re-emits.
func (s *stateStore) issuedSessionCookieValue(
	cookies []*http.Cookie,
) (string, bool) {
	for _, cookie := range cookies {
		if cookie.Name == s.sessionCookieName && cookie.Value != "" {
			return cookie.Value, true
		}
	}
	return "", false
}

func (s *stateStore) setStatus(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *stateStore) setState(user *sdk.User, status Status) {
	s.mu.Lock()
	s.user = user
	s.status = status
	s.mu.Unlock()
	if err := s.snapshots.Save(user); err != nil {
		log.Println(errors.Wrap(err, "error persisting user snapshot"))
	}
}
