package sdk

import (
	"net/http"
	"sync"
)

// DefaultSessionCookieName is the name under which the backend issues its
// opaque session cookie. The value is never inspected on this side of the
// API; presence implies "possibly authenticated", absence implies "definitely
// unauthenticated".
const DefaultSessionCookieName = "portfolio_session"

// Client is the general interface for the portfolio backend API. It does little
// of its own and is mostly just an aggregation of more specialized clients,
// all of which share one session cookie.
type Client interface {
	// Auth returns a specialized client for session management.
	Auth() AuthClient
	// Experiences returns a specialized client for managing experiences.
	Experiences() ExperiencesClient
	// Projects returns a specialized client for managing projects.
	Projects() ProjectsClient
	// Public returns a specialized client for unauthenticated, public
	// endpoints.
	Public() PublicClient
}

type client struct {
	authClient        AuthClient
	experiencesClient ExperiencesClient
	projectsClient    ProjectsClient
	publicClient      PublicClient
}

// NewClient returns a client for the portfolio backend API. The session
// cookie name may be empty, in which case DefaultSessionCookieName is
// assumed.
func NewClient(
	apiAddress string,
	sessionCookieName string,
	allowInsecure bool,
) Client {
	if sessionCookieName == "" {
		sessionCookieName = DefaultSessionCookieName
	}
	session := &sessionCookieHolder{
		cookieName: sessionCookieName,
	}
	return &client{
		authClient:        NewAuthClient(apiAddress, session, allowInsecure),
		experiencesClient: NewExperiencesClient(apiAddress, session, allowInsecure),
		projectsClient:    NewProjectsClient(apiAddress, session, allowInsecure),
		publicClient:      NewPublicClient(apiAddress, allowInsecure),
	}
}

func (c *client) Auth() AuthClient {
	return c.authClient
}

func (c *client) Experiences() ExperiencesClient {
	return c.experiencesClient
}

func (c *client) Projects() ProjectsClient {
	return c.projectsClient
}

func (c *client) Public() PublicClient {
	return c.publicClient
}

// sessionCookieHolder is the one piece of mutable state shared by the
// specialized clients-- the session cookie captured at login and presented on
// subsequent authenticated requests.
type sessionCookieHolder struct {
	cookieName string
	mu         sync.Mutex
	value      string
}

func (s *sessionCookieHolder) get() *http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == "" {
		return nil
	}
	return &http.Cookie{
		Name:  s.cookieName,
		Value: s.value,
	}
}

func (s *sessionCookieHolder) set(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
}

// capture records the session cookie from a set of response cookies, if one
// is present. Other cookies are ignored.
func (s *sessionCookieHolder) capture(cookies []*http.Cookie) {
	for _, cookie := range cookies {
		if cookie.Name == s.cookieName {
			s.set(cookie.Value)
			return
		}
	}
}
