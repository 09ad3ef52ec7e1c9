package authn

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/pkg/errors"

	"portfolio-gateway/gateway/internal/lib/restmachinery"
)

type guardFilter struct {
	store     StateStore
	loginPath string
	initOnce  sync.Once
}

// NewGuardFilter returns a restmachinery.Filter that gates requests for
// protected resources on the state store's status: authenticated requests
// pass through, unauthenticated ones are redirected to the login page, and
// anything in between is told to come back shortly.
func NewGuardFilter(store StateStore, loginPath string) restmachinery.Filter {
	return &guardFilter{
		store:     store,
		loginPath: loginPath,
	}
}

func (g *guardFilter) Decorate(handle http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The first protected request triggers exactly one revalidation.
		// Requests arriving while it is in flight wait for it here.
		g.initOnce.Do(g.initialize)
		switch g.store.State().Status {
		case StatusAuthenticated:
			handle(w, r)
		case StatusUnauthenticated:
			http.Redirect(w, r, g.loginPath, http.StatusFound)
		default:
			// Idle or loading: some other session operation is in flight
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, err := w.Write(
				[]byte(`{"success":false,"message":"Session validation in progress"}`), // nolint: lll
			); err != nil {
				log.Println(errors.Wrap(err, "error writing response body"))
			}
		}
	}
}

func (g *guardFilter) initialize() {
	if g.store.State().Status == StatusIdle {
		// Deliberately not a request-scoped context: a client hanging up must
		// not cancel the one revalidation every other request depends on.
		g.store.RefreshMe(context.Background())
	}
}
