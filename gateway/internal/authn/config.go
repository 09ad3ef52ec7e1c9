package authn

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"portfolio-gateway/sdk"
)

const envconfigPrefix = "GATEWAY"

// We use an exported interface to govern access to our config because the
// underlying struct has fields we don't want to expose.
type Config interface {
	BackendAPIAddress() string
	SessionCookieName() string
	// BackendTimeout bounds each relayed backend call. Zero means no timeout
	// at all, which leaves a hung backend call hanging the corresponding
	// gateway request.
	BackendTimeout() time.Duration
	LoginPath() string
}

type config struct {
	BackendAPIAddressAttr string        `envconfig:"BACKEND_API_ADDRESS" required:"true"` // nolint: lll
	SessionCookieNameAttr string        `envconfig:"SESSION_COOKIE_NAME"`
	BackendTimeoutAttr    time.Duration `envconfig:"BACKEND_TIMEOUT"`
	LoginPathAttr         string        `envconfig:"LOGIN_PATH"`
}

// NewConfigWithDefaults returns a Config object with default values already
// applied. Callers are then free to set custom values for the remaining fields
// and/or override default values.
func NewConfigWithDefaults() Config {
	return &config{
		SessionCookieNameAttr: sdk.DefaultSessionCookieName,
		LoginPathAttr:         "/login",
	}
}

// GetConfigFromEnvironment returns configuration derived from environment
// variables
func GetConfigFromEnvironment() (Config, error) {
	c := NewConfigWithDefaults().(*config)
	if err := envconfig.Process(envconfigPrefix, c); err != nil {
		return c, err
	}
	return c, nil
}

func (c *config) BackendAPIAddress() string {
	return c.BackendAPIAddressAttr
}

func (c *config) SessionCookieName() string {
	return c.SessionCookieNameAttr
}

func (c *config) BackendTimeout() time.Duration {
	return c.BackendTimeoutAttr
}

func (c *config) LoginPath() string {
	return c.LoginPathAttr
}
