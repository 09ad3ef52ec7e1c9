package content

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

const envconfigPrefix = "GATEWAY"

// We use an exported interface to govern access to our config because the
// underlying struct has fields we don't want to expose.
type Config interface {
	// CacheTTL bounds how long a cached list page may be served before the
	// backend is consulted again.
	CacheTTL() time.Duration
}

type config struct {
	CacheTTLAttr time.Duration `envconfig:"CACHE_TTL"`
}

// NewConfigWithDefaults returns a Config object with default values already
// applied. Callers are then free to set custom values for the remaining fields
// and/or override default values.
func NewConfigWithDefaults() Config {
	return &config{CacheTTLAttr: time.Minute}
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

func (c *config) CacheTTL() time.Duration {
	return c.CacheTTLAttr
}
