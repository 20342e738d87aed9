package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/rshade/linkstats/internal/cache"
	"github.com/rshade/linkstats/internal/logging"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the configuration and returns every problem found, joined.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout))
	}
	if c.API.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("api.requests_per_second must be >= 0, got %g", c.API.RequestsPerSecond))
	}

	if c.Cache.Enabled {
		if err := cache.ValidateTTL(c.Cache.TTL); err != nil {
			errs = append(errs, fmt.Errorf("cache.ttl: %w", err))
		}
	}

	if c.Dashboard.ProfileID < 1 {
		errs = append(errs, fmt.Errorf("dashboard.profile_id must be >= 1, got %d", c.Dashboard.ProfileID))
	}
	if c.Dashboard.RefreshInterval < MinRefreshInterval {
		errs = append(errs, fmt.Errorf("dashboard.refresh_interval must be >= %s, got %s",
			MinRefreshInterval, c.Dashboard.RefreshInterval))
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil || c.Logging.Level == "" {
		errs = append(errs, fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level))
	}
	switch c.Logging.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be %q or %q",
			c.Logging.Format, logging.FormatConsole, logging.FormatJSON))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
