package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Load reads the configuration at path and applies environment overrides.
// An empty path means DefaultConfigPath; a missing default file yields the
// defaults. A missing explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	v := newViper()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if readErr := v.ReadInConfig(); readErr != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, readErr)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.DecodeHookFuncType(durationHook))); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return cfg, nil
}

// newViper returns a viper instance with defaults and env binding.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout.String())
	v.SetDefault("api.requests_per_second", d.API.RequestsPerSecond)
	v.SetDefault("api.skip_version_check", d.API.SkipVersionCheck)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL.String())
	v.SetDefault("cache.coalesce", d.Cache.Coalesce)
	v.SetDefault("dashboard.profile_id", d.Dashboard.ProfileID)
	v.SetDefault("dashboard.refresh_interval", d.Dashboard.RefreshInterval.String())
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)

	return v
}

// durationHook decodes durations from Go duration strings or integer
// milliseconds ("30s", "60000", 60000).
func durationHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}

	switch from.Kind() { //nolint:exhaustive // Only string and integer sources need conversion.
	case reflect.String:
		s := strings.TrimSpace(reflect.ValueOf(data).String())
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Duration(ms) * time.Millisecond, nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		return d, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Duration(reflect.ValueOf(data).Int()) * time.Millisecond, nil
	default:
		return data, nil
	}
}
