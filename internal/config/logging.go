package config

import "github.com/rshade/linkstats/internal/logging"

// ToLoggingConfig converts the logging section for use with internal/logging.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		File:   lc.File,
	}
}
