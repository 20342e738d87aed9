package cache

import (
	"fmt"
	"strconv"
	"time"
)

// TTL configuration constants and defaults.
const (
	// DefaultTTL is the default freshness window (1 minute).
	DefaultTTL = time.Minute

	// MinTTL is the minimum configurable TTL.
	MinTTL = time.Second

	// MaxTTL is the maximum configurable TTL.
	MaxTTL = 24 * time.Hour

	// minutesPerHour is used for duration formatting calculations.
	minutesPerHour = 60
)

// ErrInvalidTTL is returned when a TTL falls outside [MinTTL, MaxTTL].
var ErrInvalidTTL = fmt.Errorf("TTL must be between %s and %s", MinTTL, MaxTTL)

// ValidateTTL checks that ttl is within the configurable range.
func ValidateTTL(ttl time.Duration) error {
	if ttl < MinTTL || ttl > MaxTTL {
		return fmt.Errorf("%w: got %s", ErrInvalidTTL, ttl)
	}
	return nil
}

// ParseTTL parses a TTL string in either format:
// - Integer milliseconds: "60000".
// - Duration string: "1m", "30s", "1m30s".
func ParseTTL(s string) (time.Duration, error) {
	var ttl time.Duration

	if ms, err := strconv.Atoi(s); err == nil {
		ttl = time.Duration(ms) * time.Millisecond
	} else {
		d, parseErr := time.ParseDuration(s)
		if parseErr != nil {
			return 0, fmt.Errorf("invalid TTL format: %w", parseErr)
		}
		ttl = d
	}

	if err := ValidateTTL(ttl); err != nil {
		return 0, err
	}
	return ttl, nil
}

// FormatDuration formats a duration in a human-readable way.
// Examples: "500ms", "45s", "1m", "5m30s", "2h", "1h30m".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
}
