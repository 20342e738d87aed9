package analytics

import (
	"context"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/rshade/linkstats/internal/logging"
)

// apiVersionHeader carries the backend API version, when the backend sends it.
const apiVersionHeader = "X-API-Version"

// SupportedAPIMajor is the backend API major version this client understands.
const SupportedAPIMajor = 1

// versionChecker warns once when the backend reports an incompatible version.
type versionChecker struct {
	skip bool

	mu     sync.Mutex
	seen   string
	warned bool
}

func newVersionChecker(skip bool) *versionChecker {
	return &versionChecker{skip: skip}
}

// check records raw and logs a warning the first time its major version
// differs from SupportedAPIMajor. Unparseable versions are logged at debug.
func (v *versionChecker) check(ctx context.Context, raw string) {
	if raw == "" {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.seen = raw
	if v.skip || v.warned {
		return
	}

	log := logging.FromContext(ctx)
	parsed, err := semver.NewVersion(raw)
	if err != nil {
		log.Debug().Str("api_version", raw).Err(err).Msg("ignoring unparseable API version")
		return
	}

	if !Compatible(parsed) {
		v.warned = true
		log.Warn().
			Str("api_version", parsed.String()).
			Uint64("supported_major", SupportedAPIMajor).
			Msg("backend API version may be incompatible")
	}
}

func (v *versionChecker) last() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.seen
}

// Compatible reports whether version shares the supported major version.
func Compatible(version *semver.Version) bool {
	return version != nil && version.Major() == SupportedAPIMajor
}
