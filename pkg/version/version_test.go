package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
}

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := version, gitCommit, buildDate
	t.Cleanup(func() { version, gitCommit, buildDate = origVersion, origCommit, origDate })

	version, gitCommit, buildDate = "v1.0.0", "", ""
	assert.Equal(t, "v1.0.0", String())

	gitCommit = "abc123"
	assert.Equal(t, "v1.0.0 (commit abc123)", String())

	buildDate = "2025-01-01"
	assert.Equal(t, "v1.0.0 (commit abc123, built 2025-01-01)", String())
	assert.Equal(t, "abc123", GetGitCommit())
	assert.Equal(t, "2025-01-01", GetBuildDate())
}
