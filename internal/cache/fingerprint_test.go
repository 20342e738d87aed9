package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/linkstats/internal/cache"
)

// TestFingerprint_Deterministic verifies equal requests share a key.
func TestFingerprint_Deterministic(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		a, b     cache.Params
	}{
		{
			name:     "nil and empty params",
			endpoint: "quickstats",
			a:        nil,
			b:        cache.Params{},
		},
		{
			name:     "same contents",
			endpoint: "profile",
			a:        cache.Params{"profileId": 1, "startDate": "2025-01-01", "endDate": nil},
			b:        cache.Params{"profileId": 1, "startDate": "2025-01-01", "endDate": nil},
		},
		{
			name:     "different construction order",
			endpoint: "time",
			a: func() cache.Params {
				p := cache.Params{}
				p["granularity"] = "daily"
				p["profileId"] = 3
				p["endDate"] = "2025-02-01"
				return p
			}(),
			b: func() cache.Params {
				p := cache.Params{}
				p["endDate"] = "2025-02-01"
				p["profileId"] = 3
				p["granularity"] = "daily"
				return p
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k1 := cache.Fingerprint(tt.endpoint, tt.a)
			k2 := cache.Fingerprint(tt.endpoint, tt.b)
			assert.Equal(t, k1, k2)
			assert.Contains(t, k1, tt.endpoint+"_")
		})
	}
}

// TestFingerprint_Distinct verifies different requests get different keys.
func TestFingerprint_Distinct(t *testing.T) {
	base := cache.Params{"profileId": 1, "days": 7}
	baseKey := cache.Fingerprint("quickstats", base)

	tests := []struct {
		name     string
		endpoint string
		params   cache.Params
	}{
		{name: "different endpoint", endpoint: "comparison", params: base},
		{name: "different value", endpoint: "quickstats", params: cache.Params{"profileId": 1, "days": 30}},
		{name: "different profile", endpoint: "quickstats", params: cache.Params{"profileId": 2, "days": 7}},
		{name: "extra key", endpoint: "quickstats", params: cache.Params{"profileId": 1, "days": 7, "x": true}},
		{name: "string vs number", endpoint: "quickstats", params: cache.Params{"profileId": "1", "days": 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, baseKey, cache.Fingerprint(tt.endpoint, tt.params))
		})
	}
}

func TestFingerprint_UnencodableParams(t *testing.T) {
	ch := make(chan int)
	p := cache.Params{"ch": ch}

	assert.Equal(t, cache.Fingerprint("x", p), cache.Fingerprint("x", p))
}
