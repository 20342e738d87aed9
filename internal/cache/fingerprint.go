package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Params is the parameter set of a request. Map keys are sorted when encoded,
// so two maps with the same contents always fingerprint identically. Nested
// slices keep their order; callers must sort them if order is not meaningful.
type Params map[string]any

// Fingerprint derives the cache key for a request to endpoint with params.
// The result is "<endpoint>_<sha256 of the JSON-encoded params>".
func Fingerprint(endpoint string, params Params) string {
	if params == nil {
		params = Params{}
	}

	data, err := json.Marshal(params)
	if err != nil {
		// Unencodable values (channels, funcs) still need a stable key.
		data = []byte(fmt.Sprintf("%#v", params))
	}

	sum := sha256.Sum256(data)
	return endpoint + "_" + hex.EncodeToString(sum[:])
}
