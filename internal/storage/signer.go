package storage

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// unsignedParams never take part in an upload signature.
var unsignedParams = map[string]bool{
	"file":          true,
	"cloud_name":    true,
	"resource_type": true,
	"api_key":       true,
	"signature":     true,
}

// SignParams signs upload parameters the way the media host verifies them:
// non-empty params sorted by key, joined as k=v with "&", the secret
// appended, SHA-1 hex encoded. List values are joined with ",".
func SignParams(params map[string]interface{}, secret string) string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		if unsignedParams[key] || paramString(value) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, key := range keys {
		pairs[i] = key + "=" + paramString(params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

func paramString(value interface{}) string {
	switch v := value.(type) {
	case []string, []interface{}:
		return strings.Join(cast.ToStringSlice(v), ",")
	default:
		return cast.ToString(v)
	}
}
