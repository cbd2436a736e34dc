// Package fingerprint canonizes HTTP requests into deterministic cache keys.
//
// A fingerprint is derived from the effective request URL and its normalized
// header set only. The request body is deliberately excluded: distinct calls
// with logically-equivalent but textually different bodies (timestamps,
// generated IDs) must fingerprint identically. Keys are not guaranteed
// collision-free; equal keys are treated as duplicate requests.
package fingerprint

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// EffectiveURL extracts the request URL from any of the supported shapes:
// a bare string, a *url.URL, or a request value carrying a URL field.
func EffectiveURL(v any) (string, error) {
	switch u := v.(type) {
	case string:
		return u, nil
	case *url.URL:
		return u.String(), nil
	case url.URL:
		return u.String(), nil
	case *http.Request:
		if u.URL == nil {
			return "", fmt.Errorf("request has no URL")
		}
		return u.URL.String(), nil
	default:
		return "", fmt.Errorf("cannot extract URL from value of type %T", v)
	}
}

// NormalizeHeaders converts any supported header representation into a flat
// lower-cased name-to-value map. Supported shapes are the pair-list forms
// (http.Header, [][2]string) and an already-flat map[string]string. Repeated
// names collapse into a single comma-joined value. The result is never nil.
func NormalizeHeaders(v any) (map[string]string, error) {
	out := make(map[string]string)

	switch h := v.(type) {
	case nil:
		return out, nil
	case map[string]string:
		for name, value := range h {
			out[strings.ToLower(name)] = value
		}
		return out, nil
	case http.Header:
		for name, values := range h {
			out[strings.ToLower(name)] = strings.Join(values, ", ")
		}
		return out, nil
	case [][2]string:
		for _, pair := range h {
			name := strings.ToLower(pair[0])
			if existing, ok := out[name]; ok {
				out[name] = existing + ", " + pair[1]
			} else {
				out[name] = pair[1]
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot normalize headers of type %T", v)
	}
}

// Key builds the cache key for a request: the effective URL concatenated
// with the canonical JSON encoding of its normalized headers. json.Marshal
// sorts map keys, so equivalent header sets always produce the same key.
func Key(effectiveURL string, headers map[string]string) string {
	if headers == nil {
		headers = map[string]string{}
	}
	encoded, err := json.Marshal(headers)
	if err != nil {
		// map[string]string cannot fail to marshal
		encoded = []byte("{}")
	}
	return effectiveURL + string(encoded)
}
