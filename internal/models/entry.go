package models

// RequestOptions captures the request side of a recorded exchange.
type RequestOptions struct {
	Method  string            `json:"method,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// CacheEntry represents one recorded network exchange. Entries are
// immutable once written; rerecording the same fingerprint overwrites.
type CacheEntry struct {
	URL        string            `json:"url"`
	Options    RequestOptions    `json:"options"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers"`
	StatusCode int               `json:"status_code"`
	StatusText string            `json:"status_text"`
}

// CacheMap maps a request fingerprint to its recorded exchange.
// Insertion order is irrelevant.
type CacheMap map[string]CacheEntry

// Snapshot returns a shallow copy safe to hand to a persister while
// the original keeps being mutated by later recordings.
func (m CacheMap) Snapshot() CacheMap {
	out := make(CacheMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
