// Package interceptor installs a record/replay wrapper over the process-wide
// HTTP transport. In replay mode, requests whose fingerprint matches a
// previously recorded exchange are answered from the cache without touching
// the network. Otherwise the real transport is used and the exchange is
// recorded and persisted through a caller-supplied sink.
package interceptor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"go-replay-cache/internal/fingerprint"
	"go-replay-cache/internal/interfaces"
	"go-replay-cache/internal/metrics"
	"go-replay-cache/internal/models"
)

// bypassHeaders marks internal test-server traffic that must never be
// recorded or replayed. Matching is against normalized (lower-cased) names.
var bypassHeaders = []string{
	"x-e2e-server-request",
	"x-e2e-logger-request",
}

// devBundlerMarker identifies traffic to the local development bundler.
const devBundlerMarker = ":8081"

// Ensure Transport implements http.RoundTripper
var _ http.RoundTripper = (*Transport)(nil)

// Transport is the wrapping transport installed over the real one.
type Transport struct {
	real    http.RoundTripper
	persist interfaces.PersistFunc
	replay  bool
	logger  *zap.Logger

	gate *readyGate

	mu    sync.Mutex
	cache models.CacheMap
}

// Install captures the current http.DefaultTransport as the real transport
// and replaces it (and http.DefaultClient's transport) with the wrapper.
// The replacement is process-wide and has no uninstall; calling Install
// again wraps the previous wrapper, so callers must invoke it at most once.
//
// With replayEnabled, the cache is loaded asynchronously via load; requests
// arriving before the load completes suspend until it does, and a load
// failure fails every pending and future wrapped call. With replayEnabled
// false the cache starts empty and requests proceed immediately.
func Install(load interfaces.LoadFunc, persist interfaces.PersistFunc, replayEnabled bool, logger *zap.Logger) {
	t := NewTransport(http.DefaultTransport, load, persist, replayEnabled, logger)
	http.DefaultTransport = t
	http.DefaultClient.Transport = t
}

// NewTransport builds the wrapping transport around an explicit real
// transport. Install is the usual entry point; this constructor exists so
// the wrapper can be placed on a specific http.Client.
func NewTransport(real http.RoundTripper, load interfaces.LoadFunc, persist interfaces.PersistFunc, replayEnabled bool, logger *zap.Logger) *Transport {
	t := &Transport{
		real:    real,
		persist: persist,
		replay:  replayEnabled,
		logger:  logger,
		gate:    newReadyGate(),
		cache:   models.CacheMap{},
	}

	if replayEnabled {
		go t.loadCache(load)
	} else {
		t.gate.resolve()
	}

	return t
}

// loadCache runs once in the background and settles the readiness gate.
func (t *Transport) loadCache(load interfaces.LoadFunc) {
	m, err := load(context.Background())
	if err != nil {
		t.logger.Error("Failed to load network cache", zap.Error(err))
		t.gate.fail(fmt.Errorf("failed to load network cache: %w", err))
		return
	}

	if m == nil {
		m = models.CacheMap{}
	}

	t.mu.Lock()
	t.cache = m
	t.mu.Unlock()

	t.logger.Info("Network cache loaded", zap.Int("entries", len(m)))
	t.gate.resolve()
}

// RoundTrip implements the wrapped fetch behavior.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	effURL, err := fingerprint.EffectiveURL(req)
	if err != nil {
		return nil, err
	}

	headers, err := fingerprint.NormalizeHeaders(req.Header)
	if err != nil {
		return nil, err
	}

	// Internal test-server and dev-bundler traffic must not touch the cache
	if shouldBypass(effURL, headers) {
		metrics.RecordBypassedCall()
		return t.real.RoundTrip(req)
	}

	if err := t.gate.wait(req.Context()); err != nil {
		return nil, err
	}

	key := fingerprint.Key(effURL, headers)

	if t.replay {
		if entry, found := t.lookup(key); found {
			metrics.RecordReplayHit()
			t.logger.Debug("Replaying recorded response",
				zap.String("url", effURL),
				zap.Int("status", entry.StatusCode))
			return synthesizeResponse(req, entry), nil
		}

		// Cache miss is not fatal, the call falls through to the network
		metrics.RecordReplayMiss()
		t.logger.Info("No recorded response, falling through to network",
			zap.String("url", effURL))
	}

	return t.record(req, key, effURL, headers)
}

// lookup returns the recorded entry for key, if any.
func (t *Transport) lookup(key string) (models.CacheEntry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, found := t.cache[key]
	return entry, found
}

// record performs the real call, writes the exchange into the cache and
// persists the updated map before handing the response back. The response
// body is drained and restored so the caller still gets a readable stream.
func (t *Transport) record(req *http.Request, key, effURL string, headers map[string]string) (*http.Response, error) {
	resp, err := t.real.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	respHeaders, err := fingerprint.NormalizeHeaders(resp.Header)
	if err != nil {
		return nil, err
	}

	entry := models.CacheEntry{
		URL: effURL,
		Options: models.RequestOptions{
			Method:  req.Method,
			Headers: headers,
		},
		Body:       string(body),
		Headers:    respHeaders,
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
	}

	// Overlapping calls may interleave here; the last persist to complete
	// wins at the persistence boundary, while the in-memory map already
	// reflects every completed write at the point each snapshot is taken.
	t.mu.Lock()
	t.cache[key] = entry
	snapshot := t.cache.Snapshot()
	t.mu.Unlock()

	metrics.RecordRecordedCall()
	t.logger.Debug("Recorded network exchange",
		zap.String("url", effURL),
		zap.Int("status", entry.StatusCode))

	timer := metrics.TimePersistOperation()
	persistErr := t.persist(req.Context(), snapshot)
	timer()
	if persistErr != nil {
		metrics.RecordPersistFailure()
		return nil, fmt.Errorf("failed to persist network cache: %w", persistErr)
	}

	return resp, nil
}

// shouldBypass reports whether the call must skip all caching logic.
func shouldBypass(effURL string, headers map[string]string) bool {
	for _, name := range bypassHeaders {
		if _, ok := headers[name]; ok {
			return true
		}
	}
	return strings.Contains(effURL, devBundlerMarker)
}

// synthesizeResponse reconstructs an *http.Response from a recorded entry.
func synthesizeResponse(req *http.Request, entry models.CacheEntry) *http.Response {
	header := make(http.Header, len(entry.Headers))
	for name, value := range entry.Headers {
		header.Set(name, value)
	}

	return &http.Response{
		Status:        strconv.Itoa(entry.StatusCode) + " " + entry.StatusText,
		StatusCode:    entry.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(strings.NewReader(entry.Body)),
		ContentLength: int64(len(entry.Body)),
		Request:       req,
	}
}

// statusText extracts the reason phrase from a response's status line.
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	return strings.TrimSpace(text)
}
