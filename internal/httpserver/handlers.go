package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"go-replay-cache/internal/metrics"
	"go-replay-cache/internal/models"
)

// maxRecordingSize bounds uploaded recordings to 64 MB.
const maxRecordingSize = 64 << 20

// handleDownload returns the recorded cache map for a run
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]

	blob, found, err := s.store.Get(r.Context(), runID)
	if err != nil {
		metrics.RecordServerRequest("download", "error")
		s.writeErrorResponse(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return
	}

	if !found {
		metrics.RecordServerRequest("download", "not_found")
		s.writeErrorResponse(w, fmt.Sprintf("No recording for run '%s'", runID), http.StatusNotFound)
		return
	}

	metrics.RecordServerRequest("download", "ok")
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(blob); err != nil {
		s.logger.Error("Failed to write recording", zap.String("run_id", runID), zap.Error(err))
	}
}

// handleUpload stores or replaces the recorded cache map for a run
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRecordingSize))
	if err != nil {
		metrics.RecordServerRequest("upload", "error")
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.Body.Close() }()

	// Reject blobs that are not a valid serialized cache map
	var m models.CacheMap
	if err := json.Unmarshal(body, &m); err != nil {
		metrics.RecordServerRequest("upload", "invalid")
		s.writeErrorResponse(w, fmt.Sprintf("Invalid cache map: %v", err), http.StatusBadRequest)
		return
	}

	if err := s.store.Set(r.Context(), runID, body); err != nil {
		metrics.RecordServerRequest("upload", "error")
		s.writeErrorResponse(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return
	}

	s.logger.Info("Stored recording",
		zap.String("run_id", runID),
		zap.Int("entries", len(m)))
	metrics.RecordServerRequest("upload", "ok")
	s.updateStoredRecordings(r)

	s.writeResponse(w, map[string]interface{}{
		"success": true,
		"entries": len(m),
	})
}

// handleDelete drops the recording for a run
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]

	if err := s.store.Delete(r.Context(), runID); err != nil {
		metrics.RecordServerRequest("delete", "error")
		s.writeErrorResponse(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return
	}

	metrics.RecordServerRequest("delete", "ok")
	s.updateStoredRecordings(r)

	s.writeResponse(w, map[string]interface{}{
		"success": true,
	})
}

// handleList returns the known run IDs
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	keys, err := s.store.Keys(r.Context())
	if err != nil {
		metrics.RecordServerRequest("list", "error")
		s.writeErrorResponse(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return
	}

	metrics.RecordServerRequest("list", "ok")
	s.writeResponse(w, map[string]interface{}{
		"success": true,
		"runs":    keys,
	})
}

// updateStoredRecordings refreshes the stored recordings gauge
func (s *Server) updateStoredRecordings(r *http.Request) {
	keys, err := s.store.Keys(r.Context())
	if err != nil {
		s.logger.Warn("Failed to count stored recordings", zap.Error(err))
		return
	}
	metrics.UpdateStoredRecordings(len(keys))
}
