package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/oppbot/oppbot/internal/metrics"
	"github.com/oppbot/oppbot/internal/store"
)

const maxBodyBytes = 1 << 20 // 1MB

type createRequest struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// handleCreate analyzes posted text and stores the result.
// POST /opportunities
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	metrics.IncrAnalyzeRequests()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	analysis := s.Analyze(r.Context(), req.Content)
	opp := store.New(req.Content, req.Source, analysis)

	id, err := s.store.Save(r.Context(), opp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save opportunity")
		return
	}
	opp.ID = id
	s.NotifyHighPriority(opp)

	writeJSON(w, http.StatusCreated, opp)
}

// handleList returns stored opportunities, highest priority first.
// GET /opportunities?status=new&limit=50
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	f := store.ListFilter{Status: r.URL.Query().Get("status")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		f.Limit = n
	}

	opps, err := s.store.List(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if opps == nil {
		opps = []store.Opportunity{}
	}
	writeJSON(w, http.StatusOK, opps)
}

// GET /opportunities/{id}
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	opp, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "opportunity not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load opportunity")
		return
	}
	writeJSON(w, http.StatusOK, opp)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// PATCH /opportunities/{id}/status
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !store.ValidStatus(req.Status) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid status %q", req.Status))
		return
	}

	err = s.store.UpdateStatus(r.Context(), id, store.Status(req.Status))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "opportunity not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// GET /stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context(), s.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /metrics — plain-text counters.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	hits, misses := s.cache.Stats()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, metrics.Format(map[string]int64{
		"cache_hits":   hits,
		"cache_misses": misses,
	}))
}

// GET /healthz
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
