// Package web exposes the opportunity service over HTTP: a JSON API,
// a Twilio WhatsApp webhook, and ops endpoints.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/oppbot/oppbot/internal/analyzer"
	"github.com/oppbot/oppbot/internal/cache"
	"github.com/oppbot/oppbot/internal/enhance"
	"github.com/oppbot/oppbot/internal/notify"
	"github.com/oppbot/oppbot/internal/store"
)

// Server wires the analyzer pipeline to storage and notifications.
type Server struct {
	store          store.Store
	enhancer       enhance.Enhancer
	enhanceTimeout time.Duration
	cache          *cache.Cache
	notifier       *notify.Notifier
	limiter        *rate.Limiter
	now            func() time.Time
}

// Options configures a Server. Store is required, the rest optional.
type Options struct {
	Store          store.Store
	Enhancer       enhance.Enhancer
	EnhanceTimeout time.Duration
	Cache          *cache.Cache
	Notifier       *notify.Notifier
	RateLimit      float64 // requests per second; 0 disables limiting
	RateBurst      int
	Now            func() time.Time
}

// NewServer builds the HTTP server around its dependencies.
func NewServer(opts Options) *Server {
	s := &Server{
		store:          opts.Store,
		enhancer:       opts.Enhancer,
		enhanceTimeout: opts.EnhanceTimeout,
		cache:          opts.Cache,
		notifier:       opts.Notifier,
		now:            opts.Now,
	}
	if s.enhanceTimeout <= 0 {
		s.enhanceTimeout = 20 * time.Second
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = int(opts.RateLimit)
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return s
}

// Router builds the chi mux with all routes registered.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.rateLimit)

	r.Post("/opportunities", s.handleCreate)
	r.Get("/opportunities", s.handleList)
	r.Get("/opportunities/{id}", s.handleGet)
	r.Patch("/opportunities/{id}/status", s.handleUpdateStatus)
	r.Get("/stats", s.handleStats)
	r.Get("/metrics", s.handleMetrics)
	r.Get("/healthz", s.handleHealthz)
	r.Post("/webhook/whatsapp", s.handleWhatsApp)

	return r
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Analyze runs the full pipeline: plain-text extraction, cache lookup,
// keyword analysis, optional LLM enhancement, cache store. The MCP tools
// share this pipeline.
func (s *Server) Analyze(ctx context.Context, raw string) analyzer.Analysis {
	text := extractText(raw)
	now := s.now()
	key := cache.Key(text, now)

	if a, ok := s.cache.Get(ctx, key); ok {
		return a
	}

	a := analyzer.Analyze(text, now)
	a = enhance.Apply(ctx, s.enhancer, s.enhanceTimeout, text, a)
	s.cache.Set(ctx, key, a)
	return a
}

// NotifyHighPriority fires a Telegram alert in the background so the
// request never waits on the Telegram API.
func (s *Server) NotifyHighPriority(opp store.Opportunity) {
	if s.notifier == nil {
		return
	}
	go func() {
		_ = s.notifier.HighPriority(opp)
	}()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("web: encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
