// Package httpserver exposes the PassGen JSON API over HTTP.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/and161185/goph-passgen/internal/limiter"
	"github.com/and161185/goph-passgen/internal/service"
	"github.com/and161185/goph-passgen/internal/session"
)

// maxBodyBytes caps request bodies; every request type is a handful of fields.
const maxBodyBytes = 64 << 10

// Handler serves the HTTP API.
type Handler struct {
	svc service.PassService
	log *zap.Logger
}

// Option configures the router.
type Option func(*options)

type options struct {
	trustProxy bool
}

// WithTrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
// Enable only behind a proxy that overwrites those headers; otherwise clients
// pick their own rate limit key.
func WithTrustProxy(on bool) Option { return func(o *options) { o.trustProxy = on } }

// New builds the router. lim may be nil to disable rate limiting.
func New(svc service.PassService, iss *session.Issuer, lim limiter.Limiter, log *zap.Logger, opts ...Option) http.Handler {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = zap.NewNop()
	}
	if lim == nil {
		lim = limiter.Unlimited{}
	}
	h := &Handler{svc: svc, log: log}

	r := chi.NewRouter()
	if o.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(recoverer(log))
	r.Use(logging(log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(rateLimit(lim, log))
		r.Use(sessionAuth(iss))

		r.Post("/generate-password", h.generate)
		r.Post("/passphrase", h.passphrase)
		r.Post("/evaluate", h.evaluate)
		r.Post("/session", h.newSession)

		r.Route("/history", func(r chi.Router) {
			r.Use(requireSession)
			r.Get("/", h.history)
			r.Delete("/", h.clearHistory)
			r.Get("/export", h.exportHistory)
		})
	})
	return r
}
