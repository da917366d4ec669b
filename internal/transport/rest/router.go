package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/hanzi-reader/internal/config"
	"github.com/heartmarshall/hanzi-reader/internal/transport/middleware"
)

// RouterDeps collects everything NewRouter wires together.
type RouterDeps struct {
	Logger             *slog.Logger
	Health             *HealthHandler
	Annotate           *AnnotateHandler
	Lookup             *LookupHandler
	CORS               config.CORSConfig
	Limiter            *middleware.RateLimiter
	RateLimitPerMinute int
}

// NewRouter builds the HTTP handler. Probes bypass CORS; the annotate
// endpoint is additionally rate limited per client.
func NewRouter(d RouterDeps) http.Handler {
	api := http.NewServeMux()
	api.Handle("POST /api/annotate", d.Limiter.Limit(d.RateLimitPerMinute)(http.HandlerFunc(d.Annotate.Annotate)))
	api.HandleFunc("GET /api/tone", d.Annotate.Tone)
	api.HandleFunc("GET /api/lookup", d.Lookup.Lookup)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)
	mux.Handle("/api/", middleware.Chain(middleware.CORS(d.CORS))(api))

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
	)(mux)
}
