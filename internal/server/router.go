package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/Maariakh-cs/medex/internal/common"
)

// NewRouter wires the extraction endpoint with CORS, per-IP rate
// limiting, request IDs, and request logging.
func NewRouter(cfg common.ServerConfig, svc *ExtractService, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(requestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(cfg.MaxRequestsRate, time.Second))

	r.Get("/healthz", handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/extract", svc.HandleExtract)
	})
	return r
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = common.NewRequestID()
		}
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(common.WithRequestID(r.Context(), reqID)))
	})
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.String("request_id", common.RequestIDFromContext(r.Context())),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
