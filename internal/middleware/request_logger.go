package middleware

import (
	"net/http"
	"time"

	"eventhorizon/internal/platform/logger"
	"eventhorizon/internal/platform/metrics"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger loguea cada request terminado y alimenta el contador HTTP
// de métricas. Va después de chi.RequestID para poder incluirlo.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			metrics.ObserveHTTPRequest(r.Method, status)

			log.Info("http request", map[string]any{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     status,
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
				"request_id": chimw.GetReqID(r.Context()),
			})
		})
	}
}
