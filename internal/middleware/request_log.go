package middleware

import (
	"net/http"
	"strconv"
	"time"

	"clinic-scheduling/internal/platform/logger"
	"clinic-scheduling/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog loguea cada request con el id que puso chimw.RequestID
// y alimenta las métricas HTTP. Va después de RequestID en la cadena.
func RequestLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)
			elapsed := time.Since(start)

			metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

			fields := map[string]any{
				"request_id": chimw.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"route":      route,
				"status":     status,
				"bytes":      ww.BytesWritten(),
				"latency_ms": elapsed.Milliseconds(),
				"remote_ip":  r.RemoteAddr,
			}
			if status >= http.StatusInternalServerError {
				log.Error("request", fields)
				return
			}
			log.Info("request", fields)
		})
	}
}

// routePattern usa el patrón de chi ("/api/schedule/{id}") para no explotar
// la cardinalidad de las métricas con ids.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
