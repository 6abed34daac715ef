package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"

	"clinic-scheduling/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover corta el panic, lo loguea con el stack y responde 500 en JSON.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var stack [4096]byte
				n := runtime.Stack(stack[:], false)
				log.Error("panic recovered", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"panic":      fmt.Sprintf("%v", rec),
					"stack":      string(stack[:n]),
				})

				writeError(w, http.StatusInternalServerError, "internal error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
