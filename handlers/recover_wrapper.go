package handlers

import (
	"log"
	"net/http"
	"runtime"

	"jobly/apperr"
)

// RecoverWrapper wraps a handler with panic recovery so one broken
// request cannot take the process down.
func RecoverWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				log.Printf("panic recovered: %v\n%s", rec, stack)
				writeError(w, apperr.New(http.StatusInternalServerError, "Internal Server Error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// HealthCheck reports process liveness.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
