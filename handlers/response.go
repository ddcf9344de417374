package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"jobly/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError is the terminal error handler. Handlers never recover from
// failures themselves; everything funnels here, gets logged with detail
// server-side, and leaves as the uniform {status, message} envelope.
func writeError(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		log.Printf("unhandled error: %v", err)
		ae = apperr.New(http.StatusInternalServerError, "Internal Server Error")
	} else if ae.Status >= http.StatusInternalServerError {
		log.Printf("server error: %v", err)
	}
	writeJSON(w, ae.Status, ae)
}

// NotFoundHandler serves the generic envelope for unmatched routes.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, apperr.NotFound("Not Found"))
	})
}
