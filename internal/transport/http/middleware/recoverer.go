package middleware

import (
	"log"
	"net/http"

	"emprof/internal/transport/http/api"
)

// Recoverer keeps a panicking handler from taking the process down. The
// panic is logged with the request ID and the caller gets a plain 500
// envelope.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic recovered: %v requestId=%s", rec, GetRequestID(r.Context()))
				api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", GetRequestID(r.Context()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
