package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes is the default maximum request body size (8 MiB, room for inline base64 logos).
const DefaultMaxBodyBytes = 8 << 20

// MaxBytes limits the request body size. Handlers that decode past the limit get an error
// and answer 413 Request Entity Too Large.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				writeJSONError(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
