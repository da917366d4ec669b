package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/hanzi-reader/pkg/ctxutil"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-Id"

// maxRequestIDLen bounds client-supplied IDs before they reach the logs.
const maxRequestIDLen = 128

// RequestID returns middleware that reuses the incoming X-Request-Id or
// generates a new UUID, stores it in the context and sets the response header.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.New().String()
			}
			ctx := ctxutil.WithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
