package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"licensure/pkg/requestcontext"
)

// requestID tags every request with an ID, honoring one supplied by the
// caller so traces line up across systems.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}
