package middleware

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// LimitAndDrainRequest caps request bodies at maxBodyBytes, so an oversized
// draft or session sets payload fails to decode instead of being read whole.
// After the handler returns, the unread rest of the body (still within the cap)
// is drained and the body closed, letting the connection be reused.
func LimitAndDrainRequest(maxBodyBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}
			next.ServeHTTP(w, r)
			if r.Body != nil {
				if n, err := io.Copy(io.Discard, r.Body); err != nil {
					log.Tracef("drain request body %s %s: %s", r.Method, r.URL.Path, err)
				} else if n > 0 {
					log.Tracef("drained %d unread body bytes of %s %s", n, r.Method, r.URL.Path)
				}
				_ = r.Body.Close()
			}
		})
	}
}
