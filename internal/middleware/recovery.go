package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/liftly/internal/telemetry/metrics"
	"github.com/2beens/liftly/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a 500 with the usual JSON error body.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					routeName := "unknown"
					if route := mux.CurrentRoute(req); route != nil && route.GetName() != "" {
						routeName = route.GetName()
					}
					log.Errorf("http: panic serving %s %s [route %s]: %v\n%s", req.Method, req.URL.Path, routeName, r, debug.Stack())
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.Inc()
					}
					pkg.WriteJSONError(respWriter, "", "something went wrong, please try again", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}
