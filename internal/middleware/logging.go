package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitprogram/pkg"
)

// slowRequest is logged at warn level.
const slowRequest = 2 * time.Second

// LogRequest logs every finished request with its route template, status and
// duration at trace level.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			begin := time.Now()
			resp := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(resp, r)

			took := time.Since(begin)
			entry := log.WithFields(log.Fields{
				"method": r.Method,
				"route":  routeTemplate(r),
				"status": resp.statusCode,
				"took":   took.String(),
				"ip":     pkg.ReadUserIP(r),
			})
			if took > slowRequest {
				entry.Warnf("slow request: %s", r.URL.Path)
				return
			}
			entry.Tracef("request: %s", r.URL.Path)
		})
	}
}
