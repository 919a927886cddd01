// internal/middleware/logging.go
package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// statusWriter captures the response code for the access log. Only the first
// WriteHeader is recorded; later calls pass through for net/http to warn on.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

// LogMiddleware writes one access-log line per request with the response
// status and handling time.
func LogMiddleware(logger *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(sw, r)

			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.WithFields(logrus.Fields{
				"method":  r.Method,
				"path":    r.URL.Path,
				"status":  status,
				"took_ms": time.Since(start).Milliseconds(),
			}).Info("request served")
		})
	}
}

// LogWebSocketConnect logs an accepted live-update socket for a game.
func LogWebSocketConnect(logger *logrus.Logger, gameID, remoteAddr string) {
	logger.WithFields(logrus.Fields{
		"game":   gameID,
		"remote": remoteAddr,
	}).Info("live-update socket opened")
}

// LogWebSocketDisconnect logs a live-update socket teardown, with the close
// error if any.
func LogWebSocketDisconnect(logger *logrus.Logger, gameID, remoteAddr string, err error) {
	fields := logrus.Fields{
		"game":   gameID,
		"remote": remoteAddr,
	}
	if err != nil {
		fields["error"] = err
	}
	logger.WithFields(fields).Info("live-update socket closed")
}
