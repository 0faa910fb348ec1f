package app

import (
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// recoveryMiddleware turns a panicking handler into a 500 instead of a dropped
// connection.
func recoveryMiddleware(log *logrus.Entry) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					if recovered == http.ErrAbortHandler {
						panic(recovered)
					}

					log.WithFields(logrus.Fields{
						"path":   r.URL.Path,
						"method": r.Method,
						"panic":  recovered,
						"stack":  string(debug.Stack()),
					}).Error("recovered from handler panic")

					w.WriteHeader(http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
