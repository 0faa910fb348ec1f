package app

import (
	"net/http"
)

// Middleware wraps the handler installed by the app.
type Middleware func(next http.Handler) http.Handler

// Option configures the environment run by Run().
type Option func(o *opts)

type opts struct {
	middleware []Middleware
}

// WithMiddleware configures the app's HTTP server to use the provided middleware.
//
// Middleware is evaluated in addition order, and configured middleware is executed after
// the app's default middleware.
func WithMiddleware(m Middleware) Option {
	return func(o *opts) {
		o.middleware = append(o.middleware, m)
	}
}

// chain applies middleware so that the first one added is the outermost.
func chain(handler http.Handler, middleware ...Middleware) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}
