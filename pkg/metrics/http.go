package metrics

import (
	"net/http"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// WrapHandleFunc instruments handler with a New Relic web transaction and
// makes app available to the metrics helpers through the request context.
// With a nil app the handler is returned unchanged.
func WrapHandleFunc(app *newrelic.Application, pattern string, handler http.HandlerFunc) http.HandlerFunc {
	if app == nil {
		return handler
	}

	withApp := func(w http.ResponseWriter, r *http.Request) {
		handler(w, r.WithContext(NewContext(r.Context(), app)))
	}

	_, wrapped := newrelic.WrapHandleFunc(app, pattern, withApp)
	return wrapped
}
