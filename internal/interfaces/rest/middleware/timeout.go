package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/interfaces/rest"
)

// Timeout bounds each request. Upstream decoders see the deadline through
// the request context; a handler that overruns gets the TIMEOUT envelope.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	_, body := rest.BuildErrorResponse(application.NewTimeoutError(errors.New("request timeout")))
	msg, _ := json.Marshal(body)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)

			timeoutHandler := http.TimeoutHandler(next, timeout, string(msg))

			timeoutHandler.ServeHTTP(w, r)
		})
	}
}
