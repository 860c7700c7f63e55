package interceptors

import (
	"net/http"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/helpers"
)

// RequestIDIntercept carries the caller's X-Request-Id into the request
// context so every operation started by the request logs it.
func RequestIDIntercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(helpers.RequestIDHeader)
		if requestID == "" {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set(helpers.RequestIDHeader, requestID)
		ctx := helpers.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
