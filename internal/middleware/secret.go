package middleware

import "net/http"

// SharedSecret exige un header fijo con un valor fijo. Header ausente o
// distinto => 401 sin body.
func SharedSecret(header, value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(header) != value {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
