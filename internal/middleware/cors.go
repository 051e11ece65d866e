// Package middleware provides HTTP middleware for the StudentHub API.
package middleware

import "net/http"

// CORS returns middleware that answers cross-origin requests for the given
// origins. A "*" entry echoes any origin but never grants credentials;
// Allow-Credentials is set only for an exact origin match, since a
// credentialed wildcard echo would open the API to CSRF.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed, credentialed := false, false
			for _, o := range allowedOrigins {
				if o != "*" && o == origin {
					allowed, credentialed = true, true
					break
				}
				if o == "*" {
					allowed = true
				}
			}

			if allowed && origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				if credentialed {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
