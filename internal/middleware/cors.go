package middleware

import (
	"net/http"
)

const (
	HeaderOrigin       = "Origin"
	HeaderVary         = "Vary"
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
	HeaderAllowCreds   = "Access-Control-Allow-Credentials"

	AllowedMethods = "GET, POST, OPTIONS"
	AllowedHeaders = "Content-Type, Accept"
)

// CORS allows cross-origin calls from allowedOrigin. "*" allows any origin
// without credentials.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get(HeaderOrigin)

			switch {
			case allowedOrigin == "*":
				w.Header().Set(HeaderAllowOrigin, "*")
				setAllowed(w)
			case origin != "" && origin == allowedOrigin:
				w.Header().Set(HeaderAllowOrigin, origin)
				w.Header().Set(HeaderAllowCreds, "true")
				w.Header().Add(HeaderVary, HeaderOrigin)
				setAllowed(w)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setAllowed(w http.ResponseWriter) {
	w.Header().Set(HeaderAllowMethods, AllowedMethods)
	w.Header().Set(HeaderAllowHeaders, AllowedHeaders)
}
