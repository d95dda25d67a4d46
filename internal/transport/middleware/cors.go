package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/storefront-backend/internal/config"
)

// exposedHeaders lets browser clients read rate limit and tracing headers.
const exposedHeaders = "Retry-After, " + RequestIDHeader

// CORS returns middleware that handles Cross-Origin Resource Sharing for the
// storefront frontend. Allowed origins get credentialed access so the session
// and cart cookies travel; preflight OPTIONS requests are answered here.
// An empty origin list disables CORS handling and returns nil.
func CORS(cfg config.CORSConfig) Middleware {
	if strings.TrimSpace(cfg.AllowedOrigins) == "" {
		return nil
	}
	origins := strings.Split(cfg.AllowedOrigins, ",")
	methods := cfg.AllowedMethods
	headers := cfg.AllowedHeaders

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			w.Header().Add("Vary", "Origin")
			if origin != "" {
				if allowed, listed := matchOrigin(origin, origins); allowed {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Expose-Headers", exposedHeaders)
					// Credentials only for explicitly listed origins, never via "*".
					if cfg.AllowCredentials && listed {
						w.Header().Set("Access-Control-Allow-Credentials", "true")
					}
				}
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// matchOrigin reports whether origin is allowed and whether it is listed by
// name rather than matched by the wildcard.
func matchOrigin(origin string, allowed []string) (ok, listed bool) {
	for _, a := range allowed {
		switch strings.TrimSpace(a) {
		case origin:
			return true, true
		case "*":
			ok = true
		}
	}
	return ok, false
}
