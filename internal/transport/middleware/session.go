package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/pkg/ctxutil"
)

type sessionDecoder interface {
	Decode(token string) (*domain.Session, error)
}

// Session reads the shopper token from the Authorization bearer header or,
// failing that, from the session cookie. A decodable, unexpired token puts the
// token and user id into the context. Anything else proceeds anonymously;
// handlers that need a session reject the request themselves.
func Session(decoder sessionDecoder, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				if c, err := r.Cookie(cookieName); err == nil {
					token = c.Value
				}
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := decoder.Decode(token)
			if err != nil || !sess.Valid(time.Now()) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxutil.WithToken(r.Context(), sess.Token)
			ctx = ctxutil.WithUserID(ctx, sess.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
