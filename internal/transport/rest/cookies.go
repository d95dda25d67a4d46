package rest

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storefront-backend/internal/config"
	"github.com/heartmarshall/storefront-backend/pkg/ctxutil"
)

// Cookies names and scopes the session and cart cookies.
type Cookies struct {
	Session string
	Cart    string
	Secure  bool
	CartTTL time.Duration
}

// NewCookies derives cookie settings from SessionConfig.
func NewCookies(cfg config.SessionConfig) Cookies {
	return Cookies{
		Session: cfg.CookieName,
		Cart:    cfg.CartCookie,
		Secure:  cfg.CookieSecure,
		CartTTL: time.Duration(cfg.CartMaxAgeDays) * 24 * time.Hour,
	}
}

// withCart binds the shopper's cart id to the request context.
func (c Cookies) withCart(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := c.cartID(w, r)
		next(w, r.WithContext(ctxutil.WithCartID(r.Context(), id)))
	}
}

// boundCartID returns the cart id put in the context by withCart.
func boundCartID(r *http.Request) uuid.UUID {
	id, _ := ctxutil.CartIDFromCtx(r.Context())
	return id
}

// cartID returns the cart id from the request cookie, issuing a fresh one
// (and setting the cookie) when it is missing or malformed.
func (c Cookies) cartID(w http.ResponseWriter, r *http.Request) uuid.UUID {
	if ck, err := r.Cookie(c.Cart); err == nil {
		if id, err := uuid.Parse(ck.Value); err == nil && id != uuid.Nil {
			return id
		}
	}
	id := uuid.New()
	http.SetCookie(w, &http.Cookie{
		Name:     c.Cart,
		Value:    id.String(),
		Path:     "/",
		MaxAge:   int(c.CartTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (c Cookies) setSession(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Session,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookies) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Session,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
