package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

type sessionService interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Require(ctx context.Context) (*domain.Session, error)
	Account(ctx context.Context) (*domain.Account, error)
}

// AuthHandler serves login, logout, session and account endpoints. Tokens are
// issued by the backend; this handler only relays them into a cookie.
type AuthHandler struct {
	svc     sessionService
	cookies Cookies
	log     *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc sessionService, cookies Cookies, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, cookies: cookies, log: logger.With("handler", "auth")}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Session sessionResponse `json:"session"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	h.cookies.setSession(w, sess.Token, sess.ExpiresAt)
	writeJSON(w, http.StatusOK, loginResponse{Token: sess.Token, Session: toSessionResponse(sess)})
}

// Logout handles POST /api/auth/logout. It only drops the cookie; the backend
// token stays valid until it expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.clearSession(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Session handles GET /api/auth/session. Anonymous callers get
// {"authenticated": false} rather than an error.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Require(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, toSessionResponse(nil))
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(sess))
}

// Account handles GET /api/account.
func (h *AuthHandler) Account(w http.ResponseWriter, r *http.Request) {
	acc, err := h.svc.Account(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(acc))
}
