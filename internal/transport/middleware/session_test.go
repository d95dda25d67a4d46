package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/pkg/ctxutil"
)

//go:generate moq -out session_decoder_mock_test.go -pkg middleware . sessionDecoder

const testCookie = "storefront_token"

func decoderFor(valid map[string]*domain.Session) *sessionDecoderMock {
	return &sessionDecoderMock{
		DecodeFunc: func(token string) (*domain.Session, error) {
			if s, ok := valid[token]; ok {
				return s, nil
			}
			return nil, errors.New("malformed token")
		},
	}
}

func liveSession(token, userID string) *domain.Session {
	return &domain.Session{Token: token, UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}
}

func TestSession_BearerHeader(t *testing.T) {
	decoder := decoderFor(map[string]*domain.Session{"good": liveSession("good", "42")})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, ok := ctxutil.UserIDFromCtx(r.Context())
		if !ok {
			t.Error("expected userID in context")
			return
		}
		if gotUserID != "42" {
			t.Errorf("expected userID 42, got %s", gotUserID)
		}
		if tok := ctxutil.TokenFromCtx(r.Context()); tok != "good" {
			t.Errorf("expected token good, got %q", tok)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()

	Session(decoder, testCookie)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestSession_Cookie(t *testing.T) {
	decoder := decoderFor(map[string]*domain.Session{"from-cookie": liveSession("from-cookie", "7")})

	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ctxutil.UserIDFromCtx(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "from-cookie"})

	Session(decoder, testCookie)(handler).ServeHTTP(httptest.NewRecorder(), req)

	if got != "7" {
		t.Errorf("expected userID 7 from cookie, got %q", got)
	}
}

func TestSession_HeaderWinsOverCookie(t *testing.T) {
	decoder := decoderFor(map[string]*domain.Session{
		"header": liveSession("header", "1"),
		"cookie": liveSession("cookie", "2"),
	})

	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ctxutil.UserIDFromCtx(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer header")
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "cookie"})

	Session(decoder, testCookie)(handler).ServeHTTP(httptest.NewRecorder(), req)

	if got != "1" {
		t.Errorf("expected header session, got user %q", got)
	}
	if n := len(decoder.DecodeCalls()); n != 1 {
		t.Errorf("expected 1 decode, got %d", n)
	}
}

func TestSession_InvalidOrExpiredIsAnonymous(t *testing.T) {
	expired := &domain.Session{Token: "old", UserID: "3", ExpiresAt: time.Now().Add(-time.Minute)}
	decoder := decoderFor(map[string]*domain.Session{"old": expired})

	for _, token := range []string{"old", "garbage"} {
		called := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			if _, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
				t.Errorf("token %q: expected no userID in context", token)
			}
			if ctxutil.TokenFromCtx(r.Context()) != "" {
				t.Errorf("token %q: expected no token in context", token)
			}
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		Session(decoder, testCookie)(handler).ServeHTTP(rec, req)

		if !called {
			t.Errorf("token %q: handler should be called", token)
		}
	}
}

func TestSession_NoCredentials(t *testing.T) {
	decoder := &sessionDecoderMock{}

	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "OAuth oauth_consumer_key=\"ck\"")

	Session(decoder, testCookie)(handler).ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("handler should be called")
	}
	if len(decoder.DecodeCalls()) != 0 {
		t.Error("decoder must not be called without a bearer token")
	}
}
